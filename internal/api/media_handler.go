package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"resumeapi/internal/api/middleware"
	"resumeapi/internal/config"
	"resumeapi/internal/storage"
	"resumeapi/internal/tasks"
)

const maxPDFBytes = 10 << 20

// PDFStore 是存放简历 PDF 的对象存储。
type PDFStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	OpenObject(ctx context.Context, objectKey string) (io.ReadCloser, storage.ObjectInfo, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// TaskEnqueuer 投递后台任务。
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Scanner 在保存前检查上传内容。
type Scanner interface {
	Scan(ctx context.Context, r io.Reader) error
}

// MediaDeps 是 MediaHandler 的可选依赖，字段为 nil 时对应功能关闭。
type MediaDeps struct {
	Storage PDFStore
	Queue   TaskEnqueuer
	Scanner Scanner
}

// MediaHandler 负责 PDF 与 HTML 版本简历的访问、上传与渲染。
type MediaHandler struct {
	deps   MediaDeps
	cfg    config.ResumeConfig
	logger *slog.Logger
}

// NewMediaHandler 返回 MediaHandler 实例。
func NewMediaHandler(deps MediaDeps, cfg config.ResumeConfig, logger *slog.Logger) *MediaHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MediaHandler{deps: deps, cfg: cfg, logger: logger}
}

// GetPDF 优先从对象存储读取，缺失时回退到本地文件。
func (h *MediaHandler) GetPDF(c *gin.Context) {
	logger := h.loggerFromContext(c)

	if h.deps.Storage != nil {
		reader, info, err := h.deps.Storage.OpenObject(c.Request.Context(), h.cfg.PDFObject)
		if err == nil {
			defer reader.Close()
			c.DataFromReader(http.StatusOK, info.Size, "application/pdf", reader, map[string]string{
				"Content-Disposition": `inline; filename="resume.pdf"`,
			})
			return
		}
		if !errors.Is(err, storage.ErrObjectNotFound) {
			logger.Warn("read pdf from object storage failed, using local file", slog.Any("error", err))
		}
	}

	if _, err := os.Stat(h.cfg.PDFPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Error("stat local pdf failed", slog.Any("error", err))
		}
		NotFound(c, "resume pdf not found")
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="resume.pdf"`)
	c.File(h.cfg.PDFPath)
}

// UploadPDF 接收 multipart 字段 file，扫描病毒后写入对象存储或本地文件。
func (h *MediaHandler) UploadPDF(c *gin.Context) {
	logger := h.loggerFromContext(c)

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}
	if file.Size > maxPDFBytes {
		Error(c, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		logger.Error("open upload failed", slog.Any("error", err))
		Internal(c)
		return
	}
	data, err := io.ReadAll(io.LimitReader(src, maxPDFBytes+1))
	src.Close()
	if err != nil {
		logger.Error("read upload failed", slog.Any("error", err))
		Internal(c)
		return
	}
	if len(data) > maxPDFBytes {
		Error(c, http.StatusRequestEntityTooLarge, "file too large")
		return
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		BadRequest(c, "file is not a pdf")
		return
	}

	if h.deps.Scanner != nil {
		if err := h.deps.Scanner.Scan(c.Request.Context(), bytes.NewReader(data)); err != nil {
			if errors.Is(err, ErrInfected) {
				logger.Warn("upload rejected by virus scan", slog.Any("error", err))
				BadRequest(c, ErrInfected.Error())
				return
			}
			logger.Error("scan file failed", slog.Any("error", err))
			Internal(c)
			return
		}
	}

	target, err := h.storePDF(c.Request.Context(), data)
	if err != nil {
		logger.Error("store pdf failed", slog.Any("error", err))
		Internal(c)
		return
	}

	logger.Info("resume pdf replaced", slog.String("target", target), slog.Int("bytes", len(data)))
	c.JSON(http.StatusOK, gin.H{"location": target, "size": len(data)})
}

func (h *MediaHandler) storePDF(ctx context.Context, data []byte) (string, error) {
	if h.deps.Storage != nil {
		err := h.deps.Storage.UploadFile(ctx, h.cfg.PDFObject, bytes.NewReader(data), int64(len(data)), "application/pdf")
		return h.cfg.PDFObject, err
	}

	dir := filepath.Dir(h.cfg.PDFPath)
	tmp, err := os.CreateTemp(dir, ".resume-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), h.cfg.PDFPath); err != nil {
		return "", fmt.Errorf("replace %s: %w", h.cfg.PDFPath, err)
	}
	return h.cfg.PDFPath, nil
}

// DeletePDF 删除对象存储中的 PDF，之后 GET /pdf 回退到本地文件。
// 对象不存在同样返回 204。
func (h *MediaHandler) DeletePDF(c *gin.Context) {
	if h.deps.Storage == nil {
		Error(c, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	logger := h.loggerFromContext(c)
	if err := h.deps.Storage.DeleteObject(c.Request.Context(), h.cfg.PDFObject); err != nil {
		logger.Error("delete pdf failed", slog.Any("error", err))
		Internal(c)
		return
	}

	logger.Info("resume pdf removed from object storage", slog.String("object", h.cfg.PDFObject))
	c.Status(http.StatusNoContent)
}

// RenderPDF 投递异步任务，由 worker 把 HTML 简历渲染为 PDF。
func (h *MediaHandler) RenderPDF(c *gin.Context) {
	if h.deps.Queue == nil || h.cfg.HTMLURL == "" || h.deps.Storage == nil {
		Error(c, http.StatusServiceUnavailable, "pdf rendering is not configured")
		return
	}

	requestedBy := ""
	if user, ok := middleware.CurrentUser(c); ok {
		requestedBy = user.Username
	}

	task, err := tasks.NewPDFRenderTask(tasks.PDFRenderPayload{
		SourceURL:     h.cfg.HTMLURL,
		ObjectKey:     h.cfg.PDFObject,
		RequestedBy:   requestedBy,
		CorrelationID: middleware.GetCorrelationID(c),
	})
	if err != nil {
		h.loggerFromContext(c).Error("build render task failed", slog.Any("error", err))
		Internal(c)
		return
	}

	info, err := h.deps.Queue.EnqueueContext(c.Request.Context(), task)
	if err != nil {
		h.loggerFromContext(c).Error("enqueue render task failed", slog.Any("error", err))
		Internal(c)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"task_id": info.ID, "queue": info.Queue})
}

// GetHTML 重定向到托管的 HTML 版本简历。
func (h *MediaHandler) GetHTML(c *gin.Context) {
	if h.cfg.HTMLURL == "" {
		NotFound(c, "resume html not configured")
		return
	}
	c.Redirect(http.StatusFound, h.cfg.HTMLURL)
}

func (h *MediaHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger, ok := middleware.RequestLogger(c); ok {
		return logger
	}
	return h.logger
}
