package worker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hibiken/asynq"

	"resumeapi/internal/tasks"
)

// PageRenderer 将 URL 渲染为 PDF 字节。
type PageRenderer interface {
	RenderURL(ctx context.Context, url string) ([]byte, error)
}

// ObjectUploader 保存渲染结果。
type ObjectUploader interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
}

// PDFTaskHandler 负责消费 PDF 渲染任务。
type PDFTaskHandler struct {
	renderer PageRenderer
	storage  ObjectUploader
	notifier Notifier
	logger   *slog.Logger
}

// NewPDFTaskHandler 创建任务处理器。
func NewPDFTaskHandler(renderer PageRenderer, storage ObjectUploader, logger *slog.Logger) *PDFTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFTaskHandler{renderer: renderer, storage: storage, logger: logger}
}

// WithNotifier 通过 n 发布每次渲染的结果。
func (h *PDFTaskHandler) WithNotifier(n Notifier) *PDFTaskHandler {
	h.notifier = n
	return h
}

// ProcessTask 实现 asynq.Handler。
func (h *PDFTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	payload, err := tasks.ParsePDFRenderPayload(t)
	if err != nil {
		h.logger.Error("unmarshal task payload failed", slog.Any("error", err))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	log := h.logger.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.String("source_url", payload.SourceURL),
		slog.String("object_key", payload.ObjectKey),
		slog.String("requested_by", payload.RequestedBy),
	)
	log.Info("rendering resume pdf")

	msg := RenderNotifyMessage{
		ObjectKey:     payload.ObjectKey,
		RequestedBy:   payload.RequestedBy,
		CorrelationID: payload.CorrelationID,
	}

	size, err := h.render(ctx, log, payload)
	if err != nil {
		msg.Status, msg.ErrorMessage = RenderStatusFailed, err.Error()
	} else {
		msg.Status, msg.Bytes = RenderStatusDone, size
	}
	h.notify(ctx, log, msg)
	return err
}

func (h *PDFTaskHandler) render(ctx context.Context, log *slog.Logger, payload tasks.PDFRenderPayload) (int, error) {
	data, err := h.renderer.RenderURL(ctx, payload.SourceURL)
	if err != nil {
		log.Error("render pdf failed", slog.Any("error", err))
		return 0, err
	}
	if len(data) == 0 {
		log.Error("renderer returned an empty document")
		return 0, fmt.Errorf("render %s: empty document", payload.SourceURL)
	}

	if err := h.storage.UploadFile(ctx, payload.ObjectKey, bytes.NewReader(data), int64(len(data)), "application/pdf"); err != nil {
		log.Error("upload pdf failed", slog.Any("error", err))
		return 0, err
	}

	log.Info("resume pdf stored", slog.Int("bytes", len(data)))
	return len(data), nil
}

func (h *PDFTaskHandler) notify(ctx context.Context, log *slog.Logger, msg RenderNotifyMessage) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.Notify(ctx, msg); err != nil {
		log.Warn("publish render result failed", slog.Any("error", err))
	}
}
