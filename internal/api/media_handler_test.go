package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeapi/internal/config"
	"resumeapi/internal/storage"
	"resumeapi/internal/tasks"
)

var samplePDF = []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n%%EOF\n")

type fakeStorage struct {
	objects   map[string][]byte
	openErr   error
	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) UploadFile(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) error {
	b, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[objectName] = b
	return nil
}

func (s *fakeStorage) OpenObject(_ context.Context, objectKey string) (io.ReadCloser, storage.ObjectInfo, error) {
	if s.openErr != nil {
		return nil, storage.ObjectInfo{}, s.openErr
	}
	b, ok := s.objects[objectKey]
	if !ok {
		return nil, storage.ObjectInfo{}, fmt.Errorf("open %s: %w", objectKey, storage.ErrObjectNotFound)
	}
	return io.NopCloser(bytes.NewReader(b)), storage.ObjectInfo{Key: objectKey, Size: int64(len(b)), ContentType: "application/pdf"}, nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, objectKey)
	return nil
}

type fakeQueue struct {
	tasks []*asynq.Task
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "default", Type: task.Type()}, nil
}

type fakeScanner struct {
	err   error
	calls int
}

func (s *fakeScanner) Scan(_ context.Context, r io.Reader) error {
	s.calls++
	_, _ = io.Copy(io.Discard, r)
	return s.err
}

func newMultipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func mediaConfig(t *testing.T) config.ResumeConfig {
	return config.ResumeConfig{
		PDFPath:   filepath.Join(t.TempDir(), "resume.pdf"),
		PDFObject: "resume/resume.pdf",
		HTMLURL:   "https://resume.example.com/",
	}
}

func TestGetPDF(t *testing.T) {
	t.Run("served from object storage", func(t *testing.T) {
		cfg := mediaConfig(t)
		store := newFakeStorage()
		store.objects[cfg.PDFObject] = samplePDF
		s := newTestServerWith(t, newTestDB(t), MediaDeps{Storage: store}, cfg)

		w := s.do(http.MethodGet, "/pdf", "", nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, samplePDF, w.Body.Bytes())
	})

	t.Run("falls back to local file", func(t *testing.T) {
		cfg := mediaConfig(t)
		require.NoError(t, os.WriteFile(cfg.PDFPath, samplePDF, 0o644))
		store := newFakeStorage()
		store.openErr = errors.New("minio unavailable")
		s := newTestServerWith(t, newTestDB(t), MediaDeps{Storage: store}, cfg)

		w := s.do(http.MethodGet, "/pdf", "", nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, samplePDF, w.Body.Bytes())
	})

	t.Run("missing everywhere", func(t *testing.T) {
		s := newTestServerWith(t, newTestDB(t), MediaDeps{Storage: newFakeStorage()}, mediaConfig(t))

		w := s.do(http.MethodGet, "/pdf", "", nil, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUploadPDF(t *testing.T) {
	t.Run("requires token", func(t *testing.T) {
		s := newTestServerWith(t, newTestDB(t), MediaDeps{}, mediaConfig(t))
		body, ct := newMultipartUpload(t, "resume.pdf", samplePDF)

		w := s.do(http.MethodPut, "/pdf", "", body, ct)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects non pdf", func(t *testing.T) {
		scanner := &fakeScanner{}
		s := newTestServerWith(t, newTestDB(t), MediaDeps{Scanner: scanner}, mediaConfig(t))
		token := s.createUser(t, "owner", "secret", false)
		body, ct := newMultipartUpload(t, "resume.pdf", []byte("<html></html>"))

		w := s.do(http.MethodPut, "/pdf", token, body, ct)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, scanner.calls)
	})

	t.Run("rejects infected upload", func(t *testing.T) {
		store := newFakeStorage()
		scanner := &fakeScanner{err: fmt.Errorf("%w: FOUND Eicar-Test-Signature", ErrInfected)}
		cfg := mediaConfig(t)
		s := newTestServerWith(t, newTestDB(t), MediaDeps{Storage: store, Scanner: scanner}, cfg)
		token := s.createUser(t, "owner", "secret", false)
		body, ct := newMultipartUpload(t, "resume.pdf", samplePDF)

		w := s.do(http.MethodPut, "/pdf", token, body, ct)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotContains(t, store.objects, cfg.PDFObject)
	})

	t.Run("stores in object storage", func(t *testing.T) {
		store := newFakeStorage()
		scanner := &fakeScanner{}
		cfg := mediaConfig(t)
		s := newTestServerWith(t, newTestDB(t), MediaDeps{Storage: store, Scanner: scanner}, cfg)
		token := s.createUser(t, "owner", "secret", false)
		body, ct := newMultipartUpload(t, "resume.pdf", samplePDF)

		w := s.do(http.MethodPut, "/pdf", token, body, ct)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, 1, scanner.calls)
		assert.Equal(t, samplePDF, store.objects[cfg.PDFObject])
	})

	t.Run("writes local file without storage", func(t *testing.T) {
		cfg := mediaConfig(t)
		s := newTestServerWith(t, newTestDB(t), MediaDeps{}, cfg)
		token := s.createUser(t, "owner", "secret", false)
		body, ct := newMultipartUpload(t, "resume.pdf", samplePDF)

		w := s.do(http.MethodPut, "/pdf", token, body, ct)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got, err := os.ReadFile(cfg.PDFPath)
		require.NoError(t, err)
		assert.Equal(t, samplePDF, got)
	})
}

func TestDeletePDF(t *testing.T) {
	t.Run("requires token", func(t *testing.T) {
		store := newFakeStorage()
		cfg := mediaConfig(t)
		store.objects[cfg.PDFObject] = samplePDF
		s := newTestServerWith(t, newTestDB(t), MediaDeps{Storage: store}, cfg)

		w := s.do(http.MethodDelete, "/pdf", "", nil, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, store.objects, cfg.PDFObject)
	})

	t.Run("removes object and falls back to local file", func(t *testing.T) {
		store := newFakeStorage()
		cfg := mediaConfig(t)
		store.objects[cfg.PDFObject] = []byte("%PDF-1.7 uploaded")
		require.NoError(t, os.WriteFile(cfg.PDFPath, samplePDF, 0o644))
		s := newTestServerWith(t, newTestDB(t), MediaDeps{Storage: store}, cfg)
		token := s.createUser(t, "owner", "secret", false)

		w := s.do(http.MethodDelete, "/pdf", token, nil, "")
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		assert.NotContains(t, store.objects, cfg.PDFObject)

		w = s.do(http.MethodGet, "/pdf", "", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, samplePDF, w.Body.Bytes())

		w = s.do(http.MethodDelete, "/pdf", token, nil, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		store := newFakeStorage()
		store.deleteErr = errors.New("minio unavailable")
		s := newTestServerWith(t, newTestDB(t), MediaDeps{Storage: store}, mediaConfig(t))
		token := s.createUser(t, "owner", "secret", false)

		w := s.do(http.MethodDelete, "/pdf", token, nil, "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("unavailable without storage", func(t *testing.T) {
		s := newTestServerWith(t, newTestDB(t), MediaDeps{}, mediaConfig(t))
		token := s.createUser(t, "owner", "secret", false)

		w := s.do(http.MethodDelete, "/pdf", token, nil, "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestRenderPDF(t *testing.T) {
	t.Run("unavailable without queue", func(t *testing.T) {
		s := newTestServerWith(t, newTestDB(t), MediaDeps{Storage: newFakeStorage()}, mediaConfig(t))
		token := s.createUser(t, "owner", "secret", false)

		w := s.do(http.MethodPost, "/pdf/render", token, nil, "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("enqueues render task", func(t *testing.T) {
		queue := &fakeQueue{}
		cfg := mediaConfig(t)
		s := newTestServerWith(t, newTestDB(t), MediaDeps{Storage: newFakeStorage(), Queue: queue}, cfg)
		token := s.createUser(t, "owner", "secret", false)

		w := s.do(http.MethodPost, "/pdf/render", token, nil, "")

		require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
		assert.Equal(t, "task-1", decode[map[string]string](t, w)["task_id"])
		require.Len(t, queue.tasks, 1)
		assert.Equal(t, tasks.TypePDFRender, queue.tasks[0].Type())

		payload, err := tasks.ParsePDFRenderPayload(queue.tasks[0])
		require.NoError(t, err)
		assert.Equal(t, cfg.HTMLURL, payload.SourceURL)
		assert.Equal(t, cfg.PDFObject, payload.ObjectKey)
		assert.Equal(t, "owner", payload.RequestedBy)
		assert.Equal(t, w.Header().Get("X-Correlation-ID"), payload.CorrelationID)
	})
}

func TestGetHTML(t *testing.T) {
	cfg := mediaConfig(t)
	s := newTestServerWith(t, newTestDB(t), MediaDeps{}, cfg)

	w := s.do(http.MethodGet, "/html", "", nil, "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, cfg.HTMLURL, w.Header().Get("Location"))

	cfg.HTMLURL = ""
	s = newTestServerWith(t, newTestDB(t), MediaDeps{}, cfg)
	w = s.do(http.MethodGet, "/html", "", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
