package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeapi/internal/tasks"
)

type fakeRenderer struct {
	url  string
	data []byte
	err  error
}

func (f *fakeRenderer) RenderURL(_ context.Context, url string) ([]byte, error) {
	f.url = url
	return f.data, f.err
}

type fakeUploader struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (f *fakeUploader) UploadFile(_ context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	if f.err != nil {
		return f.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if int64(len(body)) != size {
		return errors.New("size mismatch")
	}
	f.key, f.contentType, f.body = objectName, contentType, body
	return nil
}

func newTask(t *testing.T) *asynq.Task {
	t.Helper()
	task, err := tasks.NewPDFRenderTask(tasks.PDFRenderPayload{
		SourceURL: "https://example.com/resume.html",
		ObjectKey: "resume/resume.pdf",
	})
	require.NoError(t, err)
	return task
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPDFTaskHandler_RendersAndUploads(t *testing.T) {
	renderer := &fakeRenderer{data: []byte("%PDF-1.7")}
	uploader := &fakeUploader{}
	h := NewPDFTaskHandler(renderer, uploader, discardLogger())

	require.NoError(t, h.ProcessTask(context.Background(), newTask(t)))
	assert.Equal(t, "https://example.com/resume.html", renderer.url)
	assert.Equal(t, "resume/resume.pdf", uploader.key)
	assert.Equal(t, "application/pdf", uploader.contentType)
	assert.Equal(t, []byte("%PDF-1.7"), uploader.body)
}

func TestPDFTaskHandler_Failures(t *testing.T) {
	boom := errors.New("boom")

	err := NewPDFTaskHandler(&fakeRenderer{err: boom}, &fakeUploader{}, discardLogger()).
		ProcessTask(context.Background(), newTask(t))
	assert.ErrorIs(t, err, boom)

	err = NewPDFTaskHandler(&fakeRenderer{}, &fakeUploader{}, discardLogger()).
		ProcessTask(context.Background(), newTask(t))
	assert.Error(t, err)

	err = NewPDFTaskHandler(&fakeRenderer{data: []byte("%PDF")}, &fakeUploader{err: boom}, discardLogger()).
		ProcessTask(context.Background(), newTask(t))
	assert.ErrorIs(t, err, boom)
}

func TestPDFTaskHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := NewPDFTaskHandler(&fakeRenderer{}, &fakeUploader{}, discardLogger())

	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypePDFRender, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

type recordingNotifier struct {
	msgs []RenderNotifyMessage
}

func (r *recordingNotifier) Notify(_ context.Context, msg RenderNotifyMessage) error {
	r.msgs = append(r.msgs, msg)
	return nil
}

func TestPDFTaskHandler_NotifiesOutcome(t *testing.T) {
	notifier := &recordingNotifier{}
	h := NewPDFTaskHandler(&fakeRenderer{data: []byte("%PDF-1.7")}, &fakeUploader{}, discardLogger()).
		WithNotifier(notifier)
	require.NoError(t, h.ProcessTask(context.Background(), newTask(t)))

	failing := NewPDFTaskHandler(&fakeRenderer{err: errors.New("chromium crashed")}, &fakeUploader{}, discardLogger()).
		WithNotifier(notifier)
	require.Error(t, failing.ProcessTask(context.Background(), newTask(t)))

	require.Len(t, notifier.msgs, 2)
	assert.Equal(t, RenderStatusDone, notifier.msgs[0].Status)
	assert.Equal(t, 8, notifier.msgs[0].Bytes)
	assert.Equal(t, "resume/resume.pdf", notifier.msgs[0].ObjectKey)
	assert.Equal(t, RenderStatusFailed, notifier.msgs[1].Status)
	assert.Contains(t, notifier.msgs[1].ErrorMessage, "chromium crashed")
}
