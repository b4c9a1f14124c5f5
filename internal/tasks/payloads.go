package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypePDFRender = "pdf:render"
)

// PDFRenderPayload 描述把 HTML 简历渲染为 PDF 所需的信息。
type PDFRenderPayload struct {
	SourceURL     string `json:"source_url"`
	ObjectKey     string `json:"object_key"`
	RequestedBy   string `json:"requested_by"`
	CorrelationID string `json:"correlation_id"`
}

// NewPDFRenderTask 构造一个新的 PDF 渲染任务。
func NewPDFRenderTask(p PDFRenderPayload) (*asynq.Task, error) {
	if p.SourceURL == "" || p.ObjectKey == "" {
		return nil, fmt.Errorf("pdf render task requires source url and object key")
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePDFRender, payload, asynq.MaxRetry(3)), nil
}

// ParsePDFRenderPayload 解析任务负载。
func ParsePDFRenderPayload(t *asynq.Task) (PDFRenderPayload, error) {
	var p PDFRenderPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("unmarshal %s payload: %w", t.Type(), err)
	}
	return p, nil
}
