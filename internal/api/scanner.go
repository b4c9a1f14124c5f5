package api

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dutchcoders/go-clamd"
)

// ErrInfected 表示上传被病毒扫描拒绝。
var ErrInfected = errors.New("malicious file detected")

// ClamdScanner 通过 clamd 的 INSTREAM 命令扫描上传内容。
type ClamdScanner struct {
	addr string
}

// NewClamdScanner 接收 clamd 地址，例如 tcp://127.0.0.1:3310。
func NewClamdScanner(addr string) *ClamdScanner {
	return &ClamdScanner{addr: addr}
}

// Scan 在 clamd 返回非 OK 结果时返回 ErrInfected。
func (s *ClamdScanner) Scan(ctx context.Context, r io.Reader) error {
	abort := make(chan bool, 1)
	results, err := clamd.NewClamd(s.addr).ScanStream(r, abort)
	if err != nil {
		return fmt.Errorf("scan stream: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			abort <- true
			return ctx.Err()
		case result, ok := <-results:
			if !ok {
				return nil
			}
			if result.Status != clamd.RES_OK {
				return fmt.Errorf("%w: %s %s", ErrInfected, result.Status, result.Description)
			}
		}
	}
}
