package pdf

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultTimeout 是调用方未指定时单次渲染的超时。
const DefaultTimeout = 60 * time.Second

// Renderer 使用 go-rod 在无头浏览器中打开页面并导出 PDF。
type Renderer struct {
	Timeout time.Duration
	BinPath string
}

// NewRenderer 返回优先使用本机 Chromium 的渲染器。
func NewRenderer(timeout time.Duration) *Renderer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	r := &Renderer{Timeout: timeout}
	if path, ok := launcher.LookPath(); ok {
		r.BinPath = path
	}
	return r
}

// RenderURL 打开 url 并返回打印出的 PDF 字节。
func (r *Renderer) RenderURL(ctx context.Context, url string) ([]byte, error) {
	launch := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)
	if r.BinPath != "" {
		launch = launch.Bin(r.BinPath)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	defer launch.Cleanup()

	browser := rod.New().Context(ctx).ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Timeout(r.Timeout).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", url, err)
	}
	defer func() {
		_ = page.Close()
	}()

	page = page.Timeout(r.Timeout)
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PaperWidth:        float64Ptr(8.27),
		PaperHeight:       float64Ptr(11.69),
		MarginTop:         float64Ptr(0.4),
		MarginBottom:      float64Ptr(0.4),
		MarginLeft:        float64Ptr(0.4),
		MarginRight:       float64Ptr(0.4),
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}
	return data, nil
}

func float64Ptr(v float64) *float64 {
	return &v
}
