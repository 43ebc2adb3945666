package export

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os/exec"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/mmynk/invoicer/internal/render"
)

// cssPixelsPerInch converts CSS pixels to the inches PrintToPDF expects.
const cssPixelsPerInch = 96.0

// chromeExecutables are looked up on PATH when no remote browser is set.
var chromeExecutables = []string{
	"headless-shell",
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
}

const waitForImagesJS = `Promise.all(Array.from(document.images).map(function (img) {
  return img.complete ? true : new Promise(function (resolve) { img.onload = img.onerror = resolve; });
})).then(function () { return true; })`

const measureJS = `(function () {
  var el = document.getElementById("invoice") || document.documentElement;
  var r = el.getBoundingClientRect();
  return [Math.ceil(r.width), Math.ceil(r.height + r.top * 2)];
})()`

// ChromeConfig configures the Chrome renderer.
type ChromeConfig struct {
	// RemoteURL is the DevTools URL of a running browser. When empty a local
	// headless browser is launched per export.
	RemoteURL string
	// NoSandbox is needed when running as root in a container.
	NoSandbox bool
}

// ChromeRenderer renders views through headless Chrome: PDFs as a single
// page sized to the content, JPGs as a full-page screenshot.
type ChromeRenderer struct {
	cfg      ChromeConfig
	lookPath func(string) (string, error)
}

var _ Renderer = (*ChromeRenderer)(nil)

// NewChromeRenderer creates a ChromeRenderer.
func NewChromeRenderer(cfg ChromeConfig) *ChromeRenderer {
	return &ChromeRenderer{cfg: cfg, lookPath: exec.LookPath}
}

// Available reports whether a browser can be reached.
func (r *ChromeRenderer) Available(_ context.Context, f Format) error {
	if f != FormatPDF && f != FormatJPG {
		return fmt.Errorf("%w: chrome cannot produce %s", ErrRendererUnavailable, f)
	}
	if r.cfg.RemoteURL != "" {
		return nil
	}
	if _, err := r.executable(); err != nil {
		return err
	}
	return nil
}

func (r *ChromeRenderer) executable() (string, error) {
	for _, name := range chromeExecutables {
		if path, err := r.lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: no chrome executable on PATH", ErrRendererUnavailable)
}

// Render loads the view's HTML into a fresh tab and captures it.
func (r *ChromeRenderer) Render(ctx context.Context, f Format, view *render.View, s Settings) ([]byte, error) {
	html, err := view.HTML()
	if err != nil {
		return nil, err
	}

	allocCtx, allocCancel, err := r.allocator(ctx)
	if err != nil {
		return nil, err
	}
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			slog.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	var (
		loaded bool
		dims   []float64
		out    []byte
	)

	actions := []chromedp.Action{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("#invoice", chromedp.ByID),
		chromedp.Evaluate(waitForImagesJS, &loaded, awaitPromise),
		chromedp.Evaluate(measureJS, &dims),
	}

	switch f {
	case FormatPDF:
		actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
			width, height := pageSize(dims)
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(0).
				WithMarginRight(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithPageRanges("1").
				Do(ctx)
			if err != nil {
				return err
			}
			out = data
			return nil
		}))
	case FormatJPG:
		actions = append(actions,
			chromedp.ActionFunc(func(ctx context.Context) error {
				w, h := viewport(dims)
				return chromedp.EmulateViewport(w, h, chromedp.EmulateScale(scaleOrDefault(s.Scale))).Do(ctx)
			}),
			chromedp.FullScreenshot(&out, jpegQuality(s.Quality)),
		)
	default:
		return nil, fmt.Errorf("%w: chrome cannot produce %s", ErrRendererUnavailable, f)
	}

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return nil, fmt.Errorf("chromedp: %w", err)
	}
	return out, nil
}

func (r *ChromeRenderer) allocator(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if r.cfg.RemoteURL != "" {
		allocCtx, cancel := chromedp.NewRemoteAllocator(ctx, r.cfg.RemoteURL)
		return allocCtx, cancel, nil
	}

	path, err := r.executable()
	if err != nil {
		return nil, nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(path),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if r.cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	return allocCtx, cancel, nil
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

// pageSize converts measured CSS pixels into a PDF page in inches. Falls back
// to US Letter when the page could not be measured.
func pageSize(dims []float64) (width, height float64) {
	if len(dims) != 2 || dims[0] <= 0 || dims[1] <= 0 {
		return 8.5, 11
	}
	return dims[0] / cssPixelsPerInch, dims[1] / cssPixelsPerInch
}

func viewport(dims []float64) (width, height int64) {
	if len(dims) != 2 || dims[0] <= 0 || dims[1] <= 0 {
		return 816, 1056
	}
	return int64(math.Ceil(dims[0])), int64(math.Ceil(dims[1]))
}

func scaleOrDefault(scale float64) float64 {
	if scale <= 0 {
		return 1
	}
	return scale
}

// jpegQuality maps 0..1 onto Chrome's 0..100, defaulting to 95. Capped at
// 99 since FullScreenshot switches to PNG at 100.
func jpegQuality(q float64) int {
	if q <= 0 || q > 1 {
		return 95
	}
	return min(int(math.Round(q*100)), 99)
}
