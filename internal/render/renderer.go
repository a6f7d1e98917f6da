package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"

	"github.com/labelforge/api/internal/config"
	"github.com/labelforge/api/internal/model"
)

// RenderedLabel owns the pixel buffer for one label plus the artifact file
// it was persisted to.
type RenderedLabel struct {
	Image     image.Image
	Path      string
	ColorMode string
	CreatedAt time.Time
}

// Renderer paints label canvases and persists them as PNG artifacts.
//
// The buffer is always full-color RGB. The reference printer driver silently
// produces blank labels when fed 1-bit or grayscale input, so reduced-depth
// buffers are not an option here even though the output is black on white.
type Renderer struct {
	fonts       *FontSource
	artifactDir string
	marginPx    int
}

func NewRenderer(fonts *FontSource, renderCfg config.RenderConfig, layoutCfg config.LayoutConfig) *Renderer {
	return &Renderer{
		fonts:       fonts,
		artifactDir: renderCfg.ArtifactDir,
		marginPx:    layoutCfg.MarginPx,
	}
}

// Render paints the canvas and writes the artifact named after jobID. The
// artifact must exist before dispatch, so a write failure aborts the job.
func (r *Renderer) Render(canvas model.Canvas, layout model.LayoutResult, text string, opts model.RenderOptions, jobID string) (*RenderedLabel, error) {
	dc := gg.NewContext(canvas.WidthPx, canvas.HeightPx)

	dc.SetColor(color.White)
	dc.Clear()

	if opts.Border {
		m := float64(r.marginPx)
		dc.SetColor(color.Black)
		dc.SetLineWidth(2)
		dc.DrawRectangle(m, m, float64(canvas.WidthPx)-2*m, float64(canvas.HeightPx)-2*m)
		dc.Stroke()
	}

	face, err := r.fonts.Face(layout.FontSizePx, canvas.DPI)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	// OriginY is the top of the text box; DrawString wants the baseline.
	dc.DrawString(text, float64(layout.OriginX), float64(layout.OriginY+layout.Ascent))

	path, err := r.writeArtifact(dc, jobID)
	if err != nil {
		return nil, model.NewError(model.ErrArtifactWriteFailed, "write artifact: %v", err)
	}

	return &RenderedLabel{
		Image:     dc.Image(),
		Path:      path,
		ColorMode: "RGB",
		CreatedAt: time.Now(),
	}, nil
}

func (r *Renderer) writeArtifact(dc *gg.Context, jobID string) (string, error) {
	if err := os.MkdirAll(r.artifactDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(r.artifactDir, fmt.Sprintf("label_%s.png", jobID))
	if err := dc.SavePNG(path); err != nil {
		return "", err
	}
	return path, nil
}
