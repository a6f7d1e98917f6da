package render

import (
	"math"

	"github.com/labelforge/api/internal/config"
	"github.com/labelforge/api/internal/model"
)

const mmPerInch = 25.4

// Resolver converts physical label sizes into pixel canvases and validates
// them against the printer's configured limits. Pure and deterministic.
type Resolver struct {
	minMM        float64
	maxMM        float64
	supportedDPI []int
}

func NewResolver(cfg config.PrinterConfig) *Resolver {
	return &Resolver{
		minMM:        cfg.MinMM,
		maxMM:        cfg.MaxMM,
		supportedDPI: cfg.SupportedDPI,
	}
}

// Resolve validates size and dpi and computes the pixel canvas. The DPI check
// runs before any size math so an unsupported density never reaches the
// millimeter conversion.
func (r *Resolver) Resolve(size model.LabelSize, dpi int) (model.Canvas, error) {
	if !r.dpiSupported(dpi) {
		return model.Canvas{}, model.NewError(model.ErrUnsupportedDPI,
			"dpi %d is not supported by this printer (supported: %v)", dpi, r.supportedDPI)
	}

	if size.WidthMM < r.minMM || size.WidthMM > r.maxMM {
		return model.Canvas{}, model.NewError(model.ErrSizeOutOfRange,
			"width %.1fmm outside allowed range [%.1f, %.1f]mm", size.WidthMM, r.minMM, r.maxMM)
	}
	if size.HeightMM < r.minMM || size.HeightMM > r.maxMM {
		return model.Canvas{}, model.NewError(model.ErrSizeOutOfRange,
			"height %.1fmm outside allowed range [%.1f, %.1f]mm", size.HeightMM, r.minMM, r.maxMM)
	}

	canvas := model.Canvas{
		WidthPx:  mmToPx(size.WidthMM, dpi),
		HeightPx: mmToPx(size.HeightMM, dpi),
		DPI:      dpi,
	}
	if canvas.WidthPx <= 0 || canvas.HeightPx <= 0 {
		return model.Canvas{}, model.NewError(model.ErrCanvasTooSmall,
			"label %.2fx%.2fmm at %ddpi rounds to an empty canvas", size.WidthMM, size.HeightMM, dpi)
	}

	return canvas, nil
}

func (r *Resolver) dpiSupported(dpi int) bool {
	for _, d := range r.supportedDPI {
		if d == dpi {
			return true
		}
	}
	return false
}

func mmToPx(mm float64, dpi int) int {
	return int(math.Round(mm * float64(dpi) / mmPerInch))
}
