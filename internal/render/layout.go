package render

import (
	"golang.org/x/image/font"

	"github.com/labelforge/api/internal/config"
	"github.com/labelforge/api/internal/model"
)

// LayoutEngine finds the largest font size at which a text line, padded by
// the configured margin on every side, fits inside a canvas.
//
// Vertical placement is a fixed offset from the top of the canvas, not
// geometric centering: centering a tall bounding box clipped the descenders
// on the reference printer's printable area, which is smaller than the label
// and not symmetric around its middle.
type LayoutEngine struct {
	fonts *FontSource
	cfg   config.LayoutConfig
}

func NewLayoutEngine(fonts *FontSource, cfg config.LayoutConfig) *LayoutEngine {
	return &LayoutEngine{fonts: fonts, cfg: cfg}
}

// Layout walks a strictly decreasing sequence of candidate font sizes and
// returns the first one that fits. Fits=false means the text cannot be shown
// even at the minimum size; callers must not render such a result.
func (e *LayoutEngine) Layout(text string, canvas model.Canvas, opts model.RenderOptions) (model.LayoutResult, error) {
	start := e.startSize(canvas, opts)

	for size := start; size >= e.cfg.MinFontPx; size -= e.cfg.FontStep {
		face, err := e.fonts.Face(size, canvas.DPI)
		if err != nil {
			return model.LayoutResult{}, err
		}

		metrics := face.Metrics()
		ascent := metrics.Ascent.Ceil()
		lineHeight := ascent + metrics.Descent.Ceil()

		bounds, _ := font.BoundString(face, text)
		textWidth := (bounds.Max.X - bounds.Min.X).Ceil()

		if !e.boxFits(textWidth, lineHeight, canvas) {
			continue
		}
		// Height clipping below the fixed offset is a hard failure for this
		// candidate even when the margins fit.
		if e.cfg.TopOffsetPx+lineHeight > canvas.HeightPx {
			continue
		}

		return model.LayoutResult{
			FontSizePx: size,
			OriginX:    (canvas.WidthPx - textWidth) / 2,
			OriginY:    e.cfg.TopOffsetPx,
			TextWidth:  textWidth,
			LineHeight: lineHeight,
			Ascent:     ascent,
			Fits:       true,
		}, nil
	}

	return model.LayoutResult{Fits: false}, nil
}

// startSize picks the first candidate: the caller's hint when given,
// otherwise a configured fraction of the shorter canvas dimension.
func (e *LayoutEngine) startSize(canvas model.Canvas, opts model.RenderOptions) int {
	if opts.FontSize != nil && *opts.FontSize > 0 {
		return *opts.FontSize
	}
	short := canvas.WidthPx
	if canvas.HeightPx < short {
		short = canvas.HeightPx
	}
	start := int(float64(short) * e.cfg.MaxFontRatio)
	if start < e.cfg.MinFontPx {
		start = e.cfg.MinFontPx
	}
	return start
}

func (e *LayoutEngine) boxFits(w, h int, canvas model.Canvas) bool {
	m := e.cfg.MarginPx
	return w+2*m <= canvas.WidthPx && h+2*m <= canvas.HeightPx
}
