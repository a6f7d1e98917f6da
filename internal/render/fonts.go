package render

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontSource parses a typeface once and hands out faces at requested pixel
// sizes. The zero path loads the embedded Go Regular face.
type FontSource struct {
	fnt *opentype.Font
}

// LoadFont parses the TTF at path, or the embedded default when path is empty.
func LoadFont(path string) (*FontSource, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", path, err)
		}
		data = b
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &FontSource{fnt: fnt}, nil
}

// Face returns a face whose em square is sizePx pixels tall at the given DPI.
// opentype sizes are in points, so convert: pt = px * 72 / dpi.
func (s *FontSource) Face(sizePx, dpi int) (font.Face, error) {
	return opentype.NewFace(s.fnt, &opentype.FaceOptions{
		Size:    float64(sizePx) * 72.0 / float64(dpi),
		DPI:     float64(dpi),
		Hinting: font.HintingFull,
	})
}
