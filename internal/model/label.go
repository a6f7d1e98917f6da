package model

// LabelSize is the physical size of one label in millimeters.
type LabelSize struct {
	WidthMM  float64 `json:"width_mm" validate:"required,gt=0"`
	HeightMM float64 `json:"height_mm" validate:"required,gt=0"`
}

// RenderOptions tunes how a label is rendered. FontSize is a hint; the
// layout engine may still shrink it to make the text fit.
type RenderOptions struct {
	Border   bool `json:"border"`
	FontSize *int `json:"font_size" validate:"omitempty,gt=0"`
	DPI      int  `json:"dpi" validate:"omitempty,gt=0"`
}

// DefaultDPI applies when a request leaves options.dpi unset.
const DefaultDPI = 300

// Canvas is the pixel buffer geometry derived from a LabelSize at a DPI.
type Canvas struct {
	WidthPx  int `json:"width_px"`
	HeightPx int `json:"height_px"`
	DPI      int `json:"dpi"`
}

// LayoutResult is the outcome of the font fit search. When Fits is false the
// text cannot be displayed even at the minimum font size and the request must
// fail without rendering.
type LayoutResult struct {
	FontSizePx int  `json:"font_size_px"`
	OriginX    int  `json:"origin_x"`
	OriginY    int  `json:"origin_y"`
	TextWidth  int  `json:"text_width"`
	LineHeight int  `json:"line_height"`
	Ascent     int  `json:"-"`
	Fits       bool `json:"fits"`
}
