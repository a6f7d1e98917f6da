package render

import (
	"testing"

	"github.com/labelforge/api/internal/config"
	"github.com/labelforge/api/internal/model"
)

func testPrinterConfig() config.PrinterConfig {
	return config.PrinterConfig{
		Name:         "test-printer",
		SupportedDPI: []int{203, 300},
		MinMM:        20,
		MaxMM:        100,
	}
}

func TestResolve_CanvasDimensions(t *testing.T) {
	r := NewResolver(testPrinterConfig())

	canvas, err := r.Resolve(model.LabelSize{WidthMM: 50, HeightMM: 50}, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 50mm * 300dpi / 25.4 = 590.55 → 591
	if canvas.WidthPx != 591 || canvas.HeightPx != 591 {
		t.Errorf("expected 591x591, got %dx%d", canvas.WidthPx, canvas.HeightPx)
	}
	if canvas.DPI != 300 {
		t.Errorf("expected dpi 300, got %d", canvas.DPI)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	r := NewResolver(testPrinterConfig())
	size := model.LabelSize{WidthMM: 62, HeightMM: 29}

	first, err := r.Resolve(size, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := r.Resolve(size, 300)
		if err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
		if again != first {
			t.Fatalf("call %d returned %+v, first call returned %+v", i, again, first)
		}
	}
}

func TestResolve_SizeOutOfRange(t *testing.T) {
	r := NewResolver(testPrinterConfig())

	cases := []model.LabelSize{
		{WidthMM: 5, HeightMM: 50},
		{WidthMM: 50, HeightMM: 5},
		{WidthMM: 150, HeightMM: 50},
		{WidthMM: 50, HeightMM: 150},
		{WidthMM: 5, HeightMM: 5},
	}
	for _, size := range cases {
		_, err := r.Resolve(size, 300)
		if model.KindOf(err) != model.ErrSizeOutOfRange {
			t.Errorf("size %+v: expected SizeOutOfRange, got %v", size, err)
		}
	}
}

func TestResolve_UnsupportedDPI(t *testing.T) {
	r := NewResolver(testPrinterConfig())

	_, err := r.Resolve(model.LabelSize{WidthMM: 50, HeightMM: 50}, 999)
	if model.KindOf(err) != model.ErrUnsupportedDPI {
		t.Fatalf("expected UnsupportedDPI, got %v", err)
	}
}

func TestResolve_DPICheckedBeforeSize(t *testing.T) {
	r := NewResolver(testPrinterConfig())

	// Both dpi and size are invalid; dpi must win.
	_, err := r.Resolve(model.LabelSize{WidthMM: 5, HeightMM: 5}, 999)
	if model.KindOf(err) != model.ErrUnsupportedDPI {
		t.Fatalf("expected UnsupportedDPI before size validation, got %v", err)
	}
}

func TestResolve_CanvasTooSmall(t *testing.T) {
	r := NewResolver(config.PrinterConfig{
		Name:         "test-printer",
		SupportedDPI: []int{1},
		MinMM:        0.001,
		MaxMM:        100,
	})

	_, err := r.Resolve(model.LabelSize{WidthMM: 0.01, HeightMM: 0.01}, 1)
	if model.KindOf(err) != model.ErrCanvasTooSmall {
		t.Fatalf("expected CanvasTooSmall, got %v", err)
	}
}
