package printer

import (
	"context"

	"github.com/labelforge/api/internal/config"
	"github.com/labelforge/api/internal/model"
)

// CapabilityProvider assembles the advertised printer capabilities. It builds
// a fresh snapshot per query; nothing in the render path depends on it.
type CapabilityProvider struct {
	cfg        config.PrinterConfig
	dispatcher Dispatcher
}

func NewCapabilityProvider(cfg config.PrinterConfig, d Dispatcher) *CapabilityProvider {
	return &CapabilityProvider{cfg: cfg, dispatcher: d}
}

func (p *CapabilityProvider) Capabilities(ctx context.Context) model.PrinterCapabilities {
	available, err := p.dispatcher.Available(ctx)
	if err != nil {
		available = false
	}

	return model.PrinterCapabilities{
		Name:         p.cfg.Name,
		Available:    available,
		SupportedDPI: p.cfg.SupportedDPI,
		DefaultSizes: p.cfg.DefaultSizes,
		MinSize:      model.LabelSize{WidthMM: p.cfg.MinMM, HeightMM: p.cfg.MinMM},
		MaxSize:      model.LabelSize{WidthMM: p.cfg.MaxMM, HeightMM: p.cfg.MaxMM},
	}
}
