package printer

import (
	"context"
	"errors"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labelforge/api/internal/config"
	"github.com/labelforge/api/internal/model"
)

// Dispatcher hands a rendered artifact to the host print subsystem.
type Dispatcher interface {
	// Submit sends the artifact to the printer with an explicit physical
	// media size. At-most-once: no internal retries, every call is a new
	// physical print.
	Submit(ctx context.Context, artifactPath string, size model.LabelSize) (*model.JobReceipt, error)

	// Available reports whether the printer is known and ready.
	Available(ctx context.Context) (bool, error)
}

type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// CUPSDispatcher submits jobs through lp/lpstat. Submission to the single
// configured printer is serialized with a mutex so concurrent requests
// cannot interleave the readiness probe and the job handoff.
type CUPSDispatcher struct {
	name    string
	timeout time.Duration

	mu  sync.Mutex
	run runner
}

func NewCUPSDispatcher(cfg config.PrinterConfig) *CUPSDispatcher {
	return &CUPSDispatcher{
		name:    cfg.Name,
		timeout: time.Duration(cfg.DispatchTimeoutSec) * time.Second,
		run:     execRunner,
	}
}

var receiptIDPattern = regexp.MustCompile(`request id is (\S+)`)

func (d *CUPSDispatcher) Submit(ctx context.Context, artifactPath string, size model.LabelSize) (*model.JobReceipt, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ready, err := d.probe(ctx)
	if err != nil {
		return nil, err
	}
	if !ready {
		return nil, model.NewError(model.ErrPrinterUnavailable,
			"printer %q is not ready", d.name)
	}

	sctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	// The driver maps millimeter media dimensions onto the loaded stock.
	// Omitting media= leaves scaling to driver defaults, which is wrong for
	// anything but the stock the queue was configured with.
	media := MediaSize(size)
	out, err := d.run(sctx, "lp", "-d", d.name, "-o", "media="+media, artifactPath)
	if err != nil {
		if errors.Is(sctx.Err(), context.DeadlineExceeded) {
			return nil, model.NewError(model.ErrDispatchTimeout,
				"print subsystem did not accept the job within %s", d.timeout)
		}
		return nil, model.NewError(model.ErrSubmissionFailed,
			"lp rejected the job: %v: %s", err, strings.TrimSpace(string(out)))
	}

	receipt := &model.JobReceipt{Printer: d.name, Media: media}
	if m := receiptIDPattern.FindStringSubmatch(string(out)); m != nil {
		receipt.ID = m[1]
	}
	return receipt, nil
}

func (d *CUPSDispatcher) Available(ctx context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.probe(ctx)
}

// probe asks lpstat about the queue. An unknown printer and a disabled queue
// both count as unavailable; only transport-level oddities surface as errors.
func (d *CUPSDispatcher) probe(ctx context.Context) (bool, error) {
	out, err := d.run(ctx, "lpstat", "-p", d.name)
	if err != nil {
		return false, nil
	}
	s := strings.ToLower(string(out))
	if strings.Contains(s, "disabled") || strings.Contains(s, "not ready") {
		return false, nil
	}
	return true, nil
}

// MediaSize formats a physical label size as a CUPS custom media name,
// e.g. Custom.50x50mm. This is derived from the label millimeters, never
// from the pixel canvas.
func MediaSize(size model.LabelSize) string {
	return "Custom." + formatMM(size.WidthMM) + "x" + formatMM(size.HeightMM) + "mm"
}

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
