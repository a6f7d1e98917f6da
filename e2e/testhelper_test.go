package e2e

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/labelforge/api/internal/config"
	"github.com/labelforge/api/internal/handler"
	"github.com/labelforge/api/internal/middleware"
	"github.com/labelforge/api/internal/model"
	"github.com/labelforge/api/internal/printer"
	"github.com/labelforge/api/internal/render"
	"github.com/labelforge/api/internal/service"
)

// testApp holds all components needed for testing
type testApp struct {
	app        *fiber.App
	dispatcher *stubDispatcher
	store      *service.MemoryJobStore
}

// stubDispatcher stands in for the CUPS dispatcher so tests never reach a
// real print queue.
type stubDispatcher struct {
	available bool
	calls     int
	lastMedia string
}

func (d *stubDispatcher) Submit(_ context.Context, artifactPath string, size model.LabelSize) (*model.JobReceipt, error) {
	if !d.available {
		return nil, model.NewError(model.ErrPrinterUnavailable, "printer %q is not ready", "label-printer")
	}
	d.calls++
	d.lastMedia = printer.MediaSize(size)
	return &model.JobReceipt{ID: "label-printer-1", Printer: "label-printer", Media: d.lastMedia}, nil
}

func (d *stubDispatcher) Available(context.Context) (bool, error) {
	return d.available, nil
}

// setupApp assembles a Fiber app identical to main.go, with the CUPS
// dispatcher stubbed out and an in-memory job store.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	printerCfg := config.PrinterConfig{
		Name:         "label-printer",
		SupportedDPI: []int{300},
		MinMM:        20,
		MaxMM:        100,
		DefaultSizes: map[string]model.LabelSize{
			"small":    {WidthMM: 30, HeightMM: 20},
			"square":   {WidthMM: 50, HeightMM: 50},
			"shipping": {WidthMM: 100, HeightMM: 50},
		},
		DispatchTimeoutSec: 5,
	}
	layoutCfg := config.LayoutConfig{
		MarginPx:     8,
		TopOffsetPx:  16,
		MinFontPx:    6,
		MaxFontRatio: 0.5,
		FontStep:     2,
	}
	renderCfg := config.RenderConfig{ArtifactDir: t.TempDir()}

	fonts, err := render.LoadFont("")
	if err != nil {
		t.Fatalf("load embedded font: %v", err)
	}

	dispatcher := &stubDispatcher{available: true}
	capabilities := printer.NewCapabilityProvider(printerCfg, dispatcher)

	store := service.NewMemoryJobStore()
	printService := service.NewPrintService(
		render.NewResolver(printerCfg),
		render.NewLayoutEngine(fonts, layoutCfg),
		render.NewRenderer(fonts, renderCfg, layoutCfg),
		dispatcher,
		store,
	)

	validate := validator.New()
	printHandler := handler.NewPrintHandler(printService, validate)
	capabilitiesHandler := handler.NewCapabilitiesHandler(capabilities)
	jobsHandler := handler.NewJobsHandler(printService)

	// Redis (localhost, DB 15) — the limiter fails open when it is absent,
	// and the limit is high enough to never trip in tests.
	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	rateLimiter := middleware.NewRateLimiter(redisClient)

	app := fiber.New()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service":   "labelforge-api",
			"timestamp": time.Now().Unix(),
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(model.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now(),
			Service:   "labelforge-api",
		})
	})

	api := app.Group("/api/v1")
	api.Post("/print", rateLimiter.PrintLimit(10000), printHandler.Print)
	api.Get("/capabilities", capabilitiesHandler.Get)
	api.Get("/jobs/:jobId", jobsHandler.Get)

	return &testApp{app: app, dispatcher: dispatcher, store: store}
}

// doRequest is a helper to perform HTTP requests against the test app.
func doRequest(app *fiber.App, method, path string, body string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, bodyReader)
	if err != nil {
		return nil, err
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	return app.Test(req, -1)
}

// readBody reads and returns the response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(b)
}

// parseJSON parses response body into a map.
func parseJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := readBody(t, resp)
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, body)
	}
	return result
}

// assertStatus checks the HTTP status code.
func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

// singleStoredJob returns the id of the only job in the store.
func singleStoredJob(t *testing.T, ta *testApp) string {
	t.Helper()
	ids := ta.store.IDs()
	if len(ids) != 1 {
		t.Fatalf("expected exactly one stored job, got %d", len(ids))
	}
	return ids[0]
}

// errorCode extracts error.code from an error envelope.
func errorCode(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got %v", body)
	}
	code, _ := errObj["code"].(string)
	return code
}
