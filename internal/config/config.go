package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/labelforge/api/internal/model"
)

// readSecret reads a Docker secret from a file path specified by an env var
// with _FILE suffix. If FOO is already set directly, the file is skipped.
func readSecret(envKey string) {
	if os.Getenv(envKey) != "" {
		return
	}
	filePath := os.Getenv(envKey + "_FILE")
	if filePath == "" {
		return
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return
	}
	os.Setenv(envKey, strings.TrimSpace(string(data)))
}

type Config struct {
	Server    ServerConfig
	Printer   PrinterConfig
	Layout    LayoutConfig
	Render    RenderConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

// PrinterConfig describes the single physical output device of a deployment.
type PrinterConfig struct {
	Name               string
	SupportedDPI       []int
	MinMM              float64
	MaxMM              float64
	DefaultSizes       map[string]model.LabelSize
	DispatchTimeoutSec int
}

// LayoutConfig holds the empirical layout constants. The defaults were tuned
// against one reference printer model; override them per deployment.
type LayoutConfig struct {
	MarginPx     int
	TopOffsetPx  int
	MinFontPx    int
	MaxFontRatio float64
	FontStep     int
}

type RenderConfig struct {
	ArtifactDir string
	FontPath    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	PrintPerMin int
}

func Load() (*Config, error) {
	readSecret("REDIS_PASSWORD")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	_ = viper.BindEnv("server.port", "SERVER_PORT")
	_ = viper.BindEnv("server.env", "SERVER_ENV")
	_ = viper.BindEnv("server.log_level", "LOG_LEVEL")
	_ = viper.BindEnv("printer.name", "PRINTER_NAME")
	_ = viper.BindEnv("printer.supported_dpi", "PRINTER_SUPPORTED_DPI")
	_ = viper.BindEnv("printer.min_mm", "PRINTER_MIN_MM")
	_ = viper.BindEnv("printer.max_mm", "PRINTER_MAX_MM")
	_ = viper.BindEnv("printer.dispatch_timeout_sec", "PRINTER_DISPATCH_TIMEOUT")
	_ = viper.BindEnv("layout.margin_px", "LAYOUT_MARGIN_PX")
	_ = viper.BindEnv("layout.top_offset_px", "LAYOUT_TOP_OFFSET_PX")
	_ = viper.BindEnv("layout.min_font_px", "LAYOUT_MIN_FONT_PX")
	_ = viper.BindEnv("layout.max_font_ratio", "LAYOUT_MAX_FONT_RATIO")
	_ = viper.BindEnv("layout.font_step", "LAYOUT_FONT_STEP")
	_ = viper.BindEnv("render.artifact_dir", "RENDER_ARTIFACT_DIR")
	_ = viper.BindEnv("render.font_path", "RENDER_FONT_PATH")
	_ = viper.BindEnv("redis.addr", "REDIS_ADDR")
	_ = viper.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = viper.BindEnv("redis.db", "REDIS_DB")
	_ = viper.BindEnv("ratelimit.print_per_min", "RATELIMIT_PRINT_PER_MIN")

	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("server.log_level", "info")

	viper.SetDefault("printer.name", "label-printer")
	viper.SetDefault("printer.supported_dpi", []int{300})
	viper.SetDefault("printer.min_mm", 20.0)
	viper.SetDefault("printer.max_mm", 100.0)
	viper.SetDefault("printer.dispatch_timeout_sec", 10)

	// Tuned on the reference hardware; a printable area that is not the full
	// label makes top-anchored text safer than vertical centering.
	viper.SetDefault("layout.margin_px", 8)
	viper.SetDefault("layout.top_offset_px", 16)
	viper.SetDefault("layout.min_font_px", 6)
	viper.SetDefault("layout.max_font_ratio", 0.5)
	viper.SetDefault("layout.font_step", 2)

	viper.SetDefault("render.artifact_dir", filepath.Join(os.TempDir(), "labelforge"))
	viper.SetDefault("render.font_path", "")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("ratelimit.print_per_min", 30)

	// Config file is optional; env vars and defaults cover everything.
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:     viper.GetString("server.port"),
			Env:      viper.GetString("server.env"),
			LogLevel: viper.GetString("server.log_level"),
		},
		Printer: PrinterConfig{
			Name:               viper.GetString("printer.name"),
			SupportedDPI:       viper.GetIntSlice("printer.supported_dpi"),
			MinMM:              viper.GetFloat64("printer.min_mm"),
			MaxMM:              viper.GetFloat64("printer.max_mm"),
			DefaultSizes:       defaultSizes(),
			DispatchTimeoutSec: viper.GetInt("printer.dispatch_timeout_sec"),
		},
		Layout: LayoutConfig{
			MarginPx:     viper.GetInt("layout.margin_px"),
			TopOffsetPx:  viper.GetInt("layout.top_offset_px"),
			MinFontPx:    viper.GetInt("layout.min_font_px"),
			MaxFontRatio: viper.GetFloat64("layout.max_font_ratio"),
			FontStep:     viper.GetInt("layout.font_step"),
		},
		Render: RenderConfig{
			ArtifactDir: viper.GetString("render.artifact_dir"),
			FontPath:    viper.GetString("render.font_path"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		RateLimit: RateLimitConfig{
			PrintPerMin: viper.GetInt("ratelimit.print_per_min"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Printer.Name == "" {
		return fmt.Errorf("printer.name must not be empty")
	}
	if c.Printer.MinMM <= 0 || c.Printer.MaxMM < c.Printer.MinMM {
		return fmt.Errorf("printer size bounds invalid: min=%v max=%v", c.Printer.MinMM, c.Printer.MaxMM)
	}
	if len(c.Printer.SupportedDPI) == 0 {
		return fmt.Errorf("printer.supported_dpi must list at least one density")
	}
	if c.Layout.MinFontPx < 1 {
		return fmt.Errorf("layout.min_font_px must be at least 1")
	}
	if c.Layout.FontStep < 1 {
		return fmt.Errorf("layout.font_step must be at least 1")
	}
	if c.Layout.MaxFontRatio <= 0 || c.Layout.MaxFontRatio > 1 {
		return fmt.Errorf("layout.max_font_ratio must be in (0, 1]")
	}
	return nil
}

// defaultSizes reads printer.default_sizes from the config file if present,
// falling back to the built-in named sizes.
func defaultSizes() map[string]model.LabelSize {
	sizes := map[string]model.LabelSize{
		"small":    {WidthMM: 30, HeightMM: 20},
		"square":   {WidthMM: 50, HeightMM: 50},
		"shipping": {WidthMM: 100, HeightMM: 50},
	}
	raw := viper.GetStringMap("printer.default_sizes")
	for name := range raw {
		key := "printer.default_sizes." + name
		w := viper.GetFloat64(key + ".width_mm")
		h := viper.GetFloat64(key + ".height_mm")
		if w > 0 && h > 0 {
			sizes[name] = model.LabelSize{WidthMM: w, HeightMM: h}
		}
	}
	return sizes
}
