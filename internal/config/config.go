package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Weights tune the fallback opponent. None of them affect rule correctness.
type Weights struct {
	WWin int `yaml:"w_win" json:"w_win"`

	// Connect-4
	WBlock   int `yaml:"w_block" json:"w_block"`
	WGift    int `yaml:"w_gift" json:"w_gift"`
	WBuild   int `yaml:"w_build" json:"w_build"`
	WOppLine int `yaml:"w_opp_line" json:"w_opp_line"`
	WCenter  int `yaml:"w_center" json:"w_center"`
	WCorner  int `yaml:"w_corner" json:"w_corner"`

	// Checkers
	WCapture int `yaml:"w_capture" json:"w_capture"`
	WChain   int `yaml:"w_chain" json:"w_chain"`
	WExposed int `yaml:"w_exposed" json:"w_exposed"`
	WPromote int `yaml:"w_promote" json:"w_promote"`
	WKingRow int `yaml:"w_king_row" json:"w_king_row"`
	WAdvance int `yaml:"w_advance" json:"w_advance"`
}

type Config struct {
	HTTPAddr       string   `yaml:"http_addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RedisURL       string   `yaml:"redis_url"`

	// BotDelay is the bot's thinking pause before each move.
	BotDelay time.Duration `yaml:"bot_delay"`
	// BotFallbackAfter seats the bot once a lone human has waited this long. Zero disables it.
	BotFallbackAfter time.Duration `yaml:"bot_fallback_after"`
	BotNames         []string      `yaml:"bot_names"`

	Weights Weights `yaml:"weights"`
}

func DefaultWeights() Weights {
	return Weights{
		WWin:     10000,
		WBlock:   5000,
		WGift:    4000,
		WBuild:   60,
		WOppLine: 40,
		WCenter:  8,
		WCorner:  20,
		WCapture: 300,
		WChain:   500,
		WExposed: 250,
		WPromote: 200,
		WKingRow: 150,
		WAdvance: 10,
	}
}

func Default() Config {
	return Config{
		HTTPAddr:       ":8000",
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost"},
		BotDelay:       time.Second,
		BotNames:       []string{"Dummy Plug", "Unit-01", "Unit-02"},
		Weights:        DefaultWeights(),
	}
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getenvList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Load builds the config from defaults, the YAML file named by CONFIG_FILE
// and finally environment overrides.
func Load() (Config, error) {
	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := Parse(raw, &cfg); err != nil {
			return cfg, err
		}
	}

	if v := strings.TrimSpace(os.Getenv("HTTP_ADDR")); v != "" {
		cfg.HTTPAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" {
		cfg.RedisURL = v
	}
	cfg.AllowedOrigins = getenvList("ALLOWED_ORIGINS", cfg.AllowedOrigins)
	cfg.BotNames = getenvList("BOT_NAMES", cfg.BotNames)
	cfg.BotDelay = getenvDuration("BOT_DELAY", cfg.BotDelay)
	cfg.BotFallbackAfter = getenvDuration("BOT_FALLBACK_AFTER", cfg.BotFallbackAfter)

	w := &cfg.Weights
	w.WWin = getenvInt("W_WIN", w.WWin)
	w.WBlock = getenvInt("W_BLOCK", w.WBlock)
	w.WGift = getenvInt("W_GIFT", w.WGift)
	w.WBuild = getenvInt("W_BUILD", w.WBuild)
	w.WOppLine = getenvInt("W_OPP_LINE", w.WOppLine)
	w.WCenter = getenvInt("W_CENTER", w.WCenter)
	w.WCorner = getenvInt("W_CORNER", w.WCorner)
	w.WCapture = getenvInt("W_CAPTURE", w.WCapture)
	w.WChain = getenvInt("W_CHAIN", w.WChain)
	w.WExposed = getenvInt("W_EXPOSED", w.WExposed)
	w.WPromote = getenvInt("W_PROMOTE", w.WPromote)
	w.WKingRow = getenvInt("W_KING_ROW", w.WKingRow)
	w.WAdvance = getenvInt("W_ADVANCE", w.WAdvance)
	return cfg, nil
}

// Parse overlays YAML onto cfg. Keys missing from raw keep their current value.
func Parse(raw []byte, cfg *Config) error {
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
