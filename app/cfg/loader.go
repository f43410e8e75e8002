package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Canvas LMS configuration
	CanvasURL    string `long:"canvas-url" env:"CANVAS_API_BASE_URL" default:"https://lms.keio.jp/api/v1/" description:"Canvas LMS API base URL"`
	CanvasToken  string `long:"canvas-token" env:"CANVAS_ACCESS_TOKEN" description:"Default Canvas access token (callers may supply their own per request)"`
	LookbackDays int    `long:"lookback-days" env:"LOOKBACK_DAYS" default:"365" description:"How far back to fetch announcements, in days"`
	PerCourse    int    `long:"per-course" env:"MAX_ANNOUNCEMENTS_PER_COURSE" default:"10" description:"Maximum announcements fetched per course"`

	// OpenAI configuration
	OpenAIAPIKey string  `long:"openai-api-key" env:"OPENAI_API_KEY" required:"true" description:"OpenAI API key (required)"`
	OpenAIModel  string  `long:"openai-model" env:"OPENAI_MODEL" default:"gpt-4o" description:"OpenAI model used for cancellation analysis"`
	Temperature  float64 `long:"openai-temperature" env:"OPENAI_TEMPERATURE" default:"0.1" description:"Sampling temperature for the analysis model"`
	MaxTokens    int64   `long:"openai-max-tokens" env:"OPENAI_MAX_TOKENS" default:"500" description:"Maximum completion tokens for the analysis model"`

	// Application configuration
	DataDir         string `long:"data-dir" env:"DATA_DIR" default:"./data" description:"Directory holding the announcement cache"`
	ResultsDir      string `long:"results-dir" env:"RESULTS_DIR" default:"./results" description:"Directory holding run result snapshots"`
	CoursesFile     string `long:"courses-file" env:"COURSES_FILE" description:"Optional YAML file with course include/exclude rules"`
	Port            string `long:"port" env:"PORT" default:"8000" description:"HTTP server port"`
	RefreshInterval int    `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"0" description:"Background refresh interval in seconds (0 disables scheduled runs)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Kyukou Watch/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Tokyo)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		CanvasURL:       raw.CanvasURL,
		CanvasToken:     raw.CanvasToken,
		LookbackDays:    raw.LookbackDays,
		PerCourse:       raw.PerCourse,
		OpenAIAPIKey:    raw.OpenAIAPIKey,
		OpenAIModel:     raw.OpenAIModel,
		Temperature:     raw.Temperature,
		MaxTokens:       raw.MaxTokens,
		DataDir:         raw.DataDir,
		ResultsDir:      raw.ResultsDir,
		CoursesFile:     raw.CoursesFile,
		Port:            raw.Port,
		RefreshInterval: raw.RefreshInterval,
		UserAgent:       raw.UserAgent,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
