package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/itemcheck/internal/annotate"
	"github.com/dgallion1/itemcheck/internal/audit"
	"github.com/dgallion1/itemcheck/internal/report"
	"github.com/dgallion1/itemcheck/internal/rules"
	"github.com/dgallion1/itemcheck/internal/vocab"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Rules
	RulesFile   string
	StemWords   []string
	OptionWords []string
	Threshold   int

	// Spelling
	VocabPath      string
	DictionaryPath string
	Annotator      string

	// Worker pool
	AuditWorkers int
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL      time.Duration
	StatsWindow time.Duration

	ReportFormat string
	LogLevel     slog.Level

	thresholdSet bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("ITEMCHECK_API_KEY"),

		RulesFile:   os.Getenv("RULES_FILE"),
		StemWords:   envList("STEM_WORDS"),
		OptionWords: envList("OPTION_WORDS"),
		Threshold:   envInt("FLAG_THRESHOLD", 0),

		VocabPath:      os.Getenv("VOCAB_PATH"),
		DictionaryPath: os.Getenv("DICTIONARY_PATH"),
		Annotator:      envOr("ANNOTATOR", "rules"),

		AuditWorkers: envInt("AUDIT_WORKERS", 1),
		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 50),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20971520), // 20MB

		JobTTL:      envDuration("JOB_TTL", 1*time.Hour),
		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		ReportFormat: envOr("REPORT_FORMAT", string(report.FormatXLSX)),
		LogLevel:     envLevel("LOG_LEVEL", slog.LevelInfo),
	}
	_, cfg.thresholdSet = os.LookupEnv("FLAG_THRESHOLD")

	if cfg.Threshold < 0 {
		cfg.Threshold = 0
	}
	if cfg.AuditWorkers <= 0 {
		cfg.AuditWorkers = 1
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20971520
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

// Validate checks the settings shared by the CLI and the server.
func (c Config) Validate() error {
	if _, err := annotate.ForName(c.Annotator, nil); err != nil {
		return fmt.Errorf("ANNOTATOR: %w", err)
	}
	if _, err := report.ParseFormat(c.ReportFormat); err != nil {
		return fmt.Errorf("REPORT_FORMAT: %w", err)
	}
	return nil
}

// ValidateServer additionally checks what the HTTP service needs.
func (c Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.APIKey == "" {
		return fmt.Errorf("ITEMCHECK_API_KEY is required")
	}
	return nil
}

// SetThreshold overrides the flag threshold, e.g. from a command-line flag.
func (c *Config) SetThreshold(n int) {
	c.Threshold = max(n, 0)
	c.thresholdSet = true
}

// ApplyRules fills settings not given in the environment from a rules file.
func (c *Config) ApplyRules(r *RulesFile) {
	if r == nil {
		return
	}
	if c.StemWords == nil && r.StemWords != nil {
		c.StemWords = r.StemWords
	}
	if c.OptionWords == nil && r.OptionWords != nil {
		c.OptionWords = r.OptionWords
	}
	if c.VocabPath == "" {
		c.VocabPath = r.Vocabulary
	}
	if !c.thresholdSet && r.Threshold != nil {
		c.Threshold = max(*r.Threshold, 0)
	}
}

// Rules returns the effective denylists, defaults filling any left unset.
func (c Config) Rules() rules.Config {
	cfg := rules.DefaultConfig()
	if c.StemWords != nil {
		cfg.StemWords = c.StemWords
	}
	if c.OptionWords != nil {
		cfg.OptionWords = c.OptionWords
	}
	return cfg
}

// AuditOptions builds the annotator and loads the vocabulary files.
func (c Config) AuditOptions() (audit.Options, error) {
	lex := annotate.DefaultLexicon()
	if c.DictionaryPath != "" {
		if err := lex.LoadFile(c.DictionaryPath); err != nil {
			return audit.Options{}, err
		}
	}
	a, err := annotate.ForName(c.Annotator, lex)
	if err != nil {
		return audit.Options{}, err
	}

	opts := audit.Options{
		Rules:     c.Rules(),
		Annotator: a,
		Threshold: c.Threshold,
		Workers:   c.AuditWorkers,
	}
	if c.VocabPath != "" {
		list, err := vocab.Load(c.VocabPath)
		if err != nil {
			return audit.Options{}, err
		}
		opts.Extra = list
	}
	return opts, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envList parses a comma-separated list. An unset variable yields nil so
// the default list applies; a set but empty one yields an empty list.
func envList(key string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	list := rules.ParseList(v)
	if list == nil {
		list = []string{}
	}
	return list
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.TrimSpace(v))); err == nil {
			return l
		}
	}
	return fallback
}
