package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type BaseEnv struct {
	Env      string `envconfig:"ENV" default:"local"`
	HTTPHost string `envconfig:"HTTP_HOST" default:""`
	HTTPPort string `envconfig:"HTTP_PORT" default:"3100"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"debug"`
	TimeZone string `envconfig:"TIME_ZONE" default:"Asia/Ho_Chi_Minh"`
}

type StorageEnv struct {
	Type    string `envconfig:"STORAGE_TYPE" default:"local"`
	BaseDir string `envconfig:"STORAGE_BASE_DIR" default:".techconsole/data"`
	// S3 settings (used when Type == "s3")
	S3Bucket string `envconfig:"S3_BUCKET"`
	S3Prefix string `envconfig:"S3_PREFIX" default:"techconsole/"`
	S3Region string `envconfig:"S3_REGION" default:"ap-southeast-1"`
}

// UpstreamEnv points at the rental back office. When BaseURL is empty tasks
// are served from local storage instead.
type UpstreamEnv struct {
	BaseURL string        `envconfig:"UPSTREAM_BASE_URL"`
	Token   string        `envconfig:"UPSTREAM_TOKEN"`
	Timeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"15s"`
}

type ReportEnv struct {
	FontPath         string        `envconfig:"REPORT_FONT_PATH"`
	FontSize         float64       `envconfig:"REPORT_FONT_SIZE" default:"13"`
	PageWidthPx      int           `envconfig:"REPORT_PAGE_WIDTH_PX" default:"1240"`
	ImageConcurrency int           `envconfig:"REPORT_IMAGE_CONCURRENCY" default:"4"`
	ImageTimeout     time.Duration `envconfig:"REPORT_IMAGE_TIMEOUT" default:"10s"`
	Archive          bool          `envconfig:"REPORT_ARCHIVE" default:"true"`
}

type QuotaEnv struct {
	RulesFile string `envconfig:"QUOTA_RULES_FILE" default:".techconsole/quota_rules.yaml"`
	Watch     bool   `envconfig:"QUOTA_WATCH" default:"true"`
}

type DigestEnv struct {
	Schedule string `envconfig:"DIGEST_SCHEDULE" default:"0 18 * * *"`
	Enabled  bool   `envconfig:"DIGEST_ENABLED" default:"false"`
}

type VAPIDEnv struct {
	VAPIDPublicKey  string `envconfig:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `envconfig:"VAPID_PRIVATE_KEY"`
	VAPIDContact    string `envconfig:"VAPID_CONTACT" default:"mailto:ops@example.com"`
}

type Env struct {
	BaseEnv
	StorageEnv
	UpstreamEnv
	ReportEnv
	QuotaEnv
	DigestEnv
	VAPIDEnv
}

const namespace = "TECHCONSOLE"

// LoadEnv reads the process environment, after merging a .env file from the
// working directory when one exists. Variables already set win over .env.
func LoadEnv() (*Env, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	return &env, nil
}

func (e *BaseEnv) SlogLevel() slog.Level {
	if e == nil {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return slog.LevelDebug
	}
	return level
}

// Location resolves TimeZone, falling back to the local zone.
func (e *BaseEnv) Location() *time.Location {
	if e == nil || e.TimeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(e.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

func BaseEnvFromEnv(env *Env) *BaseEnv {
	return &env.BaseEnv
}

func StorageEnvFromEnv(env *Env) *StorageEnv {
	return &env.StorageEnv
}

func UpstreamEnvFromEnv(env *Env) *UpstreamEnv {
	return &env.UpstreamEnv
}

func ReportEnvFromEnv(env *Env) *ReportEnv {
	return &env.ReportEnv
}

func VAPIDEnvFromEnv(env *Env) *VAPIDEnv {
	return &env.VAPIDEnv
}
