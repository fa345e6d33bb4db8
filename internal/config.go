package internal

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	LogLevel                  string        `env:"LOG_LEVEL,default=INFO"`
	BadgerFilepath            string        `env:"BADGER_FILEPATH,required=true" validate:"required"`
	InboxDir                  string        `env:"INBOX_DIR,required=true" validate:"required"`
	NumberOfWorkers           int           `env:"NUMBER_OF_WORKERS,default=2" validate:"min=1,max=64"`
	BufferSize                int           `env:"BUFFER_SIZE,default=16" validate:"min=1"`
	ScanInterval              time.Duration `env:"SCAN_INTERVAL,default=5s" validate:"gt=0"`
	PollInterval              time.Duration `env:"POLL_INTERVAL,default=1s" validate:"gt=0"`
	RequiredModTimeAge        time.Duration `env:"REQUIRED_MOD_TIME_AGE,default=10s" validate:"gte=0"`
	ProbeTimeout              time.Duration `env:"PROBE_TIMEOUT,default=10s" validate:"gte=0"`
	FfprobePath               string        `env:"FFPROBE_PATH,default=ffprobe"`
	Timezone                  string        `env:"TIMEZONE,default=UTC"`
	ParseMode                 string        `env:"PARSE_MODE,default=HTML" validate:"oneof=HTML TEXT"`
	MaxCaptionLength          int           `env:"MAX_CAPTION_LENGTH,default=1024" validate:"min=0"`
	FallbackToDefaultTemplate bool          `env:"FALLBACK_TO_DEFAULT_TEMPLATE,default=false"`
	RestartInterval           time.Duration `env:"RESTART_INTERVAL,default=1s" validate:"gt=0"`
	MetricInterval            time.Duration `env:"METRIC_INTERVAL,default=1m" validate:"gte=0"`
	DebugPort                 int           `env:"DEBUG_PORT,default=8081" validate:"min=0,max=65535"`
}

// Validate checks the ranges go-env cannot express.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves TIMEZONE, used for the greeting and timestamp variables.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q is not a known time zone: %w", c.Timezone, err)
	}
	return loc, nil
}
