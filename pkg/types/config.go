package types

import "errors"

// Config holds the settings the packer CLI reads from config.yaml.
type Config struct {
	Indent   int    `mapstructure:"indent" yaml:"indent"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	LogMode  string `mapstructure:"log_mode" yaml:"log_mode"`
	LogFile  string `mapstructure:"log_file" yaml:"log_file,omitempty"`
}

// Log modes.
const (
	LogModeDevelopment = "development"
	LogModeProduction  = "production"
)

// Log levels.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Config defaults.
const (
	DefaultIndent   = 2
	DefaultLogLevel = LogLevelInfo
	DefaultLogMode  = LogModeDevelopment
)

// Config validation errors.
var (
	ErrIndentInvalid   = errors.New("indent must be -1 or non-negative")
	ErrLogLevelUnknown = errors.New("unknown log level")
	ErrLogModeUnknown  = errors.New("unknown log mode")
)

var knownLogLevels = map[string]bool{
	LogLevelDebug: true,
	LogLevelInfo:  true,
	LogLevelWarn:  true,
	LogLevelError: true,
}

var knownLogModes = map[string]bool{
	LogModeDevelopment: true,
	LogModeProduction:  true,
}

// DefaultConfig returns the configuration used when config.yaml is absent.
func DefaultConfig() Config {
	return Config{
		Indent:   DefaultIndent,
		LogLevel: DefaultLogLevel,
		LogMode:  DefaultLogMode,
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Indent < -1 {
		return ErrIndentInvalid
	}
	if !knownLogLevels[c.LogLevel] {
		return ErrLogLevelUnknown
	}
	if !knownLogModes[c.LogMode] {
		return ErrLogModeUnknown
	}
	return nil
}
