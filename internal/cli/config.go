package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/packer/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "PACKER"

	cfgKeyIndent   = "indent"
	cfgKeyLogLevel = "log_level"
	cfgKeyLogMode  = "log_mode"
	cfgKeyLogFile  = "log_file"
)

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults apply. PACKER_* environment variables
// and the --log-level flag override file values.
func loadConfig(configDir string, flags *pflag.FlagSet) (*viper.Viper, error) {
	def := types.DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeyIndent, def.Indent)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeyLogMode, def.LogMode)
	v.SetDefault(cfgKeyLogFile, def.LogFile)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if f := flags.Lookup("log-level"); f != nil {
			if err := v.BindPFlag(cfgKeyLogLevel, f); err != nil {
				return nil, fmt.Errorf("bind log-level flag: %w", err)
			}
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// decodeConfig unmarshals v into a Config and validates it.
func decodeConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
