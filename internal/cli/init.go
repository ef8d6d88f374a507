package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/packer/internal/paths"
	"github.com/mesh-intelligence/packer/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration directory and a default config.yaml",
		Args:  cobra.NoArgs,
		RunE:  a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	path := filepath.Join(configDir, configFileExt)
	created, err := writeConfigIfMissing(path, types.DefaultConfig())
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	a.log.Info("config initialized", zap.String("path", path), zap.Bool("created", created))

	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", path)
	}
	return nil
}

// writeConfigIfMissing writes cfg to path as YAML unless the file exists.
// Reports whether the file was created.
func writeConfigIfMissing(path string, cfg types.Config) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
