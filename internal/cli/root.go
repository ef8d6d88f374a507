// Package cli implements the packer command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/packer/internal/logging"
	"github.com/mesh-intelligence/packer/internal/paths"
	"github.com/mesh-intelligence/packer/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by the commands of one root command.
type app struct {
	flags    rootFlags
	cfg      types.Config
	log      *zap.Logger
	registry *types.Registry
}

// NewRootCmd creates the top-level "packer" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{
		cfg:      types.DefaultConfig(),
		log:      zap.NewNop(),
		registry: types.DefaultRegistry(),
	}

	root := &cobra.Command{
		Use:   "packer",
		Short: "Export and inspect packable product documents",
		Long: `Packer describes products as rectangular items and exports them as
XML instance documents tagged with their entity kind.`,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/packer)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newKindsCmd(a))
	root.AddCommand(newProductCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}

// setup loads config.yaml and builds the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	cfg, err := decodeConfig(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logging.NewWithWriter(cfg, cmd.ErrOrStderr()).With(zap.String("command", cmd.Name()))
	a.log.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("config_file", v.ConfigFileUsed()),
		zap.Int("indent", cfg.Indent),
	)
	return nil
}
