package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/packer/pkg/packer"
)

const modulePath = "github.com/mesh-intelligence/packer"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the packer version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "packer v%s\nmodule: %s\n", packer.Version, modulePath)
			return nil
		},
	}
}
