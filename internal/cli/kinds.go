package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newKindsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the entity kinds packer can decode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := a.registry.Kinds()
			if a.flags.jsonMode {
				out, err := json.Marshal(kinds)
				if err != nil {
					return fmt.Errorf("marshal kinds: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}
			for _, k := range kinds {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}
