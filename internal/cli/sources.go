package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docstream-labs/docstream/pkg/source"
)

// NewSourcesCommand creates the sources command.
func NewSourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the available row source types",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range source.List() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
