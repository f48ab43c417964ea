package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/metaexport/export"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List available export formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Available formats:")
		for _, f := range export.New(nil).Formats() {
			fmt.Fprintf(out, "  %-12s %s (%s)\n", f.Name(), f.Description(), f.ContentType())
		}
		return nil
	},
}
