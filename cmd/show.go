package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/metaexport/store"
)

var showCmd = &cobra.Command{
	Use:   "show <pid>",
	Short: "Print the stored legacy record for a PID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(storePath())
		if err != nil {
			return err
		}
		defer s.Close()

		raw, err := s.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&dbPath, "db", "", "Store database path (default: from config)")
}
