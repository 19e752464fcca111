package cli

import (
	"encoding/json"
	"fmt"

	"github.com/energyprofiles/reffix/internal/mapping"
	"github.com/spf13/cobra"
)

var mappingJSON bool

func init() {
	mappingCmd.Flags().BoolVar(&mappingJSON, "json", false, "Print pairs as JSON")
	rootCmd.AddCommand(mappingCmd)
}

var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "List the filename renames in the order they are applied",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := mapping.Default()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if mappingJSON {
			data, err := json.MarshalIndent(table.Pairs(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling mapping table: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		for i, p := range table.Pairs() {
			fmt.Fprintf(out, "%2d. %s → %s\n", i+1, p.Old, p.New)
		}
		return nil
	},
}
