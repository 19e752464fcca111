package cli

import (
	"fmt"

	"github.com/energyprofiles/reffix/internal/mapping"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the built-in mapping table",
	Long: `Validate the built-in mapping table against its schema and warn about pairs
whose result depends on the order they are applied in.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		result, err := mapping.Validate(mapping.DefaultDocument())
		if err != nil {
			return fmt.Errorf("validating mapping table: %w", err)
		}
		if !result.Valid {
			fmt.Fprintf(out, "Mapping table is invalid (%d issues):\n", len(result.Issues))
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "  %s: %s\n", issue.Path, issue.Message)
			}
			return fmt.Errorf("mapping table failed validation")
		}

		table, err := mapping.Default()
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Mapping table OK: %d pairs (format %s)\n", table.Len(), table.Format())

		overlaps := table.Overlaps()
		for _, o := range overlaps {
			switch o.Kind {
			case mapping.OverlapSubstring:
				fmt.Fprintf(out, "  warning: %q is contained in %q; results depend on pair order\n", o.First.Old, o.Second.Old)
			case mapping.OverlapChain:
				fmt.Fprintf(out, "  warning: %q → %q is rewritten again by %q → %q\n", o.First.Old, o.First.New, o.Second.Old, o.Second.New)
			}
		}
		return nil
	},
}
