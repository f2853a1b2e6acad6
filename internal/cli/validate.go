package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VyankateshD206/aiobs/pkg/export"
)

var validateCmd = &cobra.Command{
	Use:   "validate <artifact>...",
	Short: "Validate export artifacts against the schema",
	Long:  `Check one or more export artifacts against the export JSON schema that downstream consumers depend on.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failures := 0

	for _, path := range args {
		if err := export.ValidateFile(path); err != nil {
			failures++
			fmt.Fprintf(out, "INVALID  %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "OK       %s\n", path)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d artifacts failed validation", failures, len(args))
	}
	return nil
}
