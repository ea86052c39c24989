package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"analyzer-backend/internal/analysis"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available analysis models",
	Run: func(cmd *cobra.Command, args []string) {
		for _, m := range analysis.AvailableModels {
			fmt.Fprintf(os.Stdout, "%-16s %s: %s\n", m.ID, m.Name, m.Description)
		}
	},
}
