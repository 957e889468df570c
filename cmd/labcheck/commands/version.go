package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	ver "github.com/hol-platform/labcheck/internal/version"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show the labcheck version",
	Long:    `Show the labcheck version.`,
	Example: `  labcheck version`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runVersion(); err != nil {
			return fmt.Errorf("version operation failed: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion() error {
	version := strings.TrimSpace(ver.Get())
	if version == "" {
		version = "dev"
	}
	fmt.Printf("%s\n", version)
	return nil
}
