package cmd

import (
	"github.com/spf13/cobra"

	"buildsync.dev/pkg/buildsync/internal/domain"
)

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [dir]",
		Short: "List annotated files per builder section",
		Long:  scanLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Scan(domain.ScanArgs{
				WorkDir: parseWorkDir(args),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
