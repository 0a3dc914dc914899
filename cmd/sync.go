package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"buildsync.dev/pkg/buildsync/internal/domain"
)

var syncDryRunFlag bool
var syncNoBuildFlag bool

// syncCmd represents the sync command.
var syncCmd = newSyncCmd()

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [dir]",
		Short: "Rewrite build.yaml and run the build pipeline",
		Long:  syncLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Sync(domain.SyncArgs{
				WorkDir:    parseWorkDir(args),
				FlutterBin: viper.GetString(flutterBinConfigKey),
				DryRun:     syncDryRunFlag,
				NoBuild:    syncNoBuildFlag,
			})
		},
	}

	configureSyncFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func configureSyncFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&syncDryRunFlag, dryRunFlagName, "n", false, "print the proposed build.yaml diff without writing or building")
	cmd.Flags().BoolVar(&syncNoBuildFlag, noBuildFlagName, false, "rewrite build.yaml but skip the flutter pipeline")
}
