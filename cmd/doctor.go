package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// doctorCmd represents the doctor command.
var doctorCmd = newDoctorCmd()

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the flutter executable is available",
		Long: `Resolve the flutter executable on PATH and print its location and version.
Exits non-zero with installation guidance when it cannot be found.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.Doctor(viper.GetString(flutterBinConfigKey))
		},
	}
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
