// Package cmd provides the root command and CLI setup for buildsync.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"buildsync.dev/pkg/buildsync/internal/adapter"
	"buildsync.dev/pkg/buildsync/internal/controller"
	"buildsync.dev/pkg/buildsync/internal/domain"
	m "buildsync.dev/pkg/buildsync/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var toolRunner adapter.ToolRunnerAdapter
var registry *domain.Registry
var scanner *domain.Scanner
var syncer *domain.Syncer
var workflow domain.Workflow
var ui controller.UI

// flutterBinFlag is a root-level flag shared by commands that invoke the SDK.
var flutterBinFlag string

// verboseFlag raises the log level to debug when set.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	toolRunner = adapter.NewLocalToolRunnerAdapter()
	registry = domain.NewRegistry()
	scanner = domain.NewScanner(fsAdapter)
	syncer = domain.NewSyncer(fsAdapter, scanner, registry)
	workflow = domain.NewWorkflow(
		fsAdapter,
		toolRunner,
		ui,
		registry,
		scanner,
		syncer,
	)
}

const workDirHelp = `The working directory defaults to the current directory and must contain a
build.yaml with a targets.$default.builders section.`

const rootLongDescription = `Buildsync keeps a Flutter project's build.yaml in step with its sources.
It scans .dart files for @CopyWith, @JsonSerializable and @HiveType
annotations, rewrites the matching generate_for lists, and runs the
build_runner pipeline.

` + workDirHelp

const syncLongDescription = `Rewrite build.yaml from a fresh annotation scan, then run flutter clean,
pub upgrade, pub get and build_runner sequentially, aborting on the first
failure.

` + workDirHelp

const scanLongDescription = `Scan for annotated .dart files and report which paths each builder section
would receive. Nothing is written and nothing is executed.

` + workDirHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buildsync",
		Short: "Sync build.yaml generator targets with annotated Dart sources",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&flutterBinFlag, flutterBinFlagName, "b",
			viper.GetString(flutterBinConfigKey),
			"name or path of the flutter executable",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(flutterBinFlagName), flutterBinConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// parseWorkDir returns the positional working directory argument, defaulting
// to the current directory.
func parseWorkDir(args []string) m.Path {
	if len(args) == 0 {
		return m.Path(".")
	}

	return m.Path(args[0])
}
