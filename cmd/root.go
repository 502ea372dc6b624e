// Package cmd provides the root command and CLI setup for mapdispel.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"mapdispel.dev/pkg/mapdispel/internal/adapter"
	"mapdispel.dev/pkg/mapdispel/internal/controller"
	"mapdispel.dev/pkg/mapdispel/internal/domain"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

var fsAdapter adapter.MapFSAdapter
var trustClient adapter.TrustClient
var engine domain.Engine
var workflow domain.Workflow
var ui controller.UI

// endpointFlag overrides the trust server URL.
var endpointFlag string

// timeoutFlag bounds a verification request, in seconds.
var timeoutFlag int64

// extensionsFlag lists the file extensions treated as maps.
var extensionsFlag []string

var hashFlag string
var formatFlag string
var verboseFlag bool
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalMapFSAdapter()
}

const dirArgHelp = `DIR is the folder holding the maps (default: current directory).
Only files directly inside DIR are considered.`

const rootLongDescription = `MapDispel checks a folder of Warcraft III maps against a trust database
of official maps. Every map is hashed locally and only the checksums are
sent to the server, which answers with official, unknown or cheat per map.
Maps flagged as cheats can then be deleted.

` + dirArgHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "mapdispel",
		Short:        "Warcraft III map verification tool",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
			slog.Debug("command started", "command", cmd.CommandPath())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&endpointFlag, endpointFlagName, "e",
			viper.GetString(endpointConfigKey),
			"trust server URL the checksums are posted to",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(endpointFlagName), endpointConfigKey)

	cmd.PersistentFlags().Int64Var(&timeoutFlag, timeoutFlagName, viper.GetInt64(timeoutConfigKey), "verification request timeout in seconds (0 = no timeout)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(timeoutFlagName), timeoutConfigKey)

	cmd.PersistentFlags().StringSliceVar(&extensionsFlag, extensionFlagName, viper.GetStringSlice(extensionsConfigKey), "map file extensions to scan for (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(extensionFlagName), extensionsConfigKey)

	cmd.PersistentFlags().StringVar(&hashFlag, hashFlagName, viper.GetString(hashConfigKey), "digest algorithm: md5, sha1 or sha256")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(hashFlagName), hashConfigKey)

	cmd.PersistentFlags().StringVarP(&formatFlag, formatFlagName, "f", viper.GetString(formatConfigKey), "output format: table, json or yaml")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(formatFlagName), formatConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "path of the rotating log file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// currentWorkflow returns the injected workflow, or builds one for cmd from
// the resolved configuration.
func currentWorkflow(cmd *cobra.Command) (domain.Workflow, error) {
	if workflow != nil {
		return workflow, nil
	}

	format, err := controller.ParseOutputFormat(viper.GetString(formatConfigKey))
	if err != nil {
		return nil, err
	}

	algorithm, err := domain.LookupHashAlgorithm(viper.GetString(hashConfigKey))
	if err != nil {
		return nil, err
	}

	trustClient = adapter.NewHTTPTrustClient(viper.GetString(endpointConfigKey), verifyTimeout())
	engine = domain.NewEngine(fsAdapter, trustClient, domain.EngineConfig{
		Extensions:    viper.GetStringSlice(extensionsConfigKey),
		HashAlgorithm: algorithm,
	})
	ui = controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()), format)

	slog.Debug("workflow configured",
		"endpoint", viper.GetString(endpointConfigKey),
		"hash", algorithm.Name,
		"format", format,
	)

	return domain.NewWorkflowPipeline(engine, ui), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func parseDir(args []string) m.Path {
	if len(args) == 0 || args[0] == "" {
		return m.Path(".")
	}

	return m.Path(args[0])
}
