package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"

	"github.com/overmindtech/cache-discovery/logging"
	"github.com/overmindtech/cache-discovery/sources/azure/proc"
	"github.com/overmindtech/cache-discovery/tracing"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "cache-discovery",
	Short:        "Find Azure Redis caches and resolve how to connect to them",
	SilenceUsage: true,
	Long: `cache-discovery lists every Azure Cache for Redis and Azure Managed Redis
resource the signed-in user can see across all subscriptions, and resolves the
endpoint and credentials needed to connect to one of them.
`,
	Version: tracing.Version(),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	var logLevel string

	// General config options
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Set the log level. Valid values: panic, fatal, error, warn, info, debug, trace")

	// Azure
	rootCmd.PersistentFlags().String("azure-tenant-id", "", "Azure Tenant ID (Entra ID tenant) to sign in to")
	rootCmd.PersistentFlags().String("access-token", "", "A Resource Manager access token to use instead of DefaultAzureCredential, e.g. from 'az account get-access-token'")
	rootCmd.PersistentFlags().String("arm-endpoint", "https://management.azure.com", "The Azure Resource Manager endpoint")
	rootCmd.PersistentFlags().Duration("request-timeout", proc.DefaultRequestTimeout, "Timeout for each management API request")
	rootCmd.PersistentFlags().String("partial-failures", "drop", "How failures inside one subscription or cluster are reported. Valid values: drop, report")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format. Valid values: table, json")

	// tracing
	rootCmd.PersistentFlags().String("honeycomb-api-key", "", "If specified, configures opentelemetry libraries to submit traces to honeycomb")
	rootCmd.PersistentFlags().String("sentry-dsn", "", "If specified, configures sentry libraries to capture errors")
	rootCmd.PersistentFlags().String("run-mode", "release", "Set the run mode for this service, 'release', 'debug' or 'test'. Defaults to 'release'.")
	rootCmd.PersistentFlags().Bool("stdout-trace-dump", false, "Dump all otel traces to stdout for debugging")
	rootCmd.PersistentFlags().Bool("json-log", false, "Set to true to emit logs as JSON.")
	cobra.CheckErr(viper.BindEnv("json-log", "CACHE_DISCOVERY_JSON_LOG", "JSON_LOG"))
	cobra.CheckErr(viper.BindEnv("access-token", "CACHE_DISCOVERY_ACCESS_TOKEN", "AZURE_ACCESS_TOKEN"))

	// Bind these to viper
	cobra.CheckErr(viper.BindPFlags(rootCmd.PersistentFlags()))

	// Run this before we do anything to set up the loglevel
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if lvl, err := log.ParseLevel(logLevel); err == nil {
			log.SetLevel(lvl)
		} else {
			log.SetLevel(log.InfoLevel)
			log.WithFields(log.Fields{
				"error": err,
			}).Error("Could not parse log level")
		}

		// logs go to stderr so that stdout only carries command output
		log.SetOutput(os.Stderr)

		// Bind flags that haven't been set to the values from viper of we have them
		var bindErr error
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			// Bind the flag to viper only if it has a non-empty default
			if f.DefValue != "" || f.Changed {
				if err := viper.BindPFlag(f.Name, f); err != nil {
					bindErr = err
				}
			}
		})
		if bindErr != nil {
			log.WithError(bindErr).Error("could not bind flag to viper")
			return fmt.Errorf("could not bind flag to viper: %w", bindErr)
		}

		configureLogHooks(log.StandardLogger(), viper.GetBool("json-log"))

		err := tracing.Init(tracing.Config{
			Component:       "cache-discovery",
			HoneycombAPIKey: viper.GetString("honeycomb-api-key"),
			SentryDSN:       viper.GetString("sentry-dsn"),
			RunMode:         viper.GetString("run-mode"),
			StdoutDump:      viper.GetBool("stdout-trace-dump"),
		})
		if err != nil {
			log.WithError(err).Error("could not init tracer")
			return fmt.Errorf("could not init tracer: %w", err)
		}
		return nil
	}
	// shut down tracing at the end of the process
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		tracing.Shutdown(context.Background())
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	replacer := strings.NewReplacer("-", "_")

	viper.SetEnvKeyReplacer(replacer)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if cfgFile != "" {
		if err := viper.ReadInConfig(); err == nil {
			log.Infof("Using config file: %v", viper.ConfigFileUsed())
		} else {
			log.WithError(err).Warn("Could not read config file")
		}
	}
}

// configureLogHooks installs redaction before the otel hook. Hooks fire in
// the order they were added, so span events only ever see redacted fields.
func configureLogHooks(logger *log.Logger, jsonLog bool) {
	if jsonLog {
		logging.ConfigureLogrusJSON(logger)
	} else {
		logger.AddHook(logging.RedactHook{})
	}
	logger.AddHook(otellogrus.NewHook(otellogrus.WithLevels(
		log.AllLevels[:logger.GetLevel()+1]...,
	)))
}
