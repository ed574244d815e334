package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/overmindtech/cache-discovery/discovery"
	"github.com/overmindtech/cache-discovery/sources/azure/proc"
	azureshared "github.com/overmindtech/cache-discovery/sources/azure/shared"
	"github.com/overmindtech/cache-discovery/tracing"
)

// ErrLoadResources is what users see when discovery could not run at all
var ErrLoadResources = errors.New("could not load resources")

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List every Redis cache in every subscription you can access",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		defer tracing.RecoverToError(ctx, "cache-discovery.discover", &err)

		format := viper.GetString("output")
		if err := validateOutput(format); err != nil {
			return err
		}

		env, err := setup(ctx)
		if err != nil {
			return err
		}

		result := env.source.Orchestrator.Discover(ctx, env.cred)
		if result.Err != nil {
			sentry.CaptureException(result.Err)
			log.WithContext(ctx).WithError(result.Err).Error("Discovery failed")
			return fmt.Errorf("%w: %w", ErrLoadResources, result.Err)
		}

		return writeResult(os.Stdout, format, result, env.source.Orchestrator.Progress())
	},
}

// environment is what every subcommand needs before talking to Azure
type environment struct {
	cfg    *proc.AzureConfig
	source *proc.Source
	cred   *azureshared.DelegatedCredential
}

func setup(ctx context.Context) (*environment, error) {
	cfg, err := proc.ConfigFromViper()
	if err != nil {
		log.WithError(err).Error("Could not read config")
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	source, err := proc.Initialize(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not initialise discovery: %w", err)
	}

	cred, err := proc.Credential(ctx, cfg)
	if err != nil {
		log.WithContext(ctx).WithError(err).Error("Could not sign in to Azure")
		return nil, fmt.Errorf("%w: %w", ErrLoadResources, err)
	}

	return &environment{cfg: cfg, source: source, cred: cred}, nil
}

// discoverFor runs discovery for subcommands that only need one resource
func discoverFor(ctx context.Context, env *environment) (discovery.DiscoveryResult, error) {
	result := env.source.Orchestrator.Discover(ctx, env.cred)
	if result.Err != nil {
		return result, fmt.Errorf("%w: %w", ErrLoadResources, result.Err)
	}
	return result, nil
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}
