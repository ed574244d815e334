package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/overmindtech/cache-discovery/sources/azure/dataplane"
	azureshared "github.com/overmindtech/cache-discovery/sources/azure/shared"
	"github.com/overmindtech/cache-discovery/tracing"
)

// ErrConnectionDetails is what users see when resolution fails
var ErrConnectionDetails = errors.New("could not get connection details")

var connectCmd = &cobra.Command{
	Use:   "connect <resource-id>",
	Short: "Resolve the endpoint and credentials for one cache",
	Long: `Resolve the endpoint and credentials for one cache.

Azure Managed Redis clusters need a database, selected with --database.
Secrets are masked unless --show-secrets is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		defer tracing.RecoverToError(ctx, "cache-discovery.connect", &err)

		format := viper.GetString("output")
		if err := validateOutput(format); err != nil {
			return err
		}

		databaseName, _ := cmd.Flags().GetString("database")
		showSecrets, _ := cmd.Flags().GetBool("show-secrets")
		ping, _ := cmd.Flags().GetBool("ping")

		env, err := setup(ctx)
		if err != nil {
			return err
		}

		result, err := discoverFor(ctx, env)
		if err != nil {
			log.WithContext(ctx).WithError(err).Error("Discovery failed")
			return err
		}

		resource, ok := result.Find(args[0])
		if !ok {
			return fmt.Errorf("%w: no cache with ID %s", ErrConnectionDetails, args[0])
		}

		var database *azureshared.DatabaseRef
		if databaseName != "" {
			db, ok := resource.Database(databaseName)
			if !ok {
				return fmt.Errorf("%w: %s has no database %q", ErrConnectionDetails, resource.Name, databaseName)
			}
			database = &db
		}

		descriptor, err := env.source.Resolver.Resolve(ctx, resource, database, env.cred)
		if err != nil {
			var resErr *azureshared.ResolutionError
			if errors.As(err, &resErr) && resErr.Reason == azureshared.KeyRetrievalFailed {
				sentry.CaptureException(err)
			}
			log.WithContext(ctx).WithError(err).WithField("ovm.azure.resourceId", resource.ID).Error("Resolution failed")
			return fmt.Errorf("%w: %w", ErrConnectionDetails, err)
		}

		if err := writeDescriptor(os.Stdout, format, descriptor, showSecrets); err != nil {
			return err
		}

		if ping {
			if err := dataplane.Ping(ctx, descriptor); err != nil {
				return err
			}
			log.WithField("ovm.connect.address", descriptor.Address()).Info("PING succeeded")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)

	connectCmd.Flags().String("database", "", "Database of an Azure Managed Redis cluster")
	connectCmd.Flags().Bool("show-secrets", false, "Print access keys and tokens in clear")
	connectCmd.Flags().Bool("ping", false, "Connect with the resolved details and send a PING")
}
