package proc

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/overmindtech/cache-discovery/discovery"
	"github.com/overmindtech/cache-discovery/sources/azure/clients"
	"github.com/overmindtech/cache-discovery/sources/azure/connect"
	"github.com/overmindtech/cache-discovery/sources/azure/manual"
	azureshared "github.com/overmindtech/cache-discovery/sources/azure/shared"
)

const DefaultRequestTimeout = 30 * time.Second

// AzureConfig holds configuration for cache discovery
type AzureConfig struct {
	TenantID string
	// AccessToken is a management token obtained out of band. When empty a
	// token is requested through DefaultAzureCredential.
	AccessToken          string
	ARMEndpoint          string
	RequestTimeout       time.Duration
	PartialFailurePolicy discovery.PartialFailurePolicy
}

// ConfigFromViper reads and validates the config
func ConfigFromViper() (*AzureConfig, error) {
	policyValue := viper.GetString("partial-failures")
	partialFailures, err := discovery.ParsePartialFailurePolicy(policyValue)
	if err != nil {
		return nil, err
	}

	cfg := &AzureConfig{
		TenantID:             viper.GetString("azure-tenant-id"),
		AccessToken:          viper.GetString("access-token"),
		ARMEndpoint:          viper.GetString("arm-endpoint"),
		RequestTimeout:       viper.GetDuration("request-timeout"),
		PartialFailurePolicy: partialFailures,
	}

	if cfg.ARMEndpoint == "" {
		cfg.ARMEndpoint = azureshared.DefaultManagementEndpoint
	}
	u, err := url.Parse(cfg.ARMEndpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid arm-endpoint %q: %w", cfg.ARMEndpoint, err)
	}
	if u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("invalid arm-endpoint %q: must be an absolute https URL", cfg.ARMEndpoint)
	}

	if cfg.RequestTimeout < 0 {
		return nil, fmt.Errorf("request-timeout must not be negative, got %v", cfg.RequestTimeout)
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	log.WithFields(log.Fields{
		"ovm.azure.tenantId":                 cfg.TenantID,
		"ovm.azure.armEndpoint":              cfg.ARMEndpoint,
		"ovm.azure.requestTimeout":           cfg.RequestTimeout.String(),
		"ovm.discovery.partialFailurePolicy": cfg.PartialFailurePolicy.String(),
		"ovm.azure.staticToken":              cfg.AccessToken != "",
	}).Debug("Using config from viper")

	return cfg, nil
}

// Source bundles the components a caller needs for one signed-in user
type Source struct {
	Orchestrator *discovery.Orchestrator
	Resolver     *connect.Resolver
}

type initOptions struct {
	transport policy.Transporter
	observers []discovery.ProgressObserver
}

type InitOption func(*initOptions)

// WithTransport replaces the HTTP transport of the management clients
func WithTransport(t policy.Transporter) InitOption {
	return func(o *initOptions) {
		o.transport = t
	}
}

// WithProgressObservers adds observers next to the default log observer
func WithProgressObservers(observers ...discovery.ProgressObserver) InitOption {
	return func(o *initOptions) {
		o.observers = append(o.observers, observers...)
	}
}

// Initialize wires the enumerator, orchestrator and resolver. No request is
// made until Discover or Resolve is called.
func Initialize(cfg *AzureConfig, opts ...InitOption) (*Source, error) {
	if cfg == nil {
		var err error
		cfg, err = ConfigFromViper()
		if err != nil {
			return nil, fmt.Errorf("error creating config from command line: %w", err)
		}
	}

	o := &initOptions{}
	for _, opt := range opts {
		opt(o)
	}

	factory := clients.NewSetFactory(azureshared.NewClientOptions(cfg.ARMEndpoint, o.transport))

	observers := append([]discovery.ProgressObserver{discovery.LogObserver{}}, o.observers...)
	orchestrator := discovery.NewOrchestrator(
		manual.NewEnumerator(factory, cfg.RequestTimeout),
		discovery.WithPartialFailurePolicy(cfg.PartialFailurePolicy),
		discovery.WithProgressTracker(discovery.NewProgressTracker(observers...)),
	)

	return &Source{
		Orchestrator: orchestrator,
		Resolver:     connect.NewResolver(factory, cfg.RequestTimeout),
	}, nil
}

// Credential returns the delegated credential of the signed-in user, from the
// configured access token or from DefaultAzureCredential
func Credential(ctx context.Context, cfg *AzureConfig) (*azureshared.DelegatedCredential, error) {
	var tc azcore.TokenCredential
	if cfg.AccessToken != "" {
		tc = azureshared.StaticTokenCredential(cfg.AccessToken)
	} else {
		azureCred, err := azureshared.NewAzureCredential(cfg.TenantID)
		if err != nil {
			return nil, err
		}
		tc = azureCred
	}

	cred, err := azureshared.AcquireDelegatedCredential(ctx, tc)
	if err != nil {
		return nil, err
	}
	if cred.Expired(time.Now()) {
		return nil, azureshared.ErrCredentialExpired
	}

	log.WithFields(log.Fields{
		"ovm.auth.principalId": cred.PrincipalID,
		"ovm.auth.username":    cred.Username,
	}).Debug("Acquired delegated credential")

	return cred, nil
}
