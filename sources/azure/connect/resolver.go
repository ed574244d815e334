// Package connect turns a discovered cache into the endpoint and credential
// a data-plane client needs.
package connect

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/redis/armredis/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/redisenterprise/armredisenterprise"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/overmindtech/cache-discovery/sources/azure/clients"
	azureshared "github.com/overmindtech/cache-discovery/sources/azure/shared"
	"github.com/overmindtech/cache-discovery/tracing"
)

// Resolver resolves connection descriptors. It never retries the key
// retrieval call: listKeys is a POST and may interact with key rotation.
type Resolver struct {
	factory        clients.SetFactory
	requestTimeout time.Duration
}

func NewResolver(factory clients.SetFactory, requestTimeout time.Duration) *Resolver {
	return &Resolver{
		factory:        factory,
		requestTimeout: requestTimeout,
	}
}

type endpoint struct {
	host string
	port int
	tls  bool
}

// Resolve builds the connection descriptor for a resource. database must be
// set for clustered resources and is ignored for simple ones.
func (r *Resolver) Resolve(ctx context.Context, resource azureshared.ResourceRef, database *azureshared.DatabaseRef, cred *azureshared.DelegatedCredential) (azureshared.ConnectionDescriptor, error) {
	ctx, span := tracing.Tracer().Start(ctx, "Resolve", trace.WithAttributes(
		attribute.String("ovm.azure.resourceId", resource.ID),
		attribute.String("ovm.azure.kind", resource.Kind.String()),
	))
	defer span.End()

	descriptor, err := r.resolve(ctx, resource, database, cred)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		return azureshared.ConnectionDescriptor{}, err
	}
	span.SetAttributes(attribute.String("ovm.connect.authMode", descriptor.AuthMode.String()))

	return descriptor, nil
}

func (r *Resolver) resolve(ctx context.Context, resource azureshared.ResourceRef, database *azureshared.DatabaseRef, cred *azureshared.DelegatedCredential) (azureshared.ConnectionDescriptor, error) {
	var ep endpoint
	var mode azureshared.AuthMode
	var displayName string
	var clusteringPolicy string

	switch resource.Kind {
	case azureshared.ResourceKindSimple:
		ep = simpleEndpoint(resource)
		mode = azureshared.AuthModeAccessKey
		displayName = resource.Name
	case azureshared.ResourceKindClustered:
		if database == nil {
			return azureshared.ConnectionDescriptor{}, &azureshared.ResolutionError{
				Reason:   azureshared.MissingDatabaseSelection,
				Resource: resource.Name,
			}
		}
		if database.ParentID != "" && !azureshared.SameResourceID(database.ParentID, resource.ID) {
			return azureshared.ConnectionDescriptor{}, &azureshared.ResolutionError{
				Reason:   azureshared.DatabaseNotInResource,
				Resource: resource.Name,
				Err:      fmt.Errorf("database %s belongs to %s", database.Name, database.ParentID),
			}
		}
		ep = clusteredEndpoint(resource, *database)
		mode = azureshared.AuthModeDelegatedIdentity
		if database.AccessKeysEnabled {
			mode = azureshared.AuthModeAccessKey
		}
		displayName = resource.Name + "/" + database.Name
		clusteringPolicy = database.ClusteringPolicy
	default:
		return azureshared.ConnectionDescriptor{}, fmt.Errorf("%w: %v", azureshared.ErrUnknownResourceKind, resource.Kind)
	}

	if ep.host == "" {
		return azureshared.ConnectionDescriptor{}, fmt.Errorf("could not resolve %s: %w", displayName, azureshared.ErrMissingHost)
	}
	if cred == nil {
		return azureshared.ConnectionDescriptor{}, fmt.Errorf("could not resolve %s: no delegated credential supplied", displayName)
	}

	descriptor := azureshared.ConnectionDescriptor{
		Host:             ep.host,
		Port:             ep.port,
		TLS:              ep.tls,
		AuthMode:         mode,
		DisplayName:      displayName,
		Kind:             resource.Kind,
		ClusteringPolicy: clusteringPolicy,
	}

	switch mode {
	case azureshared.AuthModeAccessKey:
		secret, err := r.primaryKey(ctx, resource, database, cred, displayName)
		if err != nil {
			return azureshared.ConnectionDescriptor{}, err
		}
		descriptor.Secret = secret
	case azureshared.AuthModeDelegatedIdentity:
		switch {
		case cred.AccessToken == "":
			return azureshared.ConnectionDescriptor{}, fmt.Errorf("could not resolve %s: %w", displayName, azureshared.ErrMissingAccessToken)
		case cred.Expired(time.Now()):
			return azureshared.ConnectionDescriptor{}, fmt.Errorf("could not resolve %s: %w", displayName, azureshared.ErrCredentialExpired)
		}
		descriptor.DelegatedToken = cred.AccessToken
		descriptor.Username = cred.DataPlaneUsername()
	}

	if err := descriptor.Validate(); err != nil {
		return azureshared.ConnectionDescriptor{}, fmt.Errorf("invalid connection details for %s: %w", displayName, err)
	}

	log.WithFields(log.Fields{
		"ovm.azure.resourceId":  resource.ID,
		"ovm.connect.authMode":  descriptor.AuthMode.String(),
		"ovm.connect.address":   descriptor.Address(),
		"ovm.connect.tls":       descriptor.TLS,
		"ovm.connect.cacheKind": resource.Kind.String(),
	}).Debug("Resolved connection details")

	return descriptor, nil
}

func simpleEndpoint(resource azureshared.ResourceRef) endpoint {
	ep := endpoint{
		host: resource.Host,
		port: azureshared.DefaultSimpleTLSPort,
		tls:  true,
	}
	if resource.Simple != nil && resource.Simple.SSLPort != nil {
		ep.port = *resource.Simple.SSLPort
	}
	return ep
}

func clusteredEndpoint(resource azureshared.ResourceRef, database azureshared.DatabaseRef) endpoint {
	ep := endpoint{
		host: resource.Host,
		port: azureshared.DefaultClusteredPort,
		tls:  database.ClientProtocol == azureshared.ClientProtocolEncrypted,
	}
	if database.Port != nil {
		ep.port = *database.Port
	}
	return ep
}

// primaryKey issues exactly one listKeys POST against the endpoint for the
// resource's kind
func (r *Resolver) primaryKey(ctx context.Context, resource azureshared.ResourceRef, database *azureshared.DatabaseRef, cred *azureshared.DelegatedCredential, displayName string) (string, error) {
	set, err := r.factory(cred)
	if err != nil {
		return "", keyRetrievalFailed(displayName, err)
	}

	ctx, cancel := azureshared.WithRequestTimeout(ctx, r.requestTimeout)
	defer cancel()

	var primary *string
	switch resource.Kind {
	case azureshared.ResourceKindSimple:
		var keys armredis.ClientListKeysResponse
		keys, err = set.Redis.ListKeys(ctx, resource.ID)
		primary = keys.PrimaryKey
	case azureshared.ResourceKindClustered:
		var keys armredisenterprise.DatabasesClientListKeysResponse
		keys, err = set.RedisEnterprise.ListKeys(ctx, database.ID)
		primary = keys.PrimaryKey
	default:
		err = fmt.Errorf("%w: %v", azureshared.ErrUnknownResourceKind, resource.Kind)
	}
	if err != nil {
		return "", keyRetrievalFailed(displayName, err)
	}

	if primary == nil || *primary == "" {
		return "", keyRetrievalFailed(displayName, errors.New("listKeys returned no primary key"))
	}

	return *primary, nil
}

func keyRetrievalFailed(displayName string, err error) *azureshared.ResolutionError {
	resErr := &azureshared.ResolutionError{
		Reason:   azureshared.KeyRetrievalFailed,
		Resource: displayName,
		Err:      err,
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		resErr.StatusCode = respErr.StatusCode
		if respErr.RawResponse != nil {
			if body, readErr := runtime.Payload(respErr.RawResponse); readErr == nil {
				resErr.Body = string(body)
			}
		}
	}

	return resErr
}
