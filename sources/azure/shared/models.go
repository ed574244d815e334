package shared

import (
	"fmt"
	"net"
	"strconv"
)

// Resource provider types for the hosted caches this source discovers.
// Reference: https://learn.microsoft.com/en-us/azure/azure-resource-manager/management/azure-services-resource-providers
const (
	RedisResourceType           = "Microsoft.Cache/redis"
	RedisEnterpriseResourceType = "Microsoft.Cache/redisEnterprise"
)

// Default data-plane ports used when the management API does not report one
const (
	DefaultSimpleTLSPort = 6380
	DefaultClusteredPort = 10000
)

// ResourceKind is the closed set of hosted-cache shapes. Every switch over it
// must handle both kinds and return ErrUnknownResourceKind otherwise.
type ResourceKind int

const (
	// ResourceKindSimple is a single-endpoint Azure Cache for Redis instance
	ResourceKindSimple ResourceKind = iota + 1
	// ResourceKindClustered is an Azure Managed Redis (Redis Enterprise)
	// cluster that exposes one or more databases
	ResourceKindClustered
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceKindSimple:
		return "Simple"
	case ResourceKindClustered:
		return "Clustered"
	default:
		return fmt.Sprintf("ResourceKind(%d)", int(k))
	}
}

func (k ResourceKind) MarshalText() ([]byte, error) {
	switch k {
	case ResourceKindSimple, ResourceKindClustered:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownResourceKind, int(k))
	}
}

// ClientProtocol is the data-plane protocol a clustered database accepts
type ClientProtocol string

const (
	ClientProtocolEncrypted ClientProtocol = "Encrypted"
	ClientProtocolPlaintext ClientProtocol = "Plaintext"
)

// AuthMode is how a data-plane client authenticates
type AuthMode int

const (
	// AuthModeAccessKey uses a static key fetched from the management API
	AuthModeAccessKey AuthMode = iota + 1
	// AuthModeDelegatedIdentity reuses the management-plane bearer token
	AuthModeDelegatedIdentity
)

func (a AuthMode) String() string {
	switch a {
	case AuthModeAccessKey:
		return "AccessKey"
	case AuthModeDelegatedIdentity:
		return "DelegatedIdentity"
	default:
		return fmt.Sprintf("AuthMode(%d)", int(a))
	}
}

func (a AuthMode) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

type SubscriptionRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// SimpleProperties are the endpoint details only a Simple resource carries
type SimpleProperties struct {
	Port              *int `json:"port,omitempty"`
	SSLPort           *int `json:"sslPort,omitempty"`
	NonSSLPortEnabled bool `json:"nonSslPortEnabled"`
}

// ResourceRef is one discovered hosted cache, normalised across both kinds
type ResourceRef struct {
	Kind              ResourceKind      `json:"kind"`
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	SubscriptionID    string            `json:"subscriptionId"`
	ResourceGroup     string            `json:"resourceGroup,omitempty"`
	Location          string            `json:"location,omitempty"`
	Host              string            `json:"host"`
	SKU               string            `json:"sku,omitempty"`
	ProvisioningState string            `json:"provisioningState,omitempty"`
	RedisVersion      string            `json:"redisVersion,omitempty"`
	Tags              map[string]string `json:"tags,omitempty"`

	// Simple is only set for ResourceKindSimple
	Simple *SimpleProperties `json:"simple,omitempty"`
	// Databases is only populated for ResourceKindClustered, and stays empty
	// until the cluster's databases have been enumerated
	Databases []DatabaseRef `json:"databases,omitempty"`
}

// Database returns the enumerated database with the given name
func (r ResourceRef) Database(name string) (DatabaseRef, bool) {
	for _, db := range r.Databases {
		if db.Name == name {
			return db, true
		}
	}
	return DatabaseRef{}, false
}

// DatabaseRef is one logical database inside a clustered resource
type DatabaseRef struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	ParentID          string         `json:"parentId"`
	Port              *int           `json:"port,omitempty"`
	ClientProtocol    ClientProtocol `json:"clientProtocol,omitempty"`
	ClusteringPolicy  string         `json:"clusteringPolicy,omitempty"`
	AccessKeysEnabled bool           `json:"accessKeysEnabled"`
}

// ConnectionDescriptor is everything a data-plane client needs to connect.
// Exactly one of Secret and DelegatedToken is set.
type ConnectionDescriptor struct {
	Host             string       `json:"host"`
	Port             int          `json:"port"`
	TLS              bool         `json:"tls"`
	AuthMode         AuthMode     `json:"authMode"`
	Secret           string       `json:"secret,omitempty"`
	DelegatedToken   string       `json:"delegatedToken,omitempty"`
	Username         string       `json:"username,omitempty"`
	DisplayName      string       `json:"displayName"`
	Kind             ResourceKind `json:"kind"`
	ClusteringPolicy string       `json:"clusteringPolicy,omitempty"`
}

// Validate checks the descriptor's invariants
func (d ConnectionDescriptor) Validate() error {
	if d.Host == "" {
		return ErrMissingHost
	}
	if d.Port <= 0 || d.Port > 65535 {
		return fmt.Errorf("invalid port %d for %s", d.Port, d.DisplayName)
	}

	hasSecret := d.Secret != ""
	hasToken := d.DelegatedToken != ""
	if hasSecret == hasToken {
		return fmt.Errorf("connection descriptor for %s must carry exactly one of secret or delegated token", d.DisplayName)
	}

	switch d.AuthMode {
	case AuthModeAccessKey:
		if !hasSecret {
			return fmt.Errorf("access key descriptor for %s has no secret", d.DisplayName)
		}
	case AuthModeDelegatedIdentity:
		if !hasToken {
			return fmt.Errorf("delegated identity descriptor for %s has no token", d.DisplayName)
		}
	default:
		return fmt.Errorf("unknown auth mode %v", d.AuthMode)
	}

	return nil
}

// Address returns host:port
func (d ConnectionDescriptor) Address() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

// String never includes the secret or token
func (d ConnectionDescriptor) String() string {
	return fmt.Sprintf("%s (%s, tls=%t, auth=%s)", d.DisplayName, d.Address(), d.TLS, d.AuthMode)
}
