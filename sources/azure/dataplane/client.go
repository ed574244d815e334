// Package dataplane opens go-redis clients from resolved connection details.
// It is the smallest data-plane surface needed to check that a descriptor
// actually works.
package dataplane

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	azureshared "github.com/overmindtech/cache-discovery/sources/azure/shared"
)

// ClusteringPolicyOSSCluster databases expose the Redis Cluster protocol and
// need a cluster-aware client
const ClusteringPolicyOSSCluster = "OSSCluster"

const defaultDialTimeout = 10 * time.Second

type config struct {
	tlsConfig   *tls.Config
	dialTimeout time.Duration
}

type Option func(*config)

// WithTLSConfig overrides the TLS configuration used when the descriptor
// requires TLS. The server name is still set from the descriptor host when
// empty.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *config) {
		c.tlsConfig = cfg
	}
}

func WithDialTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.dialTimeout = d
		}
	}
}

func newConfig(opts []Option) *config {
	c := &config{dialTimeout: defaultDialTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// credentials returns the AUTH username and password for a descriptor.
// Access keys use the default user, delegated identities authenticate as the
// principal with the bearer token as password.
func credentials(d azureshared.ConnectionDescriptor) (string, string, error) {
	switch d.AuthMode {
	case azureshared.AuthModeAccessKey:
		return "", d.Secret, nil
	case azureshared.AuthModeDelegatedIdentity:
		return d.Username, d.DelegatedToken, nil
	default:
		return "", "", fmt.Errorf("unknown auth mode %v", d.AuthMode)
	}
}

func (c *config) tlsFor(d azureshared.ConnectionDescriptor) *tls.Config {
	if !d.TLS {
		return nil
	}
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if c.tlsConfig != nil {
		cfg = c.tlsConfig.Clone()
	}
	if cfg.ServerName == "" {
		cfg.ServerName = d.Host
	}
	return cfg
}

// Options builds single-node client options for a descriptor
func Options(d azureshared.ConnectionDescriptor, opts ...Option) (*redis.Options, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	username, password, err := credentials(d)
	if err != nil {
		return nil, err
	}
	c := newConfig(opts)

	return &redis.Options{
		Addr:        d.Address(),
		Username:    username,
		Password:    password,
		TLSConfig:   c.tlsFor(d),
		DialTimeout: c.dialTimeout,
		// management-plane discovery never needs more than a handful of
		// connections
		PoolSize: 2,
	}, nil
}

// ClusterOptions builds cluster client options for a descriptor
func ClusterOptions(d azureshared.ConnectionDescriptor, opts ...Option) (*redis.ClusterOptions, error) {
	single, err := Options(d, opts...)
	if err != nil {
		return nil, err
	}

	return &redis.ClusterOptions{
		Addrs:       []string{single.Addr},
		Username:    single.Username,
		Password:    single.Password,
		TLSConfig:   single.TLSConfig,
		DialTimeout: single.DialTimeout,
		PoolSize:    single.PoolSize,
	}, nil
}

// NewClient opens a client for the descriptor, cluster-aware when the
// database uses the OSS cluster policy
func NewClient(d azureshared.ConnectionDescriptor, opts ...Option) (redis.UniversalClient, error) {
	if strings.EqualFold(d.ClusteringPolicy, ClusteringPolicyOSSCluster) {
		o, err := ClusterOptions(d, opts...)
		if err != nil {
			return nil, err
		}
		return redis.NewClusterClient(o), nil
	}

	o, err := Options(d, opts...)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(o), nil
}

// Ping connects with the descriptor and issues a PING
func Ping(ctx context.Context, d azureshared.ConnectionDescriptor, opts ...Option) error {
	client, err := NewClient(d, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Debug("Error closing data-plane client")
		}
	}()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("could not ping %s: %w", d.DisplayName, err)
	}

	log.WithFields(log.Fields{
		"ovm.connect.address":  d.Address(),
		"ovm.connect.authMode": d.AuthMode.String(),
	}).Debug("Data-plane ping succeeded")

	return nil
}
