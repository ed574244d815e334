package clients

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

// API versions. The generated clients are pinned to older versions, these
// override them through ClientOptions.APIVersion so the resource providers
// return the properties read here.
const (
	SubscriptionsAPIVersion   = "2022-12-01"
	RedisAPIVersion           = "2024-11-01"
	RedisEnterpriseAPIVersion = "2025-04-01"
)

// Set bundles the management clients bound to one credential
type Set struct {
	Subscriptions   SubscriptionsClient
	Redis           RedisClient
	RedisEnterprise RedisEnterpriseClient
}

// SetFactory builds a Set for a credential. The credential is an argument
// rather than package state so that every run uses the caller's identity.
type SetFactory func(cred azcore.TokenCredential) (*Set, error)

// NewSetFactory returns a SetFactory that builds Azure SDK clients with the
// given options
func NewSetFactory(options *arm.ClientOptions) SetFactory {
	return func(cred azcore.TokenCredential) (*Set, error) {
		subscriptions, err := armsubscriptions.NewClient(cred, withAPIVersion(options, SubscriptionsAPIVersion))
		if err != nil {
			return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
		}

		return &Set{
			Subscriptions:   NewSubscriptionsClient(subscriptions),
			Redis:           NewRedisClient(cred, withAPIVersion(options, RedisAPIVersion)),
			RedisEnterprise: NewRedisEnterpriseClient(cred, withAPIVersion(options, RedisEnterpriseAPIVersion)),
		}, nil
	}
}

func withAPIVersion(options *arm.ClientOptions, version string) *arm.ClientOptions {
	var o arm.ClientOptions
	if options != nil {
		o = *options
	}
	o.APIVersion = version
	return &o
}

// parseResourceID parses id and checks it is of resourceType
func parseResourceID(id string, resourceType string) (*arm.ResourceID, error) {
	if id == "" {
		return nil, errors.New("parameter resourceID cannot be empty")
	}

	parsed, err := arm.ParseResourceID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid resource ID %q: %w", id, err)
	}
	if !strings.EqualFold(parsed.ResourceType.String(), resourceType) {
		return nil, fmt.Errorf("resource ID %q is a %s, not a %s", id, parsed.ResourceType.String(), resourceType)
	}

	return parsed, nil
}
