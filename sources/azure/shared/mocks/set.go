package mocks

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"go.uber.org/mock/gomock"

	"github.com/overmindtech/cache-discovery/sources/azure/clients"
)

// ClientSet holds one mock per management client
type ClientSet struct {
	Subscriptions   *MockSubscriptionsClient
	Redis           *MockRedisClient
	RedisEnterprise *MockRedisEnterpriseClient

	// Credentials records every credential the factory was called with
	Credentials []azcore.TokenCredential
}

// NewClientSet creates mocks for all management clients
func NewClientSet(ctrl *gomock.Controller) *ClientSet {
	return &ClientSet{
		Subscriptions:   NewMockSubscriptionsClient(ctrl),
		Redis:           NewMockRedisClient(ctrl),
		RedisEnterprise: NewMockRedisEnterpriseClient(ctrl),
	}
}

// Factory returns a clients.SetFactory that always hands out these mocks
func (c *ClientSet) Factory() clients.SetFactory {
	return func(cred azcore.TokenCredential) (*clients.Set, error) {
		c.Credentials = append(c.Credentials, cred)
		return &clients.Set{
			Subscriptions:   c.Subscriptions,
			Redis:           c.Redis,
			RedisEnterprise: c.RedisEnterprise,
		}, nil
	}
}
