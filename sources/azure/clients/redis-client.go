package clients

import (
	"context"
	"errors"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/redis/armredis/v2"
)

//go:generate mockgen -destination=../shared/mocks/mock_redis_client.go -package=mocks -source=redis-client.go

// RedisPager is a type alias for the generic Pager interface with the Azure Cache for Redis list response type.
type RedisPager = Pager[armredis.ClientListBySubscriptionResponse]

// RedisClient is an interface for interacting with Azure Cache for Redis
// (Microsoft.Cache/redis) resources
type RedisClient interface {
	ListBySubscription(subscriptionID string) (RedisPager, error)
	ListKeys(ctx context.Context, resourceID string) (armredis.ClientListKeysResponse, error)
}

const redisResourceType = "Microsoft.Cache/redis"

// redisClient keeps one SDK client per subscription, the SDK binds the
// subscription at construction
type redisClient struct {
	cred    azcore.TokenCredential
	options *arm.ClientOptions

	mu      sync.Mutex
	clients map[string]*armredis.Client
}

func (a *redisClient) clientFor(subscriptionID string) (*armredis.Client, error) {
	if subscriptionID == "" {
		return nil, errors.New("parameter subscriptionID cannot be empty")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.clients[subscriptionID]; ok {
		return c, nil
	}

	c, err := armredis.NewClient(subscriptionID, a.cred, a.options)
	if err != nil {
		return nil, err
	}
	a.clients[subscriptionID] = c

	return c, nil
}

// ListBySubscription pages through every cache in a subscription
// Reference: https://learn.microsoft.com/en-us/rest/api/redis/redis/list-by-subscription
func (a *redisClient) ListBySubscription(subscriptionID string) (RedisPager, error) {
	c, err := a.clientFor(subscriptionID)
	if err != nil {
		return nil, err
	}
	return c.NewListBySubscriptionPager(nil), nil
}

// ListKeys retrieves the access keys of a cache
// Reference: https://learn.microsoft.com/en-us/rest/api/redis/redis/list-keys
func (a *redisClient) ListKeys(ctx context.Context, resourceID string) (armredis.ClientListKeysResponse, error) {
	id, err := parseResourceID(resourceID, redisResourceType)
	if err != nil {
		return armredis.ClientListKeysResponse{}, err
	}

	c, err := a.clientFor(id.SubscriptionID)
	if err != nil {
		return armredis.ClientListKeysResponse{}, err
	}

	return c.ListKeys(ctx, id.ResourceGroupName, id.Name, nil)
}

// NewRedisClient creates a new RedisClient. SDK clients are created per
// subscription on first use.
func NewRedisClient(cred azcore.TokenCredential, options *arm.ClientOptions) RedisClient {
	return &redisClient{
		cred:    cred,
		options: options,
		clients: make(map[string]*armredis.Client),
	}
}
