package clients

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/redis/armredis/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/redisenterprise/armredisenterprise"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

// Type aliases of the generic Pager cannot be mocked directly, so these
// concrete interfaces exist for mock generation only.

// SubscriptionsPagerInterface is a concrete interface for SubscriptionsPager to enable mock generation
//
//go:generate mockgen -destination=../shared/mocks/mock_subscriptions_pager.go -package=mocks github.com/overmindtech/cache-discovery/sources/azure/clients SubscriptionsPagerInterface
type SubscriptionsPagerInterface interface {
	More() bool
	NextPage(ctx context.Context) (armsubscriptions.ClientListResponse, error)
}

// RedisPagerInterface is a concrete interface for RedisPager to enable mock generation
//
//go:generate mockgen -destination=../shared/mocks/mock_redis_pager.go -package=mocks github.com/overmindtech/cache-discovery/sources/azure/clients RedisPagerInterface
type RedisPagerInterface interface {
	More() bool
	NextPage(ctx context.Context) (armredis.ClientListBySubscriptionResponse, error)
}

// ClustersPagerInterface is a concrete interface for ClustersPager to enable mock generation
//
//go:generate mockgen -destination=../shared/mocks/mock_clusters_pager.go -package=mocks github.com/overmindtech/cache-discovery/sources/azure/clients ClustersPagerInterface
type ClustersPagerInterface interface {
	More() bool
	NextPage(ctx context.Context) (armredisenterprise.ClientListResponse, error)
}

// DatabasesPagerInterface is a concrete interface for DatabasesPager to enable mock generation
//
//go:generate mockgen -destination=../shared/mocks/mock_databases_pager.go -package=mocks github.com/overmindtech/cache-discovery/sources/azure/clients DatabasesPagerInterface
type DatabasesPagerInterface interface {
	More() bool
	NextPage(ctx context.Context) (DatabasesPage, error)
}
