package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/redisenterprise/armredisenterprise"
)

//go:generate mockgen -destination=../shared/mocks/mock_redis_enterprise_client.go -package=mocks -source=redis-enterprise-client.go

// ClustersPager is a type alias for the generic Pager interface with the Azure Managed Redis cluster list response type.
type ClustersPager = Pager[armredisenterprise.ClientListResponse]

// DatabasesPager is a type alias for the generic Pager interface over pages of cluster databases.
type DatabasesPager = Pager[DatabasesPage]

// RedisEnterpriseClient is an interface for interacting with Azure Managed
// Redis (Microsoft.Cache/redisEnterprise) clusters and their databases
type RedisEnterpriseClient interface {
	List(subscriptionID string) (ClustersPager, error)
	ListDatabases(clusterID string) (DatabasesPager, error)
	ListKeys(ctx context.Context, databaseID string) (armredisenterprise.DatabasesClientListKeysResponse, error)
}

// DatabasesPage is one page of databases of a cluster.
//
// The SDK models predate the accessKeysAuthentication property, so it is read
// from the raw page into AccessKeysAuthentication, keyed by database ID.
type DatabasesPage struct {
	armredisenterprise.DatabasesClientListByClusterResponse

	AccessKeysAuthentication map[string]string
}

// AccessKeysAuthenticationOf returns the accessKeysAuthentication value of a
// database on this page, or "" when the service did not send one
func (p DatabasesPage) AccessKeysAuthenticationOf(db *armredisenterprise.Database) string {
	if db == nil || db.ID == nil {
		return ""
	}
	return p.AccessKeysAuthentication[strings.ToLower(*db.ID)]
}

const (
	clusterResourceType  = "Microsoft.Cache/redisEnterprise"
	databaseResourceType = "Microsoft.Cache/redisEnterprise/databases"
)

type redisEnterpriseSDKClients struct {
	clusters  *armredisenterprise.Client
	databases *armredisenterprise.DatabasesClient
}

type redisEnterpriseClient struct {
	cred    azcore.TokenCredential
	options *arm.ClientOptions

	mu      sync.Mutex
	clients map[string]*redisEnterpriseSDKClients
}

func (a *redisEnterpriseClient) clientsFor(subscriptionID string) (*redisEnterpriseSDKClients, error) {
	if subscriptionID == "" {
		return nil, errors.New("parameter subscriptionID cannot be empty")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.clients[subscriptionID]; ok {
		return c, nil
	}

	clusters, err := armredisenterprise.NewClient(subscriptionID, a.cred, a.options)
	if err != nil {
		return nil, err
	}
	databases, err := armredisenterprise.NewDatabasesClient(subscriptionID, a.cred, a.options)
	if err != nil {
		return nil, err
	}

	c := &redisEnterpriseSDKClients{clusters: clusters, databases: databases}
	a.clients[subscriptionID] = c

	return c, nil
}

// List pages through every cluster in a subscription
// Reference: https://learn.microsoft.com/en-us/rest/api/redis/redisenterprisecache/redis-enterprise/list
func (a *redisEnterpriseClient) List(subscriptionID string) (ClustersPager, error) {
	c, err := a.clientsFor(subscriptionID)
	if err != nil {
		return nil, err
	}
	return c.clusters.NewListPager(nil), nil
}

// ListDatabases pages through the databases of one cluster
// Reference: https://learn.microsoft.com/en-us/rest/api/redis/redisenterprisecache/databases/list-by-cluster
func (a *redisEnterpriseClient) ListDatabases(clusterID string) (DatabasesPager, error) {
	id, err := parseResourceID(clusterID, clusterResourceType)
	if err != nil {
		return nil, err
	}

	c, err := a.clientsFor(id.SubscriptionID)
	if err != nil {
		return nil, err
	}

	return &databasesPager{pager: c.databases.NewListByClusterPager(id.ResourceGroupName, id.Name, nil)}, nil
}

// ListKeys retrieves the access keys of one database
// Reference: https://learn.microsoft.com/en-us/rest/api/redis/redisenterprisecache/databases/list-keys
func (a *redisEnterpriseClient) ListKeys(ctx context.Context, databaseID string) (armredisenterprise.DatabasesClientListKeysResponse, error) {
	id, err := parseResourceID(databaseID, databaseResourceType)
	if err != nil {
		return armredisenterprise.DatabasesClientListKeysResponse{}, err
	}

	c, err := a.clientsFor(id.SubscriptionID)
	if err != nil {
		return armredisenterprise.DatabasesClientListKeysResponse{}, err
	}

	return c.databases.ListKeys(ctx, id.ResourceGroupName, id.Parent.Name, id.Name, nil)
}

// NewRedisEnterpriseClient creates a new RedisEnterpriseClient. SDK clients
// are created per subscription on first use.
func NewRedisEnterpriseClient(cred azcore.TokenCredential, options *arm.ClientOptions) RedisEnterpriseClient {
	return &redisEnterpriseClient{
		cred:    cred,
		options: options,
		clients: make(map[string]*redisEnterpriseSDKClients),
	}
}

type databasesPager struct {
	pager *runtime.Pager[armredisenterprise.DatabasesClientListByClusterResponse]
}

func (p *databasesPager) More() bool {
	return p.pager.More()
}

func (p *databasesPager) NextPage(ctx context.Context) (DatabasesPage, error) {
	var raw *http.Response
	resp, err := p.pager.NextPage(policy.WithCaptureResponse(ctx, &raw))
	if err != nil {
		return DatabasesPage{}, err
	}

	page := DatabasesPage{DatabasesClientListByClusterResponse: resp}
	if raw == nil {
		return page, nil
	}

	page.AccessKeysAuthentication, err = accessKeysAuthentication(raw)
	if err != nil {
		return DatabasesPage{}, err
	}

	return page, nil
}

func accessKeysAuthentication(resp *http.Response) (map[string]string, error) {
	var body struct {
		Value []struct {
			ID         string `json:"id"`
			Properties struct {
				AccessKeysAuthentication string `json:"accessKeysAuthentication"`
			} `json:"properties"`
		} `json:"value"`
	}
	if err := runtime.UnmarshalAsJSON(resp, &body); err != nil {
		return nil, fmt.Errorf("failed to decode databases page: %w", err)
	}

	values := make(map[string]string, len(body.Value))
	for _, db := range body.Value {
		if db.ID == "" || db.Properties.AccessKeysAuthentication == "" {
			continue
		}
		values[strings.ToLower(db.ID)] = db.Properties.AccessKeysAuthentication
	}

	return values, nil
}
