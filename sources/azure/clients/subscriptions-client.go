package clients

import (
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

//go:generate mockgen -destination=../shared/mocks/mock_subscriptions_client.go -package=mocks -source=subscriptions-client.go

// SubscriptionsPager is a type alias for the generic Pager interface with the subscription list response type.
type SubscriptionsPager = Pager[armsubscriptions.ClientListResponse]

// SubscriptionsClient is an interface for listing the subscriptions a principal can see
type SubscriptionsClient interface {
	List() SubscriptionsPager
}

type subscriptionsClient struct {
	client *armsubscriptions.Client
}

// List pages through GET /subscriptions
// Reference: https://learn.microsoft.com/en-us/rest/api/resources/subscriptions/list
func (a *subscriptionsClient) List() SubscriptionsPager {
	return a.client.NewListPager(nil)
}

// NewSubscriptionsClient creates a new SubscriptionsClient from the Azure SDK client
func NewSubscriptionsClient(client *armsubscriptions.Client) SubscriptionsClient {
	return &subscriptionsClient{client: client}
}
