package manual

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/overmindtech/cache-discovery/sources/azure/clients"
	azureshared "github.com/overmindtech/cache-discovery/sources/azure/shared"
)

// Collection names used on EnumerationFailure
const (
	CollectionRedis           = azureshared.CollectionRedis
	CollectionRedisEnterprise = azureshared.CollectionRedisEnterprise
	CollectionDatabases       = azureshared.CollectionDatabases
)

// Enumerator issues the four listing calls of a discovery run. Each call is a
// separate request so that one collection failing leaves the others intact.
type Enumerator struct {
	factory        clients.SetFactory
	requestTimeout time.Duration

	mu      sync.Mutex
	lastFor *azureshared.DelegatedCredential
	last    *clients.Set
}

// NewEnumerator creates an Enumerator. requestTimeout bounds every call, zero
// means no per-call bound.
func NewEnumerator(factory clients.SetFactory, requestTimeout time.Duration) *Enumerator {
	return &Enumerator{
		factory:        factory,
		requestTimeout: requestTimeout,
	}
}

// clientsFor reuses the client set while the same credential is in use
func (e *Enumerator) clientsFor(cred *azureshared.DelegatedCredential) (*clients.Set, error) {
	if cred == nil {
		return nil, errors.New("no delegated credential supplied")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.last != nil && e.lastFor == cred {
		return e.last, nil
	}

	set, err := e.factory(cred)
	if err != nil {
		return nil, err
	}
	e.lastFor = cred
	e.last = set

	return set, nil
}

// ListSubscriptions lists every subscription the credential can see. Any
// failure is returned as a *azureshared.TransportError.
func (e *Enumerator) ListSubscriptions(ctx context.Context, cred *azureshared.DelegatedCredential) ([]azureshared.SubscriptionRef, error) {
	set, err := e.clientsFor(cred)
	if err != nil {
		return nil, &azureshared.TransportError{Err: err}
	}

	ctx, cancel := azureshared.WithRequestTimeout(ctx, e.requestTimeout)
	defer cancel()

	result, err := clients.FirstPage(ctx, set.Subscriptions.List(), "subscriptions")
	if err != nil {
		return nil, &azureshared.TransportError{Err: err}
	}

	subscriptions := make([]azureshared.SubscriptionRef, 0, len(result.Value))
	for _, sub := range result.Value {
		ref, ok := azureSubscriptionToRef(sub)
		if !ok {
			log.Debug("Skipping subscription without an ID")
			continue
		}
		subscriptions = append(subscriptions, ref)
	}

	return subscriptions, nil
}

// ListSimpleResources lists the Azure Cache for Redis instances in a
// subscription. On failure it returns no resources and an
// *azureshared.EnumerationFailure.
func (e *Enumerator) ListSimpleResources(ctx context.Context, sub azureshared.SubscriptionRef, cred *azureshared.DelegatedCredential) ([]azureshared.ResourceRef, error) {
	set, err := e.clientsFor(cred)
	if err != nil {
		return nil, subscriptionFailure(sub, CollectionRedis, err)
	}

	ctx, cancel := azureshared.WithRequestTimeout(ctx, e.requestTimeout)
	defer cancel()

	pager, err := set.Redis.ListBySubscription(sub.ID)
	if err != nil {
		return nil, subscriptionFailure(sub, CollectionRedis, err)
	}

	result, err := clients.FirstPage(ctx, pager, CollectionRedis)
	if err != nil {
		return nil, subscriptionFailure(sub, CollectionRedis, err)
	}

	resources := make([]azureshared.ResourceRef, 0, len(result.Value))
	for _, cache := range result.Value {
		ref, ok := azureRedisToResourceRef(sub.ID, cache)
		if !ok {
			continue
		}
		resources = append(resources, ref)
	}

	log.WithFields(log.Fields{
		"ovm.azure.subscriptionId": sub.ID,
		"ovm.azure.count":          len(resources),
	}).Debug("Listed Azure Cache for Redis instances")

	return resources, nil
}

// ListClusteredResources lists the Azure Managed Redis clusters in a
// subscription, without their databases. On failure it returns no resources
// and an *azureshared.EnumerationFailure.
func (e *Enumerator) ListClusteredResources(ctx context.Context, sub azureshared.SubscriptionRef, cred *azureshared.DelegatedCredential) ([]azureshared.ResourceRef, error) {
	set, err := e.clientsFor(cred)
	if err != nil {
		return nil, subscriptionFailure(sub, CollectionRedisEnterprise, err)
	}

	ctx, cancel := azureshared.WithRequestTimeout(ctx, e.requestTimeout)
	defer cancel()

	pager, err := set.RedisEnterprise.List(sub.ID)
	if err != nil {
		return nil, subscriptionFailure(sub, CollectionRedisEnterprise, err)
	}

	result, err := clients.FirstPage(ctx, pager, CollectionRedisEnterprise)
	if err != nil {
		return nil, subscriptionFailure(sub, CollectionRedisEnterprise, err)
	}

	resources := make([]azureshared.ResourceRef, 0, len(result.Value))
	for _, cluster := range result.Value {
		ref, ok := azureClusterToResourceRef(sub.ID, cluster)
		if !ok {
			continue
		}
		resources = append(resources, ref)
	}

	log.WithFields(log.Fields{
		"ovm.azure.subscriptionId": sub.ID,
		"ovm.azure.count":          len(resources),
	}).Debug("Listed Azure Managed Redis clusters")

	return resources, nil
}

// ListDatabases lists the databases of one clustered resource. On failure it
// returns no databases and an *azureshared.EnumerationFailure scoped to the
// cluster.
func (e *Enumerator) ListDatabases(ctx context.Context, cluster azureshared.ResourceRef, cred *azureshared.DelegatedCredential) ([]azureshared.DatabaseRef, error) {
	switch cluster.Kind {
	case azureshared.ResourceKindClustered:
	case azureshared.ResourceKindSimple:
		return nil, clusterFailure(cluster, fmt.Errorf("%s is not a clustered resource", cluster.Name))
	default:
		return nil, clusterFailure(cluster, fmt.Errorf("%w: %v", azureshared.ErrUnknownResourceKind, cluster.Kind))
	}

	set, err := e.clientsFor(cred)
	if err != nil {
		return nil, clusterFailure(cluster, err)
	}

	ctx, cancel := azureshared.WithRequestTimeout(ctx, e.requestTimeout)
	defer cancel()

	pager, err := set.RedisEnterprise.ListDatabases(cluster.ID)
	if err != nil {
		return nil, clusterFailure(cluster, err)
	}

	page, err := clients.FirstPage(ctx, pager, CollectionDatabases)
	if err != nil {
		return nil, clusterFailure(cluster, err)
	}

	databases := make([]azureshared.DatabaseRef, 0, len(page.Value))
	for _, db := range page.Value {
		ref, ok := azureDatabaseToRef(cluster, page, db)
		if !ok {
			continue
		}
		databases = append(databases, ref)
	}

	return databases, nil
}

func subscriptionFailure(sub azureshared.SubscriptionRef, collection string, err error) *azureshared.EnumerationFailure {
	return &azureshared.EnumerationFailure{
		Scope:          azureshared.FailureScopeSubscription,
		SubscriptionID: sub.ID,
		Collection:     collection,
		Err:            err,
	}
}

func clusterFailure(cluster azureshared.ResourceRef, err error) *azureshared.EnumerationFailure {
	return &azureshared.EnumerationFailure{
		Scope:          azureshared.FailureScopeCluster,
		SubscriptionID: cluster.SubscriptionID,
		ResourceID:     cluster.ID,
		Collection:     CollectionDatabases,
		Err:            err,
	}
}
