package discovery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/redis/armredis/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/redisenterprise/armredisenterprise"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/overmindtech/cache-discovery/sources/azure/manual"
	azureshared "github.com/overmindtech/cache-discovery/sources/azure/shared"
	"github.com/overmindtech/cache-discovery/sources/azure/shared/mocks"
)

// fakeEnumerator serves canned results and records the order of calls
type fakeEnumerator struct {
	mu    sync.Mutex
	calls []string

	subscriptions    []azureshared.SubscriptionRef
	subscriptionsErr error
	simple           map[string][]azureshared.ResourceRef
	simpleErr        map[string]error
	clustered        map[string][]azureshared.ResourceRef
	clusteredErr     map[string]error
	databases        map[string][]azureshared.DatabaseRef
	databasesErr     map[string]error

	// onCall runs before every call returns
	onCall func(call string)
}

func (f *fakeEnumerator) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	if f.onCall != nil {
		f.onCall(call)
	}
}

func (f *fakeEnumerator) ListSubscriptions(_ context.Context, _ *azureshared.DelegatedCredential) ([]azureshared.SubscriptionRef, error) {
	f.record("subscriptions")
	if f.subscriptionsErr != nil {
		return nil, f.subscriptionsErr
	}
	return f.subscriptions, nil
}

func (f *fakeEnumerator) ListSimpleResources(_ context.Context, sub azureshared.SubscriptionRef, _ *azureshared.DelegatedCredential) ([]azureshared.ResourceRef, error) {
	f.record("simple:" + sub.ID)
	if err := f.simpleErr[sub.ID]; err != nil {
		return nil, err
	}
	return f.simple[sub.ID], nil
}

func (f *fakeEnumerator) ListClusteredResources(_ context.Context, sub azureshared.SubscriptionRef, _ *azureshared.DelegatedCredential) ([]azureshared.ResourceRef, error) {
	f.record("clustered:" + sub.ID)
	if err := f.clusteredErr[sub.ID]; err != nil {
		return nil, err
	}
	// hand out a copy so attached databases do not leak between runs
	return append([]azureshared.ResourceRef(nil), f.clustered[sub.ID]...), nil
}

func (f *fakeEnumerator) ListDatabases(_ context.Context, cluster azureshared.ResourceRef, _ *azureshared.DelegatedCredential) ([]azureshared.DatabaseRef, error) {
	f.record("databases:" + cluster.Name)
	if err := f.databasesErr[cluster.Name]; err != nil {
		return nil, err
	}
	return f.databases[cluster.Name], nil
}

func simpleRef(sub, name string) azureshared.ResourceRef {
	return azureshared.ResourceRef{
		Kind:           azureshared.ResourceKindSimple,
		ID:             fmt.Sprintf("/subscriptions/%s/resourceGroups/rg/providers/Microsoft.Cache/redis/%s", sub, name),
		Name:           name,
		SubscriptionID: sub,
		Host:           name + ".redis.cache.windows.net",
		Simple:         &azureshared.SimpleProperties{SSLPort: to.Ptr(6380)},
	}
}

func clusterRef(sub, name string) azureshared.ResourceRef {
	return azureshared.ResourceRef{
		Kind:           azureshared.ResourceKindClustered,
		ID:             fmt.Sprintf("/subscriptions/%s/resourceGroups/rg/providers/Microsoft.Cache/redisEnterprise/%s", sub, name),
		Name:           name,
		SubscriptionID: sub,
		Host:           name + ".westeurope.redis.azure.net",
	}
}

func databaseRef(cluster azureshared.ResourceRef, name string) azureshared.DatabaseRef {
	return azureshared.DatabaseRef{
		ID:       cluster.ID + "/databases/" + name,
		Name:     name,
		ParentID: cluster.ID,
		Port:     to.Ptr(10000),
	}
}

func newFixture() *fakeEnumerator {
	clusterX := clusterRef("sub-2", "cluster-x")
	clusterY := clusterRef("sub-2", "cluster-y")

	return &fakeEnumerator{
		subscriptions: []azureshared.SubscriptionRef{
			{ID: "sub-1", DisplayName: "One"},
			{ID: "sub-2", DisplayName: "Two"},
		},
		simple: map[string][]azureshared.ResourceRef{
			"sub-1": {simpleRef("sub-1", "cache-a"), simpleRef("sub-1", "cache-b")},
			"sub-2": {simpleRef("sub-2", "cache-c")},
		},
		clustered: map[string][]azureshared.ResourceRef{
			"sub-2": {clusterX, clusterY},
		},
		databases: map[string][]azureshared.DatabaseRef{
			"cluster-x": {databaseRef(clusterX, "default"), databaseRef(clusterX, "sessions")},
		},
	}
}

func testCredential() *azureshared.DelegatedCredential {
	return &azureshared.DelegatedCredential{AccessToken: "delegated-token"}
}

func names(resources []azureshared.ResourceRef) []string {
	out := make([]string, 0, len(resources))
	for _, r := range resources {
		out = append(out, r.Name)
	}
	return out
}

func TestDiscoverOrdersBySubscriptionThenKind(t *testing.T) {
	f := newFixture()
	o := NewOrchestrator(f)

	result := o.Discover(context.Background(), testCredential())

	require.NoError(t, result.Err)
	assert.True(t, result.Complete)
	assert.Equal(t, []string{"cache-a", "cache-b", "cache-c", "cluster-x", "cluster-y"}, names(result.Resources))

	x, ok := result.Find(clusterRef("sub-2", "cluster-x").ID)
	require.True(t, ok)
	assert.Len(t, x.Databases, 2)

	y, ok := result.Find(clusterRef("sub-2", "cluster-y").ID)
	require.True(t, ok)
	assert.Empty(t, y.Databases)

	assert.Equal(t, ResultCounts{Simple: 3, Clustered: 2, Databases: 2}, result.Counts())

	// subscription N+1 starts only after every cluster of N was handled
	assert.Equal(t, []string{
		"subscriptions",
		"simple:sub-1",
		"clustered:sub-1",
		"simple:sub-2",
		"clustered:sub-2",
		"databases:cluster-x",
		"databases:cluster-y",
	}, f.calls)

	p := o.Progress()
	assert.Equal(t, PhaseDone, p.Phase)
	assert.Equal(t, 2, p.SubscriptionsTotal)
	assert.Equal(t, 2, p.SubscriptionsDone)
	assert.NotEmpty(t, p.RunID)
}

func TestDiscoverTwiceIsStable(t *testing.T) {
	f := newFixture()
	o := NewOrchestrator(f)

	first := o.Discover(context.Background(), testCredential())
	second := o.Discover(context.Background(), testCredential())

	assert.ElementsMatch(t, first.Resources, second.Resources)
	assert.Equal(t, first.Complete, second.Complete)
}

func TestDiscoverSubscriptionListingFails(t *testing.T) {
	f := newFixture()
	f.subscriptionsErr = &azureshared.TransportError{Err: errors.New("connection refused")}

	o := NewOrchestrator(f)
	result := o.Discover(context.Background(), testCredential())

	assert.False(t, result.Complete)
	assert.Empty(t, result.Resources)
	assert.NotNil(t, result.Resources)

	var transportErr *azureshared.TransportError
	assert.True(t, errors.As(result.Err, &transportErr))
	assert.Equal(t, []string{"subscriptions"}, f.calls)
	assert.Equal(t, PhaseFailed, o.Progress().Phase)
}

func TestDiscoverNoSubscriptions(t *testing.T) {
	o := NewOrchestrator(&fakeEnumerator{})
	result := o.Discover(context.Background(), testCredential())

	assert.True(t, result.Complete)
	assert.NoError(t, result.Err)
	assert.Empty(t, result.Resources)
	assert.Equal(t, PhaseDone, o.Progress().Phase)
}

func TestDiscoverLocalFailures(t *testing.T) {
	newFailingFixture := func() *fakeEnumerator {
		f := newFixture()
		f.clusteredErr = map[string]error{
			"sub-1": &azureshared.EnumerationFailure{
				Scope:          azureshared.FailureScopeSubscription,
				SubscriptionID: "sub-1",
				Collection:     manual.CollectionRedisEnterprise,
				Err:            errors.New("boom"),
			},
		}
		f.databasesErr = map[string]error{
			"cluster-x": &azureshared.EnumerationFailure{
				Scope:      azureshared.FailureScopeCluster,
				ResourceID: clusterRef("sub-2", "cluster-x").ID,
				Collection: manual.CollectionDatabases,
				Err:        errors.New("boom"),
			},
		}
		return f
	}

	t.Run("drop", func(t *testing.T) {
		o := NewOrchestrator(newFailingFixture())
		result := o.Discover(context.Background(), testCredential())

		assert.True(t, result.Complete)
		assert.NoError(t, result.Err)
		assert.Empty(t, result.PartialFailures)
		assert.Equal(t, []string{"cache-a", "cache-b", "cache-c", "cluster-x", "cluster-y"}, names(result.Resources))

		x, _ := result.Find(clusterRef("sub-2", "cluster-x").ID)
		assert.Empty(t, x.Databases)
	})

	t.Run("report", func(t *testing.T) {
		o := NewOrchestrator(newFailingFixture(), WithPartialFailurePolicy(PartialFailurePolicyReport))
		result := o.Discover(context.Background(), testCredential())

		assert.True(t, result.Complete)
		require.Len(t, result.PartialFailures, 2)
		assert.Equal(t, azureshared.FailureScopeSubscription, result.PartialFailures[0].Scope)
		assert.Equal(t, manual.CollectionRedisEnterprise, result.PartialFailures[0].Collection)
		assert.Equal(t, azureshared.FailureScopeCluster, result.PartialFailures[1].Scope)
	})

	t.Run("untyped errors are wrapped", func(t *testing.T) {
		f := newFixture()
		f.simpleErr = map[string]error{"sub-1": errors.New("plain")}

		o := NewOrchestrator(f, WithPartialFailurePolicy(PartialFailurePolicyReport))
		result := o.Discover(context.Background(), testCredential())

		require.Len(t, result.PartialFailures, 1)
		failure := result.PartialFailures[0]
		assert.EqualError(t, failure.Err, "plain")
		assert.Equal(t, azureshared.FailureScopeSubscription, failure.Scope)
		assert.Equal(t, "sub-1", failure.SubscriptionID)
		assert.Equal(t, azureshared.CollectionRedis, failure.Collection)
	})

	t.Run("untyped database errors are scoped to the cluster", func(t *testing.T) {
		f := newFixture()
		f.databasesErr = map[string]error{"cluster-x": errors.New("plain")}

		o := NewOrchestrator(f, WithPartialFailurePolicy(PartialFailurePolicyReport))
		result := o.Discover(context.Background(), testCredential())

		require.Len(t, result.PartialFailures, 1)
		failure := result.PartialFailures[0]
		assert.Equal(t, azureshared.FailureScopeCluster, failure.Scope)
		assert.Equal(t, "sub-2", failure.SubscriptionID)
		assert.Equal(t, clusterRef("sub-2", "cluster-x").ID, failure.ResourceID)
		assert.Equal(t, azureshared.CollectionDatabases, failure.Collection)
		assert.Contains(t, failure.Error(), "cluster-x")
	})
}

func TestDiscoverObserversSeeDroppedFailures(t *testing.T) {
	f := newFixture()
	f.clusteredErr = map[string]error{"sub-1": errors.New("throttled")}
	f.databasesErr = map[string]error{"cluster-x": errors.New("forbidden")}

	var seen []Progress
	tracker := NewProgressTracker(ProgressObserverFunc(func(p Progress) {
		seen = append(seen, p)
	}))

	o := NewOrchestrator(f, WithProgressTracker(tracker))
	result := o.Discover(context.Background(), testCredential())

	assert.True(t, result.Complete)
	assert.Empty(t, result.PartialFailures)

	var failures []*azureshared.EnumerationFailure
	for i, p := range seen {
		if i > 0 && p.PartialFailures > seen[i-1].PartialFailures {
			failures = append(failures, p.LastFailure)
		}
	}
	require.Len(t, failures, 2)
	assert.Equal(t, azureshared.CollectionRedisEnterprise, failures[0].Collection)
	assert.EqualError(t, failures[0].Err, "throttled")
	assert.Equal(t, azureshared.CollectionDatabases, failures[1].Collection)
	assert.EqualError(t, failures[1].Err, "forbidden")

	final := o.Progress()
	assert.Equal(t, PhaseDone, final.Phase)
	assert.Equal(t, 2, final.PartialFailures)
	require.NotNil(t, final.LastFailure)
	assert.Equal(t, azureshared.FailureScopeCluster, final.LastFailure.Scope)

	// a new run starts counting from zero
	f.clusteredErr = nil
	f.databasesErr = nil
	o.Discover(context.Background(), testCredential())
	assert.Zero(t, o.Progress().PartialFailures)
	assert.Nil(t, o.Progress().LastFailure)
}

func TestDiscoverCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := newFixture()
	f.onCall = func(call string) {
		if call == "clustered:sub-1" {
			cancel()
		}
	}

	o := NewOrchestrator(f)
	result := o.Discover(ctx, testCredential())

	assert.False(t, result.Complete)
	assert.Empty(t, result.Resources)
	assert.ErrorIs(t, result.Err, context.Canceled)
	assert.Equal(t, PhaseFailed, o.Progress().Phase)

	// no call after the cancellation point
	assert.Equal(t, []string{"subscriptions", "simple:sub-1", "clustered:sub-1"}, f.calls)
}

func TestDiscoverCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := NewOrchestrator(newFixture())
	result := o.Discover(ctx, testCredential())

	assert.False(t, result.Complete)
	assert.ErrorIs(t, result.Err, context.Canceled)
}

func TestDiscoverPhaseSequence(t *testing.T) {
	f := newFixture()
	f.subscriptions = f.subscriptions[1:]

	var phases []Phase
	tracker := NewProgressTracker(ProgressObserverFunc(func(p Progress) {
		if len(phases) == 0 || phases[len(phases)-1] != p.Phase {
			phases = append(phases, p.Phase)
		}
	}))

	o := NewOrchestrator(f, WithProgressTracker(tracker))
	o.Discover(context.Background(), testCredential())

	assert.Equal(t, []Phase{
		PhaseListingSubscriptions,
		PhaseListingSimple,
		PhaseListingClustered,
		PhaseListingDatabasesForCluster,
		PhaseSubscriptionDone,
		PhaseDone,
	}, phases)
}

// The tests below run the orchestrator over the real enumerator with mocked
// management clients

func subscriptionsPage(ctrl *gomock.Controller, subs ...*armsubscriptions.Subscription) *mocks.MockSubscriptionsPager {
	pager := mocks.NewMockSubscriptionsPager(ctrl)
	gomock.InOrder(
		pager.EXPECT().More().Return(true),
		pager.EXPECT().NextPage(gomock.Any()).Return(armsubscriptions.ClientListResponse{
			SubscriptionListResult: armsubscriptions.SubscriptionListResult{Value: subs},
		}, nil),
		pager.EXPECT().More().Return(false),
	)
	return pager
}

func redisPage(ctrl *gomock.Controller, caches ...*armredis.ResourceInfo) *mocks.MockRedisPager {
	pager := mocks.NewMockRedisPager(ctrl)
	gomock.InOrder(
		pager.EXPECT().More().Return(true),
		pager.EXPECT().NextPage(gomock.Any()).Return(armredis.ClientListBySubscriptionResponse{
			ListResult: armredis.ListResult{Value: caches},
		}, nil),
		pager.EXPECT().More().Return(false),
	)
	return pager
}

func TestDiscoverSingleSimpleResource(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewClientSet(ctrl)

	m.Subscriptions.EXPECT().List().Return(subscriptionsPage(ctrl, &armsubscriptions.Subscription{SubscriptionID: to.Ptr("sub-1"), DisplayName: to.Ptr("One")}))
	m.Redis.EXPECT().ListBySubscription("sub-1").Return(redisPage(ctrl, &armredis.ResourceInfo{
		ID:   to.Ptr("/subscriptions/sub-1/resourceGroups/rg/providers/Microsoft.Cache/redis/cache-a"),
		Name: to.Ptr("cache-a"),
		Properties: &armredis.Properties{
			HostName: to.Ptr("cache-a.redis.cache.windows.net"),
			SSLPort:  to.Ptr(int32(6380)),
		},
	}), nil)

	clusters := mocks.NewMockClustersPager(ctrl)
	clusters.EXPECT().More().Return(false)
	m.RedisEnterprise.EXPECT().List("sub-1").Return(clusters, nil)

	o := NewOrchestrator(manual.NewEnumerator(m.Factory(), 0))
	result := o.Discover(context.Background(), testCredential())

	require.NoError(t, result.Err)
	assert.True(t, result.Complete)
	require.Len(t, result.Resources, 1)

	r := result.Resources[0]
	assert.Equal(t, azureshared.ResourceKindSimple, r.Kind)
	assert.Equal(t, "cache-a", r.Name)
	require.NotNil(t, r.Simple)
	assert.Equal(t, 6380, *r.Simple.SSLPort)
}

func TestDiscoverClusteredListingServerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewClientSet(ctrl)

	m.Subscriptions.EXPECT().List().Return(subscriptionsPage(ctrl, &armsubscriptions.Subscription{SubscriptionID: to.Ptr("sub-1")}))
	m.Redis.EXPECT().ListBySubscription("sub-1").Return(redisPage(ctrl, &armredis.ResourceInfo{
		ID:         to.Ptr("/subscriptions/sub-1/resourceGroups/rg/providers/Microsoft.Cache/redis/cache-a"),
		Name:       to.Ptr("cache-a"),
		Properties: &armredis.Properties{HostName: to.Ptr("cache-a.redis.cache.windows.net")},
	}), nil)

	clusters := mocks.NewMockClustersPager(ctrl)
	gomock.InOrder(
		clusters.EXPECT().More().Return(true),
		clusters.EXPECT().NextPage(gomock.Any()).Return(armredisenterprise.ClientListResponse{}, &azcore.ResponseError{
			StatusCode: http.StatusInternalServerError,
			ErrorCode:  "InternalServerError",
		}),
	)
	m.RedisEnterprise.EXPECT().List("sub-1").Return(clusters, nil)

	o := NewOrchestrator(manual.NewEnumerator(m.Factory(), 0), WithPartialFailurePolicy(PartialFailurePolicyReport))
	result := o.Discover(context.Background(), testCredential())

	require.NoError(t, result.Err)
	assert.True(t, result.Complete)
	assert.Equal(t, []string{"cache-a"}, names(result.Resources))
	assert.Zero(t, result.Counts().Clustered)

	require.Len(t, result.PartialFailures, 1)
	status, ok := azureshared.ResponseStatus(result.PartialFailures[0])
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, status)
}
