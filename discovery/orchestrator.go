package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	azureshared "github.com/overmindtech/cache-discovery/sources/azure/shared"
	"github.com/overmindtech/cache-discovery/tracing"
)

// Enumerator lists the management API collections a run walks through
type Enumerator interface {
	ListSubscriptions(ctx context.Context, cred *azureshared.DelegatedCredential) ([]azureshared.SubscriptionRef, error)
	ListSimpleResources(ctx context.Context, sub azureshared.SubscriptionRef, cred *azureshared.DelegatedCredential) ([]azureshared.ResourceRef, error)
	ListClusteredResources(ctx context.Context, sub azureshared.SubscriptionRef, cred *azureshared.DelegatedCredential) ([]azureshared.ResourceRef, error)
	ListDatabases(ctx context.Context, cluster azureshared.ResourceRef, cred *azureshared.DelegatedCredential) ([]azureshared.DatabaseRef, error)
}

// Orchestrator runs discovery: subscriptions, then the caches and databases
// in each of them. Work is strictly sequential, subscription N+1 is not
// listed before every cluster of subscription N has been handled.
type Orchestrator struct {
	enumerator Enumerator
	policy     PartialFailurePolicy
	progress   *ProgressTracker

	// runMu serialises runs so that progress always describes one run
	runMu sync.Mutex
}

type Option func(*Orchestrator)

// WithPartialFailurePolicy sets how local enumeration failures are surfaced
func WithPartialFailurePolicy(p PartialFailurePolicy) Option {
	return func(o *Orchestrator) {
		o.policy = p
	}
}

// WithProgressTracker replaces the default tracker, useful to attach
// observers
func WithProgressTracker(t *ProgressTracker) Option {
	return func(o *Orchestrator) {
		o.progress = t
	}
}

func NewOrchestrator(enumerator Enumerator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		enumerator: enumerator,
		policy:     PartialFailurePolicyDrop,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.progress == nil {
		o.progress = NewProgressTracker(LogObserver{})
	}
	return o
}

// Progress returns the progress of the current or last run
func (o *Orchestrator) Progress() Progress {
	return o.progress.Snapshot()
}

// Discover enumerates every cache the credential can see. Only a failed
// subscription listing or a cancelled context make the result incomplete;
// failures inside one subscription or cluster leave that branch empty.
func (o *Orchestrator) Discover(ctx context.Context, cred *azureshared.DelegatedCredential) DiscoveryResult {
	o.runMu.Lock()
	defer o.runMu.Unlock()

	runID := uuid.New().String()

	ctx, span := tracing.Tracer().Start(ctx, "Discover", trace.WithAttributes(
		attribute.String("ovm.discovery.runId", runID),
		attribute.String("ovm.discovery.partialFailurePolicy", o.policy.String()),
	))
	defer span.End()

	o.progress.start(runID)

	subscriptions, err := o.enumerator.ListSubscriptions(ctx, cred)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return o.fail(ctx, span, err)
	}

	o.progress.update(func(p *Progress) {
		p.SubscriptionsTotal = len(subscriptions)
	})
	span.SetAttributes(attribute.Int("ovm.discovery.subscriptions", len(subscriptions)))

	result := DiscoveryResult{
		Resources: make([]azureshared.ResourceRef, 0),
	}

	for _, sub := range subscriptions {
		resources, failures, err := o.discoverSubscription(ctx, sub, cred)
		if err != nil {
			return o.fail(ctx, span, err)
		}

		result.Resources = append(result.Resources, resources...)
		if o.policy == PartialFailurePolicyReport {
			result.PartialFailures = append(result.PartialFailures, failures...)
		}
	}

	result.Complete = true
	o.progress.update(func(p *Progress) {
		p.Phase = PhaseDone
		p.CurrentSubscription = ""
		p.CurrentCluster = ""
	})

	counts := result.Counts()
	span.SetAttributes(
		attribute.Int("ovm.discovery.simple", counts.Simple),
		attribute.Int("ovm.discovery.clustered", counts.Clustered),
		attribute.Int("ovm.discovery.databases", counts.Databases),
	)

	return result
}

// discoverSubscription handles one subscription. The returned error is only
// set when the run was cancelled.
func (o *Orchestrator) discoverSubscription(ctx context.Context, sub azureshared.SubscriptionRef, cred *azureshared.DelegatedCredential) ([]azureshared.ResourceRef, []*azureshared.EnumerationFailure, error) {
	ctx, span := tracing.Tracer().Start(ctx, "DiscoverSubscription", trace.WithAttributes(
		attribute.String("ovm.azure.subscriptionId", sub.ID),
	))
	defer span.End()

	var failures []*azureshared.EnumerationFailure

	o.progress.update(func(p *Progress) {
		p.Phase = PhaseListingSimple
		p.CurrentSubscription = sub.ID
		p.CurrentCluster = ""
		p.ClustersTotal = 0
		p.ClustersDone = 0
	})

	simple, err := o.enumerator.ListSimpleResources(ctx, sub, cred)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, nil, ctxErr
	}
	if err != nil {
		failures = append(failures, o.localFailure(ctx, err, azureshared.EnumerationFailure{
			Scope:          azureshared.FailureScopeSubscription,
			SubscriptionID: sub.ID,
			Collection:     azureshared.CollectionRedis,
		}))
		simple = nil
	}

	o.progress.update(func(p *Progress) {
		p.Phase = PhaseListingClustered
	})

	clustered, err := o.enumerator.ListClusteredResources(ctx, sub, cred)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, nil, ctxErr
	}
	if err != nil {
		failures = append(failures, o.localFailure(ctx, err, azureshared.EnumerationFailure{
			Scope:          azureshared.FailureScopeSubscription,
			SubscriptionID: sub.ID,
			Collection:     azureshared.CollectionRedisEnterprise,
		}))
		clustered = nil
	}

	o.progress.update(func(p *Progress) {
		p.ClustersTotal = len(clustered)
	})

	for i := range clustered {
		cluster := &clustered[i]

		o.progress.update(func(p *Progress) {
			p.Phase = PhaseListingDatabasesForCluster
			p.CurrentCluster = cluster.ID
		})

		dbs, err := o.listDatabases(ctx, *cluster, cred)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}
		if err != nil {
			failures = append(failures, o.localFailure(ctx, err, azureshared.EnumerationFailure{
				Scope:          azureshared.FailureScopeCluster,
				SubscriptionID: sub.ID,
				ResourceID:     cluster.ID,
				Collection:     azureshared.CollectionDatabases,
			}))
			dbs = nil
		}
		// zero databases is a valid outcome
		cluster.Databases = dbs

		o.progress.update(func(p *Progress) {
			p.ClustersDone++
		})
	}

	o.progress.update(func(p *Progress) {
		p.Phase = PhaseSubscriptionDone
		p.CurrentCluster = ""
		p.SubscriptionsDone++
	})

	resources := make([]azureshared.ResourceRef, 0, len(simple)+len(clustered))
	resources = append(resources, simple...)
	resources = append(resources, clustered...)

	span.SetAttributes(
		attribute.Int("ovm.discovery.resources", len(resources)),
		attribute.Int("ovm.discovery.partialFailures", len(failures)),
	)

	return resources, failures, nil
}

func (o *Orchestrator) listDatabases(ctx context.Context, cluster azureshared.ResourceRef, cred *azureshared.DelegatedCredential) ([]azureshared.DatabaseRef, error) {
	ctx, span := tracing.Tracer().Start(ctx, "ListDatabases", trace.WithAttributes(
		attribute.String("ovm.azure.resourceId", cluster.ID),
	))
	defer span.End()

	dbs, err := o.enumerator.ListDatabases(ctx, cluster, cred)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("ovm.discovery.databases", len(dbs)))

	return dbs, nil
}

// localFailure records a failure that only empties one branch of the run.
// Errors that are not an EnumerationFailure are described by where, which
// names the call that failed.
func (o *Orchestrator) localFailure(ctx context.Context, err error, where azureshared.EnumerationFailure) *azureshared.EnumerationFailure {
	var failure *azureshared.EnumerationFailure
	if !errors.As(err, &failure) {
		where.Err = err
		failure = &where
	}

	o.progress.update(func(p *Progress) {
		p.PartialFailures++
		p.LastFailure = failure
	})

	fields := log.Fields{
		"ovm.azure.subscriptionId":   failure.SubscriptionID,
		"ovm.discovery.collection":   failure.Collection,
		"ovm.discovery.failureScope": failure.Scope.String(),
	}
	if failure.ResourceID != "" {
		fields["ovm.azure.resourceId"] = failure.ResourceID
	}
	if status, ok := azureshared.ResponseStatus(err); ok {
		fields["ovm.azure.statusCode"] = status
	}
	log.WithContext(ctx).WithError(err).WithFields(fields).Warn("Partial discovery failure")

	span := trace.SpanFromContext(ctx)
	span.AddEvent("partial failure", trace.WithAttributes(
		attribute.String("ovm.discovery.collection", failure.Collection),
		attribute.String("ovm.discovery.error", err.Error()),
	))

	return failure
}

func (o *Orchestrator) fail(ctx context.Context, span trace.Span, err error) DiscoveryResult {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if !errors.Is(err, ctxErr) {
			err = ctxErr
		}
		err = fmt.Errorf("discovery cancelled: %w", err)
	}

	o.progress.update(func(p *Progress) {
		p.Phase = PhaseFailed
	})

	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
	log.WithContext(ctx).WithError(err).Error("Discovery failed")

	return DiscoveryResult{
		Resources: []azureshared.ResourceRef{},
		Complete:  false,
		Err:       err,
	}
}
