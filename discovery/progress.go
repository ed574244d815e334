package discovery

import (
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	azureshared "github.com/overmindtech/cache-discovery/sources/azure/shared"
)

// Phase is a state of a discovery run
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseListingSubscriptions
	PhaseListingSimple
	PhaseListingClustered
	PhaseListingDatabasesForCluster
	PhaseSubscriptionDone
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseListingSubscriptions:
		return "ListingSubscriptions"
	case PhaseListingSimple:
		return "ListingSimple"
	case PhaseListingClustered:
		return "ListingClustered"
	case PhaseListingDatabasesForCluster:
		return "ListingDatabasesForCluster"
	case PhaseSubscriptionDone:
		return "SubscriptionDone"
	case PhaseDone:
		return "Done"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Terminal reports whether the run has finished
func (p Phase) Terminal() bool {
	return p == PhaseDone || p == PhaseFailed
}

// Progress is a point-in-time view of a discovery run. Values handed out by
// the tracker are never modified afterwards.
type Progress struct {
	RunID string `json:"runId,omitempty"`
	Phase Phase  `json:"phase"`

	SubscriptionsTotal int `json:"subscriptionsTotal"`
	SubscriptionsDone  int `json:"subscriptionsDone"`
	// ClustersTotal and ClustersDone count clusters of the current
	// subscription
	ClustersTotal int `json:"clustersTotal"`
	ClustersDone  int `json:"clustersDone"`

	CurrentSubscription string `json:"currentSubscription,omitempty"`
	CurrentCluster      string `json:"currentCluster,omitempty"`

	// PartialFailures counts local failures of this run whatever the
	// partial failure policy is
	PartialFailures int                             `json:"partialFailures"`
	LastFailure     *azureshared.EnumerationFailure `json:"lastFailure,omitempty"`

	StartedAt time.Time     `json:"startedAt"`
	Elapsed   time.Duration `json:"elapsed"`
}

// ProgressObserver is notified after every phase transition and after every
// local failure. Notifications
// are delivered synchronously on the discovery goroutine, so implementations
// must not block.
type ProgressObserver interface {
	ProgressChanged(p Progress)
}

// ProgressObserverFunc adapts a function to a ProgressObserver
type ProgressObserverFunc func(p Progress)

func (f ProgressObserverFunc) ProgressChanged(p Progress) {
	f(p)
}

// ProgressTracker holds the progress of the current run. Every update
// replaces the whole value, so Snapshot is safe from any goroutine.
type ProgressTracker struct {
	current   atomic.Pointer[Progress]
	observers []ProgressObserver
	now       func() time.Time
}

// NewProgressTracker returns a tracker in the Idle phase
func NewProgressTracker(observers ...ProgressObserver) *ProgressTracker {
	t := &ProgressTracker{
		observers: observers,
		now:       time.Now,
	}
	t.current.Store(&Progress{Phase: PhaseIdle})
	return t
}

// Snapshot returns the latest progress. Elapsed is computed at call time for
// runs that are still in flight.
func (t *ProgressTracker) Snapshot() Progress {
	p := *t.current.Load()
	if !p.StartedAt.IsZero() && !p.Phase.Terminal() {
		p.Elapsed = t.now().Sub(p.StartedAt)
	}
	return p
}

// start resets the tracker for a new run
func (t *ProgressTracker) start(runID string) {
	t.publish(&Progress{
		RunID:     runID,
		Phase:     PhaseListingSubscriptions,
		StartedAt: t.now(),
	})
}

// update copies the current value, applies fn to the copy and swaps it in
func (t *ProgressTracker) update(fn func(p *Progress)) {
	next := *t.current.Load()
	fn(&next)
	if !next.StartedAt.IsZero() {
		next.Elapsed = t.now().Sub(next.StartedAt)
	}
	t.publish(&next)
}

func (t *ProgressTracker) publish(p *Progress) {
	t.current.Store(p)
	for _, o := range t.observers {
		o.ProgressChanged(*p)
	}
}

// LogObserver logs every transition through logrus
type LogObserver struct {
	Logger *log.Logger
}

func (o LogObserver) ProgressChanged(p Progress) {
	logger := o.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	fields := log.Fields{
		"ovm.discovery.runId":              p.RunID,
		"ovm.discovery.phase":              p.Phase.String(),
		"ovm.discovery.subscriptionsTotal": p.SubscriptionsTotal,
		"ovm.discovery.subscriptionsDone":  p.SubscriptionsDone,
		"ovm.discovery.elapsed":            p.Elapsed.String(),
	}
	if p.CurrentSubscription != "" {
		fields["ovm.azure.subscriptionId"] = p.CurrentSubscription
	}
	if p.PartialFailures > 0 {
		fields["ovm.discovery.partialFailures"] = p.PartialFailures
	}
	if p.CurrentCluster != "" {
		fields["ovm.azure.resourceId"] = p.CurrentCluster
		fields["ovm.discovery.clustersTotal"] = p.ClustersTotal
		fields["ovm.discovery.clustersDone"] = p.ClustersDone
	}

	entry := logger.WithFields(fields)
	if p.Phase.Terminal() {
		entry.Info("Discovery run finished")
		return
	}
	entry.Debug("Discovery progress")
}
