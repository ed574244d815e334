package discovery

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressTrackerSnapshot(t *testing.T) {
	clock := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	tracker := NewProgressTracker()
	tracker.now = func() time.Time { return clock }

	assert.Equal(t, PhaseIdle, tracker.Snapshot().Phase)

	tracker.start("run-1")
	clock = clock.Add(3 * time.Second)

	p := tracker.Snapshot()
	assert.Equal(t, PhaseListingSubscriptions, p.Phase)
	assert.Equal(t, "run-1", p.RunID)
	assert.Equal(t, 3*time.Second, p.Elapsed)

	tracker.update(func(p *Progress) {
		p.Phase = PhaseDone
	})
	clock = clock.Add(time.Minute)

	// elapsed is frozen once the run is over
	assert.Equal(t, 3*time.Second, tracker.Snapshot().Elapsed)
}

func TestProgressTrackerUpdateDoesNotMutatePublishedValues(t *testing.T) {
	tracker := NewProgressTracker()
	tracker.start("run-1")

	before := tracker.current.Load()
	tracker.update(func(p *Progress) {
		p.SubscriptionsTotal = 5
	})
	after := tracker.current.Load()

	assert.NotSame(t, before, after)
	assert.Equal(t, 0, before.SubscriptionsTotal)
	assert.Equal(t, 5, after.SubscriptionsTotal)
}

func TestProgressTrackerConcurrentReaders(t *testing.T) {
	tracker := NewProgressTracker()
	tracker.start("run-1")

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				p := tracker.Snapshot()
				// done never runs ahead of total
				if p.SubscriptionsDone > p.SubscriptionsTotal {
					t.Errorf("inconsistent snapshot: %+v", p)
					return
				}
			}
		}()
	}

	for i := 1; i <= 1000; i++ {
		tracker.update(func(p *Progress) {
			p.SubscriptionsTotal = i
			p.SubscriptionsDone = i
		})
	}

	close(stop)
	wg.Wait()
}

func TestProgressObserversSeeEveryUpdate(t *testing.T) {
	var seen []Progress
	tracker := NewProgressTracker(ProgressObserverFunc(func(p Progress) {
		seen = append(seen, p)
	}))

	tracker.start("run-1")
	tracker.update(func(p *Progress) { p.Phase = PhaseListingSimple })
	tracker.update(func(p *Progress) { p.Phase = PhaseDone })

	require.Len(t, seen, 3)
	assert.Equal(t, PhaseListingSubscriptions, seen[0].Phase)
	assert.Equal(t, PhaseListingSimple, seen[1].Phase)
	assert.Equal(t, PhaseDone, seen[2].Phase)
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&log.JSONFormatter{})
	logger.SetLevel(log.InfoLevel)

	o := LogObserver{Logger: logger}
	o.ProgressChanged(Progress{RunID: "run-1", Phase: PhaseListingSimple})
	assert.Empty(t, buf.String())

	o.ProgressChanged(Progress{RunID: "run-1", Phase: PhaseDone, SubscriptionsTotal: 2, SubscriptionsDone: 2, PartialFailures: 1})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Discovery run finished", entry["msg"])
	assert.Equal(t, "Done", entry["ovm.discovery.phase"])
	assert.Equal(t, "run-1", entry["ovm.discovery.runId"])
	assert.InDelta(t, 1, entry["ovm.discovery.partialFailures"], 0)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "ListingDatabasesForCluster", PhaseListingDatabasesForCluster.String())
	assert.Equal(t, "Unknown", Phase(99).String())
	assert.True(t, PhaseFailed.Terminal())
	assert.False(t, PhaseSubscriptionDone.Terminal())
}
