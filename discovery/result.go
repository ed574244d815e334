package discovery

import (
	"fmt"
	"strings"

	azureshared "github.com/overmindtech/cache-discovery/sources/azure/shared"
)

// PartialFailurePolicy controls whether enumeration failures inside a
// subscription or cluster are surfaced on the DiscoveryResult
type PartialFailurePolicy int

const (
	// PartialFailurePolicyDrop only reports partial failures to observers and
	// logs. The result is shorter than it would otherwise be.
	PartialFailurePolicyDrop PartialFailurePolicy = iota
	// PartialFailurePolicyReport additionally lists them on
	// DiscoveryResult.PartialFailures
	PartialFailurePolicyReport
)

func (p PartialFailurePolicy) String() string {
	switch p {
	case PartialFailurePolicyDrop:
		return "drop"
	case PartialFailurePolicyReport:
		return "report"
	default:
		return fmt.Sprintf("PartialFailurePolicy(%d)", int(p))
	}
}

// ParsePartialFailurePolicy parses "drop" or "report". An empty string is drop.
func ParsePartialFailurePolicy(s string) (PartialFailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "drop":
		return PartialFailurePolicyDrop, nil
	case "report":
		return PartialFailurePolicyReport, nil
	default:
		return PartialFailurePolicyDrop, fmt.Errorf("invalid partial failure policy %q, must be one of: drop, report", s)
	}
}

// DiscoveryResult is the outcome of one discovery run
type DiscoveryResult struct {
	// Resources are ordered by subscription, then Simple before Clustered,
	// then in the order the management API returned them
	Resources []azureshared.ResourceRef `json:"resources"`
	// Complete is false only when the subscription listing failed or the
	// run was cancelled
	Complete bool  `json:"complete"`
	Err      error `json:"-"`
	// PartialFailures is only populated under PartialFailurePolicyReport
	PartialFailures []*azureshared.EnumerationFailure `json:"partialFailures,omitempty"`
}

// Find returns the resource with the given ID, compared case-insensitively
func (r DiscoveryResult) Find(id string) (azureshared.ResourceRef, bool) {
	for _, res := range r.Resources {
		if azureshared.SameResourceID(res.ID, id) {
			return res, true
		}
	}
	return azureshared.ResourceRef{}, false
}

// ResultCounts summarises a result
type ResultCounts struct {
	Simple    int
	Clustered int
	Databases int
}

func (r DiscoveryResult) Counts() ResultCounts {
	var c ResultCounts
	for _, res := range r.Resources {
		switch res.Kind {
		case azureshared.ResourceKindSimple:
			c.Simple++
		case azureshared.ResourceKindClustered:
			c.Clustered++
			c.Databases += len(res.Databases)
		}
	}
	return c
}
