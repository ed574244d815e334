package shared

import (
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

var (
	ErrCredentialExpired   = errors.New("delegated credential has expired")
	ErrMissingAccessToken  = errors.New("delegated credential has no access token")
	ErrUnknownResourceKind = errors.New("unknown resource kind")
	ErrMissingHost         = errors.New("resource has no host name")
)

// TransportError is a failure of the top-level subscription listing. It is
// fatal for a discovery run.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not list subscriptions: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FailureScope says which branch of a discovery run an EnumerationFailure
// emptied
type FailureScope int

const (
	FailureScopeSubscription FailureScope = iota + 1
	FailureScopeCluster
)

func (s FailureScope) String() string {
	switch s {
	case FailureScopeSubscription:
		return "subscription"
	case FailureScopeCluster:
		return "cluster"
	default:
		return fmt.Sprintf("FailureScope(%d)", int(s))
	}
}

func (s FailureScope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// EnumerationFailure is a failure listing one collection inside one
// subscription or cluster. The run continues and the affected branch is empty.
// Collection names used on EnumerationFailure
const (
	CollectionRedis           = "redis"
	CollectionRedisEnterprise = "redisEnterprise"
	CollectionDatabases       = "databases"
)

type EnumerationFailure struct {
	Scope          FailureScope `json:"scope"`
	SubscriptionID string       `json:"subscriptionId"`
	// ResourceID is the cluster ID for cluster-scoped failures
	ResourceID string `json:"resourceId,omitempty"`
	Collection string `json:"collection"`
	Err        error  `json:"-"`
}

func (e *EnumerationFailure) Error() string {
	if e.Scope == FailureScopeCluster {
		return fmt.Sprintf("could not list %s for cluster %s: %v", e.Collection, e.ResourceID, e.Err)
	}
	return fmt.Sprintf("could not list %s in subscription %s: %v", e.Collection, e.SubscriptionID, e.Err)
}

func (e *EnumerationFailure) Unwrap() error {
	return e.Err
}

// ResolutionReason classifies a ResolutionError
type ResolutionReason int

const (
	// MissingDatabaseSelection means a clustered resource was resolved
	// without choosing one of its databases
	MissingDatabaseSelection ResolutionReason = iota + 1
	// KeyRetrievalFailed means the listKeys call did not succeed
	KeyRetrievalFailed
	// DatabaseNotInResource means the database belongs to another cluster
	DatabaseNotInResource
)

func (r ResolutionReason) String() string {
	switch r {
	case MissingDatabaseSelection:
		return "MissingDatabaseSelection"
	case KeyRetrievalFailed:
		return "KeyRetrievalFailed"
	case DatabaseNotInResource:
		return "DatabaseNotInResource"
	default:
		return fmt.Sprintf("ResolutionReason(%d)", int(r))
	}
}

// ResolutionError is returned by connection resolution and is never retried
type ResolutionError struct {
	Reason   ResolutionReason
	Resource string
	// StatusCode and Body are set for KeyRetrievalFailed when the management
	// API answered. StatusCode is 0 when no response was received.
	StatusCode int
	Body       string
	Err        error
}

func (e *ResolutionError) Error() string {
	switch e.Reason {
	case MissingDatabaseSelection:
		return fmt.Sprintf("%s is a clustered resource, a database must be selected", e.Resource)
	case KeyRetrievalFailed:
		if e.StatusCode != 0 {
			return fmt.Sprintf("could not retrieve access keys for %s: status %d", e.Resource, e.StatusCode)
		}
		return fmt.Sprintf("could not retrieve access keys for %s: %v", e.Resource, e.Err)
	case DatabaseNotInResource:
		return fmt.Sprintf("database does not belong to %s", e.Resource)
	default:
		return fmt.Sprintf("could not resolve %s: %v", e.Resource, e.Err)
	}
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ResponseStatus returns the HTTP status code of an Azure response error
// anywhere in err's chain
func ResponseStatus(err error) (int, bool) {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode, true
	}
	return 0, false
}
