package mocks

import (
	"go.uber.org/mock/gomock"
)

// Type aliases and helper functions to match the expected mock names in tests.
// These allow tests to use the shorter names while the actual mocks implement
// the concrete interfaces.

// MockSubscriptionsPager is a type alias for MockSubscriptionsPagerInterface.
type MockSubscriptionsPager = MockSubscriptionsPagerInterface

// NewMockSubscriptionsPager creates a new mock instance of SubscriptionsPager.
func NewMockSubscriptionsPager(ctrl *gomock.Controller) *MockSubscriptionsPager {
	return NewMockSubscriptionsPagerInterface(ctrl)
}

// MockRedisPager is a type alias for MockRedisPagerInterface.
type MockRedisPager = MockRedisPagerInterface

// NewMockRedisPager creates a new mock instance of RedisPager.
func NewMockRedisPager(ctrl *gomock.Controller) *MockRedisPager {
	return NewMockRedisPagerInterface(ctrl)
}

// MockClustersPager is a type alias for MockClustersPagerInterface.
type MockClustersPager = MockClustersPagerInterface

// NewMockClustersPager creates a new mock instance of ClustersPager.
func NewMockClustersPager(ctrl *gomock.Controller) *MockClustersPager {
	return NewMockClustersPagerInterface(ctrl)
}

// MockDatabasesPager is a type alias for MockDatabasesPagerInterface.
type MockDatabasesPager = MockDatabasesPagerInterface

// NewMockDatabasesPager creates a new mock instance of DatabasesPager.
func NewMockDatabasesPager(ctrl *gomock.Controller) *MockDatabasesPager {
	return NewMockDatabasesPagerInterface(ctrl)
}
