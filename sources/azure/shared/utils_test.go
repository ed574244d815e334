package shared_test

import (
	"context"
	"testing"
	"time"

	azureshared "github.com/overmindtech/cache-discovery/sources/azure/shared"
)

const testCacheID = "/subscriptions/sub-1/resourceGroups/rg-cache/providers/Microsoft.Cache/redisEnterprise/cluster-x/databases/default"

func TestExtractResourceName(t *testing.T) {
	tests := []struct {
		name       string
		resourceID string
		expected   string
	}{
		{
			name:       "database",
			resourceID: testCacheID,
			expected:   "default",
		},
		{
			name:       "trailing slash",
			resourceID: "/subscriptions/sub-1/resourceGroups/rg/providers/Microsoft.Cache/redis/cache-a/",
			expected:   "cache-a",
		},
		{
			name:       "empty",
			resourceID: "",
			expected:   "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual := azureshared.ExtractResourceName(tc.resourceID)
			if actual != tc.expected {
				t.Errorf("ExtractResourceName(%q) = %q; want %q", tc.resourceID, actual, tc.expected)
			}
		})
	}
}

func TestResourceIDSegments(t *testing.T) {
	if got := azureshared.SubscriptionIDFromID(testCacheID); got != "sub-1" {
		t.Errorf("SubscriptionIDFromID = %q; want sub-1", got)
	}

	if got := azureshared.ResourceGroupFromID(testCacheID); got != "rg-cache" {
		t.Errorf("ResourceGroupFromID = %q; want rg-cache", got)
	}

	// ARM does not guarantee casing of the segment names
	lower := "/SUBSCRIPTIONS/sub-2/resourcegroups/RG/providers/Microsoft.Cache/redis/cache-b"
	if got := azureshared.ResourceGroupFromID(lower); got != "RG" {
		t.Errorf("ResourceGroupFromID = %q; want RG", got)
	}

	if got := azureshared.ResourceGroupFromID("not-an-id"); got != "" {
		t.Errorf("ResourceGroupFromID = %q; want empty", got)
	}

	parent := "/subscriptions/sub-1/resourceGroups/rg-cache/providers/Microsoft.Cache/redisEnterprise/cluster-x"
	if got := azureshared.ParentResourceID(testCacheID); got != parent {
		t.Errorf("ParentResourceID = %q; want %q", got, parent)
	}

	if !azureshared.SameResourceID(parent, "/Subscriptions/sub-1/resourcegroups/RG-CACHE/providers/microsoft.cache/redisenterprise/cluster-x/") {
		t.Error("expected resource IDs to compare case-insensitively")
	}
}

func TestConvertAzureTags(t *testing.T) {
	v := "prod"
	tags := azureshared.ConvertAzureTags(map[string]*string{"env": &v, "empty": nil})

	if len(tags) != 1 || tags["env"] != "prod" {
		t.Errorf("unexpected tags %v", tags)
	}

	if azureshared.ConvertAzureTags(nil) != nil {
		t.Error("expected nil tags for nil input")
	}
}

func TestWithRequestTimeout(t *testing.T) {
	ctx, cancel := azureshared.WithRequestTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, ok := ctx.Deadline(); !ok {
		t.Error("expected a deadline")
	}

	ctx, cancel = azureshared.WithRequestTimeout(context.Background(), 0)
	defer cancel()

	if _, ok := ctx.Deadline(); ok {
		t.Error("expected no deadline for a zero timeout")
	}
}
