package shared

import (
	"context"
	"strings"
	"time"
)

// ExtractResourceName extracts the resource name from an Azure resource ID
// Azure resource IDs follow the format:
// /subscriptions/{subscriptionId}/resourceGroups/{resourceGroupName}/providers/{resourceProvider}/{resourceType}/{resourceName}
// This function returns the last segment of the path, which is typically the resource name
func ExtractResourceName(resourceID string) string {
	resourceID = strings.TrimSuffix(resourceID, "/")
	if resourceID == "" {
		return ""
	}

	parts := strings.Split(resourceID, "/")
	return parts[len(parts)-1]
}

// ResourceGroupFromID returns the resource group segment of a resource ID
func ResourceGroupFromID(resourceID string) string {
	return segmentAfter(resourceID, "resourceGroups")
}

// SubscriptionIDFromID returns the subscription segment of a resource ID
func SubscriptionIDFromID(resourceID string) string {
	return segmentAfter(resourceID, "subscriptions")
}

// ParentResourceID strips the last type/name pair from a child resource ID,
// so a database ID becomes its cluster's ID
func ParentResourceID(resourceID string) string {
	parts := strings.Split(strings.TrimSuffix(resourceID, "/"), "/")
	if len(parts) < 3 {
		return ""
	}
	return strings.Join(parts[:len(parts)-2], "/")
}

// Resource IDs are case-insensitive, so the key is matched with EqualFold
func segmentAfter(resourceID, key string) string {
	parts := strings.Split(resourceID, "/")
	for i := 0; i < len(parts)-1; i++ {
		if strings.EqualFold(parts[i], key) {
			return parts[i+1]
		}
	}
	return ""
}

// SameResourceID compares two resource IDs the way ARM does
func SameResourceID(a, b string) bool {
	return strings.EqualFold(strings.TrimSuffix(a, "/"), strings.TrimSuffix(b, "/"))
}

// ConvertAzureTags converts Azure tags (map[string]*string) to plain tags (map[string]string)
func ConvertAzureTags(azureTags map[string]*string) map[string]string {
	if azureTags == nil {
		return nil
	}

	tags := make(map[string]string, len(azureTags))
	for k, v := range azureTags {
		if v != nil {
			tags[k] = *v
		}
	}
	return tags
}

// WithRequestTimeout bounds a single management API call. A non-positive
// timeout leaves ctx unchanged.
func WithRequestTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
