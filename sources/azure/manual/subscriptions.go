package manual

import (
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"

		azureshared "github.com/overmindtech/cache-discovery/sources/azure/shared"
)

func azureSubscriptionToRef(sub *armsubscriptions.Subscription) (azureshared.SubscriptionRef, bool) {
	if sub == nil {
		return azureshared.SubscriptionRef{}, false
	}

	var id string
	switch {
	case sub.SubscriptionID != nil && *sub.SubscriptionID != "":
		id = *sub.SubscriptionID
	case sub.ID != nil:
		id = azureshared.SubscriptionIDFromID(*sub.ID)
	}
	if id == "" {
		return azureshared.SubscriptionRef{}, false
	}

	ref := azureshared.SubscriptionRef{ID: id, DisplayName: id}
	if sub.DisplayName != nil && *sub.DisplayName != "" {
		ref.DisplayName = *sub.DisplayName
	}

	return ref, true
}
