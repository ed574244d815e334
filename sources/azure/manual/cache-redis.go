package manual

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/redis/armredis/v2"

	azureshared "github.com/overmindtech/cache-discovery/sources/azure/shared"
)

// azureRedisToResourceRef normalises a Microsoft.Cache/redis resource. Items
// without an ID or name cannot be addressed later and are skipped.
func azureRedisToResourceRef(subscriptionID string, cache *armredis.ResourceInfo) (azureshared.ResourceRef, bool) {
	if cache == nil || cache.ID == nil || cache.Name == nil {
		return azureshared.ResourceRef{}, false
	}

	ref := azureshared.ResourceRef{
		Kind:           azureshared.ResourceKindSimple,
		ID:             *cache.ID,
		Name:           *cache.Name,
		SubscriptionID: subscriptionID,
		ResourceGroup:  azureshared.ResourceGroupFromID(*cache.ID),
		Location:       deref(cache.Location),
		Tags:           azureshared.ConvertAzureTags(cache.Tags),
		Simple:         &azureshared.SimpleProperties{},
	}

	if props := cache.Properties; props != nil {
		ref.Host = deref(props.HostName)
		ref.ProvisioningState = derefString(props.ProvisioningState)
		ref.RedisVersion = deref(props.RedisVersion)
		ref.SKU = redisSKU(props.SKU)
		ref.Simple.Port = intPtr(props.Port)
		ref.Simple.SSLPort = intPtr(props.SSLPort)
		ref.Simple.NonSSLPortEnabled = props.EnableNonSSLPort != nil && *props.EnableNonSSLPort
	}

	return ref, true
}

// redisSKU renders a SKU the way the portal does, e.g. "Standard C1"
func redisSKU(sku *armredis.SKU) string {
	if sku == nil || sku.Name == nil {
		return ""
	}
	if sku.Family == nil || sku.Capacity == nil {
		return string(*sku.Name)
	}
	return fmt.Sprintf("%s %s%d", *sku.Name, *sku.Family, *sku.Capacity)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// derefString reads the SDK's string enums, such as ProvisioningState
func derefString[T ~string](s *T) string {
	if s == nil {
		return ""
	}
	return string(*s)
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}
