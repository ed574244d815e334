package manual

import (
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/redisenterprise/armredisenterprise"

	"github.com/overmindtech/cache-discovery/sources/azure/clients"
	azureshared "github.com/overmindtech/cache-discovery/sources/azure/shared"
)

// azureClusterToResourceRef normalises a Microsoft.Cache/redisEnterprise
// cluster. Its databases are attached later by the orchestrator.
func azureClusterToResourceRef(subscriptionID string, cluster *armredisenterprise.Cluster) (azureshared.ResourceRef, bool) {
	if cluster == nil || cluster.ID == nil || cluster.Name == nil {
		return azureshared.ResourceRef{}, false
	}

	ref := azureshared.ResourceRef{
		Kind:           azureshared.ResourceKindClustered,
		ID:             *cluster.ID,
		Name:           *cluster.Name,
		SubscriptionID: subscriptionID,
		ResourceGroup:  azureshared.ResourceGroupFromID(*cluster.ID),
		Location:       deref(cluster.Location),
		Tags:           azureshared.ConvertAzureTags(cluster.Tags),
	}

	if cluster.SKU != nil {
		ref.SKU = derefString(cluster.SKU.Name)
	}

	if props := cluster.Properties; props != nil {
		ref.Host = deref(props.HostName)
		ref.ProvisioningState = derefString(props.ProvisioningState)
		ref.RedisVersion = deref(props.RedisVersion)
	}

	return ref, true
}

// azureDatabaseToRef normalises one database of a cluster. The page carries
// accessKeysAuthentication, which the SDK model does not.
func azureDatabaseToRef(cluster azureshared.ResourceRef, page clients.DatabasesPage, db *armredisenterprise.Database) (azureshared.DatabaseRef, bool) {
	if db == nil || db.Name == nil {
		return azureshared.DatabaseRef{}, false
	}

	ref := azureshared.DatabaseRef{
		ID:       deref(db.ID),
		Name:     *db.Name,
		ParentID: cluster.ID,
	}
	if ref.ID == "" {
		ref.ID = cluster.ID + "/databases/" + ref.Name
	}

	if props := db.Properties; props != nil {
		ref.Port = intPtr(props.Port)
		ref.ClusteringPolicy = derefString(props.ClusteringPolicy)

		switch protocol := derefString(props.ClientProtocol); {
		case strings.EqualFold(protocol, string(azureshared.ClientProtocolEncrypted)):
			ref.ClientProtocol = azureshared.ClientProtocolEncrypted
		case strings.EqualFold(protocol, string(azureshared.ClientProtocolPlaintext)):
			ref.ClientProtocol = azureshared.ClientProtocolPlaintext
		default:
			ref.ClientProtocol = azureshared.ClientProtocol(protocol)
		}
	}

	ref.AccessKeysEnabled = strings.EqualFold(page.AccessKeysAuthenticationOf(db), "Enabled")

	return ref, true
}
