package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overmindtech/cache-discovery/discovery"
	azureshared "github.com/overmindtech/cache-discovery/sources/azure/shared"
)

func testResult() discovery.DiscoveryResult {
	clusterID := "/subscriptions/sub-2/resourceGroups/rg/providers/Microsoft.Cache/redisEnterprise/cluster-x"

	return discovery.DiscoveryResult{
		Complete: true,
		Resources: []azureshared.ResourceRef{
			{
				Kind:           azureshared.ResourceKindSimple,
				ID:             "/subscriptions/sub-1/resourceGroups/rg/providers/Microsoft.Cache/redis/cache-a",
				Name:           "cache-a",
				SubscriptionID: "sub-1",
				ResourceGroup:  "rg",
				Location:       "westeurope",
				SKU:            "Standard C1",
				Host:           "cache-a.redis.cache.windows.net",
				Simple:         &azureshared.SimpleProperties{SSLPort: to.Ptr(6380)},
			},
			{
				Kind:           azureshared.ResourceKindClustered,
				ID:             clusterID,
				Name:           "cluster-x",
				SubscriptionID: "sub-2",
				Host:           "cluster-x.westeurope.redis.azure.net",
				Databases: []azureshared.DatabaseRef{
					{ID: clusterID + "/databases/default", Name: "default", ParentID: clusterID},
				},
			},
		},
	}
}

func TestWriteResultTable(t *testing.T) {
	var buf bytes.Buffer
	result := testResult()
	result.PartialFailures = []*azureshared.EnumerationFailure{{
		Scope:          azureshared.FailureScopeSubscription,
		SubscriptionID: "sub-3",
		Collection:     "redis",
		Err:            errors.New("forbidden"),
	}}

	require.NoError(t, writeResult(&buf, outputTable, result, discovery.Progress{}))

	out := buf.String()
	assert.Contains(t, out, "cache-a.redis.cache.windows.net:6380")
	assert.Contains(t, out, "Clustered")
	assert.Contains(t, out, "default")
	// footers are upper-cased by the default table style
	assert.Contains(t, strings.ToLower(out), "1 simple, 1 clustered")
	assert.Contains(t, out, "warning: could not list redis in subscription sub-3: forbidden")
}

func TestWriteResultJSON(t *testing.T) {
	var buf bytes.Buffer
	result := testResult()
	result.PartialFailures = []*azureshared.EnumerationFailure{{
		Scope:          azureshared.FailureScopeCluster,
		SubscriptionID: "sub-2",
		ResourceID:     "cluster-y",
		Collection:     "databases",
		Err:            errors.New("boom"),
	}}

	require.NoError(t, writeResult(&buf, outputJSON, result, discovery.Progress{Phase: discovery.PhaseDone}))

	var decoded struct {
		Resources []struct {
			Kind string `json:"kind"`
			Name string `json:"name"`
		} `json:"resources"`
		Complete        bool `json:"complete"`
		PartialFailures []struct {
			Scope      string `json:"scope"`
			Collection string `json:"collection"`
			Error      string `json:"error"`
		} `json:"partialFailures"`
		Progress struct {
			Phase string `json:"phase"`
		} `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.True(t, decoded.Complete)
	require.Len(t, decoded.Resources, 2)
	assert.Equal(t, "Simple", decoded.Resources[0].Kind)
	assert.Equal(t, "Clustered", decoded.Resources[1].Kind)
	require.Len(t, decoded.PartialFailures, 1)
	assert.Equal(t, "cluster", decoded.PartialFailures[0].Scope)
	assert.Contains(t, decoded.PartialFailures[0].Error, "boom")
	assert.Equal(t, "Done", decoded.Progress.Phase)
}

func TestWriteDescriptorMasksSecrets(t *testing.T) {
	d := azureshared.ConnectionDescriptor{
		Host:        "cache-a.redis.cache.windows.net",
		Port:        6380,
		TLS:         true,
		AuthMode:    azureshared.AuthModeAccessKey,
		Secret:      "primary-key",
		DisplayName: "cache-a",
		Kind:        azureshared.ResourceKindSimple,
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeDescriptor(&buf, outputTable, d, false))
		assert.NotContains(t, buf.String(), "primary-key")
		assert.Contains(t, buf.String(), "cache-a.redis.cache.windows.net")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeDescriptor(&buf, outputJSON, d, false))
		assert.NotContains(t, buf.String(), "primary-key")

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "cache-a.redis.cache.windows.net:6380", decoded["address"])
		assert.Equal(t, "AccessKey", decoded["authMode"])
	})

	t.Run("show secrets", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeDescriptor(&buf, outputJSON, d, true))
		assert.Contains(t, buf.String(), "primary-key")
	})
}

func TestValidateOutput(t *testing.T) {
	assert.NoError(t, validateOutput("table"))
	assert.NoError(t, validateOutput("json"))
	assert.Error(t, validateOutput("yaml"))
}
