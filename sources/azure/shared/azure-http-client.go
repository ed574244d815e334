package shared

import (
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultManagementEndpoint is the public cloud Resource Manager endpoint
var DefaultManagementEndpoint = cloud.AzurePublic.Services[cloud.ResourceManager].Endpoint

// AzureHTTPClientWithOtel creates a new HTTP client for Azure with OpenTelemetry instrumentation.
// Authentication is not done here, the Azure SDK bearer token policy adds the
// Authorization header from the delegated credential.
func AzureHTTPClientWithOtel() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// NewClientOptions returns the Resource Manager client options used for every
// management call. The retry policy is switched off: listKeys is not safe to
// replay and throttling is left to the caller. A nil transport uses
// AzureHTTPClientWithOtel.
func NewClientOptions(endpoint string, transport policy.Transporter) *arm.ClientOptions {
	if endpoint == "" {
		endpoint = DefaultManagementEndpoint
	}
	if transport == nil {
		transport = AzureHTTPClientWithOtel()
	}

	return &arm.ClientOptions{
		ClientOptions: policy.ClientOptions{
			Cloud: cloud.Configuration{
				ActiveDirectoryAuthorityHost: cloud.AzurePublic.ActiveDirectoryAuthorityHost,
				Services: map[cloud.ServiceName]cloud.ServiceConfiguration{
					cloud.ResourceManager: {
						Endpoint: strings.TrimSuffix(endpoint, "/"),
						Audience: cloud.AzurePublic.Services[cloud.ResourceManager].Audience,
					},
				},
			},
			PerCallPolicies: []policy.Policy{jsonContentTypePolicy{}},
			Retry: policy.RetryOptions{
				// less than zero means a single try
				MaxRetries: -1,
			},
			Transport: transport,
		},
		DisableRPRegistration: true,
	}
}

// jsonContentTypePolicy marks every management request as JSON. The generated
// clients only set Content-Type on requests that carry a body.
type jsonContentTypePolicy struct{}

func (jsonContentTypePolicy) Do(req *policy.Request) (*http.Response, error) {
	if req.Raw().Header.Get("Content-Type") == "" {
		req.Raw().Header.Set("Content-Type", "application/json")
	}
	return req.Next()
}
