package shared

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	log "github.com/sirupsen/logrus"
)

// ManagementScope is the token scope for the Azure Resource Manager API
var ManagementScope = strings.TrimSuffix(cloud.AzurePublic.Services[cloud.ResourceManager].Audience, "/") + "/.default"

// DelegatedCredential is a bearer token issued to a signed-in user. It is
// handed in by the caller and never stored.
type DelegatedCredential struct {
	AccessToken string
	PrincipalID string
	Username    string
	// ExpiresOn is optional, the zero value means unknown
	ExpiresOn time.Time
}

var _ azcore.TokenCredential = (*DelegatedCredential)(nil)

// GetToken returns the delegated token unchanged so that it can be used by
// the Azure SDK bearer token policy
func (c *DelegatedCredential) GetToken(_ context.Context, _ policy.TokenRequestOptions) (azcore.AccessToken, error) {
	if c == nil || c.AccessToken == "" {
		return azcore.AccessToken{}, ErrMissingAccessToken
	}
	if c.Expired(time.Now()) {
		return azcore.AccessToken{}, ErrCredentialExpired
	}

	expiresOn := c.ExpiresOn
	if expiresOn.IsZero() {
		expiresOn = time.Now().Add(time.Hour)
	}

	return azcore.AccessToken{
		Token:     c.AccessToken,
		ExpiresOn: expiresOn,
	}, nil
}

// Expired reports whether a known expiry has passed
func (c *DelegatedCredential) Expired(now time.Time) bool {
	return !c.ExpiresOn.IsZero() && !now.Before(c.ExpiresOn)
}

// DataPlaneUsername is the user name a data-plane client presents alongside
// the delegated token
func (c *DelegatedCredential) DataPlaneUsername() string {
	if c.PrincipalID != "" {
		return c.PrincipalID
	}
	return c.Username
}

func (c *DelegatedCredential) String() string {
	return fmt.Sprintf("DelegatedCredential{principal=%q, username=%q, expiresOn=%v}", c.PrincipalID, c.Username, c.ExpiresOn)
}

// NewAzureCredential creates a new DefaultAzureCredential which automatically handles
// multiple authentication methods in the following order:
// 1. Environment variables (AZURE_CLIENT_ID, AZURE_TENANT_ID, AZURE_FEDERATED_TOKEN_FILE, etc.)
// 2. Workload Identity (Kubernetes with OIDC federation)
// 3. Managed Identity (when running in Azure)
// 4. Azure CLI (for local development)
//
// Reference: https://learn.microsoft.com/en-us/azure/developer/go/sdk/authentication/credential-chains
func NewAzureCredential(tenantID string) (*azidentity.DefaultAzureCredential, error) {
	log.Debug("Initializing Azure credentials using DefaultAzureCredential")

	var options *azidentity.DefaultAzureCredentialOptions
	if tenantID != "" {
		options = &azidentity.DefaultAzureCredentialOptions{TenantID: tenantID}
	}

	cred, err := azidentity.NewDefaultAzureCredential(options)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	log.WithFields(log.Fields{
		"ovm.auth.method": "default-azure-credential",
		"ovm.auth.tenant": tenantID,
	}).Info("Successfully initialized Azure credentials")

	return cred, nil
}

// AcquireDelegatedCredential exchanges a token credential for a management
// API token and wraps it as a DelegatedCredential. The principal is read from
// the token's claims.
func AcquireDelegatedCredential(ctx context.Context, tc azcore.TokenCredential) (*DelegatedCredential, error) {
	token, err := tc.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{ManagementScope}})
	if err != nil {
		return nil, fmt.Errorf("failed to acquire management token: %w", err)
	}

	cred := &DelegatedCredential{
		AccessToken: token.Token,
		ExpiresOn:   token.ExpiresOn,
	}

	claims, err := extractClaims(token.Token)
	if err != nil {
		log.WithError(err).Debug("Could not read principal from management token")
		return cred, nil
	}

	cred.PrincipalID = claims.ObjectID
	if cred.ExpiresOn.IsZero() && claims.ExpiresAt > 0 {
		cred.ExpiresOn = time.Unix(claims.ExpiresAt, 0)
	}
	switch {
	case claims.UPN != "":
		cred.Username = claims.UPN
	case claims.PreferredUsername != "":
		cred.Username = claims.PreferredUsername
	default:
		cred.Username = claims.UniqueName
	}

	return cred, nil
}

type tokenClaims struct {
	ObjectID          string `json:"oid"`
	UPN               string `json:"upn"`
	PreferredUsername string `json:"preferred_username"`
	UniqueName        string `json:"unique_name"`
	ExpiresAt         int64  `json:"exp"`
}

// StaticTokenCredential serves a management token obtained out of band, for
// example with `az account get-access-token`. Its expiry is unknown until the
// token's claims are read.
type StaticTokenCredential string

func (s StaticTokenCredential) GetToken(_ context.Context, _ policy.TokenRequestOptions) (azcore.AccessToken, error) {
	if s == "" {
		return azcore.AccessToken{}, errors.New("no access token supplied")
	}
	return azcore.AccessToken{Token: string(s)}, nil
}

// extracts claims from a JWT without verifying its signature, the management
// API does that
func extractClaims(token string) (*tokenClaims, error) {
	sections := strings.Split(token, ".")
	if len(sections) != 3 {
		return nil, errors.New("token is not a JWT")
	}

	decodedPayload, err := base64.RawURLEncoding.DecodeString(sections[1])
	if err != nil {
		return nil, fmt.Errorf("error decoding token payload: %w", err)
	}

	claims := new(tokenClaims)
	err = json.Unmarshal(decodedPayload, claims)
	if err != nil {
		return nil, fmt.Errorf("error parsing token payload: %w", err)
	}

	return claims, nil
}
