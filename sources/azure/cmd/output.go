package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/overmindtech/cache-discovery/discovery"
	azureshared "github.com/overmindtech/cache-discovery/sources/azure/shared"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func validateOutput(format string) error {
	switch format {
	case outputTable, outputJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format %q, must be one of: %s, %s", format, outputTable, outputJSON)
	}
}

type discoverOutput struct {
	Resources       []azureshared.ResourceRef `json:"resources"`
	Complete        bool                      `json:"complete"`
	PartialFailures []partialFailureOutput    `json:"partialFailures,omitempty"`
	Progress        discovery.Progress        `json:"progress"`
}

type partialFailureOutput struct {
	*azureshared.EnumerationFailure
	Error string `json:"error"`
}

func writeResult(w io.Writer, format string, result discovery.DiscoveryResult, progress discovery.Progress) error {
	if format == outputJSON {
		out := discoverOutput{
			Resources: result.Resources,
			Complete:  result.Complete,
			Progress:  progress,
		}
		for _, f := range result.PartialFailures {
			out.PartialFailures = append(out.PartialFailures, partialFailureOutput{EnumerationFailure: f, Error: f.Error()})
		}
		return writeJSON(w, out)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Kind", "Name", "Subscription", "Resource Group", "Location", "SKU", "Endpoint", "Databases"})

	for _, r := range result.Resources {
		t.AppendRow(table.Row{
			r.Kind.String(),
			r.Name,
			r.SubscriptionID,
			r.ResourceGroup,
			r.Location,
			r.SKU,
			endpoint(r),
			databaseNames(r),
		})
	}

	counts := result.Counts()
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d simple, %d clustered", counts.Simple, counts.Clustered), "", "", "", "", "", strconv.Itoa(counts.Databases)})
	t.Render()

	for _, f := range result.PartialFailures {
		fmt.Fprintf(w, "warning: %v\n", f)
	}

	return nil
}

func endpoint(r azureshared.ResourceRef) string {
	if r.Host == "" {
		return ""
	}
	if r.Simple != nil && r.Simple.SSLPort != nil {
		return fmt.Sprintf("%s:%d", r.Host, *r.Simple.SSLPort)
	}
	return r.Host
}

func databaseNames(r azureshared.ResourceRef) string {
	names := make([]string, 0, len(r.Databases))
	for _, db := range r.Databases {
		names = append(names, db.Name)
	}
	return strings.Join(names, ", ")
}

type descriptorOutput struct {
	azureshared.ConnectionDescriptor
	Address string `json:"address"`
}

// writeDescriptor prints connection details. Secrets are masked unless
// showSecrets is set.
func writeDescriptor(w io.Writer, format string, d azureshared.ConnectionDescriptor, showSecrets bool) error {
	if !showSecrets {
		d.Secret = mask(d.Secret)
		d.DelegatedToken = mask(d.DelegatedToken)
	}

	if format == outputJSON {
		return writeJSON(w, descriptorOutput{ConnectionDescriptor: d, Address: d.Address()})
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendRows([]table.Row{
		{"Name", d.DisplayName},
		{"Kind", d.Kind.String()},
		{"Host", d.Host},
		{"Port", d.Port},
		{"TLS", d.TLS},
		{"Auth", d.AuthMode.String()},
	})
	if d.ClusteringPolicy != "" {
		t.AppendRow(table.Row{"Clustering", d.ClusteringPolicy})
	}
	switch d.AuthMode {
	case azureshared.AuthModeAccessKey:
		t.AppendRow(table.Row{"Access Key", d.Secret})
	case azureshared.AuthModeDelegatedIdentity:
		t.AppendRow(table.Row{"Username", d.Username})
		t.AppendRow(table.Row{"Token", d.DelegatedToken})
	}
	t.Render()

	return nil
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
