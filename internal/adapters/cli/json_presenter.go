package cli

import (
	"encoding/json"
	"io"

	"github.com/mikey/email-sentiment/internal/core"
	"github.com/mikey/email-sentiment/internal/ports"
)

// JSONPresenter writes one JSON document per operation, for scripts and chart front ends
type JSONPresenter struct {
	enc *json.Encoder
}

// NewJSONPresenter creates a presenter writing indented JSON to out
func NewJSONPresenter(out io.Writer) *JSONPresenter {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return &JSONPresenter{enc: enc}
}

// Status writes the session status
func (p *JSONPresenter) Status(status ports.SessionStatus) error {
	return p.enc.Encode(status)
}

// Fetched writes the fetch outcome
func (p *JSONPresenter) Fetched(provider string, status ports.SessionStatus) error {
	return p.enc.Encode(struct {
		Provider string              `json:"provider"`
		Status   ports.SessionStatus `json:"status"`
	}{provider, status})
}

// Domains writes the domain list with message counts
func (p *JSONPresenter) Domains(domains []string, counts map[string]int) error {
	type entry struct {
		Domain   string `json:"domain"`
		Messages int    `json:"messages"`
	}
	entries := make([]entry, 0, len(domains))
	for _, domain := range domains {
		entries = append(entries, entry{Domain: domain, Messages: counts[domain]})
	}
	return p.enc.Encode(entries)
}

// Analysis writes the analysis result including the gauge description
func (p *JSONPresenter) Analysis(result *core.AnalysisResult, noData bool) error {
	return p.enc.Encode(struct {
		*core.AnalysisResult
		NoData bool `json:"no_data"`
	}{result, noData})
}
