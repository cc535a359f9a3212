package ports

import (
	"time"

	"github.com/mikey/email-sentiment/internal/core"
)

// SessionStatus is what the status view shows about the current session
type SessionStatus struct {
	LastFetch    time.Time     `json:"last_fetch"`
	NeverFetched bool          `json:"never_fetched"`
	Remaining    time.Duration `json:"remaining_ns"`
	Expired      bool          `json:"expired"`
	Domains      int           `json:"domains"`
	Messages     int           `json:"messages"`
	Providers    []string      `json:"providers"`
}

// Presenter renders the outcome of each operation for the user
type Presenter interface {
	// Status shows the session state and the time left in the refresh window
	Status(status SessionStatus) error

	// Fetched reports a successful fetch
	Fetched(provider string, status SessionStatus) error

	// Domains lists the sender domains of the snapshot
	Domains(domains []string, counts map[string]int) error

	// Analysis shows the emotion counts and gauge of one domain.
	// noData is set when the domain had no messages.
	Analysis(result *core.AnalysisResult, noData bool) error
}
