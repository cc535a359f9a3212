package cache

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mikey/email-sentiment/internal/core"
)

// Keys under which the table-backed stores keep the two entries
const (
	timestampKey = "last_fetch_time"
	snapshotKey  = "mailbox_snapshot"
)

// formatTimestamp renders ts as the shortest decimal numeral that parses back to the same value
func formatTimestamp(ts float64) string {
	return strconv.FormatFloat(ts, 'f', -1, 64)
}

func parseTimestamp(text string) (float64, error) {
	ts, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", text, err)
	}
	return ts, nil
}

// encodeSnapshot writes invalid UTF-8 in bodies as U+FFFD, so only valid UTF-8 round-trips exactly
func encodeSnapshot(snapshot core.MailboxSnapshot) ([]byte, error) {
	data, err := json.Marshal(normalizeSnapshot(snapshot))
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (core.MailboxSnapshot, error) {
	var snapshot core.MailboxSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("malformed snapshot: %w", err)
	}
	return normalizeSnapshot(snapshot), nil
}

// normalizeSnapshot replaces nil maps and lists with empty ones so that
// domains with no messages survive a round trip as empty lists
func normalizeSnapshot(snapshot core.MailboxSnapshot) core.MailboxSnapshot {
	normalized := make(core.MailboxSnapshot, len(snapshot))
	for domain, bodies := range snapshot {
		if bodies == nil {
			bodies = []string{}
		}
		normalized[domain] = bodies
	}
	return normalized
}
