package core

import (
	"sort"
)

// UnknownDomain is the grouping key for messages whose sender has no extractable domain
const UnknownDomain = "Unknown"

// FetchState holds the time of the last mailbox fetch as fractional unix seconds
type FetchState struct {
	LastFetchUnix float64
}

// MailboxSnapshot maps a sender domain to its message bodies in mailbox order
type MailboxSnapshot map[string][]string

// Domains returns the snapshot keys in sorted order
func (s MailboxSnapshot) Domains() []string {
	domains := make([]string, 0, len(s))
	for domain := range s {
		domains = append(domains, domain)
	}
	sort.Strings(domains)
	return domains
}

// MessageCount returns the number of bodies stored across all domains
func (s MailboxSnapshot) MessageCount() int {
	total := 0
	for _, bodies := range s {
		total += len(bodies)
	}
	return total
}

// Emotion is one of the five categories a sentiment ordinal maps to
type Emotion string

const (
	Angry   Emotion = "angry"
	Threat  Emotion = "threat"
	Neutral Emotion = "neutral"
	Joy     Emotion = "joy"
	Happy   Emotion = "happy"
)

// Emotions lists the categories from most negative to most positive
var Emotions = []Emotion{Angry, Threat, Neutral, Joy, Happy}

// EmotionForOrdinal maps an ordinal sentiment score to its category
func EmotionForOrdinal(ordinal int) (Emotion, bool) {
	if ordinal < 1 || ordinal > len(Emotions) {
		return "", false
	}
	return Emotions[ordinal-1], true
}

// Weight returns the ordinal value of the category
func (e Emotion) Weight() int {
	for i, emotion := range Emotions {
		if emotion == e {
			return i + 1
		}
	}
	return 0
}

// EmotionCounts counts classified messages per category
type EmotionCounts map[Emotion]int

// NewEmotionCounts returns counts with every category present and zero
func NewEmotionCounts() EmotionCounts {
	counts := make(EmotionCounts, len(Emotions))
	for _, emotion := range Emotions {
		counts[emotion] = 0
	}
	return counts
}

// Total returns the number of counted messages
func (c EmotionCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// SessionState is the state one running session works on.
// It is loaded from the cache store on start and written back on every mutation.
type SessionState struct {
	Fetch    FetchState
	Snapshot MailboxSnapshot
	// Stale is set when the refresh window ran out and the snapshot was cleared
	Stale bool
}

// AnalysisResult is what an analysis of one domain hands to the presentation layer
type AnalysisResult struct {
	Domain       string        `json:"domain"`
	MessageCount int           `json:"message_count"`
	Counts       EmotionCounts `json:"counts"`
	Score        float64       `json:"score"`
	Gauge        GaugeSpec     `json:"gauge"`
}
