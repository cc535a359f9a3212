package core

import (
	"fmt"
	"regexp"
)

// ratingPromptFormat asks a chat model to behave like a 1-5 star review classifier
const ratingPromptFormat = `You are a sentiment classifier for email text. Rate the overall sentiment of the email below
on a scale from 1 to 5 stars, where 1 star is very negative (angry), 2 stars is negative (threatening),
3 stars is neutral, 4 stars is positive (joyful) and 5 stars is very positive (happy).

Email:
%s

Respond with the rating only, in the form "N stars", and nothing else.`

// RatingSystemPrompt is the system role text used by chat-style models
const RatingSystemPrompt = `You are a sentiment classifier. Respond only with "N stars" where N is 1 to 5.`

var ratingReplyPattern = regexp.MustCompile(`\b([1-5])\s*(?:stars?)?\b`)

// BuildRatingPrompt returns the user prompt for classifying text
func BuildRatingPrompt(text string) string {
	return fmt.Sprintf(ratingPromptFormat, text)
}

// NormalizeRatingReply turns a free-form chat reply into a "N stars" label.
// The first standalone 1-5 rating wins; a reply without one is an invalid label.
func NormalizeRatingReply(reply string) (string, error) {
	match := ratingReplyPattern.FindStringSubmatch(reply)
	if match == nil {
		return "", fmt.Errorf("%w: no rating in reply %q", ErrInvalidLabel, reply)
	}
	if match[1] == "1" {
		return "1 star", nil
	}
	return match[1] + " stars", nil
}
