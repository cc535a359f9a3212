package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRatingReply(t *testing.T) {
	tests := []struct {
		reply string
		want  string
	}{
		{"4 stars", "4 stars"},
		{"1 star", "1 star"},
		{"5", "5 stars"},
		{"Rating: 2 stars.", "2 stars"},
		{"\n 3 stars\n", "3 stars"},
		{"4.5 stars", "4 stars"},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			label, err := NormalizeRatingReply(tt.reply)
			require.NoError(t, err)
			assert.Equal(t, tt.want, label)

			ordinal, err := ParseOrdinal(label)
			require.NoError(t, err)
			assert.Equal(t, int(label[0]-'0'), ordinal)
		})
	}
}

func TestNormalizeRatingReplyRejects(t *testing.T) {
	for _, reply := range []string{"", "no rating", "10 stars", "0 stars", "six stars"} {
		_, err := NormalizeRatingReply(reply)
		assert.ErrorIs(t, err, ErrInvalidLabel, reply)
	}
}

func TestBuildRatingPrompt(t *testing.T) {
	prompt := BuildRatingPrompt("see you soon")
	assert.Contains(t, prompt, "see you soon")
	assert.Contains(t, prompt, `"N stars"`)
}
