package telegram

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuestionsSplitsByImportance(t *testing.T) {
	text := strings.Join([]string{
		"What are the important differences between TCP and UDP?",
		"What is a socket?",
		"- routing tables",
		"1. congestion control",
	}, "\n")

	important, topics := ParseQuestions(text)

	assert.Equal(t, []string{"What are the important differences between TCP and UDP?"}, important)
	assert.Equal(t, []string{"What is a socket?", "routing tables", "congestion control"}, topics)
}

func TestParseQuestionsKeywords(t *testing.T) {
	tests := []struct {
		line      string
		important bool
	}{
		{"What is the key idea here?", true},
		{"Explain the main theorem?", true},
		{"Is this critical to the proof?", true},
		{"What color is the cover?", false},
	}
	for _, tt := range tests {
		important, topics := ParseQuestions(tt.line)
		if tt.important {
			assert.Len(t, important, 1, "line %q", tt.line)
			assert.Empty(t, topics, "line %q", tt.line)
		} else {
			assert.Empty(t, important, "line %q", tt.line)
			assert.Len(t, topics, 1, "line %q", tt.line)
		}
	}
}

func TestParseQuestionsIgnoresPlainProse(t *testing.T) {
	important, topics := ParseQuestions("hello bot\nplease help me study")

	assert.Empty(t, important)
	assert.Empty(t, topics)
}

func TestParseQuestionsLimits(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "What is the important concept %d?\n", i)
	}
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "- topic %d\n", i)
	}

	important, topics := ParseQuestions(b.String())

	assert.Len(t, important, 10)
	assert.Len(t, topics, 15)
}

func TestParseQuestionsBulletMarkers(t *testing.T) {
	important, topics := ParseQuestions("• alpha\n* beta\n- gamma\n12. delta")

	assert.Empty(t, important)
	assert.Equal(t, []string{"alpha", "beta", "gamma", "delta"}, topics)
}
