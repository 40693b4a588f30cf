package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pdf-tutor/internal/gateway"
)

func TestResponseRendersBothSections(t *testing.T) {
	result := gateway.Result{
		ImportantQuestions: map[string]string{
			"What is quantum computing?": "Quantum computing harnesses quantum mechanics.\n\nIt uses qubits instead of bits.",
		},
		OtherTopics: map[string][]string{
			"Applications": {"Cryptography", "Drug discovery"},
		},
	}

	out := Response(result, []string{"What is quantum computing?"}, []string{"Applications"})

	assert.Contains(t, out, "📌 Important Questions 📌")
	assert.Contains(t, out, "❓ What is quantum computing?")
	assert.Contains(t, out, "📝 Detailed Answer:")
	assert.Contains(t, out, "📌 Other Key Topics 📌")
	assert.Contains(t, out, "*Applications*")
	assert.Contains(t, out, "• Cryptography")
	assert.Contains(t, out, "• Drug discovery")

	// Questions section comes before topics.
	assert.Less(t, strings.Index(out, "Important Questions"), strings.Index(out, "Other Key Topics"))
}

func TestResponseQuestionsOnly(t *testing.T) {
	result := gateway.Result{
		ImportantQuestions: map[string]string{"Q?": "Answer."},
		OtherTopics:        map[string][]string{},
	}

	out := Response(result, []string{"Q?"}, nil)

	assert.Contains(t, out, "❓ Q?")
	assert.NotContains(t, out, "Other Key Topics")
	assert.NotContains(t, out, "==========")
}

func TestResponsePreservesCallerOrder(t *testing.T) {
	result := gateway.Result{
		ImportantQuestions: map[string]string{
			"First?":  "one",
			"Second?": "two",
			"Third?":  "three",
		},
		OtherTopics: map[string][]string{},
	}

	out := Response(result, []string{"First?", "Second?", "Third?"}, nil)

	first := strings.Index(out, "First?")
	second := strings.Index(out, "Second?")
	third := strings.Index(out, "Third?")
	assert.True(t, first < second && second < third, "expected caller order preserved")
}

func TestEmphasize(t *testing.T) {
	assert.Equal(t, "*bold*", Emphasize("bold"))
}

func TestSplitMessageShortTextUnsplit(t *testing.T) {
	pieces := SplitMessage("hello", 100)
	assert.Equal(t, []string{"hello"}, pieces)
}

func TestSplitMessagePrefersLineBoundaries(t *testing.T) {
	text := strings.Repeat("line one\n", 20)
	pieces := SplitMessage(text, 50)

	assert.Greater(t, len(pieces), 1)
	for _, p := range pieces {
		assert.LessOrEqual(t, len(p), 50)
		assert.False(t, strings.HasPrefix(p, "\n"))
	}
	// No content lost.
	joined := strings.Join(pieces, "\n")
	assert.Equal(t, strings.Count(text, "line one"), strings.Count(joined, "line one"))
}

func TestSplitMessageHardCutWithoutNewlines(t *testing.T) {
	text := strings.Repeat("a", 120)
	pieces := SplitMessage(text, 50)

	assert.Equal(t, 3, len(pieces))
	for _, p := range pieces {
		assert.LessOrEqual(t, len(p), 50)
	}
}
