// Package format renders parsed results into chat-ready text.
package format

import (
	"sort"
	"strings"

	"pdf-tutor/internal/gateway"
)

// Formatting markers for bot messages.
const (
	sectionTitle       = "📌 %s 📌"
	questionPrefix     = "❓ "
	longAnswerTitle    = "📝 Detailed Answer:"
	keyPointsTitle     = "💡 Key Points:"
	bullet             = "• "
	emphasisMark       = "*"
	sectionSeparator   = "\n\n==============================\n\n"
	paragraphSeparator = "\n\n"
)

// MessageLimit is the effective per-message size; Telegram caps messages at
// 4096 characters and we keep headroom for markup.
const MessageLimit = 4000

// Response renders a Q&A result into one bot-ready string: important
// questions with their detailed answers first, then the other topics as
// bullet lists.
func Response(result gateway.Result, questionOrder, topicOrder []string) string {
	var parts []string

	questions := orderedKeys(questionOrder, keysOf(result.ImportantQuestions))
	topics := orderedKeys(topicOrder, keysOfLists(result.OtherTopics))

	if len(questions) > 0 {
		parts = append(parts, title("Important Questions"))
		for _, q := range questions {
			parts = append(parts, questionPrefix+q)
			parts = append(parts, longAnswer(result.ImportantQuestions[q]))
			parts = append(parts, "")
		}
	}

	if len(questions) > 0 && len(topics) > 0 {
		parts = append(parts, sectionSeparator)
	}

	if len(topics) > 0 {
		parts = append(parts, title("Other Key Topics"))
		for _, topic := range topics {
			parts = append(parts, Emphasize(topic))
			parts = append(parts, keyPoints(result.OtherTopics[topic]))
			parts = append(parts, "")
		}
	}

	return strings.Join(parts, "\n")
}

// Emphasize wraps text in the chat client's bold marker.
func Emphasize(text string) string {
	return emphasisMark + text + emphasisMark
}

// SplitMessage cuts text into pieces no longer than limit bytes, preferring
// line boundaries so formatting survives the split.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = MessageLimit
	}
	if len(text) <= limit {
		return []string{text}
	}

	var pieces []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
		}
		pieces = append(pieces, strings.TrimRight(text[:cut], "\n"))
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		pieces = append(pieces, text)
	}
	return pieces
}

func title(s string) string {
	return strings.Replace(sectionTitle, "%s", s, 1)
}

func longAnswer(content string) string {
	paragraphs := strings.Split(content, paragraphSeparator)
	return longAnswerTitle + paragraphSeparator + strings.Join(paragraphs, paragraphSeparator)
}

func keyPoints(points []string) string {
	lines := make([]string, len(points))
	for i, p := range points {
		lines[i] = bullet + p
	}
	return keyPointsTitle + paragraphSeparator + strings.Join(lines, "\n")
}

// orderedKeys returns preferred entries that exist in present, followed by
// any present keys the caller did not name, keeping output deterministic.
func orderedKeys(preferred, present []string) []string {
	seen := make(map[string]bool, len(present))
	for _, k := range present {
		seen[k] = true
	}

	var out []string
	used := make(map[string]bool, len(preferred))
	for _, k := range preferred {
		if seen[k] && !used[k] {
			out = append(out, k)
			used[k] = true
		}
	}
	var rest []string
	for _, k := range present {
		if !used[k] {
			rest = append(rest, k)
			used[k] = true
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func keysOf(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func keysOfLists(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
