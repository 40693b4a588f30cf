package telegram

import (
	"strconv"
	"strings"
)

// Extraction limits keeping prompts a manageable size.
const (
	maxImportantQuestions = 10
	maxOtherTopics        = 15
)

var importanceKeywords = []string{"important", "key", "critical", "main"}

// ParseQuestions splits a user message into important questions and other
// topics. Lines ending in "?" that mention an importance keyword are
// important questions; remaining "?" lines and bullet or numbered lines
// are other topics.
func ParseQuestions(text string) (importantQuestions, otherTopics []string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasSuffix(line, "?"):
			if containsKeyword(line) {
				importantQuestions = append(importantQuestions, line)
			} else {
				otherTopics = append(otherTopics, line)
			}
		case isListItem(line):
			otherTopics = append(otherTopics, strings.TrimLeft(line, "•-*0123456789. "))
		}
	}

	if len(importantQuestions) > maxImportantQuestions {
		importantQuestions = importantQuestions[:maxImportantQuestions]
	}
	if len(otherTopics) > maxOtherTopics {
		otherTopics = otherTopics[:maxOtherTopics]
	}
	return importantQuestions, otherTopics
}

func containsKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range importanceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isListItem(line string) bool {
	if strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
		return true
	}
	for i := 1; i <= 20; i++ {
		if strings.HasPrefix(line, strconv.Itoa(i)+".") {
			return true
		}
	}
	return false
}
