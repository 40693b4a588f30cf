package gateway

import "strings"

// Section headers the provider is instructed to emit.
const (
	sectionImportant = "IMPORTANT_QUESTIONS:"
	sectionOther     = "OTHER_TOPICS:"
)

// Fallback values for keys the reply did not cover.
const (
	fallbackAnswer = "I couldn't generate a detailed answer for this question based on the provided PDF content."
	fallbackPoint  = "No specific information found in the PDF"
)

// parseAnswerReply scans the free-text reply for the two instructed
// sections and extracts question answers and topic bullet points.
//
// The scan is a best-effort heuristic mirroring how models actually drift
// from the instructed format: a question starts at any line ending with "?"
// or containing a supplied question; a topic starts at any line containing
// a supplied topic (substring containment, so short topic names can
// false-positive); bullets start with "-" or "•". Every supplied key absent
// from the reply is filled with fallback text.
func parseAnswerReply(reply string, importantQuestions, otherTopics []string) Result {
	result := Result{
		ImportantQuestions: make(map[string]string),
		OtherTopics:        make(map[string][]string),
	}

	if strings.Contains(reply, sectionImportant) && strings.Contains(reply, sectionOther) {
		parts := strings.SplitN(reply, sectionOther, 2)
		importantSection := strings.TrimSpace(strings.Replace(parts[0], sectionImportant, "", 1))
		otherSection := parts[1]

		parseQuestionSection(importantSection, importantQuestions, result.ImportantQuestions)
		parseTopicSection(otherSection, otherTopics, result.OtherTopics)
	}

	// Every caller-supplied key must be present, whether the headers were
	// missing entirely or individual entries went unrecognized.
	for _, q := range importantQuestions {
		if _, ok := result.ImportantQuestions[q]; !ok {
			result.ImportantQuestions[q] = fallbackAnswer
		}
	}
	for _, t := range otherTopics {
		if _, ok := result.OtherTopics[t]; !ok {
			result.OtherTopics[t] = []string{fallbackPoint}
		}
	}
	return result
}

func parseQuestionSection(section string, questions []string, out map[string]string) {
	var currentQuestion string
	var currentAnswer []string

	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, matched := matchKey(line, questions)
		if strings.HasSuffix(line, "?") || matched {
			if currentQuestion != "" {
				out[currentQuestion] = strings.Join(currentAnswer, "\n\n")
				currentAnswer = nil
			}
			if matched {
				// Canonicalize to the supplied question so callers can
				// look the answer up by the exact string they passed in.
				currentQuestion = key
			} else {
				currentQuestion = line
			}
		} else {
			currentAnswer = append(currentAnswer, line)
		}
	}

	if currentQuestion != "" && len(currentAnswer) > 0 {
		out[currentQuestion] = strings.Join(currentAnswer, "\n\n")
	}
}

func parseTopicSection(section string, topics []string, out map[string][]string) {
	var currentTopic string
	var currentPoints []string

	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") {
			currentPoints = append(currentPoints, strings.TrimSpace(strings.TrimLeft(line, "-• ")))
			continue
		}

		if currentTopic != "" && len(currentPoints) > 0 {
			out[currentTopic] = currentPoints
			currentPoints = nil
		}
		if key, matched := matchKey(line, topics); matched {
			currentTopic = key
		}
	}

	if currentTopic != "" && len(currentPoints) > 0 {
		out[currentTopic] = currentPoints
	}
}

// matchKey reports the first supplied key contained in the line.
func matchKey(line string, keys []string) (string, bool) {
	for _, k := range keys {
		if k != "" && strings.Contains(line, k) {
			return k, true
		}
	}
	return "", false
}

// fallbackResult fills every supplied key with fallback text. Used when the
// provider call itself fails so the caller still gets a complete structure.
func fallbackResult(importantQuestions, otherTopics []string) Result {
	result := Result{
		ImportantQuestions: make(map[string]string, len(importantQuestions)),
		OtherTopics:        make(map[string][]string, len(otherTopics)),
	}
	for _, q := range importantQuestions {
		result.ImportantQuestions[q] = fallbackAnswer
	}
	for _, t := range otherTopics {
		result.OtherTopics[t] = []string{fallbackPoint}
	}
	return result
}
