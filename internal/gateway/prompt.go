package gateway

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Character budgets keeping prompts within provider token limits.
const (
	answerTextLimit  = 10000
	summaryTextLimit = 20000
)

func buildAnswerPrompt(documentText string, importantQuestions, otherTopics []string) string {
	var b strings.Builder
	b.WriteString("You are an educational assistant that helps students with their questions based on provided PDF content.\n\n")
	b.WriteString("PDF CONTENT:\n")
	b.WriteString(truncate(documentText, answerTextLimit))
	b.WriteString("\n\nTASK:\nBased on the PDF content above, please provide:\n\n")
	b.WriteString("1. Detailed, 10-mark style answers (about 250-300 words each) for these important questions:\n")
	b.WriteString(strings.Join(importantQuestions, ", "))
	b.WriteString("\n\n2. Concise, 4-mark style bullet-point answers (4-5 bullet points each) for these topics:\n")
	b.WriteString(strings.Join(otherTopics, ", "))
	b.WriteString("\n\nFORMAT YOUR RESPONSE LIKE THIS:\n")
	b.WriteString(sectionImportant + "\n")
	b.WriteString("[Question 1]\n[Detailed answer to question 1]\n\n")
	b.WriteString("[Question 2]\n[Detailed answer to question 2]\n\n")
	b.WriteString("...and so on for all important questions\n\n")
	b.WriteString(sectionOther + "\n")
	b.WriteString("[Topic 1]\n- [Point 1]\n- [Point 2]\n- [Point 3]\n- [Point 4]\n\n")
	b.WriteString("[Topic 2]\n- [Point 1]\n- [Point 2]\n- [Point 3]\n- [Point 4]\n\n")
	b.WriteString("...and so on for all other topics\n")
	return b.String()
}

func buildSummaryPrompt(documentText string, importantTopics []string) string {
	var b strings.Builder
	b.WriteString("You are an educational assistant that produces structured study summaries of PDF content.\n\n")
	b.WriteString("PDF CONTENT:\n")
	b.WriteString(truncate(documentText, summaryTextLimit))
	b.WriteString("\n\nTASK:\nSummarize the PDF content above.\n")
	writeTopicEmphasis(&b, importantTopics)
	writeHierarchyFormat(&b)
	return b.String()
}

func buildChunkPrompt(chunk Chunk, index, total int, importantTopics []string) string {
	var b strings.Builder
	b.WriteString("You are an educational assistant that produces structured study summaries of PDF content.\n\n")
	fmt.Fprintf(&b, "This is chunk %d of %d, covering pages %d to %d of the document.\n\n", index, total, chunk.StartPage, chunk.EndPage)
	b.WriteString("CHUNK CONTENT:\n")
	b.WriteString(truncate(chunk.Text, summaryTextLimit))
	b.WriteString("\n\nTASK:\nWrite a concise summary of this chunk only. ")
	b.WriteString("If a topic appears to continue beyond this chunk's pages, flag it as CONTINUES IN NEXT CHUNK.\n")
	writeTopicEmphasis(&b, importantTopics)
	writeHierarchyFormat(&b)
	return b.String()
}

func buildConsolidationPrompt(summaries []chunkSummary, importantTopics []string) string {
	var b strings.Builder
	b.WriteString("You are an educational assistant that produces structured study summaries of PDF content.\n\n")
	b.WriteString("Below are partial summaries of consecutive sections of one document, each tagged with its page range.\n\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "PAGES %d-%d:\n%s\n\n", s.StartPage, s.EndPage, s.Text)
	}
	b.WriteString("TASK:\nMerge the partial summaries above into one coherent summary of the whole document. ")
	b.WriteString("Combine topics that span page ranges and do not repeat duplicated content.\n")
	writeTopicEmphasis(&b, importantTopics)
	writeHierarchyFormat(&b)
	return b.String()
}

func writeTopicEmphasis(b *strings.Builder, importantTopics []string) {
	if len(importantTopics) > 0 {
		b.WriteString("Give these important topics a detailed treatment of about 250 words each: ")
		b.WriteString(strings.Join(importantTopics, ", "))
		b.WriteString(".\nCover all other content in about 100 words per topic.\n")
	} else {
		b.WriteString("Cover each topic in about 100 words.\n")
	}
}

func writeHierarchyFormat(b *strings.Builder) {
	b.WriteString("\nFORMAT YOUR RESPONSE LIKE THIS:\n")
	b.WriteString("- Major topic headings in ALL CAPS\n")
	b.WriteString("- Subheadings in Title Case ending with a colon:\n")
	b.WriteString("- Bullet points starting with •\n")
	b.WriteString("- Key terms emphasized in ALL CAPS or surrounded by *asterisks*\n")
}

// truncate limits text to max bytes, backing up to a rune boundary so the
// prompt never carries a split UTF-8 sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
