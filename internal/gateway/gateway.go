package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"pdf-tutor/internal/llm"
)

// Chunk is one page-range slice of a document too large for a single prompt.
type Chunk struct {
	StartPage int
	EndPage   int
	Text      string
}

// Result maps every supplied question to a detailed answer and every
// supplied topic to its bullet points. No caller-supplied key is ever
// dropped; unrecognized entries are filled with fallback text.
type Result struct {
	ImportantQuestions map[string]string
	OtherTopics        map[string][]string
}

// Gateway builds prompts, calls the configured provider, and parses replies.
type Gateway struct {
	llm llm.Client
	log *slog.Logger
}

// New builds a Gateway over the given provider client.
func New(client llm.Client, log *slog.Logger) *Gateway {
	return &Gateway{llm: client, log: log}
}

// GenerateResponse answers the important questions in detail and the other
// topics as bullet points, based on the document text.
//
// Parse problems never surface as errors; the result is filled with
// fallback entries instead. A provider failure after retry exhaustion is
// returned alongside the fallback-filled result.
func (g *Gateway) GenerateResponse(ctx context.Context, documentText string, importantQuestions, otherTopics []string) (Result, error) {
	prompt := buildAnswerPrompt(documentText, importantQuestions, otherTopics)

	reply, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		g.log.Error("provider call failed", "op", "generate_response", "err", err)
		return fallbackResult(importantQuestions, otherTopics), err
	}
	g.log.Info("received provider reply", "op", "generate_response", "chars", len(reply))

	return parseAnswerReply(reply, importantQuestions, otherTopics), nil
}

// GenerateSummary produces one hierarchical summary of the document text.
// The reply is returned unparsed; errors propagate to the caller.
func (g *Gateway) GenerateSummary(ctx context.Context, documentText string, importantTopics []string) (string, error) {
	prompt := buildSummaryPrompt(documentText, importantTopics)

	reply, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		g.log.Error("provider call failed", "op", "generate_summary", "err", err)
		return "", err
	}
	g.log.Info("received provider reply", "op", "generate_summary", "chars", len(reply))
	return reply, nil
}

// GenerateSummaryFromChunks summarizes each chunk in input order, then
// consolidates the partial summaries with one final call. A single chunk's
// summary is returned directly without a consolidation call.
func (g *Gateway) GenerateSummaryFromChunks(ctx context.Context, chunks []Chunk, importantTopics []string) (string, error) {
	if len(chunks) == 0 {
		return "", fmt.Errorf("no chunks provided")
	}

	summaries := make([]chunkSummary, 0, len(chunks))
	for i, chunk := range chunks {
		prompt := buildChunkPrompt(chunk, i+1, len(chunks), importantTopics)
		reply, err := g.llm.Generate(ctx, prompt)
		if err != nil {
			g.log.Error("provider call failed", "op", "summarize_chunk", "chunk", i+1, "pages", fmt.Sprintf("%d-%d", chunk.StartPage, chunk.EndPage), "err", err)
			return "", err
		}
		g.log.Info("summarized chunk", "chunk", i+1, "of", len(chunks), "pages", fmt.Sprintf("%d-%d", chunk.StartPage, chunk.EndPage))
		summaries = append(summaries, chunkSummary{
			StartPage: chunk.StartPage,
			EndPage:   chunk.EndPage,
			Text:      reply,
		})
	}

	if len(summaries) == 1 {
		return summaries[0].Text, nil
	}

	prompt := buildConsolidationPrompt(summaries, importantTopics)
	reply, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		g.log.Error("provider call failed", "op", "consolidate_summary", "err", err)
		return "", err
	}
	g.log.Info("consolidated chunk summaries", "chunks", len(summaries))
	return reply, nil
}

// chunkSummary is one chunk's partial summary tagged with its page range.
type chunkSummary struct {
	StartPage int
	EndPage   int
	Text      string
}
