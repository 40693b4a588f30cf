package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"pdf-tutor/internal/app"
	"pdf-tutor/internal/chunker"
	"pdf-tutor/internal/format"
	"pdf-tutor/internal/gateway"
	"pdf-tutor/internal/queue"
	"pdf-tutor/internal/store"
	"pdf-tutor/internal/telegram"
)

const (
	apologyMessage    = "Sorry, I encountered an error while processing your request. Please try again."
	promptForDocument = "Please send me a document first, and then I can answer questions about it."
)

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps.Log.Info("worker starting")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return deps.Queue.Worker(ctx, queue.TaskTypeAnswer, answerHandler(deps))
	})
	g.Go(func() error {
		return deps.Queue.Worker(ctx, queue.TaskTypeSummarize, summarizeHandler(deps))
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		deps.Log.Error("worker stopped", "err", err)
		os.Exit(1)
	}
	deps.Log.Info("worker shut down")
}

// answerHandler answers a chat's questions about its stored document.
func answerHandler(deps app.Deps) queue.Handler {
	return func(ctx context.Context, task queue.Task) error {
		var payload queue.AnswerPayload
		if err := json.Unmarshal(task.Payload, &payload); err != nil {
			deps.Log.Error("invalid answer payload", "task_id", task.ID, "err", err)
			return nil // malformed payloads are not retryable
		}

		doc, err := deps.Session.Document(ctx, payload.ChatID)
		if err != nil {
			return fmt.Errorf("session lookup: %w", err)
		}
		if doc == "" {
			return deps.Telegram.SendMessage(ctx, payload.ChatID, promptForDocument)
		}

		questions, topics := parseRequest(payload.Text)

		result, err := deps.Gateway.GenerateResponse(ctx, doc, questions, topics)
		if err != nil {
			// Retries are exhausted inside the gateway; apologize rather
			// than re-run the whole pipeline.
			deps.Log.Error("generate response failed", "chat_id", payload.ChatID, "err", err)
			sendReply(ctx, deps, payload.ChatID, apologyMessage)
			return nil
		}

		text := format.Response(result, questions, topics)
		recordExchange(ctx, deps, store.Exchange{
			ChatID:    payload.ChatID,
			Kind:      store.KindAnswer,
			Questions: questions,
			Topics:    topics,
			Reply:     text,
		})
		return deps.Telegram.SendMessage(ctx, payload.ChatID, text)
	}
}

// summarizeHandler produces a hierarchical summary, chunking documents too
// large for a single prompt.
func summarizeHandler(deps app.Deps) queue.Handler {
	return func(ctx context.Context, task queue.Task) error {
		var payload queue.SummarizePayload
		if err := json.Unmarshal(task.Payload, &payload); err != nil {
			deps.Log.Error("invalid summarize payload", "task_id", task.ID, "err", err)
			return nil
		}

		doc, err := deps.Session.Document(ctx, payload.ChatID)
		if err != nil {
			return fmt.Errorf("session lookup: %w", err)
		}
		if doc == "" {
			return deps.Telegram.SendMessage(ctx, payload.ChatID, promptForDocument)
		}

		summary, err := summarize(ctx, deps.Gateway, doc, payload.ImportantTopics)
		if err != nil {
			deps.Log.Error("generate summary failed", "chat_id", payload.ChatID, "err", err)
			sendReply(ctx, deps, payload.ChatID, apologyMessage)
			return nil
		}

		recordExchange(ctx, deps, store.Exchange{
			ChatID: payload.ChatID,
			Kind:   store.KindSummary,
			Topics: payload.ImportantTopics,
			Reply:  summary,
		})
		return deps.Telegram.SendMessage(ctx, payload.ChatID, summary)
	}
}

// parseRequest extracts questions and topics from the message, falling back
// to treating the whole message as one important question.
func parseRequest(text string) (questions, topics []string) {
	questions, topics = telegram.ParseQuestions(text)
	if len(questions) == 0 && len(topics) == 0 {
		questions = []string{text}
	}
	return questions, topics
}

func summarize(ctx context.Context, gw *gateway.Gateway, doc string, importantTopics []string) (string, error) {
	pages := chunker.PagesFromText(doc)
	chunks := chunker.SplitPages(pages, chunker.Options{})
	if len(chunks) <= 1 {
		return gw.GenerateSummary(ctx, doc, importantTopics)
	}
	return gw.GenerateSummaryFromChunks(ctx, chunks, importantTopics)
}

// recordExchange persists history best-effort; storage problems never block
// the reply.
func recordExchange(ctx context.Context, deps app.Deps, ex store.Exchange) {
	if _, err := deps.Store.RecordExchange(ctx, ex); err != nil {
		deps.Log.Warn("failed to record exchange", "chat_id", ex.ChatID, "kind", ex.Kind, "err", err)
	}
}

func sendReply(ctx context.Context, deps app.Deps, chatID int64, text string) {
	if err := deps.Telegram.SendMessage(ctx, chatID, text); err != nil {
		deps.Log.Error("failed to send reply", "chat_id", chatID, "err", err)
	}
}
