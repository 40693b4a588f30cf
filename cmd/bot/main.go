package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"pdf-tutor/internal/app"
	"pdf-tutor/internal/httputil"
	"pdf-tutor/internal/queue"
	"pdf-tutor/internal/telegram"
)

const (
	promptForDocument = "Please send me a document first, and then I can answer questions about it."
	ackProcessing     = "Processing your questions... 🧠"
	ackSummarizing    = "Working on your summary... 🧠"
	ackDocumentStored = "Got it! Now send me your questions, or use /summary for an overview."
	helpText          = "Send me a plain-text document, then ask questions about it.\n" +
		"Questions mentioning important/key/critical/main get detailed answers; other lines get bullet points.\n" +
		"Use /summary [topics...] to get a structured summary instead."
)

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	r := httputil.NewRouter(deps.Log)

	r.Post("/telegram/webhook", webhookHandler(deps))
	r.Post("/api/messages/send", sendMessageHandler(deps))
	r.Post("/api/documents/process", processDocumentHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("bot service listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server error", "err", err)
	}
}

// webhookHandler acknowledges Telegram quickly; all LLM work happens in the
// worker via the queue.
func webhookHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update telegram.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			httputil.Fail(deps.Log, w, "invalid update payload", err, http.StatusBadRequest)
			return
		}
		if update.Message == nil {
			httputil.WriteJSON(w, http.StatusOK, map[string]any{})
			return
		}

		ctx := r.Context()
		msg := update.Message
		chatID := msg.Chat.ID

		switch {
		case msg.Document != nil:
			handleDocument(ctx, deps, chatID, msg)
		case strings.HasPrefix(msg.Text, "/"):
			handleCommand(ctx, deps, chatID, msg.Text)
		case msg.Text != "":
			handleText(ctx, deps, chatID, msg.Text)
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]any{})
	}
}

func handleDocument(ctx context.Context, deps app.Deps, chatID int64, msg *telegram.Message) {
	doc := msg.Document
	if doc.MimeType != "text/plain" {
		reply(ctx, deps, chatID, "I can only read plain-text documents. Please send the extracted text of your PDF.")
		return
	}
	if doc.FileSize > deps.Config.MaxUploadSize {
		reply(ctx, deps, chatID, fmt.Sprintf("That file is too large (max %d bytes).", deps.Config.MaxUploadSize))
		return
	}

	content, err := deps.Telegram.DownloadDocument(ctx, doc.FileID)
	if err != nil {
		deps.Log.Error("document download failed", "chat_id", chatID, "err", err)
		reply(ctx, deps, chatID, "Sorry, I couldn't download that document. Please try again.")
		return
	}
	if err := deps.Session.SetDocument(ctx, chatID, string(content)); err != nil {
		deps.Log.Error("failed to store session document", "chat_id", chatID, "err", err)
		reply(ctx, deps, chatID, "Sorry, something went wrong storing your document. Please try again.")
		return
	}
	deps.Log.Info("document stored", "chat_id", chatID, "bytes", len(content))
	reply(ctx, deps, chatID, ackDocumentStored)
}

func handleCommand(ctx context.Context, deps app.Deps, chatID int64, text string) {
	cmd, rest, _ := strings.Cut(text, " ")
	switch cmd {
	case "/start", "/help":
		reply(ctx, deps, chatID, helpText)
	case "/summary":
		var topics []string
		for _, t := range strings.Split(rest, ",") {
			if t = strings.TrimSpace(t); t != "" {
				topics = append(topics, t)
			}
		}
		enqueueSummarize(ctx, deps, chatID, topics)
	case "/clear":
		if err := deps.Session.Clear(ctx, chatID); err != nil {
			deps.Log.Warn("failed to clear session", "chat_id", chatID, "err", err)
		}
		reply(ctx, deps, chatID, "Forgotten. Send me a new document whenever you're ready.")
	default:
		reply(ctx, deps, chatID, "Unknown command. Try /help.")
	}
}

func handleText(ctx context.Context, deps app.Deps, chatID int64, text string) {
	doc, err := deps.Session.Document(ctx, chatID)
	if err != nil {
		deps.Log.Error("session lookup failed", "chat_id", chatID, "err", err)
	}
	if doc == "" {
		reply(ctx, deps, chatID, promptForDocument)
		return
	}

	payload, err := json.Marshal(queue.AnswerPayload{ChatID: chatID, Text: text})
	if err != nil {
		deps.Log.Error("failed to marshal answer payload", "chat_id", chatID, "err", err)
		return
	}
	task := queue.Task{Type: queue.TaskTypeAnswer, Payload: payload}
	if err := queue.EnqueueWithRetry(ctx, deps.Queue, task, 3, time.Second); err != nil {
		deps.Log.Error("failed to enqueue answer task", "chat_id", chatID, "err", err)
		reply(ctx, deps, chatID, "Sorry, I'm having trouble right now. Please try again.")
		return
	}
	reply(ctx, deps, chatID, ackProcessing)
}

func enqueueSummarize(ctx context.Context, deps app.Deps, chatID int64, topics []string) {
	doc, err := deps.Session.Document(ctx, chatID)
	if err != nil {
		deps.Log.Error("session lookup failed", "chat_id", chatID, "err", err)
	}
	if doc == "" {
		reply(ctx, deps, chatID, promptForDocument)
		return
	}

	payload, err := json.Marshal(queue.SummarizePayload{ChatID: chatID, ImportantTopics: topics})
	if err != nil {
		deps.Log.Error("failed to marshal summarize payload", "chat_id", chatID, "err", err)
		return
	}
	task := queue.Task{Type: queue.TaskTypeSummarize, Payload: payload}
	if err := queue.EnqueueWithRetry(ctx, deps.Queue, task, 3, time.Second); err != nil {
		deps.Log.Error("failed to enqueue summarize task", "chat_id", chatID, "err", err)
		reply(ctx, deps, chatID, "Sorry, I'm having trouble right now. Please try again.")
		return
	}
	reply(ctx, deps, chatID, ackSummarizing)
}

// reply sends best-effort; delivery failures are logged, never surfaced to
// Telegram's webhook retry loop.
func reply(ctx context.Context, deps app.Deps, chatID int64, text string) {
	if err := deps.Telegram.SendMessage(ctx, chatID, text); err != nil {
		deps.Log.Error("failed to send reply", "chat_id", chatID, "err", err)
	}
}

type sendRequest struct {
	ChatID  int64  `json:"chat_id" validate:"required"`
	Message string `json:"message" validate:"required,min=1"`
}

func sendMessageHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		if err := deps.Telegram.SendMessage(r.Context(), req.ChatID, req.Message); err != nil {
			httputil.Fail(deps.Log, w, "failed to send message", err, http.StatusBadGateway)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"status": "sent"})
	}
}

type processRequest struct {
	ChatID    int64  `json:"chat_id" validate:"required"`
	Text      string `json:"text" validate:"required,min=1"`
	Questions string `json:"questions" validate:"required,min=1"`
}

// processDocumentHandler accepts pre-extracted document text plus a
// question block and queues the full pipeline in one call.
func processDocumentHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req processRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		ctx := r.Context()
		if err := deps.Session.SetDocument(ctx, req.ChatID, req.Text); err != nil {
			httputil.Fail(deps.Log, w, "failed to store document", err, http.StatusInternalServerError)
			return
		}

		payload, err := json.Marshal(queue.AnswerPayload{ChatID: req.ChatID, Text: req.Questions})
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to marshal task payload", err, http.StatusInternalServerError)
			return
		}
		task := queue.Task{Type: queue.TaskTypeAnswer, Payload: payload}
		if err := queue.EnqueueWithRetry(ctx, deps.Queue, task, 3, time.Second); err != nil {
			httputil.Fail(deps.Log, w, "failed to enqueue task", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusAccepted, map[string]any{"status": "queued"})
	}
}
