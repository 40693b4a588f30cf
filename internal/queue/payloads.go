package queue

// AnswerPayload carries a chat's question message to the worker.
type AnswerPayload struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// SummarizePayload asks the worker to summarize the chat's stored document,
// optionally emphasizing specific topics.
type SummarizePayload struct {
	ChatID          int64    `json:"chat_id"`
	ImportantTopics []string `json:"important_topics,omitempty"`
}
