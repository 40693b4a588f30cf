package telegram

// Update is an incoming Telegram webhook payload, reduced to the fields
// the bot consumes.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

// Message is one chat message.
type Message struct {
	MessageID int64     `json:"message_id"`
	Chat      Chat      `json:"chat"`
	Text      string    `json:"text"`
	Document  *Document `json:"document"`
}

// Chat identifies the conversation to reply into.
type Chat struct {
	ID int64 `json:"id"`
}

// Document is an attached file.
type Document struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`
}
