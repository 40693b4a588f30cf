package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"pdf-tutor/internal/format"
)

const (
	apiBaseURL     = "https://api.telegram.org"
	requestTimeout = 30 * time.Second
)

// Messenger abstracts the Bot API so services can be tested with mocks.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	DownloadDocument(ctx context.Context, fileID string) ([]byte, error)
}

// Client sends messages through the Telegram Bot API.
type Client struct {
	http  *resty.Client
	token string
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// NewClient builds a Bot API client for the given bot token.
func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token required")
	}
	httpClient := resty.New().
		SetBaseURL(apiBaseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(requestTimeout)
	return &Client{http: httpClient, token: token}, nil
}

// SendMessage delivers text to a chat, splitting messages that exceed the
// Bot API size limit into sequential pieces.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	for _, piece := range format.SplitMessage(text, format.MessageLimit) {
		if err := c.send(ctx, chatID, piece); err != nil {
			return err
		}
	}
	return nil
}

// DownloadDocument fetches an attached file's bytes via getFile.
func (c *Client) DownloadDocument(ctx context.Context, fileID string) ([]byte, error) {
	var out getFileResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("file_id", fileID).
		SetResult(&out).
		Get(fmt.Sprintf("/bot%s/getFile", c.token))
	if err != nil {
		return nil, err
	}
	if resp.IsError() || !out.OK || out.Result.FilePath == "" {
		return nil, fmt.Errorf("telegram: getFile failed: status %s", resp.Status())
	}

	fileResp, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/file/bot%s/%s", c.token, out.Result.FilePath))
	if err != nil {
		return nil, err
	}
	if fileResp.IsError() {
		return nil, fmt.Errorf("telegram: file download failed: status %s", fileResp.Status())
	}
	return fileResp.Body(), nil
}

type getFileResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		FilePath string `json:"file_path"`
	} `json:"result"`
}

func (c *Client) send(ctx context.Context, chatID int64, text string) error {
	var out apiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(sendMessageRequest{ChatID: chatID, Text: text}).
		SetResult(&out).
		Post(fmt.Sprintf("/bot%s/sendMessage", c.token))
	if err != nil {
		return err
	}
	if resp.IsError() || !out.OK {
		return fmt.Errorf("telegram: sendMessage failed: status %s: %s", resp.Status(), out.Description)
	}
	return nil
}
