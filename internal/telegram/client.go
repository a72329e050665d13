// telegram — обвязка Telegram Bot API: уведомления канала о новых
// объявлениях и командный бот поверх long-poll getUpdates.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// Client — клиент Bot API (sendMessage, getUpdates).
//
// Особенности:
//   - HTTP-клиент настраивается извне; его таймаут должен превышать
//     таймаут long-poll, иначе getUpdates будет обрываться раньше ответа;
//   - тесты подменяют baseURL на httptest-сервер.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewClient создаёт клиента Bot API.
func NewClient(token string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 45 * time.Second}
	}

	return &Client{token: token, baseURL: defaultBaseURL, client: client}
}

// Update — одно обновление из getUpdates.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

// Message — входящее сообщение.
type Message struct {
	MessageID int64  `json:"message_id"`
	Text      string `json:"text"`
	Chat      Chat   `json:"chat"`
}

// Chat — чат, из которого пришло сообщение.
type Chat struct {
	ID int64 `json:"id"`
}

// apiResponse — конверт любого ответа Bot API.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
}

type getUpdatesRequest struct {
	Offset  int64 `json:"offset,omitempty"`
	Timeout int64 `json:"timeout,omitempty"`
}

// SendMessage отправляет Markdown-сообщение в чат.
// chatID — числовой id чата либо "@имя_канала".
func (c *Client) SendMessage(ctx context.Context, chatID, text string, disablePreview bool) error {
	const op = "telegram.SendMessage"

	payload := sendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "Markdown",
		DisableWebPagePreview: disablePreview,
	}

	if _, err := c.call(ctx, "sendMessage", payload); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetUpdates выполняет long-poll чтение обновлений начиная с offset.
// timeout — серверное время ожидания Bot API (секундная точность).
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	const op = "telegram.GetUpdates"

	payload := getUpdatesRequest{
		Offset:  offset,
		Timeout: int64(timeout / time.Second),
	}

	result, err := c.call(ctx, "getUpdates", payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var updates []Update
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, fmt.Errorf("%s: unmarshal: %w", op, err)
	}

	return updates, nil
}

// call выполняет POST <baseURL>/bot<токен>/<метод> и раскрывает конверт ответа.
func (c *Client) call(ctx context.Context, method string, payload any) (json.RawMessage, error) {
	const op = "telegram.call"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do: %w", op, err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	// Bot API дублирует ошибку в конверте и в HTTP-статусе; конверта достаточно.
	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	if !envelope.OK {
		return nil, fmt.Errorf("%s: api: %s", op, envelope.Description)
	}

	return envelope.Result, nil
}
