package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dekorhouse/internal/domain"
)

const DefaultAPIBaseURL = "https://api.telegram.org"

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Notifier posts new orders to the admin chat through the Bot API.
type Notifier struct {
	baseURL    string
	token      string
	chatID     int64
	httpClient *http.Client
}

func NewNotifier(baseURL, token string, chatID int64) *Notifier {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	return &Notifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		chatID:  chatID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (n *Notifier) NotifyOrderPlaced(ctx context.Context, order *domain.Order) error {
	return n.sendMessage(ctx, FormatOrder(order))
}

func (n *Notifier) sendMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(sendMessageRequest{ChatID: n.chatID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		// the error embeds the URL, which carries the token
		return fmt.Errorf("failed to send message: %w", redact(err, n.token))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode/100 != 2 || !parsed.OK {
		return fmt.Errorf("telegram rejected message (status %d): %s", resp.StatusCode, parsed.Description)
	}
	return nil
}

// NopNotifier is used when no bot token is configured.
type NopNotifier struct{}

func (NopNotifier) NotifyOrderPlaced(ctx context.Context, order *domain.Order) error {
	return nil
}

// FormatOrder renders the admin chat message for a new order.
func FormatOrder(order *domain.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Новый заказ %s\n\n", order.OrderNumber)
	fmt.Fprintf(&b, "Клиент: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "Телефон: %s\n", order.CustomerPhone)
	fmt.Fprintf(&b, "Оплата: %s\n", order.PaymentMethod)

	switch {
	case order.DeliveryType == domain.DeliveryTypePickup:
		b.WriteString("Получение: самовывоз\n")
	case order.Address != nil:
		fmt.Fprintf(&b, "Доставка: %s\n", *order.Address)
	case order.Latitude != nil && order.Longitude != nil:
		fmt.Fprintf(&b, "Доставка: https://maps.google.com/?q=%.6f,%.6f\n", *order.Latitude, *order.Longitude)
	}
	if order.Note != nil {
		fmt.Fprintf(&b, "Комментарий: %s\n", *order.Note)
	}

	b.WriteString("\n")
	for _, item := range order.Items {
		name := item.ProductName
		if item.ColorName != nil {
			name += " (" + *item.ColorName + ")"
		}
		fmt.Fprintf(&b, "• %s [%s] × %d = %s\n", name, item.ProductCode, item.Quantity, formatAmount(item.Total))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Товары: %s\n", formatAmount(order.Subtotal))
	fmt.Fprintf(&b, "Доставка: %s\n", formatAmount(order.DeliveryFee))
	fmt.Fprintf(&b, "Итого: %s", formatAmount(order.Total))

	return b.String()
}

// formatAmount groups thousands with spaces: 1050000 -> "1 050 000 сум".
func formatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte(' ')
		}
		grouped.WriteRune(d)
	}
	return sign + grouped.String() + " сум"
}

type redactedError struct {
	msg string
}

func (e *redactedError) Error() string {
	return e.msg
}

func redact(err error, token string) error {
	if token == "" {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), token, "<token>")}
}
