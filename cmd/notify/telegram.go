// Package notify posts finished renders to a Telegram chat.
package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sumwatshade/surfgrid/cmd/archive"
)

// sender is the part of *tgbotapi.BotAPI the client uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Client handles Telegram notifications
type Client struct {
	bot            sender
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
	after          func(time.Duration) <-chan time.Time
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	return newClient(bot, chatID, maxRetries, retryDelayBase)
}

func newClient(bot sender, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
		after:          time.After,
	}, nil
}

// Send posts the rendered grid as a photo captioned with the day's summary.
// Without an image only the caption is sent.
func (c *Client) Send(ctx context.Context, r archive.Record, png []byte) error {
	caption := formatCaption(r)

	var msg tgbotapi.Chattable
	if len(png) > 0 {
		photo := tgbotapi.NewPhoto(c.chatID, tgbotapi.FileBytes{Name: "surfgrid-" + r.Date + ".png", Bytes: png})
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeMarkdownV2
		msg = photo
	} else {
		text := tgbotapi.NewMessage(c.chatID, caption)
		text.ParseMode = tgbotapi.ModeMarkdownV2
		msg = text
	}

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		if i == c.maxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.after(c.retryDelayBase * time.Duration(i+1)):
		}
	}

	return fmt.Errorf("failed to send render after %d retries: %w", c.maxRetries, lastErr)
}

// formatCaption summarizes a render in MarkdownV2.
func formatCaption(r archive.Record) string {
	var b strings.Builder
	title := r.Location
	if title == "" {
		title = "Surf grid"
	}
	fmt.Fprintf(&b, "🌊 *%s*\n", escapeMarkdownV2(title))
	fmt.Fprintf(&b, "📅 %s, %s\n", escapeMarkdownV2(r.Date),
		escapeMarkdownV2(fmt.Sprintf("%02d:00-%02d:00", r.HourStart, r.HourEnd)))
	if score, at, ok := r.Peak(); ok {
		fmt.Fprintf(&b, "🏄 Best: *%s* at %s\n", escapeMarkdownV2(strconv.Itoa(score)), escapeMarkdownV2(at))
	}
	return b.String()
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	var b strings.Builder
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			b.WriteByte('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
