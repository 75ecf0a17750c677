package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sumwatshade/surfgrid/cmd/archive"
)

type fakeBot struct {
	failures int
	sent     []tgbotapi.Chattable
	attempts int
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.attempts++
	if b.attempts <= b.failures {
		return tgbotapi.Message{}, errors.New("too many requests")
	}
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, nil
}

var christmas = archive.Record{
	Date:      "2022-12-25",
	Location:  "Coolum Beach",
	HourStart: 6,
	HourEnd:   18,
	Totals:    []int{3, 12, 31, 8},
}

func TestNewClientDefaults(t *testing.T) {
	c, err := newClient(&fakeBot{}, "-100123", 0, 0)
	if err != nil {
		t.Fatalf("newClient() error = %v", err)
	}
	if c.chatID != -100123 || c.maxRetries != 3 || c.retryDelayBase != time.Second {
		t.Errorf("client = %+v", c)
	}
	if _, err := newClient(&fakeBot{}, "@channel", 0, 0); err == nil {
		t.Error("non-numeric chat id accepted")
	}
}

func TestSendPhoto(t *testing.T) {
	bot := &fakeBot{}
	c, _ := newClient(bot, "42", 3, time.Millisecond)

	if err := c.Send(context.Background(), christmas, []byte("png")); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(bot.sent) != 1 {
		t.Fatalf("sent %d messages", len(bot.sent))
	}
	photo, ok := bot.sent[0].(tgbotapi.PhotoConfig)
	if !ok {
		t.Fatalf("sent %T, want a photo", bot.sent[0])
	}
	if photo.ChatID != 42 || photo.ParseMode != tgbotapi.ModeMarkdownV2 {
		t.Errorf("photo = %+v", photo)
	}
	if file, ok := photo.File.(tgbotapi.FileBytes); !ok || file.Name != "surfgrid-2022-12-25.png" {
		t.Errorf("file = %+v", photo.File)
	}
	if !strings.Contains(photo.Caption, "Best: *31* at 12:00") {
		t.Errorf("caption = %q", photo.Caption)
	}
}

func TestSendTextWithoutImage(t *testing.T) {
	bot := &fakeBot{}
	c, _ := newClient(bot, "42", 3, time.Millisecond)
	if err := c.Send(context.Background(), christmas, nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if _, ok := bot.sent[0].(tgbotapi.MessageConfig); !ok {
		t.Errorf("sent %T, want a text message", bot.sent[0])
	}
}

func TestSendRetries(t *testing.T) {
	bot := &fakeBot{failures: 2}
	c, _ := newClient(bot, "42", 3, time.Millisecond)
	if err := c.Send(context.Background(), christmas, nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if bot.attempts != 3 {
		t.Errorf("attempts = %d, want 3", bot.attempts)
	}

	bot = &fakeBot{failures: 5}
	c, _ = newClient(bot, "42", 2, time.Millisecond)
	if err := c.Send(context.Background(), christmas, nil); err == nil {
		t.Error("Send() succeeded after exhausting retries")
	}
	if bot.attempts != 2 {
		t.Errorf("attempts = %d, want 2", bot.attempts)
	}
}

func TestSendBacksOffOnlyBetweenAttempts(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		want     []time.Duration
	}{
		{"first try", 0, nil},
		{"second try", 1, []time.Duration{time.Second}},
		{"gives up", 5, []time.Duration{time.Second, 2 * time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newClient(&fakeBot{failures: tt.failures}, "42", 3, time.Second)
			var waits []time.Duration
			c.after = func(d time.Duration) <-chan time.Time {
				waits = append(waits, d)
				ch := make(chan time.Time, 1)
				ch <- time.Time{}
				return ch
			}
			_ = c.Send(context.Background(), christmas, nil)
			if len(waits) != len(tt.want) {
				t.Fatalf("waits = %v, want %v", waits, tt.want)
			}
			for i := range tt.want {
				if waits[i] != tt.want[i] {
					t.Errorf("waits = %v, want %v", waits, tt.want)
				}
			}
		})
	}
}

func TestSendStopsOnCancel(t *testing.T) {
	bot := &fakeBot{failures: 5}
	c, _ := newClient(bot, "42", 5, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Send(ctx, christmas, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Send() error = %v, want context.Canceled", err)
	}
	if bot.attempts != 1 {
		t.Errorf("attempts = %d, want 1", bot.attempts)
	}
}

func TestFormatCaption(t *testing.T) {
	got := formatCaption(christmas)
	want := "🌊 *Coolum Beach*\n📅 2022\\-12\\-25, 06:00\\-18:00\n🏄 Best: *31* at 12:00\n"
	if got != want {
		t.Errorf("formatCaption() = %q, want %q", got, want)
	}

	if got := formatCaption(archive.Record{Date: "2022-12-25"}); !strings.HasPrefix(got, "🌊 *Surf grid*") {
		t.Errorf("formatCaption() without location = %q", got)
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Coolum Beach", "Coolum Beach"},
		{"1.5m (SE)", "1\\.5m \\(SE\\)"},
		{"a_b*c!", "a\\_b\\*c\\!"},
	}
	for _, tt := range tests {
		if got := escapeMarkdownV2(tt.in); got != tt.want {
			t.Errorf("escapeMarkdownV2(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
