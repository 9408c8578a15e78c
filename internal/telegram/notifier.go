// Package telegram is the notification sink and command source: it renders
// ranked postings into plain messages and maps inbound bot commands onto the
// session's operations.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jobscout-engine/internal/domain"
)

const apiBase = "https://api.telegram.org"

// Notifier sends messages to one chat via the bot API.
type Notifier struct {
	botToken string
	chatID   int64
	baseURL  string
	client   *http.Client
}

func NewNotifier(botToken string, chatID int64) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  apiBase,
		client:   &http.Client{Timeout: 35 * time.Second},
	}
}

func (n *Notifier) SendMessage(ctx context.Context, text string) error {
	if n.botToken == "" || n.chatID == 0 {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	form := url.Values{}
	form.Set("chat_id", strconv.FormatInt(n.chatID, 10))
	form.Set("text", text)
	form.Set("disable_web_page_preview", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}
	return nil
}

// SendPostings relays one delivered page. Rendering stays minimal: one line
// block per posting plus a more-remain hint.
func (n *Notifier) SendPostings(ctx context.Context, postings []domain.Posting, moreRemain bool) error {
	if len(postings) == 0 {
		return n.SendMessage(ctx, "No more jobs in the current batch. Send /search to run a new one.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d job(s):\n\n", len(postings))
	for i, p := range postings {
		fmt.Fprintf(&b, "%d. %s\n   %s | %s\n", i+1, p.Title, p.Company, p.LocationRaw)
		if p.SalaryMin > 0 {
			if p.SalaryMax > p.SalaryMin {
				fmt.Fprintf(&b, "   $%d - $%d\n", p.SalaryMin, p.SalaryMax)
			} else {
				fmt.Fprintf(&b, "   $%d\n", p.SalaryMin)
			}
		}
		fmt.Fprintf(&b, "   fit %d/100 | %s | %s\n", p.FitScore, p.LocationClass, p.Source)
		if p.URL != "" {
			fmt.Fprintf(&b, "   %s\n", p.URL)
		}
		b.WriteString("\n")
	}
	if moreRemain {
		b.WriteString("Send /more for the next page.")
	} else {
		b.WriteString("That is the whole batch.")
	}

	return n.SendMessage(ctx, b.String())
}
