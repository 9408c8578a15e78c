package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"jobscout-engine/internal/agent"
)

// Listener long-polls getUpdates and dispatches commands to the session.
type Listener struct {
	botToken     string
	chatID       int64
	baseURL      string
	client       *http.Client
	notifier     *Notifier
	session      *agent.Session
	log          *zap.Logger
	lastUpdateID int64
}

type update struct {
	UpdateID int64 `json:"update_id"`
	Message  struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

type updatesResponse struct {
	OK     bool     `json:"ok"`
	Result []update `json:"result"`
}

const pollTimeout = 30 * time.Second

func NewListener(botToken string, chatID int64, notifier *Notifier, session *agent.Session, log *zap.Logger) *Listener {
	return &Listener{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  apiBase,
		client:   &http.Client{Timeout: pollTimeout + 10*time.Second},
		notifier: notifier,
		session:  session,
		log:      log,
	}
}

// Run polls for commands until the context is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	l.log.Info("listening for commands", zap.Int64("chat_id", l.chatID))

	for {
		updates, err := l.getUpdates(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return ctx.Err()
			}
			l.log.Warn("getUpdates failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID > l.lastUpdateID {
				l.lastUpdateID = u.UpdateID
			}
			if u.Message.Chat.ID != l.chatID {
				l.log.Debug("ignoring message from unknown chat", zap.Int64("chat_id", u.Message.Chat.ID))
				continue
			}
			cmd, ok := ParseCommand(u.Message.Text)
			if !ok {
				continue
			}
			l.handle(ctx, cmd)
		}
	}
}

func (l *Listener) getUpdates(ctx context.Context) ([]update, error) {
	endpoint := fmt.Sprintf("%s/bot%s/getUpdates", l.baseURL, l.botToken)
	q := url.Values{}
	q.Set("offset", strconv.FormatInt(l.lastUpdateID+1, 10))
	q.Set("timeout", strconv.Itoa(int(pollTimeout.Seconds())))
	q.Set("allowed_updates", `["message"]`)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("getUpdates status: %s", resp.Status)
	}

	var parsed updatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if !parsed.OK {
		return nil, fmt.Errorf("getUpdates not ok")
	}
	return parsed.Result, nil
}

func (l *Listener) handle(ctx context.Context, cmd Command) {
	l.log.Info("command", zap.String("name", cmd.Name), zap.Int("count", cmd.Count))

	switch cmd.Name {
	case "search":
		l.cmdSearch(ctx)
	case "more":
		l.cmdMore(ctx, cmd.Count)
	case "status":
		l.cmdStatus(ctx)
	case "pause":
		l.session.Pause()
		l.reply(ctx, "Alerts paused. /search and /more still work; send /resume to re-enable scheduled alerts.")
	case "resume":
		l.session.Resume()
		l.reply(ctx, "Alerts resumed.")
	case "help":
		l.reply(ctx, "Commands:\n/search - run a job search now\n/more [n] - next page of the current batch\n/status - engine status\n/pause - pause scheduled alerts\n/resume - resume scheduled alerts")
	}
}

func (l *Listener) cmdSearch(ctx context.Context) {
	l.reply(ctx, "Searching...")

	res, err := l.session.RunSearch(ctx)
	if err != nil {
		l.log.Error("search failed", zap.Error(err))
		l.reply(ctx, "Search failed; will retry at the next scheduled run.")
		return
	}
	if res.Stats.Ranked == 0 {
		l.reply(ctx, fmt.Sprintf("No new jobs. Scraped %d record(s), all seen or filtered.", res.Stats.Raw))
		return
	}
	if err := l.notifier.SendPostings(ctx, res.Delivered, res.MoreRemain); err != nil {
		l.log.Warn("send postings failed", zap.Error(err))
	}
}

func (l *Listener) cmdMore(ctx context.Context, n int) {
	postings, more, err := l.session.RequestMore(ctx, n)
	if err != nil {
		l.log.Error("more failed", zap.Error(err))
		l.reply(ctx, "Could not fetch more jobs right now.")
		return
	}
	if err := l.notifier.SendPostings(ctx, postings, more); err != nil {
		l.log.Warn("send postings failed", zap.Error(err))
	}
}

func (l *Listener) cmdStatus(ctx context.Context) {
	st, err := l.session.Status(ctx)
	if err != nil {
		l.log.Error("status failed", zap.Error(err))
		l.reply(ctx, "Status unavailable.")
		return
	}

	state := "active"
	if st.Paused {
		state = "paused"
	}
	resumeState := "not loaded"
	if st.ResumeLoaded {
		resumeState = fmt.Sprintf("loaded (%d skills, %d+ yrs)",
			len(st.Profile.Skills), st.Profile.ExperienceYears)
	}

	msg := fmt.Sprintf(
		"Status: %s\nTracked: %d\nDelivered: %d\nFound today: %d\nBatch remaining: %d\nResume: %s",
		state, st.Store.TotalSeen, st.Store.TotalDelivered, st.Store.FoundToday,
		st.BatchRemaining, resumeState)
	for source, count := range st.Store.BySource {
		msg += fmt.Sprintf("\n  %s: %d", source, count)
	}
	l.reply(ctx, msg)
}

func (l *Listener) reply(ctx context.Context, text string) {
	if err := l.notifier.SendMessage(ctx, text); err != nil {
		l.log.Warn("reply failed", zap.Error(err))
	}
}
