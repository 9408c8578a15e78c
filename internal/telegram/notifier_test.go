package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobscout-engine/internal/domain"
)

func captureServer(t *testing.T) (*httptest.Server, *[]map[string]string) {
	t.Helper()
	var calls []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		call := map[string]string{}
		for k := range r.PostForm {
			call[k] = r.PostForm.Get(k)
		}
		call["_path"] = r.URL.Path
		calls = append(calls, call)
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestSendMessageForm(t *testing.T) {
	srv, calls := captureServer(t)

	n := NewNotifier("test-token", 12345)
	n.baseURL = srv.URL

	if err := n.SendMessage(context.Background(), "hello"); err != nil {
		t.Fatal(err)
	}

	if len(*calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(*calls))
	}
	call := (*calls)[0]
	if call["_path"] != "/bottest-token/sendMessage" {
		t.Errorf("path = %s", call["_path"])
	}
	if call["chat_id"] != "12345" {
		t.Errorf("chat_id = %s", call["chat_id"])
	}
	if call["text"] != "hello" {
		t.Errorf("text = %s", call["text"])
	}
	if call["disable_web_page_preview"] != "true" {
		t.Error("web page preview not disabled")
	}
}

func TestSendPostingsRendering(t *testing.T) {
	srv, calls := captureServer(t)

	n := NewNotifier("test-token", 12345)
	n.baseURL = srv.URL

	postings := []domain.Posting{
		{
			Title: "IT Support Specialist", Company: "Acme", LocationRaw: "Jersey City, NJ",
			SalaryMin: 70000, SalaryMax: 90000, FitScore: 88,
			LocationClass: domain.LocationClose, Source: domain.SourceLinkedIn,
			URL: "https://example.com/job/1",
		},
		{
			Title: "Help Desk Technician", Company: "Globex", LocationRaw: "Remote",
			FitScore: 75, LocationClass: domain.LocationNYCEligible, Source: domain.SourceIndeed,
		},
	}

	if err := n.SendPostings(context.Background(), postings, true); err != nil {
		t.Fatal(err)
	}

	text := (*calls)[0]["text"]
	for _, want := range []string{
		"IT Support Specialist", "Acme", "Jersey City, NJ",
		"$70000 - $90000", "fit 88/100",
		"Help Desk Technician", "/more",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("message missing %q:\n%s", want, text)
		}
	}
}

func TestSendPostingsEmptyBatch(t *testing.T) {
	srv, calls := captureServer(t)

	n := NewNotifier("test-token", 12345)
	n.baseURL = srv.URL

	if err := n.SendPostings(context.Background(), nil, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains((*calls)[0]["text"], "No more jobs") {
		t.Errorf("empty batch message = %q", (*calls)[0]["text"])
	}
}

func TestSendMessageMisconfigured(t *testing.T) {
	n := NewNotifier("", 0)
	if err := n.SendMessage(context.Background(), "x"); err == nil {
		t.Error("expected an error with no token and no chat id")
	}
}
