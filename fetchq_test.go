package fetchq_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adamwoolhether/fetchq"
	"github.com/adamwoolhether/fetchq/engine"
)

func TestBuild_SubmitPoll(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	d, err := fetchq.Build(
		engine.WithIdlePollInterval(10 * time.Millisecond),
		engine.WithReadinessInterval(2 * time.Millisecond),
	)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer d.Close()

	if err := d.Submit(ts.URL); err != nil {
		t.Fatalf("submit: %v", err)
	}

	resp, ok := d.Poll(5 * time.Second)
	if !ok {
		t.Fatal("expected a response before timeout")
	}
	if resp.URL != ts.URL {
		t.Errorf("expected URL %q, got %q", ts.URL, resp.URL)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	if string(resp.Body) != "ok" {
		t.Errorf("expected body %q, got %q", "ok", resp.Body)
	}
}

func TestBuild_OptionError(t *testing.T) {
	if _, err := fetchq.Build(engine.WithClient(nil)); err == nil {
		t.Error("expected an option error")
	}
}

func TestDefault_SingleInstance(t *testing.T) {
	first := fetchq.Default()
	second := fetchq.Default()

	if first == nil {
		t.Fatal("expected a default downloader")
	}
	if first != second {
		t.Error("expected Default to return the same instance")
	}
}

func TestDefault_SubmitPoll(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer ts.Close()

	if err := fetchq.Submit(ts.URL); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// The default engine runs with stock intervals; allow for a full
	// idle poll before the task is picked up.
	deadline := time.Now().Add(10 * time.Second)
	for {
		resp, ok := fetchq.Poll(200 * time.Millisecond)
		if ok {
			if resp.StatusCode != http.StatusTeapot {
				t.Errorf("expected status 418, got %d", resp.StatusCode)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("no response from the default downloader")
		}
	}
}

func TestReexportedSentinels(t *testing.T) {
	if fetchq.StatusTransportError != -1 {
		t.Errorf("expected sentinel -1, got %d", fetchq.StatusTransportError)
	}
	if fetchq.ErrEngineClosed == nil || fetchq.ErrAlreadyStarted == nil {
		t.Error("expected re-exported sentinel errors")
	}
}
