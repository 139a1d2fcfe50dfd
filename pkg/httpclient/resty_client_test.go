package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
)

func TestRestyClientGetForwardsHeadersAndStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("User-Agent"); got != "bp-test/1.0" {
			t.Fatalf("unexpected user agent %q", got)
		}
		if got := r.URL.Query().Get("query"); got != "oak" {
			t.Fatalf("unexpected query %q", got)
		}
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	client := NewRestyClient(2 * time.Second)
	resp, err := client.Get(context.Background(), srv.URL+"/search?query=oak", map[string]string{
		"User-Agent": "bp-test/1.0",
	})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusTeapot {
		t.Fatalf("status = %d", resp.StatusCode())
	}
	if string(resp.Body()) != "short and stout" {
		t.Fatalf("body = %q", resp.Body())
	}
}

func TestRestyClientGetReturnsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := FromResty(resty.New().SetTimeout(time.Second))
	if _, err := client.Get(context.Background(), url, nil); err == nil {
		t.Fatalf("expected error for closed server")
	}
}

func TestRestyClientGetWrapsErrorWithURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL + "/palette/1"
	srv.Close()

	_, err := NewRestyClient(time.Second).Get(context.Background(), url, nil)
	if err == nil {
		t.Fatalf("expected error for closed server")
	}
	if !strings.Contains(err.Error(), url) {
		t.Fatalf("error %q should name the url", err)
	}
}
