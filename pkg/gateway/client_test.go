package gateway_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/monetize-software/gateway-probe/pkg/gateway"
)

func TestClient_Do_GET(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer ts.Close()

	client := gateway.NewClient(gateway.WithHTTPClient(ts.Client()))
	res, err := client.Do(context.Background(), &gateway.Request{
		Method: "GET",
		URL:    ts.URL + "/220",
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if res.StatusCode != 200 {
		t.Errorf("expected 200, got %d", res.StatusCode)
	}
	if res.StatusPhrase != "OK" {
		t.Errorf("expected phrase OK, got %q", res.StatusPhrase)
	}
	if res.Body != `{"ok":true}` {
		t.Errorf("unexpected raw body %q", res.Body)
	}
	if res.Headers["Content-Type"] != "application/json" {
		t.Errorf("unexpected headers %v", res.Headers)
	}
	if diff := cmp.Diff(map[string]any{"ok": true}, res.JSON); diff != "" {
		t.Errorf("unexpected decoded body (-want +got):\n%s", diff)
	}
}

func TestClient_Do_POSTBodyAndDefaultContentType(t *testing.T) {
	t.Parallel()
	var receivedBody string
	var receivedContentType string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		receivedBody = string(body)
		receivedContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	client := gateway.NewClient(gateway.WithHTTPClient(ts.Client()))
	res, err := client.Do(context.Background(), &gateway.Request{
		Method: "POST",
		URL:    ts.URL + "/220",
		Body:   map[string]any{"ping": "pong"},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if res.StatusCode != 201 {
		t.Errorf("expected 201, got %d", res.StatusCode)
	}
	if receivedBody != `{"ping":"pong"}` {
		t.Errorf("unexpected body sent: %q", receivedBody)
	}
	if receivedContentType != "application/json" {
		t.Errorf("expected defaulted content type, got %q", receivedContentType)
	}
}

func TestClient_Do_ContentTypeNotOverridden(t *testing.T) {
	t.Parallel()
	var receivedContentType string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedContentType = r.Header.Get("Content-Type")
	}))
	defer ts.Close()

	client := gateway.NewClient(gateway.WithHTTPClient(ts.Client()))
	_, err := client.Do(context.Background(), &gateway.Request{
		Method:  "POST",
		URL:     ts.URL,
		Headers: map[string]any{"content-type": "text/plain"},
		Body:    map[string]any{"ping": "pong"},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if receivedContentType != "text/plain" {
		t.Errorf("expected text/plain to survive, got %q", receivedContentType)
	}
}

func TestClient_Do_QueryParams(t *testing.T) {
	t.Parallel()
	var receivedQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedQuery = r.URL.RawQuery
	}))
	defer ts.Close()

	client := gateway.NewClient(gateway.WithHTTPClient(ts.Client()))
	_, err := client.Do(context.Background(), &gateway.Request{
		Method: "GET",
		URL:    ts.URL + "/220",
		Params: map[string]any{"limit": float64(5), "q": "ping"},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if receivedQuery != "limit=5&q=ping" {
		t.Errorf("unexpected query %q", receivedQuery)
	}
}

func TestClient_Do_NonJSONBody(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "plain text response")
	}))
	defer ts.Close()

	client := gateway.NewClient(gateway.WithHTTPClient(ts.Client()))
	res, err := client.Do(context.Background(), &gateway.Request{
		Method: "GET",
		URL:    ts.URL,
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if res.JSON != nil {
		t.Errorf("expected nil JSON for a text body, got %v", res.JSON)
	}
	if res.Body != "plain text response" {
		t.Errorf("unexpected body %q", res.Body)
	}
}

func TestClient_Do_Timeout(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer ts.Close()

	client := gateway.NewClient()
	_, err := client.Do(context.Background(), &gateway.Request{
		Method:  "GET",
		URL:     ts.URL,
		Timeout: 50 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected a timeout error")
	}
}

func TestClient_Do_ConnectionRefused(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := gateway.NewClient()
	_, err := client.Do(context.Background(), &gateway.Request{
		Method: "GET",
		URL:    ts.URL,
	})
	if err == nil {
		t.Fatal("expected a transport error")
	}
}

type recordingTranscript struct {
	requests  int
	responses int
}

func (r *recordingTranscript) Close() error { return nil }

func (r *recordingTranscript) Request(req *http.Request) error {
	r.requests++
	return nil
}

func (r *recordingTranscript) Response(req *http.Request, res *http.Response) error {
	r.responses++
	return nil
}

func TestClient_Do_TranscriptHook(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))
	defer ts.Close()

	recording := &recordingTranscript{}
	client := gateway.NewClient(
		gateway.WithHTTPClient(ts.Client()),
		gateway.WithTranscript(recording),
	)

	res, err := client.Do(context.Background(), &gateway.Request{
		Method: "GET",
		URL:    ts.URL,
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if recording.requests != 1 || recording.responses != 1 {
		t.Errorf("expected one request and one response record, got %d/%d",
			recording.requests, recording.responses)
	}
	if res.Body != "ok" {
		t.Errorf("body should survive the transcript hook, got %q", res.Body)
	}
}

func TestDefaultContentType(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]any
		hasBody bool
		want    string
	}{
		{
			name:    "body without headers",
			hasBody: true,
			want:    "application/json",
		},
		{
			name:    "body with unrelated headers",
			headers: map[string]any{"X-Custom": "v"},
			hasBody: true,
			want:    "application/json",
		},
		{
			name:    "lowercase content type kept",
			headers: map[string]any{"content-type": "text/plain"},
			hasBody: true,
			want:    "",
		},
		{
			name:    "no body, no default",
			hasBody: false,
			want:    "",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := gateway.DefaultContentType(c.headers, c.hasBody)
			if c.want == "" {
				if _, ok := got["Content-Type"]; ok {
					t.Errorf("unexpected Content-Type in %v", got)
				}
				return
			}
			if got["Content-Type"] != c.want {
				t.Errorf("expected Content-Type %q in %v", c.want, got)
			}
		})
	}
}
