package epic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseOrigin_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseOrigin("")
	if err != nil {
		t.Fatalf("parseOrigin returned error: %v", err)
	}
	if u.String() != DefaultOrigin {
		t.Fatalf("origin = %q, want %q", u.String(), DefaultOrigin)
	}

	u, err = parseOrigin("example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseOrigin returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "example.com:1234" {
		t.Fatalf("origin = %q, want http://example.com:1234", u.String())
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("origin not normalized: %q", u.String())
	}
}

func TestParseOrigin_MissingHostErrors(t *testing.T) {
	if _, err := parseOrigin("http://"); err == nil {
		t.Fatalf("parseOrigin returned nil error, want error")
	}
}

func TestClient_FetchLatestSameOrigin(t *testing.T) {
	t.Parallel()

	var gotPath, gotAccept, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"date":"2024-01-02","caption":"Pacific view","image_name":"epic_1b","image_local":"/images/e1.png","image_url":"https://epic.nasa/e1.png"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{Origin: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	rec, err := c.FetchLatest(ctx)
	if err != nil {
		t.Fatalf("FetchLatest returned error: %v", err)
	}
	if gotPath != "/api/latest" {
		t.Fatalf("path = %q, want /api/latest", gotPath)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
	if !strings.HasPrefix(gotUserAgent, "epicview/") {
		t.Fatalf("User-Agent = %q, want epicview/*", gotUserAgent)
	}
	want := Record{
		Date:       "2024-01-02",
		Caption:    "Pacific view",
		ImageName:  "epic_1b",
		ImageLocal: "/images/e1.png",
		ImageURL:   "https://epic.nasa/e1.png",
	}
	if rec != want {
		t.Fatalf("record = %#v, want %#v", rec, want)
	}
}

func TestClient_FetchLatestUsesAbsoluteBase(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/backend/api/latest" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"date":"2024-01-01","image_local":"/img/e1.png","image_url":"https://epic.nasa/e1.png"}`))
	}))
	t.Cleanup(server.Close)

	// Origin points nowhere; the absolute BASE must win.
	c, err := NewClient(Options{Base: server.URL + "/backend/", Origin: "127.0.0.1:1"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if c.Base() != server.URL+"/backend" {
		t.Fatalf("Base = %q, want trailing slash trimmed", c.Base())
	}
	rec, err := c.FetchLatest(context.Background())
	if err != nil {
		t.Fatalf("FetchLatest returned error: %v", err)
	}
	if rec.Date != "2024-01-01" || rec.HasCaption() {
		t.Fatalf("record = %#v, want date 2024-01-01 without caption", rec)
	}
}

func TestClient_FailuresCollapseToFetchError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing/api/latest":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"No data cached yet"}`))
		case "/broken/api/latest":
			w.WriteHeader(http.StatusInternalServerError)
		case "/garbled/api/latest":
			_, _ = w.Write([]byte(`{not json`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	tests := []struct {
		name       string
		base       string
		wantStatus int
		wantMsg    string
	}{
		{"not found", "/missing", 404, "Request failed with status code 404"},
		{"server error", "/broken", 500, "Request failed with status code 500"},
		{"decode error", "/garbled", 0, "decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(Options{Base: tt.base, Origin: server.URL})
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			_, err = c.FetchLatest(context.Background())
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("error = %v (%T), want *FetchError", err, err)
			}
			if !errors.Is(err, ErrFetch) {
				t.Fatalf("errors.Is(err, ErrFetch) = false, want true")
			}
			if fe.Status != tt.wantStatus {
				t.Fatalf("Status = %d, want %d", fe.Status, tt.wantStatus)
			}
			if !strings.Contains(Message(err), tt.wantMsg) {
				t.Fatalf("Message = %q, want it to contain %q", Message(err), tt.wantMsg)
			}
		})
	}
}

func TestClient_TransportErrorCarriesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	c, err := NewClient(Options{Origin: addr})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchLatest(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v (%T), want *FetchError", err, err)
	}
	if fe.Status != 0 || fe.Err == nil {
		t.Fatalf("FetchError = %#v, want transport cause and zero status", fe)
	}
	if fe.Message == "" || fe.Message != fe.Err.Error() {
		t.Fatalf("Message = %q, want transport error text %q", fe.Message, fe.Err.Error())
	}
}

func TestClient_TimeoutCollapsesToFetchError(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewClient(Options{Origin: server.URL, Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchLatest(context.Background())
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("error = %v, want fetch error", err)
	}
}

func TestClient_FetchImage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img/e1.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{Origin: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	body, ctype, err := c.FetchImage(context.Background(), "/img/e1.png")
	if err != nil {
		t.Fatalf("FetchImage returned error: %v", err)
	}
	if string(body) != "png-bytes" || ctype != "image/png" {
		t.Fatalf("FetchImage = %q %q, want png-bytes image/png", body, ctype)
	}

	if _, _, err := c.FetchImage(context.Background(), "/img/missing.png"); !errors.Is(err, ErrFetch) {
		t.Fatalf("FetchImage missing error = %v, want fetch error", err)
	}
	if _, _, err := c.FetchImage(context.Background(), "  "); !errors.Is(err, ErrFetch) {
		t.Fatalf("FetchImage empty error = %v, want fetch error", err)
	}
}

func TestImageSourceAndURL(t *testing.T) {
	if got := ImageSource("", "/img/e1.png"); got != "/img/e1.png" {
		t.Fatalf("ImageSource same-origin = %q, want /img/e1.png", got)
	}
	if got := ImageSource("https://api.example", "/img/e1.png"); got != "https://api.example/img/e1.png" {
		t.Fatalf("ImageSource = %q, want https://api.example/img/e1.png", got)
	}

	c, err := NewClient(Options{Origin: "http://localhost:5000"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if got := c.ImageURL("/img/e1.png"); got != "http://localhost:5000/img/e1.png" {
		t.Fatalf("ImageURL = %q, want http://localhost:5000/img/e1.png", got)
	}
}

func TestMessage(t *testing.T) {
	if got := Message(nil); got != "" {
		t.Fatalf("Message(nil) = %q, want empty", got)
	}
	if got := Message(errors.New("Network Error")); got != "Network Error" {
		t.Fatalf("Message(plain) = %q, want Network Error", got)
	}
	if got := Message(statusError(502)); got != "Request failed with status code 502" {
		t.Fatalf("Message(status) = %q", got)
	}
}
