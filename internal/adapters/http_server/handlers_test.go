package httpserver_test

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	server "hima_estates/internal/adapters/http_server"
	"hima_estates/internal/adapters/observability"
	"hima_estates/internal/app"
	"hima_estates/internal/catalog"
	"hima_estates/internal/gallery"
	"hima_estates/internal/gallery/gallerytest"
)

// ---- helpers ----

func newServer(t *testing.T, rps int, clk gallery.Clock) (*server.Server, *httptest.Server) {
	t.Helper()
	r := catalog.Resolver{}
	cat, err := catalog.Default(r)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	pages := app.NewPageService(cat, nil, time.Minute, app.Site{
		HeroImages: catalog.HeroImages(r),
		AboutImage: catalog.AboutImage(r),
	})
	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Pages:        pages,
		HeroInterval: time.Second,
		RateLimitRPS: rps,
		Clock:        clk,
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return srv, ts
}

func get(t *testing.T, url string, hdr map[string]string) (*http.Response, string) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

func mustContain(t *testing.T, body string, subs ...string) {
	t.Helper()
	for _, s := range subs {
		if !strings.Contains(body, s) {
			t.Errorf("body missing %q", s)
		}
	}
}

func mustNotContain(t *testing.T, body string, subs ...string) {
	t.Helper()
	for _, s := range subs {
		if strings.Contains(body, s) {
			t.Errorf("body unexpectedly contains %q", s)
		}
	}
}

// ---- page ----

func TestHome_RendersListing(t *testing.T) {
	_, ts := newServer(t, 0, nil)
	resp, body := get(t, ts.URL+"/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content-type = %q", ct)
	}
	mustContain(t, body,
		"Heritage Villa Mysore",
		"₹40,000",
		`data-scroll-locked="false"`,
		`data-scrolled="false"`,
		// html/template escapes '+' inside URL attributes
		`href="tel:&#43;919739283637"`,
		"https://wa.me/919739283637",
		`data-hero-slide="3"`,
		"More properties coming soon!",
	)
	mustNotContain(t, body, `id="property-modal"`, `id="mobile-menu"`, `id="lightbox"`, "ZgotmplZ")
}

func TestHome_ScrollAndMenu(t *testing.T) {
	_, ts := newServer(t, 0, nil)

	_, body := get(t, ts.URL+"/?y=50", nil)
	mustContain(t, body, `data-scrolled="false"`)
	_, body = get(t, ts.URL+"/?y=51", nil)
	mustContain(t, body, `data-scrolled="true"`)

	_, body = get(t, ts.URL+"/?menu=1", nil)
	mustContain(t, body, `id="mobile-menu"`, `aria-expanded="true"`)
}

func TestHome_DetailLocksScroll(t *testing.T) {
	_, ts := newServer(t, 0, nil)
	resp, body := get(t, ts.URL+"/?property=1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	mustContain(t, body,
		`data-scroll-locked="true"`,
		`id="property-modal"`,
		`data-gallery-index="0"`,
		"1 / 18",
		"14 guests", "6 bedrooms", "7 bathrooms",
		`id="booking-link" aria-disabled="true"`,
		"Online booking coming soon",
	)
	mustNotContain(t, body, "Book on Airbnb", `id="lightbox"`)
}

func TestHome_GalleryWraps(t *testing.T) {
	_, ts := newServer(t, 0, nil)

	_, body := get(t, ts.URL+"/?property=1&img=17&step=1", nil)
	mustContain(t, body, `data-gallery-index="0"`, "1 / 18")

	_, body = get(t, ts.URL+"/?property=1&img=-1", nil)
	mustContain(t, body, `data-gallery-index="17"`, "18 / 18", "/images/terrace_three.jpg")

	_, body = get(t, ts.URL+"/?property=1&step=-19", nil)
	mustContain(t, body, `data-gallery-index="17"`)
}

func TestHome_Lightbox(t *testing.T) {
	_, ts := newServer(t, 0, nil)
	_, body := get(t, ts.URL+"/?property=1&img=3&lightbox=1", nil)
	mustContain(t, body,
		`id="lightbox"`,
		`img=2&amp;lightbox=1&amp;property=1`,
		`img=4&amp;lightbox=1&amp;property=1`,
	)

	// no lightbox without a selected property
	_, body = get(t, ts.URL+"/?lightbox=1", nil)
	mustNotContain(t, body, `id="lightbox"`)
}

func TestHome_BadRequests(t *testing.T) {
	_, ts := newServer(t, 0, nil)
	tests := []struct {
		query string
		want  int
	}{
		{"?property=99", http.StatusNotFound},
		{"?property=abc", http.StatusBadRequest},
		{"?property=1&img=x", http.StatusBadRequest},
		{"?property=1&step=1.5", http.StatusBadRequest},
		{"?y=abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		resp, _ := get(t, ts.URL+"/"+tt.query, nil)
		if resp.StatusCode != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.query, resp.StatusCode, tt.want)
		}
	}
}

// ---- JSON ----

func TestGetProperty_JSONAndETag(t *testing.T) {
	_, ts := newServer(t, 0, nil)
	resp, body := get(t, ts.URL+"/v1/properties/1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body=%s", resp.StatusCode, body)
	}
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}
	var p struct {
		ID           int64    `json:"id"`
		Name         string   `json:"name"`
		PriceDisplay string   `json:"priceDisplay"`
		Images       []string `json:"images"`
		Description  []string `json:"description"`
		Links        struct {
			Tel      string `json:"tel"`
			WhatsApp string `json:"whatsapp"`
			Booking  string `json:"booking"`
		} `json:"links"`
	}
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ID != 1 || p.Name != "Heritage Villa Mysore" || p.PriceDisplay != "₹40,000" || len(p.Images) != 18 {
		t.Fatalf("unexpected property: %+v", p)
	}
	if p.Links.Tel != "tel:+919739283637" || p.Links.WhatsApp != "https://wa.me/919739283637" || p.Links.Booking != "" {
		t.Fatalf("unexpected links: %+v", p.Links)
	}
	if len(p.Description) < 2 {
		t.Fatalf("description paragraphs = %d", len(p.Description))
	}

	resp, _ = get(t, ts.URL+"/v1/properties/1", map[string]string{"If-None-Match": etag})
	if resp.StatusCode != http.StatusNotModified {
		t.Fatalf("conditional GET status = %d, want 304", resp.StatusCode)
	}
}

func TestGetProperty_Errors(t *testing.T) {
	_, ts := newServer(t, 0, nil)

	resp, _ := get(t, ts.URL+"/v1/properties/2", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content-type = %q", ct)
	}
	resp, _ = get(t, ts.URL+"/v1/properties/abc", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestListProperties(t *testing.T) {
	_, ts := newServer(t, 0, nil)
	_, body := get(t, ts.URL+"/v1/properties", nil)
	var out struct {
		Items []struct {
			ID int64 `json:"id"`
		} `json:"items"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0].ID != 1 {
		t.Fatalf("items = %+v", out.Items)
	}
}

func TestGallery_Endpoint(t *testing.T) {
	_, ts := newServer(t, 0, nil)

	resp, body := get(t, ts.URL+"/v1/properties/1/gallery?index=0&step=-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body=%s", resp.StatusCode, body)
	}
	var pos struct {
		PropertyID int64    `json:"propertyId"`
		Index      int      `json:"index"`
		Count      int      `json:"count"`
		Prev       int      `json:"prev"`
		Next       int      `json:"next"`
		Current    string   `json:"current"`
		Images     []string `json:"images"`
	}
	if err := json.Unmarshal([]byte(body), &pos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pos.PropertyID != 1 || pos.Index != 17 || pos.Count != 18 || pos.Prev != 16 || pos.Next != 0 {
		t.Fatalf("unexpected position: %+v", pos)
	}
	if !strings.HasSuffix(pos.Current, "terrace_three.jpg") || pos.Images != nil {
		t.Fatalf("unexpected image fields: %+v", pos)
	}

	for _, q := range []string{"?index=x", "?step=one"} {
		resp, _ := get(t, ts.URL+"/v1/properties/1/gallery"+q, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, resp.StatusCode)
		}
	}
	resp, _ = get(t, ts.URL+"/v1/properties/9/gallery", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestRateLimit(t *testing.T) {
	_, ts := newServer(t, 1, nil)
	resp, _ := get(t, ts.URL+"/v1/properties", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first request status = %d", resp.StatusCode)
	}
	resp, _ = get(t, ts.URL+"/v1/properties", nil)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Fatalf("missing Retry-After")
	}
	// health checks are never limited
	resp, _ = get(t, ts.URL+"/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d", resp.StatusCode)
	}
}

func TestRateLimit_IgnoresForwardedFor(t *testing.T) {
	h := server.RateLimit(1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	limited := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/properties", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	if limited != 49 {
		t.Fatalf("limited = %d, want 49", limited)
	}

	// through the router, where RealIP rewrites RemoteAddr from the header
	_, ts := newServer(t, 1, nil)
	resp, _ := get(t, ts.URL+"/v1/properties", map[string]string{"X-Forwarded-For": "10.0.0.1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first request status = %d", resp.StatusCode)
	}
	resp, _ = get(t, ts.URL+"/v1/properties", map[string]string{"X-Forwarded-For": "10.0.0.2"})
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("rotated X-Forwarded-For status = %d, want 429", resp.StatusCode)
	}
}

func TestHome_ExtremeStepWraps(t *testing.T) {
	_, ts := newServer(t, 0, nil)
	// (0 + MaxInt64) mod 18 = 7
	resp, body := get(t, ts.URL+"/?property=1&step=9223372036854775807", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	mustContain(t, body, `data-gallery-index="7"`)
}

func TestMountAssets(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "exterior.jpg"), []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	srv, ts := newServer(t, 0, nil)
	srv.MountAssets("/hima/", dir)
	resp, body := get(t, ts.URL+"/hima/images/exterior.jpg", nil)
	if resp.StatusCode != http.StatusOK || body != "jpeg" {
		t.Fatalf("status = %d body = %q", resp.StatusCode, body)
	}

	cdn, ts2 := newServer(t, 0, nil)
	cdn.MountAssets("https://cdn.example.com", dir)
	resp, _ = get(t, ts2.URL+"/images/exterior.jpg", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("cdn mode served locally: status = %d", resp.StatusCode)
	}
}

// ---- hero stream ----

type streamEvent struct {
	ID   string
	Data struct {
		Index int    `json:"index"`
		Count int    `json:"count"`
		Image string `json:"image"`
	}
}

func readEvents(r io.Reader, out chan<- streamEvent) {
	defer close(out)
	sc := bufio.NewScanner(r)
	var ev streamEvent
	var data string
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "id: "):
			ev.ID = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "" && data != "":
			_ = json.Unmarshal([]byte(data), &ev.Data)
			out <- ev
			ev, data = streamEvent{}, ""
		}
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHeroStream_AutoplaysAndStopsOnDisconnect(t *testing.T) {
	clk := gallerytest.NewClock()
	_, ts := newServer(t, 0, clk)
	baseline := testutil.ToFloat64(observability.AutoplayActive)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/v1/hero/stream", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content-type = %q", ct)
	}

	events := make(chan streamEvent, 8)
	go readEvents(resp.Body, events)
	next := func() streamEvent {
		t.Helper()
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatalf("stream ended early")
			}
			return ev
		case <-time.After(2 * time.Second):
			t.Fatalf("no event")
		}
		return streamEvent{}
	}

	first := next()
	if first.Data.Index != 0 || first.Data.Count != 4 || first.ID != "0" {
		t.Fatalf("first event = %+v", first)
	}
	if clk.Active() != 1 {
		t.Fatalf("active tickers = %d, want 1", clk.Active())
	}
	if got := testutil.ToFloat64(observability.AutoplayActive); got != baseline+1 {
		t.Fatalf("autoplay gauge = %v, want %v", got, baseline+1)
	}

	for want := 1; want <= 4; want++ {
		if n := clk.Tick(); n != 1 {
			t.Fatalf("tick delivered to %d tickers", n)
		}
		ev := next()
		if ev.Data.Index != want%4 {
			t.Fatalf("event %d index = %d, want %d", want, ev.Data.Index, want%4)
		}
	}

	cancel()
	waitFor(t, "autoplay stop", func() bool {
		return clk.Active() == 0 && testutil.ToFloat64(observability.AutoplayActive) == baseline
	})
}

func TestHeroStream_RejectsFastInterval(t *testing.T) {
	_, ts := newServer(t, 0, gallerytest.NewClock())
	for _, q := range []string{"?interval=100", "?interval=soon"} {
		resp, _ := get(t, ts.URL+"/v1/hero/stream"+q, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, resp.StatusCode)
		}
	}
}
