package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hima_estates/internal/adapters/observability"
	"hima_estates/internal/gallery"
)

const (
	defaultHeroInterval = 5 * time.Second
	defaultMinInterval  = 250 * time.Millisecond
)

type heroEvent struct {
	Index int    `json:"index"`
	Count int    `json:"count"`
	Image string `json:"image"`
}

func (h *Handlers) streamInterval(r *http.Request) (time.Duration, error) {
	d := h.HeroInterval
	if d <= 0 {
		d = defaultHeroInterval
	}
	ms, ok, err := intParam(r.URL.Query(), "interval")
	if err != nil {
		return 0, err
	}
	if !ok {
		return d, nil
	}
	floor := h.MinInterval
	if floor <= 0 {
		floor = defaultMinInterval
	}
	d = time.Duration(ms) * time.Millisecond
	if d < floor {
		return 0, fmt.Errorf("interval must be at least %dms", floor.Milliseconds())
	}
	return d, nil
}

// heroStream pushes the hero slideshow position as server-sent events. Each
// connection owns one autoplaying controller, stopped when the client goes away.
func (h *Handlers) heroStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "streaming unsupported")
		return
	}
	interval, err := h.streamInterval(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid interval", err.Error())
		return
	}

	changes := make(chan int, 1)
	g, err := gallery.New(h.Pages.HeroImages(),
		gallery.WithClock(h.Clock),
		gallery.WithOnChange(func(i int) {
			// latest wins; a slow client skips slides rather than stalling the timer
			for {
				select {
				case changes <- i:
					return
				default:
				}
				select {
				case <-changes:
				default:
				}
			}
		}),
	)
	if err != nil {
		log.Error().Err(err).Msg("hero gallery unavailable")
		writeProblem(w, http.StatusServiceUnavailable, "Unavailable", "no hero images")
		return
	}
	defer g.Close()

	l := log.With().Str("stream", uuid.NewString()).Dur("interval", interval).Logger()
	if err := g.StartAutoplay(interval); err != nil {
		l.Error().Err(err).Msg("start hero autoplay failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "autoplay failed")
		return
	}
	seq := 0
	observability.AutoplayActive.Inc()
	defer observability.AutoplayActive.Dec()
	l.Debug().Msg("hero stream opened")
	defer func() { l.Debug().Int("sent", seq).Msg("hero stream closed") }()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	images := g.Images()
	send := func(i int) bool {
		b, _ := json.Marshal(heroEvent{Index: i, Count: len(images), Image: images[i]})
		if _, err := fmt.Fprintf(w, "event: hero\nid: %d\ndata: %s\n\n", seq, b); err != nil {
			l.Debug().Err(err).Msg("hero stream write failed")
			return false
		}
		seq++
		flusher.Flush()
		return true
	}

	if !send(g.Index()) {
		return
	}
	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case i := <-changes:
			if !send(i) {
				return
			}
			observability.ObserveGallery("hero", "autoplay")
		}
	}
}
