package httpserver

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hima_estates/internal/adapters/observability"
	"hima_estates/internal/app"
	"hima_estates/internal/domain"
	"hima_estates/internal/gallery"
	"hima_estates/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"detailHref": detailHref,
	"menuHref":   menuHref,
	"telURL":     telURL,
	"inc":        func(i int) int { return i + 1 },
}).ParseFS(templatesFS, "templates/*.html"))

type pageData struct {
	Home            app.HomePage
	Detail          *app.DetailView
	State           view.State
	ScrollLocked    bool
	Anchors         []view.Anchor
	ScrollThreshold int
	StreamURL       string
	Year            int
}

// detailHref links to the detail view of id at image img.
func detailHref(id int64, img int, lightbox bool) string {
	q := url.Values{}
	q.Set("property", strconv.FormatInt(id, 10))
	if img != 0 {
		q.Set("img", strconv.Itoa(img))
	}
	if lightbox {
		q.Set("lightbox", "1")
	}
	return "/?" + q.Encode()
}

func menuHref(open bool) string {
	if open {
		return "/"
	}
	return "/?menu=1"
}

// telURL marks tel: links as safe; html/template rejects the scheme otherwise.
func telURL(s string) template.URL {
	if strings.HasPrefix(s, "tel:") {
		return template.URL(s)
	}
	return template.URL("#")
}

// intParam reads an optional integer query parameter.
func intParam(q url.Values, key string) (int, bool, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be an integer", key)
	}
	return n, true, nil
}

// home renders the whole page. View state comes from the query string:
// menu, y, property, img, step and lightbox.
func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sess, err := view.NewSession(h.Pages.Catalog(), nil, view.Config{
		GalleryOptions: []gallery.Option{gallery.WithClock(h.Clock)},
	})
	if err != nil {
		log.Error().Err(err).Msg("build view session failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer sess.Close()

	if y, ok, err := intParam(q, "y"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	} else if ok {
		sess.Scroll(y)
	}
	if q.Get("menu") == "1" {
		sess.ToggleMenu()
	}

	var detail *app.DetailView
	if raw := q.Get("property"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "property must be a number", http.StatusBadRequest)
			return
		}
		dv, status, err := h.openDetail(r, sess, id, q)
		if err != nil {
			http.Error(w, err.Error(), status)
			return
		}
		detail = &dv
	}

	hp, err := h.Pages.Home(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("build home page failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Home:            hp,
		Detail:          detail,
		State:           sess.State(),
		ScrollLocked:    sess.ScrollLocked(),
		Anchors:         view.Anchors(),
		ScrollThreshold: view.ScrollThreshold,
		StreamURL:       "/v1/hero/stream",
		Year:            time.Now().Year(),
	}
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		log.Error().Err(err).Msg("render page failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("failed to write page body")
	}
}

func (h *Handlers) openDetail(r *http.Request, sess *view.Session, id int64, q url.Values) (app.DetailView, int, error) {
	if err := sess.OpenProperty(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return app.DetailView{}, http.StatusNotFound, errors.New("property not found")
		}
		log.Error().Err(err).Int64("id", id).Msg("open property failed")
		return app.DetailView{}, http.StatusInternalServerError, errors.New("internal error")
	}
	g := sess.Detail()

	img, ok, err := intParam(q, "img")
	if err != nil {
		return app.DetailView{}, http.StatusBadRequest, err
	}
	if ok {
		if _, err := g.Select(img); err != nil {
			log.Error().Err(err).Int64("id", id).Msg("gallery select failed")
			return app.DetailView{}, http.StatusInternalServerError, errors.New("internal error")
		}
		observability.ObserveGallery("detail", "select")
	}
	step, ok, err := intParam(q, "step")
	if err != nil {
		return app.DetailView{}, http.StatusBadRequest, err
	}
	if ok && step != 0 {
		if _, err := g.Step(step); err != nil {
			log.Error().Err(err).Int64("id", id).Msg("gallery step failed")
			return app.DetailView{}, http.StatusInternalServerError, errors.New("internal error")
		}
		observability.ObserveGallery("detail", "step")
	}
	if q.Get("lightbox") == "1" {
		sess.OpenLightbox()
	}

	dv, err := h.Pages.Detail(r.Context(), id, g)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("build detail view failed")
		return app.DetailView{}, http.StatusInternalServerError, errors.New("internal error")
	}
	return dv, http.StatusOK, nil
}
