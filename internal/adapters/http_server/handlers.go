package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hima_estates/internal/adapters/observability"
	"hima_estates/internal/app"
	"hima_estates/internal/domain"
	"hima_estates/internal/gallery"
	"hima_estates/internal/present"
)

type Handlers struct {
	Pages *app.PageService
	// HeroInterval is the default hero stream period.
	HeroInterval time.Duration
	// MinInterval bounds the interval a stream client may ask for.
	MinInterval  time.Duration
	RateLimitRPS int
	// Clock drives gallery autoplay; nil uses real time.
	Clock gallery.Clock
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type propertyLinks struct {
	Tel      string `json:"tel"`
	WhatsApp string `json:"whatsapp"`
	Booking  string `json:"booking,omitempty"`
}

type propertyDTO struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Location     string        `json:"location"`
	Tagline      string        `json:"tagline"`
	Price        int64         `json:"price"`
	PriceDisplay string        `json:"priceDisplay"`
	Guests       int           `json:"guests"`
	Bedrooms     int           `json:"bedrooms"`
	Bathrooms    int           `json:"bathrooms"`
	CoverImage   string        `json:"coverImage"`
	Images       []string      `json:"images"`
	Description  []string      `json:"description"`
	Amenities    []string      `json:"amenities"`
	HouseRules   []string      `json:"houseRules"`
	Phone        string        `json:"phone"`
	Links        propertyLinks `json:"links"`
}

func toDTO(p domain.Property) propertyDTO {
	booking, _ := present.BookingLink(p.BookingURL)
	return propertyDTO{
		ID:           p.ID,
		Name:         p.Name,
		Location:     p.Location,
		Tagline:      p.Tagline,
		Price:        p.Price,
		PriceDisplay: present.Price(p.Price),
		Guests:       p.Guests,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		CoverImage:   p.CoverImage,
		Images:       p.Images,
		Description:  present.Paragraphs(p.Description),
		Amenities:    p.Amenities,
		HouseRules:   p.HouseRules,
		Phone:        p.Phone,
		Links: propertyLinks{
			Tel:      present.TelURI(p.Phone),
			WhatsApp: present.WhatsAppURI(p.WhatsApp),
			Booking:  booking,
		},
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON answers with v, or 304 when the client already holds this version.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not encode response")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write JSON body")
	}
}

func (h *Handlers) propertyID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return 0, false
	}
	return id, true
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	props := h.Pages.Catalog().All()
	out := make([]propertyDTO, 0, len(props))
	for _, p := range props {
		out = append(out, toDTO(p))
	}
	writeJSON(w, r, struct {
		Items []propertyDTO `json:"items"`
	}{out})
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := h.propertyID(w, r)
	if !ok {
		return
	}
	p, err := h.Pages.Catalog().Get(id)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
		return
	}
	writeJSON(w, r, toDTO(p))
}

// gallery answers a lightbox move: ?index= selects, then ?step= moves
// relative to it. Both wrap.
func (h *Handlers) gallery(w http.ResponseWriter, r *http.Request) {
	id, ok := h.propertyID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	index, _, err := intParam(q, "index")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid index", err.Error())
		return
	}
	step, _, err := intParam(q, "step")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid step", err.Error())
		return
	}

	pos, err := h.Pages.Gallery(r.Context(), id, index, step)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
			return
		}
		log.Error().Err(err).Int64("id", id).Msg("gallery move failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "gallery unavailable")
		return
	}
	kind := "select"
	if step != 0 {
		kind = "step"
	}
	observability.ObserveGallery("detail", kind)

	pos.Images = nil
	writeJSON(w, r, struct {
		PropertyID int64 `json:"propertyId"`
		app.GalleryPosition
	}{id, pos})
}
