package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelnow/internal/adapters/observability"
	"hotelnow/internal/app"
	"hotelnow/internal/domain"
)

type Handlers struct {
	Catalog *app.CatalogService
	Admin   *app.AdminService
	Leads   *app.LeadService
	Contact *app.ContactService
	Views   domain.ViewStateStore
	ViewTTL int // seconds
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/cities", h.listCities)
	s.mux.Get("/v1/localities", h.listLocalities)
	s.mux.Get("/v1/destinations", h.listDestinations)
	s.mux.Get("/v1/cities/{city}/hotels", h.listHotels)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)

	s.mux.Post("/v1/bookings", h.submitLead)
	s.mux.Post("/v1/contact", h.submitContact)

	s.mux.Put("/v1/views/{view}/filters", h.putFilters)
	s.mux.Delete("/v1/views/{view}/filters", h.clearFilters)
	s.mux.Post("/v1/views/{view}/expanded/{hotel}", h.toggleExpanded)

	s.mux.Route("/v1/admin", func(r chi.Router) {
		r.Post("/hotels", h.createHotel)
		r.Put("/hotels/{id}", h.updateHotel)
		r.Delete("/hotels/{id}", h.deleteHotel)
		r.Post("/cities", h.createCity)
		r.Delete("/cities/{id}", h.deleteCity)
		r.Post("/localities", h.createLocality)
		r.Put("/localities/{id}", h.updateLocality)
		r.Delete("/localities/{id}", h.deleteLocality)
		r.Post("/destinations", h.createDestination)
		r.Put("/destinations/{id}", h.updateDestination)
		r.Delete("/destinations/{id}", h.deleteDestination)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
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

// ---- view state keys ----

func filtersKey(view string) string { return fmt.Sprintf("view:%s:filters", view) }
func expandKey(view string) string  { return fmt.Sprintf("view:%s:expanded", view) }

// ---- catalog reads ----

func (h *Handlers) listCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Catalog.ListCities(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("fetch cities failed")
		cities = []domain.City{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"cities": cities})
}

func (h *Handlers) listLocalities(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	var (
		locs []domain.Locality
		err  error
	)
	if city == "" {
		locs, err = h.Catalog.ListLocalities(r.Context())
	} else {
		locs, err = h.Catalog.LocalitiesForCity(r.Context(), city)
	}
	if err != nil {
		log.Error().Err(err).Str("city", city).Msg("fetch localities failed")
		locs = []domain.Locality{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"localities": locs})
}

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	dests, err := h.Catalog.ListDestinations(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("fetch destinations failed")
		dests = []domain.Destination{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"destinations": dests})
}

// listHotels is the city-scoped list view: fetch, filter, sort, assemble.
// A fetch failure is logged and rendered as an empty list; there is no
// user-facing error state here.
func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	q := r.URL.Query()
	viewID := q.Get("view")

	crit := domain.SearchCriteria{
		City:      city,
		StartDate: q.Get("checkin"),
		EndDate:   q.Get("checkout"),
		Guests:    1,
	}
	if g, err := strconv.Atoi(q.Get("guests")); err == nil && g >= 1 {
		crit.Guests = g
	}

	sel := h.resolveSelection(r, viewID)
	sortKey := sel.Sort
	if sortKey == "" {
		sortKey = domain.SortPopularity
	}

	expanded := app.ExpandState{}
	if viewID != "" {
		if _, err := h.Views.Get(r.Context(), expandKey(viewID), &expanded); err != nil {
			log.Error().Err(err).Msg("load expand state failed")
		}
	}

	var (
		hotels []domain.Hotel
		err    error
	)
	if viewID != "" {
		hotels, err = h.Catalog.HotelsForView(r.Context(), viewID, city)
	} else {
		hotels, err = h.Catalog.ListHotels(r.Context())
	}
	if err != nil {
		if errors.Is(err, app.ErrStale) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		log.Error().Err(err).Str("city", city).Msg("fetch hotels failed")
		hotels = nil
	}

	writeJSON(w, http.StatusOK, app.BuildHotelList(hotels, crit, sel, sortKey, expanded))
}

// resolveSelection starts from the view's stored selection and overlays only
// the fields this request's query actually carries. The selection persists
// for the lifetime of the view; only an explicit clear-all resets it.
func (h *Handlers) resolveSelection(r *http.Request, viewID string) domain.FilterSelection {
	var sel domain.FilterSelection
	if viewID != "" {
		if _, err := h.Views.Get(r.Context(), filtersKey(viewID), &sel); err != nil {
			log.Error().Err(err).Msg("load filter selection failed")
		}
	}

	q := r.URL.Query()
	changed := false
	if prices := q["price"]; len(prices) > 0 {
		sel.Prices = prices
		changed = true
	}
	if localities := q["locality"]; len(localities) > 0 {
		sel.Localities = localities
		changed = true
	}
	if s := q.Get("sort"); s != "" {
		sel.Sort = domain.ParseSortKey(s)
		changed = true
	}

	if changed && viewID != "" {
		if err := h.Views.Set(r.Context(), filtersKey(viewID), sel, h.ViewTTL); err != nil {
			log.Error().Err(err).Msg("persist filter selection failed")
		}
	}
	return sel
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var (
		hotel domain.Hotel
		err   error
	)
	if viewID := r.URL.Query().Get("view"); viewID != "" {
		hotel, err = h.Catalog.GetHotelForView(r.Context(), viewID, id)
	} else {
		hotel, err = h.Catalog.GetHotel(r.Context(), id)
	}
	if err != nil {
		if errors.Is(err, app.ErrStale) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("fetch hotel failed")
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}

	etag, body := calcETagAndBody(hotel)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write hotel body")
	}
}

// ---- forms ----

func (h *Handlers) submitLead(w http.ResponseWriter, r *http.Request) {
	var lead app.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "expected a JSON booking lead")
		return
	}
	res, err := h.Leads.Submit(r.Context(), lead)
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Submit Interrupted", err.Error())
		return
	}
	if len(res.FieldErrors) > 0 {
		observability.ObserveLead("invalid")
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	observability.ObserveLead("submitted")
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) submitContact(w http.ResponseWriter, r *http.Request) {
	var msg app.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "expected a JSON contact message")
		return
	}
	res, err := h.Contact.Submit(r.Context(), msg)
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Submit Interrupted", err.Error())
		return
	}
	if len(res.FieldErrors) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ---- view state ----

func (h *Handlers) putFilters(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	var sel domain.FilterSelection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "expected a JSON filter selection")
		return
	}
	if err := h.Views.Set(r.Context(), filtersKey(view), sel, h.ViewTTL); err != nil {
		writeProblem(w, http.StatusInternalServerError, "State Error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// clearFilters is the "clear all" action; expanded flags survive it.
func (h *Handlers) clearFilters(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	if err := h.Views.Del(r.Context(), filtersKey(view)); err != nil {
		writeProblem(w, http.StatusInternalServerError, "State Error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) toggleExpanded(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	hotelID := chi.URLParam(r, "hotel")

	state := app.ExpandState{}
	if _, err := h.Views.Get(r.Context(), expandKey(view), &state); err != nil {
		writeProblem(w, http.StatusInternalServerError, "State Error", err.Error())
		return
	}
	state.Toggle(hotelID)
	if err := h.Views.Set(r.Context(), expandKey(view), state, h.ViewTTL); err != nil {
		writeProblem(w, http.StatusInternalServerError, "State Error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hotelId": hotelID, "expanded": state.Expanded(hotelID)})
}

// ---- admin CRUD ----

// formInput accepts either a JSON object of strings or a classic URL-encoded
// form; either way the coercion layer sees plain text fields.
func formInput(r *http.Request) (map[string]string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var m map[string]string
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			return nil, err
		}
		return m, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	m := make(map[string]string, len(r.PostForm))
	for k, vs := range r.PostForm {
		if len(vs) > 0 {
			m[k] = vs[0]
		}
	}
	return m, nil
}

// writeAdminError surfaces coercion problems as field errors and store
// failures with the underlying reason, so the form can redisplay inline.
func writeAdminError(w http.ResponseWriter, err error) {
	var ve *app.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"fieldErrors": ve.Fields})
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "record not found")
		return
	}
	writeProblem(w, http.StatusBadGateway, "Write Failed", err.Error())
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	form, err := formInput(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	id, err := h.Admin.CreateHotel(r.Context(), form)
	if err != nil {
		writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	form, err := formInput(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.Admin.UpdateHotel(r.Context(), chi.URLParam(r, "id"), form); err != nil {
		writeAdminError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	if err := h.Admin.DeleteHotel(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeAdminError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) createCity(w http.ResponseWriter, r *http.Request) {
	form, err := formInput(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	id, err := h.Admin.CreateCity(r.Context(), form)
	if err != nil {
		writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) deleteCity(w http.ResponseWriter, r *http.Request) {
	if err := h.Admin.DeleteCity(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeAdminError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) createLocality(w http.ResponseWriter, r *http.Request) {
	form, err := formInput(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	id, err := h.Admin.CreateLocality(r.Context(), form)
	if err != nil {
		writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) updateLocality(w http.ResponseWriter, r *http.Request) {
	form, err := formInput(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.Admin.UpdateLocality(r.Context(), chi.URLParam(r, "id"), form); err != nil {
		writeAdminError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteLocality(w http.ResponseWriter, r *http.Request) {
	if err := h.Admin.DeleteLocality(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeAdminError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) createDestination(w http.ResponseWriter, r *http.Request) {
	form, err := formInput(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	id, err := h.Admin.CreateDestination(r.Context(), form)
	if err != nil {
		writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) updateDestination(w http.ResponseWriter, r *http.Request) {
	form, err := formInput(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.Admin.UpdateDestination(r.Context(), chi.URLParam(r, "id"), form); err != nil {
		writeAdminError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteDestination(w http.ResponseWriter, r *http.Request) {
	if err := h.Admin.DeleteDestination(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeAdminError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
