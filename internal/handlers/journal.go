package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/triplog/triplog-backend/internal/middleware"
	"github.com/triplog/triplog-backend/internal/models"
	"github.com/triplog/triplog-backend/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaDeleter is the slice of the media store the journal handlers
// use for best-effort image cleanup on entry deletion.
type MediaDeleter interface {
	DeleteByURL(imageURL string) error
}

type JournalHandler struct {
	journals       store.JournalStore
	media          MediaDeleter
	placeholderURL string
}

func NewJournalHandler(journals store.JournalStore, media MediaDeleter, placeholderURL string) *JournalHandler {
	return &JournalHandler{journals: journals, media: media, placeholderURL: placeholderURL}
}

type journalRequest struct {
	Title           string      `json:"title"`
	Journal         string      `json:"journal"`
	VisitedLocation []string    `json:"visitedLocation"`
	ImageURL        string      `json:"imageUrl"`
	VisitedDate     json.Number `json:"visitedDate"`
}

// parseEpochMillis converts a client-supplied epoch-millisecond value
// (number or numeric string) to a time. Non-numeric input is rejected
// instead of silently producing an invalid date.
func parseEpochMillis(v json.Number) (time.Time, error) {
	ms, err := strconv.ParseInt(v.String(), 10, 64)
	if err != nil {
		return time.Time{}, errors.New("not a millisecond timestamp")
	}
	return time.UnixMilli(ms), nil
}

func ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return userID, true
}

// Create handles POST /add-travel-journal.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req journalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == "" || req.Journal == "" || req.VisitedLocation == nil || req.ImageURL == "" || req.VisitedDate == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	visitedDate, err := parseEpochMillis(req.VisitedDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "visitedDate must be a timestamp in milliseconds")
		return
	}

	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	journal := &models.TravelJournal{
		Title:           req.Title,
		Journal:         req.Journal,
		VisitedLocation: req.VisitedLocation,
		UserID:          owner,
		ImageURL:        req.ImageURL,
		VisitedDate:     visitedDate,
		CreatedOn:       time.Now(),
	}
	if err := h.journals.CreateJournal(r.Context(), journal); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"journal": journal,
		"message": "Journal added successfully",
	})
}

// All handles GET /get-all-journals, favourite entries first.
func (h *JournalHandler) All(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	journals, err := h.journals.JournalsByOwner(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"journals": journals})
}

// Edit handles PUT /edit-journal/{id}. imageUrl is the one optional
// field; when omitted the placeholder asset URL is substituted.
func (h *JournalHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req journalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == "" || req.Journal == "" || req.VisitedLocation == nil || req.VisitedDate == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	visitedDate, err := parseEpochMillis(req.VisitedDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "visitedDate must be a timestamp in milliseconds")
		return
	}

	journal, err := h.journals.JournalByID(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Travel journal not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	journal.Title = req.Title
	journal.Journal = req.Journal
	journal.VisitedLocation = req.VisitedLocation
	journal.VisitedDate = visitedDate
	if req.ImageURL != "" {
		journal.ImageURL = req.ImageURL
	} else {
		journal.ImageURL = h.placeholderURL
	}

	if err := h.journals.UpdateJournal(r.Context(), journal); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"journal": journal,
		"message": "Updated journal successfully",
	})
}

// Delete handles DELETE /delete-journal/{id}. The database deletion is
// authoritative; removing the stored image afterwards is advisory
// cleanup whose failure is only logged.
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	journal, err := h.journals.DeleteJournal(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Travel journal not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if journal.ImageURL != "" {
		if err := h.media.DeleteByURL(journal.ImageURL); err != nil {
			log.Printf("Failed to delete image file for journal %s: %v", id, err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Travel journal deleted successfully",
	})
}

// UpdateFavourite handles PUT /update-is-favourite/{id}.
func (h *JournalHandler) UpdateFavourite(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req struct {
		IsFavourite bool `json:"isFavourite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	journal, err := h.journals.JournalByID(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Travel journal not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	journal.IsFavourite = req.IsFavourite
	if err := h.journals.UpdateJournal(r.Context(), journal); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"journal": journal,
		"message": "Updated successfully",
	})
}

// Search handles GET /search?query=. A missing query responds 404 for
// compatibility with the existing frontend.
func (h *JournalHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusNotFound, "Query is required")
		return
	}

	journals, err := h.journals.SearchJournals(r.Context(), userID, query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"journals": journals})
}

// FilterByDate handles GET /travel-journals/filter?startDate=&endDate=
// with epoch-millisecond bounds, inclusive on both ends.
func (h *JournalHandler) FilterByDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	start, err := parseEpochMillis(json.Number(r.URL.Query().Get("startDate")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "startDate must be a timestamp in milliseconds")
		return
	}
	end, err := parseEpochMillis(json.Number(r.URL.Query().Get("endDate")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "endDate must be a timestamp in milliseconds")
		return
	}

	journals, err := h.journals.JournalsByDateRange(r.Context(), userID, start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"journals": journals})
}
