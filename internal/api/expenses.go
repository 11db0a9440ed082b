package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"expensed/internal/db"
)

type expensePayload struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Amount   *decimal.Decimal `json:"amount"`
	Category string           `json:"category"`
	Date     string           `json:"date"`
}

func (p expensePayload) missingFields() bool {
	return p.Title == "" || p.Amount == nil || p.Category == "" || p.Date == ""
}

// parseDate accepts full timestamps and bare calendar dates, since the web
// client sends either depending on the form field.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload expensePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.missingFields() {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	date, err := parseDate(payload.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	expense, err := s.services.Expenses.Create(r.Context(), db.CreateExpenseParams{
		UserID:   userID,
		Title:    payload.Title,
		Amount:   *payload.Amount,
		Category: db.Category(payload.Category),
		Date:     date,
	})
	if err != nil {
		s.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, expense)
}

// handleGetExpenses treats filter parameters leniently: an unknown category
// simply matches no rows and unparsable bounds are ignored. The sorting
// parameter is the exception and rejects the request outright.
func (s *Server) handleGetExpenses(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params := r.URL.Query()

	sort, err := db.ParseSort(params.Get("sorting"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	q := db.ListQuery{Sort: sort, Page: 1}

	if page, err := strconv.Atoi(params.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if all, err := strconv.ParseBool(params.Get("all")); err == nil {
		q.All = all
	}
	if category := params.Get("category"); category != "" {
		c := db.Category(category)
		q.Category = &c
	}
	if min, err := decimal.NewFromString(params.Get("minAmount")); err == nil {
		q.MinAmount = &min
	}
	if max, err := decimal.NewFromString(params.Get("maxAmount")); err == nil {
		q.MaxAmount = &max
	}
	if start, err := parseDate(params.Get("startDate")); err == nil {
		q.StartDate = &start
	}
	if end, err := parseDate(params.Get("endDate")); err == nil {
		q.EndDate = &end
	}

	rows, total, err := s.services.Expenses.List(r.Context(), userID, q)
	if err != nil {
		s.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"data":  rows,
		"total": total,
	})
}

func (s *Server) handleEditExpense(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload expensePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ID == "" || payload.missingFields() {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	id, err := uuid.Parse(payload.ID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	date, err := parseDate(payload.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	updated, err := s.services.Expenses.Update(r.Context(), db.UpdateExpenseParams{
		ID:       id,
		UserID:   userID,
		Title:    payload.Title,
		Amount:   *payload.Amount,
		Category: db.Category(payload.Category),
		Date:     date,
	})
	if err != nil {
		s.handleError(w, err)
		return
	}

	// an empty result means the row is gone or owned by someone else; both
	// look the same to the caller on purpose
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    updated,
	})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var rawIDs []string
	if err := json.NewDecoder(r.Body).Decode(&rawIDs); err != nil {
		respondError(w, http.StatusBadRequest, "Request body must be an array of expense ids")
		return
	}

	ids := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}

	if _, err := s.services.Expenses.Delete(r.Context(), userID, ids); err != nil {
		s.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Expense(s) deleted successfully",
	})
}
