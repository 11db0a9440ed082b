package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"expensed/internal/api/middleware"
	"expensed/internal/db"
	"expensed/internal/service"
	"expensed/internal/stats"
)

type stubExpenses struct {
	listQ      db.ListQuery
	listRows   []db.Expense
	listTotal  int64
	created    db.CreateExpenseParams
	updated    db.UpdateExpenseParams
	updateRows []db.Expense
	deletedIDs []uuid.UUID
	deletedBy  uuid.UUID
	err        error
}

func (s *stubExpenses) List(ctx context.Context, userID uuid.UUID, q db.ListQuery) ([]db.Expense, int64, error) {
	s.listQ = q
	return s.listRows, s.listTotal, s.err
}

func (s *stubExpenses) Create(ctx context.Context, params db.CreateExpenseParams) (db.Expense, error) {
	s.created = params
	return db.Expense{
		ID:       uuid.New(),
		Title:    params.Title,
		Amount:   params.Amount,
		Category: params.Category,
		Date:     params.Date,
		UserID:   params.UserID,
	}, s.err
}

func (s *stubExpenses) Update(ctx context.Context, params db.UpdateExpenseParams) ([]db.Expense, error) {
	s.updated = params
	return s.updateRows, s.err
}

func (s *stubExpenses) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	s.deletedBy = userID
	s.deletedIDs = ids
	return int64(len(ids)), s.err
}

type stubStats struct {
	summary stats.Summary
	err     error
}

func (s *stubStats) Summary(ctx context.Context, userID uuid.UUID) (stats.Summary, error) {
	return s.summary, s.err
}

func newTestServer(exp *stubExpenses, st *stubStats) *Server {
	if exp == nil {
		exp = &stubExpenses{}
	}
	if st == nil {
		st = &stubStats{}
	}
	logger := log.New(io.Discard)
	return NewServer(&service.Services{Expenses: exp, Stats: st}, logger)
}

func authedRequest(method, target, body string, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("response is not a JSON object: %v", err)
	}
	return body
}

func TestAddExpense_Created(t *testing.T) {
	exp := &stubExpenses{}
	srv := newTestServer(exp, nil)
	userID := uuid.New()

	req := authedRequest("POST", "/addExpense",
		`{"title":"groceries","amount":42.50,"category":"Food","date":"2025-06-01"}`, userID)
	rec := httptest.NewRecorder()

	srv.handleAddExpense(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if exp.created.UserID != userID {
		t.Errorf("owner id must come from the authenticated context, got %v", exp.created.UserID)
	}
	if !exp.created.Amount.Equal(decimal.RequireFromString("42.5")) {
		t.Errorf("amount = %v, want 42.5", exp.created.Amount)
	}
}

func TestAddExpense_MissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no title", `{"amount":10,"category":"Food","date":"2025-06-01"}`},
		{"no amount", `{"title":"x","category":"Food","date":"2025-06-01"}`},
		{"no category", `{"title":"x","amount":10,"date":"2025-06-01"}`},
		{"no date", `{"title":"x","amount":10,"category":"Food"}`},
		{"not json", `title=x`},
		{"empty body", ``},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(nil, nil)
			req := authedRequest("POST", "/addExpense", tc.body, uuid.New())
			rec := httptest.NewRecorder()

			srv.handleAddExpense(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if body := decodeBody(t, rec); body["error"] != "Missing required fields" {
				t.Errorf("error = %v, want 'Missing required fields'", body["error"])
			}
		})
	}
}

func TestAddExpense_NoUser(t *testing.T) {
	srv := newTestServer(nil, nil)
	req := httptest.NewRequest("POST", "/addExpense",
		strings.NewReader(`{"title":"x","amount":1,"category":"Food","date":"2025-06-01"}`))
	rec := httptest.NewRecorder()

	srv.handleAddExpense(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestGetExpenses_InvalidSorting(t *testing.T) {
	srv := newTestServer(nil, nil)
	req := authedRequest("GET", "/getExpenses?sorting=newest", "", uuid.New())
	rec := httptest.NewRecorder()

	srv.handleGetExpenses(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 for invalid sorting", rec.Code)
	}
}

func TestGetExpenses_DefaultsAndFilters(t *testing.T) {
	exp := &stubExpenses{listRows: []db.Expense{}, listTotal: 37}
	srv := newTestServer(exp, nil)

	req := authedRequest("GET", "/getExpenses?page=4&category=Food&minAmount=5&maxAmount=50", "", uuid.New())
	rec := httptest.NewRecorder()

	srv.handleGetExpenses(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if exp.listQ.Sort != db.SortDateDesc {
		t.Errorf("default sort = %q, want date_desc", exp.listQ.Sort)
	}
	if exp.listQ.Page != 4 {
		t.Errorf("page = %d, want 4", exp.listQ.Page)
	}
	if exp.listQ.Category == nil || *exp.listQ.Category != db.CategoryFood {
		t.Errorf("category filter not forwarded: %v", exp.listQ.Category)
	}
	if exp.listQ.MinAmount == nil || !exp.listQ.MinAmount.Equal(decimal.NewFromInt(5)) {
		t.Errorf("min amount filter not forwarded: %v", exp.listQ.MinAmount)
	}

	body := decodeBody(t, rec)
	if body["total"] != float64(37) {
		t.Errorf("total = %v, want 37", body["total"])
	}
	if _, ok := body["data"]; !ok {
		t.Error("response missing data field")
	}
}

func TestGetExpenses_InvalidPageFallsBackToFirst(t *testing.T) {
	exp := &stubExpenses{}
	srv := newTestServer(exp, nil)

	req := authedRequest("GET", "/getExpenses?page=banana", "", uuid.New())
	rec := httptest.NewRecorder()

	srv.handleGetExpenses(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if exp.listQ.Page != 1 {
		t.Errorf("page = %d, want fallback to 1", exp.listQ.Page)
	}
}

func TestGetExpenses_AllFlag(t *testing.T) {
	exp := &stubExpenses{}
	srv := newTestServer(exp, nil)

	req := authedRequest("GET", "/getExpenses?all=true", "", uuid.New())
	rec := httptest.NewRecorder()

	srv.handleGetExpenses(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !exp.listQ.All {
		t.Error("all=true must disable pagination")
	}
}

func TestEditExpense_EmptyResultIsSuccess(t *testing.T) {
	exp := &stubExpenses{updateRows: []db.Expense{}}
	srv := newTestServer(exp, nil)
	userID := uuid.New()
	id := uuid.New()

	req := authedRequest("PUT", "/editExpense",
		`{"id":"`+id.String()+`","title":"rent","amount":900,"category":"Bills","date":"2025-06-01"}`, userID)
	rec := httptest.NewRecorder()

	srv.handleEditExpense(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when nothing matched: %s", rec.Code, rec.Body.String())
	}
	if exp.updated.ID != id || exp.updated.UserID != userID {
		t.Errorf("update must be scoped by id and owner, got %v / %v", exp.updated.ID, exp.updated.UserID)
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
}

func TestEditExpense_MissingID(t *testing.T) {
	srv := newTestServer(nil, nil)
	req := authedRequest("PUT", "/editExpense",
		`{"title":"rent","amount":900,"category":"Bills","date":"2025-06-01"}`, uuid.New())
	rec := httptest.NewRecorder()

	srv.handleEditExpense(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteExpense_ScopedToCaller(t *testing.T) {
	exp := &stubExpenses{}
	srv := newTestServer(exp, nil)
	userID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	req := authedRequest("DELETE", "/deleteExpense",
		`["`+ids[0].String()+`","`+ids[1].String()+`"]`, userID)
	rec := httptest.NewRecorder()

	srv.handleDeleteExpense(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if exp.deletedBy != userID {
		t.Errorf("delete not scoped to caller: %v", exp.deletedBy)
	}
	if len(exp.deletedIDs) != 2 {
		t.Errorf("forwarded %d ids, want 2", len(exp.deletedIDs))
	}

	body := decodeBody(t, rec)
	if body["message"] != "Expense(s) deleted successfully" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestDeleteExpense_MalformedBody(t *testing.T) {
	srv := newTestServer(nil, nil)
	req := authedRequest("DELETE", "/deleteExpense", `{"ids":[]}`, uuid.New())
	rec := httptest.NewRecorder()

	srv.handleDeleteExpense(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a non-array body", rec.Code)
	}
}

func TestGetStatistics(t *testing.T) {
	st := &stubStats{summary: stats.Summary{
		Daily:      []stats.DailyTotal{{Date: "2025-06-09", Total: decimal.NewFromInt(12)}},
		Monthly:    []stats.MonthlyTotal{{Year: 2025, Month: 6, Total: decimal.NewFromInt(12)}},
		Categories: []stats.CategoryTotal{{Category: db.CategoryFood, Total: decimal.NewFromInt(12)}},
	}}
	srv := newTestServer(nil, st)

	req := authedRequest("GET", "/getStatistics", "", uuid.New())
	rec := httptest.NewRecorder()

	srv.handleGetStatistics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	for _, field := range []string{"daily", "monthly", "categories"} {
		if _, ok := body[field]; !ok {
			t.Errorf("response missing %s", field)
		}
	}
}

func TestHealthz_NoAuthRequired(t *testing.T) {
	srv := newTestServer(nil, nil)
	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()

	srv.handleHealthz(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(nil, nil)
	mux := http.NewServeMux()
	srv.registerRoutes(mux)

	req := httptest.NewRequest("GET", "/addExpense", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405 for GET on /addExpense", rec.Code)
	}
}

// guards against accidentally dropping the amount precision on the way out
func TestAddExpense_ResponseKeepsAmount(t *testing.T) {
	srv := newTestServer(&stubExpenses{}, nil)
	req := authedRequest("POST", "/addExpense",
		`{"title":"coffee","amount":"3.75","category":"Food","date":"2025-06-01T08:00:00Z"}`, uuid.New())
	rec := httptest.NewRecorder()

	srv.handleAddExpense(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["amount"] != "3.75" {
		t.Errorf("amount = %v (%T), want \"3.75\"", body["amount"], body["amount"])
	}

	date, _ := time.Parse(time.RFC3339, body["date"].(string))
	if !date.Equal(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v, want 2025-06-01T08:00:00Z", body["date"])
	}
}
