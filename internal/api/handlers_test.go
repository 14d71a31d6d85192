package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/akazantsev/kopilka/internal/model"
	"github.com/akazantsev/kopilka/internal/service"
)

// stubRepository — минимальное хранилище в памяти для тестов API
type stubRepository struct {
	transactions []model.Transaction
	budgets      []model.Budget
	wishlists    []model.Wishlist
	savings      []model.Saving
	collected    map[string]int64
}

func newStubRepository() *stubRepository {
	return &stubRepository{collected: make(map[string]int64)}
}

func (r *stubRepository) CreateTransaction(_ context.Context, t *model.Transaction) error {
	r.transactions = append(r.transactions, *t)
	return nil
}

func (r *stubRepository) GetTransactions(_ context.Context, userID string, filter model.TransactionFilter) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range r.transactions {
		if t.UserID != userID {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *stubRepository) UpdateTransaction(_ context.Context, t *model.Transaction) error {
	for i := range r.transactions {
		if r.transactions[i].ID == t.ID {
			r.transactions[i] = *t
		}
	}
	return nil
}

func (r *stubRepository) DeleteTransaction(_ context.Context, id string, userID string) error {
	out := r.transactions[:0]
	for _, t := range r.transactions {
		if t.ID == id && t.UserID == userID {
			continue
		}
		out = append(out, t)
	}
	r.transactions = out
	return nil
}

func (r *stubRepository) CreateBudget(_ context.Context, b *model.Budget) error {
	r.budgets = append(r.budgets, *b)
	return nil
}

func (r *stubRepository) GetBudgets(_ context.Context, userID string) ([]model.Budget, error) {
	return r.budgets, nil
}

func (r *stubRepository) UpdateBudget(_ context.Context, b *model.Budget) error   { return nil }
func (r *stubRepository) DeleteBudget(_ context.Context, id, userID string) error { return nil }

func (r *stubRepository) CreateWishlist(_ context.Context, w *model.Wishlist) error {
	r.wishlists = append(r.wishlists, *w)
	return nil
}

func (r *stubRepository) GetWishlists(_ context.Context, userID string) ([]model.Wishlist, error) {
	return r.wishlists, nil
}

func (r *stubRepository) UpdateWishlist(_ context.Context, w *model.Wishlist) error { return nil }
func (r *stubRepository) DeleteWishlist(_ context.Context, id, userID string) error { return nil }

func (r *stubRepository) CreateSaving(_ context.Context, s *model.Saving) error {
	r.savings = append(r.savings, *s)
	return nil
}

func (r *stubRepository) GetSavings(_ context.Context, wishlistID string) ([]model.Saving, error) {
	return r.savings, nil
}

func (r *stubRepository) DeleteSaving(_ context.Context, id string) error { return nil }

func (r *stubRepository) AddToCollected(_ context.Context, wishlistID string, amount int64) error {
	r.collected[wishlistID] += amount
	return nil
}

func newTestServer(repo *stubRepository) http.Handler {
	return NewServer(service.NewFinanceTracker(repo)).Router()
}

func TestHandleChart(t *testing.T) {
	repo := newStubRepository()
	repo.transactions = []model.Transaction{
		{ID: "t-1", UserID: "user-1", Type: model.TypeIncome, Amount: 750000, Date: time.Date(2023, 9, 10, 0, 0, 0, 0, time.UTC), Category: "salary"},
		{ID: "t-2", UserID: "user-1", Type: model.TypeExpense, Amount: 75000, Date: time.Date(2023, 9, 11, 0, 0, 0, 0, time.UTC), Category: "food"},
	}
	router := newTestServer(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/chart?user_id=user-1&window=7", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var report service.ChartReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Equal(t, 2, len(report.Buckets))
	require.Equal(t, []int64{750000, 0}, report.Values)
	require.Equal(t, int64(675000), report.Totals.Net)
}

func TestHandleChart_Validation(t *testing.T) {
	router := newTestServer(newStubRepository())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/chart", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/chart?user_id=u&window=13", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/chart?user_id=u&view=weird", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleBreakdown(t *testing.T) {
	repo := newStubRepository()
	day := time.Date(2023, 9, 14, 0, 0, 0, 0, time.UTC)
	repo.transactions = []model.Transaction{
		{ID: "t-1", UserID: "user-1", Type: model.TypeExpense, Amount: 24000, Date: day, Category: "grocery"},
		{ID: "t-2", UserID: "user-1", Type: model.TypeExpense, Amount: 24000, Date: day, Category: "нечто"},
	}
	router := newTestServer(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/breakdown?user_id=user-1&type=expense", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var slices []service.CategorySlice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slices))
	require.Equal(t, 2, len(slices))
	require.Equal(t, 50, slices[0].Percentage)

	// Тип обязателен
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/breakdown?user_id=user-1", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Битая дата отклоняется
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/breakdown?user_id=user-1&type=expense&day=14.09.2023", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAddTransaction(t *testing.T) {
	repo := newStubRepository()
	router := newTestServer(repo)

	body := `{"user_id":"user-1","name":"Обед","type":"expense","amount":50000,"category":"food"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/transactions", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 1, len(repo.transactions))

	var created model.Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	// Без user_id запись не принимается
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/transactions", strings.NewReader(`{"type":"expense","amount":1}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, 1, len(repo.transactions))
}

func TestHandleAddSaving(t *testing.T) {
	repo := newStubRepository()
	router := newTestServer(repo)

	body := `{"wishlist_id":"w-1","amount":25000,"note":"аванс"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/savings", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, int64(25000), repo.collected["w-1"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/savings", strings.NewReader(`{"wishlist_id":"w-1","amount":0}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleWishlistReport(t *testing.T) {
	repo := newStubRepository()
	repo.wishlists = []model.Wishlist{
		{ID: "w-1", UserID: "user-1", Target: 1000000, Collected: 400000, DailySaving: 50000, Type: model.SavingDays, StartDate: time.Now()},
		{ID: "w-2", UserID: "user-1", Target: 500000, DailySaving: 0, Type: model.SavingDays, StartDate: time.Now()},
	}
	router := newTestServer(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/wishlists/report?user_id=user-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var statuses []service.WishlistStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &statuses))
	require.Equal(t, 2, len(statuses))
	require.True(t, statuses[0].CanEstimate)
	require.Equal(t, 40, statuses[0].Projection.ProgressPercentage)
	require.False(t, statuses[1].CanEstimate)
}
