package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/akazantsev/kopilka/internal/model"
)

// fakeRepository — хранилище в памяти для тестов трекера
type fakeRepository struct {
	transactions []model.Transaction
	budgets      []model.Budget
	wishlists    []model.Wishlist
	savings      []model.Saving
	collected    map[string]int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{collected: make(map[string]int64)}
}

func (r *fakeRepository) CreateTransaction(_ context.Context, t *model.Transaction) error {
	r.transactions = append(r.transactions, *t)
	return nil
}

func (r *fakeRepository) GetTransactions(_ context.Context, userID string, filter model.TransactionFilter) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range r.transactions {
		if t.UserID != userID {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		out = append(out, t)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *fakeRepository) UpdateTransaction(_ context.Context, t *model.Transaction) error {
	for i := range r.transactions {
		if r.transactions[i].ID == t.ID {
			r.transactions[i] = *t
		}
	}
	return nil
}

func (r *fakeRepository) DeleteTransaction(_ context.Context, id string, userID string) error {
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

func (r *fakeRepository) CreateBudget(_ context.Context, b *model.Budget) error {
	r.budgets = append(r.budgets, *b)
	return nil
}

func (r *fakeRepository) GetBudgets(_ context.Context, userID string) ([]model.Budget, error) {
	var out []model.Budget
	for _, b := range r.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepository) UpdateBudget(_ context.Context, b *model.Budget) error {
	for i := range r.budgets {
		if r.budgets[i].ID == b.ID {
			r.budgets[i] = *b
		}
	}
	return nil
}

func (r *fakeRepository) DeleteBudget(_ context.Context, id string, userID string) error {
	out := r.budgets[:0]
	for _, b := range r.budgets {
		if b.ID == id && b.UserID == userID {
			continue
		}
		out = append(out, b)
	}
	r.budgets = out
	return nil
}

func (r *fakeRepository) CreateWishlist(_ context.Context, w *model.Wishlist) error {
	r.wishlists = append(r.wishlists, *w)
	return nil
}

func (r *fakeRepository) GetWishlists(_ context.Context, userID string) ([]model.Wishlist, error) {
	var out []model.Wishlist
	for _, w := range r.wishlists {
		if w.UserID == userID {
			w.Collected += r.collected[w.ID]
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeRepository) UpdateWishlist(_ context.Context, w *model.Wishlist) error {
	for i := range r.wishlists {
		if r.wishlists[i].ID == w.ID {
			r.wishlists[i] = *w
		}
	}
	return nil
}

func (r *fakeRepository) DeleteWishlist(_ context.Context, id string, userID string) error {
	out := r.wishlists[:0]
	for _, w := range r.wishlists {
		if w.ID == id && w.UserID == userID {
			continue
		}
		out = append(out, w)
	}
	r.wishlists = out
	return nil
}

func (r *fakeRepository) CreateSaving(_ context.Context, s *model.Saving) error {
	r.savings = append(r.savings, *s)
	return nil
}

func (r *fakeRepository) GetSavings(_ context.Context, wishlistID string) ([]model.Saving, error) {
	var out []model.Saving
	for _, s := range r.savings {
		if s.WishlistID == wishlistID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepository) DeleteSaving(_ context.Context, id string) error {
	out := r.savings[:0]
	for _, s := range r.savings {
		if s.ID == id {
			continue
		}
		out = append(out, s)
	}
	r.savings = out
	return nil
}

func (r *fakeRepository) AddToCollected(_ context.Context, wishlistID string, amount int64) error {
	r.collected[wishlistID] += amount
	return nil
}

func TestGetChartReport(t *testing.T) {
	repo := newFakeRepository()
	tracker := NewFinanceTracker(repo)
	ctx := context.Background()

	repo.transactions = []model.Transaction{
		tx(time.Date(2023, 9, 10, 9, 0, 0, 0, time.UTC), model.TypeIncome, 750000, "salary"),
		tx(time.Date(2023, 9, 11, 9, 0, 0, 0, time.UTC), model.TypeExpense, 75000, "food"),
	}
	for i := range repo.transactions {
		repo.transactions[i].UserID = "user-1"
	}

	report, err := tracker.GetChartReport(ctx, "user-1", Window7, ViewCombined)
	require.NoError(t, err)
	require.Equal(t, 2, len(report.Buckets))
	require.Equal(t, []int64{750000, 0}, report.Values)
	require.Equal(t, int64(675000), report.Totals.Net)

	// Чужие транзакции в отчет не попадают
	report, err = tracker.GetChartReport(ctx, "user-2", Window7, ViewCombined)
	require.NoError(t, err)
	require.Empty(t, report.Buckets)
}

func TestGetBudgetReport_FiltersByPeriod(t *testing.T) {
	repo := newFakeRepository()
	tracker := NewFinanceTracker(repo)
	ctx := context.Background()

	repo.budgets = []model.Budget{{
		ID:     "b-1",
		UserID: "user-1",
		Name:   "Продукты",
		Amount: 100000,
		Period: model.PeriodMonthly,
		Date:   time.Date(2023, 9, 14, 0, 0, 0, 0, time.UTC),
	}}
	repo.transactions = []model.Transaction{
		tx(time.Date(2023, 9, 1, 10, 0, 0, 0, time.UTC), model.TypeIncome, 200000, "salary"),
		tx(time.Date(2023, 9, 20, 10, 0, 0, 0, time.UTC), model.TypeExpense, 50000, "grocery"),
		// Август в сентябрьский период не попадает
		tx(time.Date(2023, 8, 20, 10, 0, 0, 0, time.UTC), model.TypeExpense, 99999, "grocery"),
	}
	for i := range repo.transactions {
		repo.transactions[i].UserID = "user-1"
	}

	statuses, err := tracker.GetBudgetReport(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 1, len(statuses))
	require.Equal(t, "b-1", statuses[0].Budget.ID)
	require.Equal(t, 25.0, statuses[0].UsagePercentage)
	require.Equal(t, int64(150000), statuses[0].RemainingBalance)
	require.Equal(t, int64(50000), statuses[0].PeriodExpense)
}

func TestGetWishlistReport_ZeroRateIsNotFatal(t *testing.T) {
	repo := newFakeRepository()
	tracker := NewFinanceTracker(repo)
	ctx := context.Background()

	repo.wishlists = []model.Wishlist{
		{ID: "w-1", UserID: "user-1", Target: 1000000, Collected: 400000, DailySaving: 50000, Type: model.SavingDays, StartDate: time.Now()},
		{ID: "w-2", UserID: "user-1", Target: 500000, Collected: 100000, DailySaving: 0, Type: model.SavingDays, StartDate: time.Now()},
	}

	statuses, err := tracker.GetWishlistReport(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 2, len(statuses))

	require.True(t, statuses[0].CanEstimate)
	require.Equal(t, int64(600000), statuses[0].Projection.Remaining)
	require.Equal(t, 40, statuses[0].Projection.ProgressPercentage)

	require.False(t, statuses[1].CanEstimate)
	require.Equal(t, Projection{}, statuses[1].Projection)
}

func TestAddTransaction(t *testing.T) {
	repo := newFakeRepository()
	tracker := NewFinanceTracker(repo)
	ctx := context.Background()

	transaction := &model.Transaction{
		UserID:   "user-1",
		Name:     "Обед",
		Type:     model.TypeExpense,
		Amount:   50000,
		Category: "food",
	}
	require.NoError(t, tracker.AddTransaction(ctx, transaction))
	require.NotEmpty(t, transaction.ID)
	require.False(t, transaction.Date.IsZero())
	// Дата нормализована к началу дня
	require.Equal(t, 0, transaction.Date.Hour())
	require.Equal(t, 1, len(repo.transactions))

	bad := &model.Transaction{UserID: "user-1", Type: "transfer", Amount: 100}
	require.Error(t, tracker.AddTransaction(ctx, bad))
	require.Equal(t, 1, len(repo.transactions))
}

func TestAddSaving_MovesCollected(t *testing.T) {
	repo := newFakeRepository()
	tracker := NewFinanceTracker(repo)
	ctx := context.Background()

	repo.wishlists = []model.Wishlist{
		{ID: "w-1", UserID: "user-1", Target: 100000, Collected: 0, DailySaving: 1000, Type: model.SavingDays, StartDate: time.Now()},
	}

	saving, err := tracker.AddSaving(ctx, "w-1", 25000, "аванс")
	require.NoError(t, err)
	require.NotEmpty(t, saving.ID)
	require.Equal(t, int64(25000), repo.collected["w-1"])

	_, err = tracker.AddSaving(ctx, "w-1", 0, "")
	require.Error(t, err)
	require.Equal(t, 1, len(repo.savings))

	statuses, err := tracker.GetWishlistReport(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(25000), statuses[0].Wishlist.Collected)
}

func TestVerifyCollected(t *testing.T) {
	repo := newFakeRepository()
	tracker := NewFinanceTracker(repo)
	ctx := context.Background()

	repo.savings = []model.Saving{
		{ID: "s-1", WishlistID: "w-1", Amount: 10000},
		{ID: "s-2", WishlistID: "w-1", Amount: 15000},
	}

	require.NoError(t, tracker.VerifyCollected(ctx, model.Wishlist{ID: "w-1", Collected: 25000}))
	require.Error(t, tracker.VerifyCollected(ctx, model.Wishlist{ID: "w-1", Collected: 20000}))
}

func TestAddWishlist_ResetsCollected(t *testing.T) {
	repo := newFakeRepository()
	tracker := NewFinanceTracker(repo)
	ctx := context.Background()

	w := &model.Wishlist{UserID: "user-1", Name: "Отпуск", Target: 300000, Collected: 999, DailySaving: 5000, Type: model.SavingDays}
	require.NoError(t, tracker.AddWishlist(ctx, w))
	require.NotEmpty(t, w.ID)
	require.Equal(t, int64(0), w.Collected)
	require.False(t, w.StartDate.IsZero())

	require.Error(t, tracker.AddWishlist(ctx, &model.Wishlist{UserID: "user-1", Target: 0}))
}
