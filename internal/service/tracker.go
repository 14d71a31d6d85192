package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/akazantsev/kopilka/internal/model"
)

// Repository определяет интерфейс хранилища, нужный трекеру
type Repository interface {
	CreateTransaction(ctx context.Context, transaction *model.Transaction) error
	GetTransactions(ctx context.Context, userID string, filter model.TransactionFilter) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, transaction *model.Transaction) error
	DeleteTransaction(ctx context.Context, id string, userID string) error

	CreateBudget(ctx context.Context, budget *model.Budget) error
	GetBudgets(ctx context.Context, userID string) ([]model.Budget, error)
	UpdateBudget(ctx context.Context, budget *model.Budget) error
	DeleteBudget(ctx context.Context, id string, userID string) error

	CreateWishlist(ctx context.Context, wishlist *model.Wishlist) error
	GetWishlists(ctx context.Context, userID string) ([]model.Wishlist, error)
	UpdateWishlist(ctx context.Context, wishlist *model.Wishlist) error
	DeleteWishlist(ctx context.Context, id string, userID string) error

	CreateSaving(ctx context.Context, saving *model.Saving) error
	GetSavings(ctx context.Context, wishlistID string) ([]model.Saving, error)
	DeleteSaving(ctx context.Context, id string) error
	AddToCollected(ctx context.Context, wishlistID string, amount int64) error
}

// FinanceTracker связывает хранилище и чистые движки расчета:
// загружает записи пользователя и строит отчеты для клиентов.
// Сам трекер состояния не хранит, каждый отчет считается заново.
type FinanceTracker struct {
	repo Repository
}

// NewFinanceTracker создает новый экземпляр FinanceTracker
func NewFinanceTracker(repo Repository) *FinanceTracker {
	return &FinanceTracker{
		repo: repo,
	}
}

// ChartReport — серия дневных итогов с итоговой строкой
type ChartReport struct {
	Window  Window      `json:"window"`
	View    ChartView   `json:"view"`
	Buckets []DayBucket `json:"buckets"`
	Values  []int64     `json:"values"`
	Totals  ChartTotals `json:"totals"`
}

// GetChartReport строит серию для графика за выбранное окно
func (s *FinanceTracker) GetChartReport(ctx context.Context, userID string, window Window, view ChartView) (*ChartReport, error) {
	transactions, err := s.repo.GetTransactions(ctx, userID, model.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	logrus.Debugf("chart report for %s: %d transactions", userID, len(transactions))

	buckets := BucketByDate(transactions, window)
	return &ChartReport{
		Window:  window,
		View:    view,
		Buckets: buckets,
		Values:  ChartValues(buckets, view),
		Totals:  Totals(buckets),
	}, nil
}

// GetBreakdown строит разбивку по категориям для одного типа транзакций.
// day ограничивает разбивку одной календарной датой, nil — все даты.
func (s *FinanceTracker) GetBreakdown(ctx context.Context, userID string, t model.TransactionType, day *time.Time) ([]CategorySlice, error) {
	transactions, err := s.repo.GetTransactions(ctx, userID, model.TransactionFilter{Type: t})
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return CategoryBreakdown(transactions, t, day), nil
}

// WishlistStatus — цель вместе с прогнозом. Если темп взносов нулевой,
// CanEstimate == false и Projection пуста.
type WishlistStatus struct {
	Wishlist    model.Wishlist `json:"wishlist"`
	Projection  Projection     `json:"projection"`
	CanEstimate bool           `json:"can_estimate"`
}

// GetWishlistReport строит прогнозы по всем целям пользователя
func (s *FinanceTracker) GetWishlistReport(ctx context.Context, userID string) ([]WishlistStatus, error) {
	wishlists, err := s.repo.GetWishlists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlists: %w", err)
	}

	now := time.Now()
	statuses := make([]WishlistStatus, 0, len(wishlists))
	for _, w := range wishlists {
		status := WishlistStatus{Wishlist: w}
		projection, err := Project(w, now)
		switch {
		case errors.Is(err, ErrNoSavingRate):
			// Оценка невозможна, клиент покажет это явно
			status.CanEstimate = false
		case err != nil:
			return nil, err
		default:
			status.Projection = projection
			status.CanEstimate = true
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// GetBudgetReport считает использование каждого бюджета пользователя
// за его календарный период.
func (s *FinanceTracker) GetBudgetReport(ctx context.Context, userID string) ([]BudgetStatus, error) {
	budgets, err := s.repo.GetBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budgets: %w", err)
	}
	transactions, err := s.repo.GetTransactions(ctx, userID, model.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		start, end := PeriodWindow(b.Period, b.Date)
		income, expense := PeriodSums(transactions, start, end)
		status := Track(b.Amount, income, expense)
		status.Budget = b
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// AddTransaction сохраняет новую транзакцию. Дата нормализуется
// к началу дня, как и в остальной агрегации.
func (s *FinanceTracker) AddTransaction(ctx context.Context, transaction *model.Transaction) error {
	if transaction.Date.IsZero() {
		now := time.Now()
		transaction.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	transaction.CreatedAt = time.Now()
	transaction.GenerateID()
	if !transaction.Valid() {
		return fmt.Errorf("invalid transaction: type %q, amount %d", transaction.Type, transaction.Amount)
	}
	return s.repo.CreateTransaction(ctx, transaction)
}

// UpdateTransaction изменяет существующую транзакцию. Транзакции —
// единственный редактируемый вид записей.
func (s *FinanceTracker) UpdateTransaction(ctx context.Context, transaction *model.Transaction) error {
	if !transaction.Valid() {
		return fmt.Errorf("invalid transaction: type %q, amount %d", transaction.Type, transaction.Amount)
	}
	return s.repo.UpdateTransaction(ctx, transaction)
}

func (s *FinanceTracker) DeleteTransaction(ctx context.Context, id string, userID string) error {
	return s.repo.DeleteTransaction(ctx, id, userID)
}

// GetRecentTransactions возвращает последние записи пользователя
func (s *FinanceTracker) GetRecentTransactions(ctx context.Context, userID string, limit int) ([]model.Transaction, error) {
	return s.repo.GetTransactions(ctx, userID, model.TransactionFilter{Limit: limit})
}

func (s *FinanceTracker) AddBudget(ctx context.Context, budget *model.Budget) error {
	if budget.Amount <= 0 {
		return fmt.Errorf("invalid budget amount: %d", budget.Amount)
	}
	budget.GenerateID()
	return s.repo.CreateBudget(ctx, budget)
}

func (s *FinanceTracker) UpdateBudget(ctx context.Context, budget *model.Budget) error {
	return s.repo.UpdateBudget(ctx, budget)
}

func (s *FinanceTracker) DeleteBudget(ctx context.Context, id string, userID string) error {
	return s.repo.DeleteBudget(ctx, id, userID)
}

// AddWishlist создает новую цель накопления с нулевым счетчиком
func (s *FinanceTracker) AddWishlist(ctx context.Context, wishlist *model.Wishlist) error {
	if wishlist.Target <= 0 {
		return fmt.Errorf("invalid wishlist target: %d", wishlist.Target)
	}
	if wishlist.StartDate.IsZero() {
		wishlist.StartDate = time.Now()
	}
	wishlist.Collected = 0
	wishlist.GenerateID()
	return s.repo.CreateWishlist(ctx, wishlist)
}

func (s *FinanceTracker) UpdateWishlist(ctx context.Context, wishlist *model.Wishlist) error {
	return s.repo.UpdateWishlist(ctx, wishlist)
}

func (s *FinanceTracker) DeleteWishlist(ctx context.Context, id string, userID string) error {
	return s.repo.DeleteWishlist(ctx, id, userID)
}

// AddSaving записывает взнос и двигает счетчик collected цели.
// Счетчик обновляет путь записи, а не пересчет с нуля.
func (s *FinanceTracker) AddSaving(ctx context.Context, wishlistID string, amount int64, note string) (*model.Saving, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("invalid saving amount: %d", amount)
	}

	saving := &model.Saving{
		WishlistID: wishlistID,
		Amount:     amount,
		Note:       note,
		CreatedAt:  time.Now(),
	}
	saving.GenerateID()
	if err := s.repo.CreateSaving(ctx, saving); err != nil {
		return nil, err
	}
	if err := s.repo.AddToCollected(ctx, wishlistID, amount); err != nil {
		return nil, err
	}
	return saving, nil
}

// GetSavingsHistory возвращает историю взносов цели, новые сверху
func (s *FinanceTracker) GetSavingsHistory(ctx context.Context, wishlistID string) ([]model.Saving, error) {
	return s.repo.GetSavings(ctx, wishlistID)
}

func (s *FinanceTracker) DeleteSaving(ctx context.Context, id string) error {
	return s.repo.DeleteSaving(ctx, id)
}

// VerifyCollected сверяет счетчик collected цели с суммой ее взносов
func (s *FinanceTracker) VerifyCollected(ctx context.Context, wishlist model.Wishlist) error {
	savings, err := s.repo.GetSavings(ctx, wishlist.ID)
	if err != nil {
		return fmt.Errorf("failed to get savings: %w", err)
	}
	if err := CheckCollected(wishlist, savings); err != nil {
		logrus.Warnf("collected counter drift: %v", err)
		return err
	}
	return nil
}
