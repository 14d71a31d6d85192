package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/supabase-community/supabase-go"

	"github.com/akazantsev/kopilka/internal/model"
)

// SupabaseRepository реализует Repository поверх Supabase:
// таблицы transactions, budgets, wishlist и savings плюс функция
// increment_collected для денормализованного счетчика.
type SupabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}

	return &SupabaseRepository{
		client: client,
	}, nil
}

func (r *SupabaseRepository) CreateTransaction(ctx context.Context, transaction *model.Transaction) error {
	data, _, err := r.client.From("transactions").Insert(transaction, true, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	// Парсим ответ для получения ID и created_at
	var created []model.Transaction
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created transaction: %w", err)
	}
	if len(created) > 0 {
		transaction.ID = created[0].ID
		transaction.CreatedAt = created[0].CreatedAt
	}
	return nil
}

func (r *SupabaseRepository) GetTransactions(ctx context.Context, userID string, filter model.TransactionFilter) ([]model.Transaction, error) {
	query := r.client.From("transactions").
		Select("*", "", false).
		Eq("user_id", userID)

	if filter.StartDate != nil {
		query = query.Gte("date", filter.StartDate.Format(time.RFC3339))
	}
	if filter.EndDate != nil {
		query = query.Lte("date", filter.EndDate.Format(time.RFC3339))
	}
	if filter.Type != "" {
		query = query.Eq("type", string(filter.Type))
	}

	// Сортировка по дате, сначала новые
	query = query.Order("date.desc", nil)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit, "")
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	var transactions []model.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("failed to parse transactions: %w", err)
	}
	return transactions, nil
}

func (r *SupabaseRepository) UpdateTransaction(ctx context.Context, transaction *model.Transaction) error {
	now := time.Now()
	transaction.UpdatedAt = &now
	_, _, err := r.client.From("transactions").
		Update(transaction, "", "").
		Eq("id", transaction.ID).
		Eq("user_id", transaction.UserID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) DeleteTransaction(ctx context.Context, id string, userID string) error {
	_, _, err := r.client.From("transactions").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) CreateBudget(ctx context.Context, budget *model.Budget) error {
	data, _, err := r.client.From("budgets").Insert(budget, true, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}

	var created []model.Budget
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created budget: %w", err)
	}
	if len(created) > 0 {
		budget.ID = created[0].ID
	}
	return nil
}

func (r *SupabaseRepository) GetBudgets(ctx context.Context, userID string) ([]model.Budget, error) {
	data, _, err := r.client.From("budgets").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("date.desc", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get budgets: %w", err)
	}

	var budgets []model.Budget
	if err := json.Unmarshal(data, &budgets); err != nil {
		return nil, fmt.Errorf("failed to parse budgets: %w", err)
	}
	return budgets, nil
}

func (r *SupabaseRepository) UpdateBudget(ctx context.Context, budget *model.Budget) error {
	_, _, err := r.client.From("budgets").
		Update(budget, "", "").
		Eq("id", budget.ID).
		Eq("user_id", budget.UserID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) DeleteBudget(ctx context.Context, id string, userID string) error {
	_, _, err := r.client.From("budgets").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) CreateWishlist(ctx context.Context, wishlist *model.Wishlist) error {
	data, _, err := r.client.From("wishlist").Insert(wishlist, true, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create wishlist: %w", err)
	}

	var created []model.Wishlist
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created wishlist: %w", err)
	}
	if len(created) > 0 {
		wishlist.ID = created[0].ID
	}
	return nil
}

func (r *SupabaseRepository) GetWishlists(ctx context.Context, userID string) ([]model.Wishlist, error) {
	data, _, err := r.client.From("wishlist").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("start_date.desc", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlists: %w", err)
	}

	var wishlists []model.Wishlist
	if err := json.Unmarshal(data, &wishlists); err != nil {
		return nil, fmt.Errorf("failed to parse wishlists: %w", err)
	}
	return wishlists, nil
}

func (r *SupabaseRepository) UpdateWishlist(ctx context.Context, wishlist *model.Wishlist) error {
	_, _, err := r.client.From("wishlist").
		Update(wishlist, "", "").
		Eq("id", wishlist.ID).
		Eq("user_id", wishlist.UserID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update wishlist: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) DeleteWishlist(ctx context.Context, id string, userID string) error {
	_, _, err := r.client.From("wishlist").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete wishlist: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) CreateSaving(ctx context.Context, saving *model.Saving) error {
	data, _, err := r.client.From("savings").Insert(saving, true, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create saving: %w", err)
	}

	var created []model.Saving
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created saving: %w", err)
	}
	if len(created) > 0 {
		saving.ID = created[0].ID
		saving.CreatedAt = created[0].CreatedAt
	}
	return nil
}

func (r *SupabaseRepository) GetSavings(ctx context.Context, wishlistID string) ([]model.Saving, error) {
	data, _, err := r.client.From("savings").
		Select("*", "", false).
		Eq("wishlist_id", wishlistID).
		Order("created_at.desc", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get savings: %w", err)
	}

	var savings []model.Saving
	if err := json.Unmarshal(data, &savings); err != nil {
		return nil, fmt.Errorf("failed to parse savings: %w", err)
	}
	return savings, nil
}

func (r *SupabaseRepository) DeleteSaving(ctx context.Context, id string) error {
	_, _, err := r.client.From("savings").
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete saving: %w", err)
	}
	return nil
}

// AddToCollected увеличивает счетчик collected цели через функцию
// increment_collected на стороне Supabase. Функция возвращает новое
// значение счетчика, поэтому пустой ответ означает ошибку вызова.
func (r *SupabaseRepository) AddToCollected(ctx context.Context, wishlistID string, amount int64) error {
	params := map[string]interface{}{
		"wid": wishlistID,
		"amt": strconv.FormatInt(amount, 10),
	}
	resp := r.client.Rpc("increment_collected", "", params)
	if resp == "" {
		return fmt.Errorf("failed to increment collected for wishlist %s", wishlistID)
	}
	return nil
}
