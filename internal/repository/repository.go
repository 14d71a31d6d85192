package repository

import (
	"context"

	"github.com/akazantsev/kopilka/internal/model"
)

// Repository определяет интерфейс хранилища записей. Хранилище отдает
// консистентный снимок данных пользователя; вся дальнейшая математика
// выполняется поверх уже загруженных записей.
type Repository interface {
	// Транзакции
	CreateTransaction(ctx context.Context, transaction *model.Transaction) error
	GetTransactions(ctx context.Context, userID string, filter model.TransactionFilter) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, transaction *model.Transaction) error
	DeleteTransaction(ctx context.Context, id string, userID string) error

	// Бюджеты
	CreateBudget(ctx context.Context, budget *model.Budget) error
	GetBudgets(ctx context.Context, userID string) ([]model.Budget, error)
	UpdateBudget(ctx context.Context, budget *model.Budget) error
	DeleteBudget(ctx context.Context, id string, userID string) error

	// Цели накопления
	CreateWishlist(ctx context.Context, wishlist *model.Wishlist) error
	GetWishlists(ctx context.Context, userID string) ([]model.Wishlist, error)
	UpdateWishlist(ctx context.Context, wishlist *model.Wishlist) error
	DeleteWishlist(ctx context.Context, id string, userID string) error

	// Взносы
	CreateSaving(ctx context.Context, saving *model.Saving) error
	GetSavings(ctx context.Context, wishlistID string) ([]model.Saving, error)
	DeleteSaving(ctx context.Context, id string) error
	AddToCollected(ctx context.Context, wishlistID string, amount int64) error
}
