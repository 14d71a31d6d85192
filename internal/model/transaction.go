package model

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType определяет вид транзакции
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction представляет одну запись дохода или расхода.
// Суммы хранятся в целых единицах валюты, без дробной части.
type Transaction struct {
	ID        string          `json:"id,omitempty"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	Amount    int64           `json:"amount"`
	Date      time.Time       `json:"date"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// GenerateID генерирует новый UUID для транзакции, если он еще не установлен
func (t *Transaction) GenerateID() {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
}

// Valid проверяет обязательные поля записи. Битые записи
// агрегация пропускает, не прерывая расчет целиком.
func (t Transaction) Valid() bool {
	if t.Date.IsZero() {
		return false
	}
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return false
	}
	return t.Amount >= 0
}

// TransactionFilter описывает условия выборки транзакций из хранилища
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      TransactionType
	Limit     int
}
