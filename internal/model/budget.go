package model

import (
	"time"

	"github.com/google/uuid"
)

// BudgetPeriod определяет календарный период бюджета
type BudgetPeriod string

const (
	PeriodDaily   BudgetPeriod = "daily"
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
)

// Budget представляет потолок расходов на именованную категорию.
// Date задает якорь периода: бюджет действует в том календарном
// окне, в которое попадает эта дата.
type Budget struct {
	ID     string       `json:"id,omitempty"`
	UserID string       `json:"user_id"`
	Name   string       `json:"name"`
	Icon   string       `json:"icon"`
	Amount int64        `json:"amount"`
	Period BudgetPeriod `json:"period"`
	Date   time.Time    `json:"date"`
}

// GenerateID генерирует новый UUID для бюджета, если он еще не установлен
func (b *Budget) GenerateID() {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
}
