package service

import (
	"time"

	"github.com/akazantsev/kopilka/internal/model"
)

// BudgetStatus — использование бюджета за его календарный период.
// UsagePercentage срезан диапазоном [0, 100] для отображения,
// RemainingBalance хранит честное значение и может быть отрицательным.
type BudgetStatus struct {
	Budget           model.Budget `json:"budget"`
	CeilingAmount    int64        `json:"ceiling_amount"`
	UsagePercentage  float64      `json:"usage_percentage"`
	RemainingBalance int64        `json:"remaining_balance"`
	PeriodIncome     int64        `json:"period_income"`
	PeriodExpense    int64        `json:"period_expense"`
}

// Track сравнивает доход и расход периода с потолком бюджета
func Track(budgetAmount, periodIncome, periodExpense int64) BudgetStatus {
	usage := 0.0
	if periodIncome > 0 {
		usage = float64(periodExpense) / float64(periodIncome) * 100
		if usage > 100 {
			usage = 100
		}
	}
	return BudgetStatus{
		CeilingAmount:    budgetAmount,
		UsagePercentage:  usage,
		RemainingBalance: periodIncome - periodExpense,
		PeriodIncome:     periodIncome,
		PeriodExpense:    periodExpense,
	}
}

// PeriodWindow возвращает календарное окно бюджета, в которое попадает
// его якорная дата: сутки, неделю с понедельника или месяц.
func PeriodWindow(period model.BudgetPeriod, anchor time.Time) (time.Time, time.Time) {
	switch period {
	case model.PeriodDaily:
		start := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
		end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
		return start, end
	case model.PeriodWeekly:
		// Неделя начинается с понедельника
		offset := (int(anchor.Weekday()) + 6) % 7
		start := time.Date(anchor.Year(), anchor.Month(), anchor.Day()-offset, 0, 0, 0, 0, anchor.Location())
		end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
		return start, end
	default:
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		return start, end
	}
}

// PeriodSums складывает доходы и расходы транзакций, попавших в окно
func PeriodSums(transactions []model.Transaction, start, end time.Time) (int64, int64) {
	var income, expense int64
	for _, t := range transactions {
		if !t.Valid() {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		if t.Type == model.TypeIncome {
			income += t.Amount
		} else {
			expense += t.Amount
		}
	}
	return income, expense
}
