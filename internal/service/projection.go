package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/akazantsev/kopilka/internal/model"
)

// ErrNoSavingRate возвращается, когда периодический взнос равен нулю:
// прогноз даты завершения в этом случае не определен, и клиент должен
// показать "оценка невозможна" вместо бесконечной даты.
var ErrNoSavingRate = errors.New("saving rate is zero, projection undefined")

// Projection — прогноз по цели накопления.
// CompletionDate отсчитывается от текущей даты по остатку,
// PlannedDate — полный горизонт от даты старта по всей цели.
// Это разные величины, и обе нужны клиенту.
type Projection struct {
	Remaining          int64     `json:"remaining"`
	PeriodsLeft        int64     `json:"periods_left"`
	CompletionDate     time.Time `json:"completion_date"`
	PlannedDate        time.Time `json:"planned_date"`
	ProgressPercentage int       `json:"progress_percentage"`
}

// Project считает остаток, число оставшихся периодов и даты завершения
// для цели накопления при текущем темпе взносов. Перебор по collected
// обрабатывается мягко: остаток не бывает отрицательным, прогресс
// срезается на 100.
func Project(w model.Wishlist, now time.Time) (Projection, error) {
	remaining := w.Target - w.Collected
	if remaining < 0 {
		remaining = 0
	}

	progress := 0
	if w.Target > 0 {
		progress = int(math.Round(float64(w.Collected) / float64(w.Target) * 100))
		if progress > 100 {
			progress = 100
		}
	}

	if w.DailySaving <= 0 {
		return Projection{}, ErrNoSavingRate
	}

	periodsLeft := ceilDiv(remaining, w.DailySaving)
	plannedPeriods := ceilDiv(w.Target, w.DailySaving)

	return Projection{
		Remaining:          remaining,
		PeriodsLeft:        periodsLeft,
		CompletionDate:     addPeriods(now, w.Type, periodsLeft),
		PlannedDate:        addPeriods(w.StartDate, w.Type, plannedPeriods),
		ProgressPercentage: progress,
	}, nil
}

// CheckCollected сверяет денормализованный счетчик collected с суммой
// взносов. Расхождение означает, что путь записи нового взноса потерял
// или задвоил обновление счетчика.
func CheckCollected(w model.Wishlist, savings []model.Saving) error {
	var sum int64
	for _, s := range savings {
		sum += s.Amount
	}
	if sum != w.Collected {
		return fmt.Errorf("collected counter %d does not match savings sum %d for wishlist %s", w.Collected, sum, w.ID)
	}
	return nil
}

func ceilDiv(amount, rate int64) int64 {
	return (amount + rate - 1) / rate
}

func addPeriods(from time.Time, unit model.SavingPeriod, n int64) time.Time {
	switch unit {
	case model.SavingWeeks:
		return from.AddDate(0, 0, int(n)*7)
	case model.SavingMonths:
		return from.AddDate(0, int(n), 0)
	case model.SavingYears:
		return from.AddDate(int(n), 0, 0)
	default:
		return from.AddDate(0, 0, int(n))
	}
}
