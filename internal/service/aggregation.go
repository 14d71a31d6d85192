package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/akazantsev/kopilka/internal/model"
)

// Window определяет фильтр "последних N дат" для графика.
// Окно отсекает последние N различных дат с транзакциями,
// а не N календарных дней: дни без записей в серию не попадают.
type Window int

const (
	Window7   Window = 7
	Window30  Window = 30
	Window90  Window = 90
	WindowAll Window = 0
)

// ChartView определяет, какая серия отображается на графике
type ChartView int

const (
	ViewCombined ChartView = iota
	ViewIncome
	ViewExpense
)

// DayBucket — итог одного календарного дня для графика и таблицы.
// DisplayValue — высота столбца комбинированного вида: дневной
// остаток, срезанный снизу нулем, чтобы столбец не уходил вниз.
type DayBucket struct {
	Label        string    `json:"label"`
	Date         string    `json:"date"`
	Day          time.Time `json:"-"`
	Income       int64     `json:"income"`
	Expense      int64     `json:"expense"`
	Net          int64     `json:"net"`
	DisplayValue int64     `json:"display_value"`
}

// BucketByDate группирует транзакции по календарной дате и возвращает
// упорядоченную по возрастанию серию дневных итогов, обрезанную окном.
// Время суток игнорируется, битые записи пропускаются.
func BucketByDate(transactions []model.Transaction, window Window) []DayBucket {
	type dayTotals struct {
		day     time.Time
		income  int64
		expense int64
	}

	totals := make(map[string]*dayTotals)
	for _, t := range transactions {
		if !t.Valid() {
			continue
		}
		day := time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), 0, 0, 0, 0, t.Date.Location())
		key := day.Format("2006-01-02")
		bucket, ok := totals[key]
		if !ok {
			bucket = &dayTotals{day: day}
			totals[key] = bucket
		}
		if t.Type == model.TypeIncome {
			bucket.income += t.Amount
		} else {
			bucket.expense += t.Amount
		}
	}

	days := make([]*dayTotals, 0, len(totals))
	for _, bucket := range totals {
		days = append(days, bucket)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].day.Before(days[j].day)
	})

	// Берем хвост серии: последние N дат с транзакциями
	if window > 0 && len(days) > int(window) {
		days = days[len(days)-int(window):]
	}

	buckets := make([]DayBucket, 0, len(days))
	for _, d := range days {
		net := d.income - d.expense
		display := net
		if display < 0 {
			display = 0
		}
		buckets = append(buckets, DayBucket{
			Label:        d.day.Format("Mon"),
			Date:         fmt.Sprintf("%d/%d", int(d.day.Month()), d.day.Day()),
			Day:          d.day,
			Income:       d.income,
			Expense:      d.expense,
			Net:          net,
			DisplayValue: display,
		})
	}
	return buckets
}

// ChartValues возвращает серию значений для выбранного вида графика
func ChartValues(buckets []DayBucket, view ChartView) []int64 {
	values := make([]int64, len(buckets))
	for i, b := range buckets {
		switch view {
		case ViewIncome:
			values[i] = b.Income
		case ViewExpense:
			values[i] = b.Expense
		default:
			values[i] = b.DisplayValue
		}
	}
	return values
}

// ChartTotals — итоговая строка таблицы за показанное окно
type ChartTotals struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Net     int64 `json:"net"`
}

// Totals суммирует серию дневных итогов
func Totals(buckets []DayBucket) ChartTotals {
	var totals ChartTotals
	for _, b := range buckets {
		totals.Income += b.Income
		totals.Expense += b.Expense
	}
	totals.Net = totals.Income - totals.Expense
	return totals
}

// CategorySlice — одна категория в разбивке с долей от общей суммы
type CategorySlice struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Amount     int64  `json:"amount"`
	Percentage int    `json:"percentage"`
}

// CategoryBreakdown суммирует транзакции одного типа по категориям
// справочника и считает долю каждой категории в процентах. Если задан
// day, учитываются только записи этой календарной даты. Доли округляются
// независимо, поэтому их сумма может немного отличаться от 100.
func CategoryBreakdown(transactions []model.Transaction, t model.TransactionType, day *time.Time) []CategorySlice {
	sums := make(map[string]int64)
	order := make([]string, 0)
	var total int64

	for _, tx := range transactions {
		if !tx.Valid() || tx.Type != t {
			continue
		}
		if day != nil && !sameDay(tx.Date, *day) {
			continue
		}
		cat := model.LookupCategory(tx.Category, t)
		if _, ok := sums[cat.Key]; !ok {
			order = append(order, cat.Key)
		}
		sums[cat.Key] += tx.Amount
		total += tx.Amount
	}

	slices := make([]CategorySlice, 0, len(order))
	for _, key := range order {
		cat := model.LookupCategory(key, t)
		amount := sums[key]
		percentage := 0
		if total > 0 {
			percentage = int(math.Round(float64(amount) / float64(total) * 100))
		}
		slices = append(slices, CategorySlice{
			Key:        cat.Key,
			Name:       cat.Name,
			Icon:       cat.Icon,
			Amount:     amount,
			Percentage: percentage,
		})
	}

	// Равные суммы сохраняют порядок первого появления
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Amount > slices[j].Amount
	})
	return slices
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
