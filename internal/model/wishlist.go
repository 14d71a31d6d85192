package model

import (
	"time"

	"github.com/google/uuid"
)

// SavingPeriod определяет единицу периодического взноса
type SavingPeriod string

const (
	SavingDays   SavingPeriod = "days"
	SavingWeeks  SavingPeriod = "weeks"
	SavingMonths SavingPeriod = "months"
	SavingYears  SavingPeriod = "years"
)

// Wishlist представляет цель накопления. Collected — денормализованный
// счетчик, равный сумме всех Saving этой цели; его ведет путь записи
// нового взноса, а не движок расчета.
type Wishlist struct {
	ID          string       `json:"id,omitempty"`
	UserID      string       `json:"user_id"`
	Name        string       `json:"name"`
	Target      int64        `json:"target"`
	Type        SavingPeriod `json:"type"`
	DailySaving int64        `json:"daily_saving"`
	Collected   int64        `json:"collected"`
	StartDate   time.Time    `json:"start_date"`
	ImageURL    string       `json:"image_url,omitempty"`
}

// GenerateID генерирует новый UUID для цели, если он еще не установлен
func (w *Wishlist) GenerateID() {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
}

// Saving — неизменяемая запись одного взноса в копилку
type Saving struct {
	ID         string    `json:"id,omitempty"`
	WishlistID string    `json:"wishlist_id"`
	Amount     int64     `json:"amount"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// GenerateID генерирует новый UUID для взноса, если он еще не установлен
func (s *Saving) GenerateID() {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
}
