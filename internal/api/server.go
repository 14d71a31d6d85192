package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/akazantsev/kopilka/internal/service"
)

// Server отдает веб-клиенту рассчитанные отчеты и принимает записи.
// Клиент присылает user_id из своей авторизации; сервер его не
// интерпретирует, а только передает в хранилище.
type Server struct {
	tracker *service.FinanceTracker
}

func NewServer(tracker *service.FinanceTracker) *Server {
	return &Server{
		tracker: tracker,
	}
}

// Router собирает маршруты JSON API
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Отчеты
	mux.HandleFunc("GET /api/chart", s.handleChart)
	mux.HandleFunc("GET /api/breakdown", s.handleBreakdown)
	mux.HandleFunc("GET /api/budgets/report", s.handleBudgetReport)
	mux.HandleFunc("GET /api/wishlists/report", s.handleWishlistReport)

	// Записи
	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleAddTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("POST /api/budgets", s.handleAddBudget)
	mux.HandleFunc("PUT /api/budgets/{id}", s.handleUpdateBudget)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)

	mux.HandleFunc("POST /api/wishlists", s.handleAddWishlist)
	mux.HandleFunc("PUT /api/wishlists/{id}", s.handleUpdateWishlist)
	mux.HandleFunc("DELETE /api/wishlists/{id}", s.handleDeleteWishlist)

	mux.HandleFunc("GET /api/savings", s.handleListSavings)
	mux.HandleFunc("POST /api/savings", s.handleAddSaving)
	mux.HandleFunc("DELETE /api/savings/{id}", s.handleDeleteSaving)

	return logRequests(mux)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Debugf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logrus.Errorf("error encoding response: %v", err)
		}
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
