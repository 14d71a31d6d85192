package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/akazantsev/kopilka/internal/model"
	"github.com/akazantsev/kopilka/internal/service"
)

// requireUserID достает обязательный параметр user_id
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid := r.URL.Query().Get("user_id")
	if uid == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return "", false
	}
	return uid, true
}

// parseWindow разбирает параметр window: 7, 30, 90 или all
func parseWindow(raw string) (service.Window, error) {
	switch raw {
	case "", "all":
		return service.WindowAll, nil
	case "7":
		return service.Window7, nil
	case "30":
		return service.Window30, nil
	case "90":
		return service.Window90, nil
	}
	return 0, errors.New("window must be one of 7, 30, 90, all")
}

func parseView(raw string) (service.ChartView, error) {
	switch raw {
	case "", "combined":
		return service.ViewCombined, nil
	case "income":
		return service.ViewIncome, nil
	case "expense":
		return service.ViewExpense, nil
	}
	return 0, errors.New("view must be one of combined, income, expense")
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUserID(w, r)
	if !ok {
		return
	}
	window, err := parseWindow(r.URL.Query().Get("window"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := parseView(r.URL.Query().Get("view"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.tracker.GetChartReport(r.Context(), uid, window, view)
	if err != nil {
		logrus.Errorf("chart report failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to build chart report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUserID(w, r)
	if !ok {
		return
	}

	t := model.TransactionType(r.URL.Query().Get("type"))
	if t != model.TypeIncome && t != model.TypeExpense {
		writeError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}

	// Необязательный фильтр одной календарной даты
	var day *time.Time
	if raw := r.URL.Query().Get("day"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "day must be in 2006-01-02 format")
			return
		}
		day = &parsed
	}

	slices, err := s.tracker.GetBreakdown(r.Context(), uid, t, day)
	if err != nil {
		logrus.Errorf("breakdown failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to build breakdown")
		return
	}
	writeJSON(w, http.StatusOK, slices)
}

func (s *Server) handleBudgetReport(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUserID(w, r)
	if !ok {
		return
	}
	statuses, err := s.tracker.GetBudgetReport(r.Context(), uid)
	if err != nil {
		logrus.Errorf("budget report failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to build budget report")
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (s *Server) handleWishlistReport(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUserID(w, r)
	if !ok {
		return
	}
	statuses, err := s.tracker.GetWishlistReport(r.Context(), uid)
	if err != nil {
		logrus.Errorf("wishlist report failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to build wishlist report")
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUserID(w, r)
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative number")
			return
		}
		limit = parsed
	}

	transactions, err := s.tracker.GetRecentTransactions(r.Context(), uid, limit)
	if err != nil {
		logrus.Errorf("list transactions failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var transaction model.Transaction
	if err := json.NewDecoder(r.Body).Decode(&transaction); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if transaction.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := s.tracker.AddTransaction(r.Context(), &transaction); err != nil {
		logrus.Errorf("add transaction failed: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, transaction)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var transaction model.Transaction
	if err := json.NewDecoder(r.Body).Decode(&transaction); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	transaction.ID = r.PathValue("id")
	if transaction.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := s.tracker.UpdateTransaction(r.Context(), &transaction); err != nil {
		logrus.Errorf("update transaction failed: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, transaction)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUserID(w, r)
	if !ok {
		return
	}
	if err := s.tracker.DeleteTransaction(r.Context(), r.PathValue("id"), uid); err != nil {
		logrus.Errorf("delete transaction failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleAddBudget(w http.ResponseWriter, r *http.Request) {
	var budget model.Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if budget.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := s.tracker.AddBudget(r.Context(), &budget); err != nil {
		logrus.Errorf("add budget failed: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, budget)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var budget model.Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	budget.ID = r.PathValue("id")
	if budget.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := s.tracker.UpdateBudget(r.Context(), &budget); err != nil {
		logrus.Errorf("update budget failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update budget")
		return
	}
	writeJSON(w, http.StatusOK, budget)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUserID(w, r)
	if !ok {
		return
	}
	if err := s.tracker.DeleteBudget(r.Context(), r.PathValue("id"), uid); err != nil {
		logrus.Errorf("delete budget failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete budget")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleAddWishlist(w http.ResponseWriter, r *http.Request) {
	var wishlist model.Wishlist
	if err := json.NewDecoder(r.Body).Decode(&wishlist); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if wishlist.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := s.tracker.AddWishlist(r.Context(), &wishlist); err != nil {
		logrus.Errorf("add wishlist failed: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, wishlist)
}

func (s *Server) handleUpdateWishlist(w http.ResponseWriter, r *http.Request) {
	var wishlist model.Wishlist
	if err := json.NewDecoder(r.Body).Decode(&wishlist); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	wishlist.ID = r.PathValue("id")
	if wishlist.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := s.tracker.UpdateWishlist(r.Context(), &wishlist); err != nil {
		logrus.Errorf("update wishlist failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update wishlist")
		return
	}
	writeJSON(w, http.StatusOK, wishlist)
}

func (s *Server) handleDeleteWishlist(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUserID(w, r)
	if !ok {
		return
	}
	if err := s.tracker.DeleteWishlist(r.Context(), r.PathValue("id"), uid); err != nil {
		logrus.Errorf("delete wishlist failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete wishlist")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListSavings(w http.ResponseWriter, r *http.Request) {
	wishlistID := r.URL.Query().Get("wishlist_id")
	if wishlistID == "" {
		writeError(w, http.StatusBadRequest, "wishlist_id is required")
		return
	}

	savings, err := s.tracker.GetSavingsHistory(r.Context(), wishlistID)
	if err != nil {
		logrus.Errorf("list savings failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list savings")
		return
	}
	writeJSON(w, http.StatusOK, savings)
}

func (s *Server) handleAddSaving(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WishlistID string `json:"wishlist_id"`
		Amount     int64  `json:"amount"`
		Note       string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.WishlistID == "" {
		writeError(w, http.StatusBadRequest, "wishlist_id is required")
		return
	}

	saving, err := s.tracker.AddSaving(r.Context(), req.WishlistID, req.Amount, req.Note)
	if err != nil {
		logrus.Errorf("add saving failed: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, saving)
}

func (s *Server) handleDeleteSaving(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DeleteSaving(r.Context(), r.PathValue("id")); err != nil {
		logrus.Errorf("delete saving failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete saving")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
