package http

import (
	"net/http"
	"strconv"
	"time"

	"cashflow/internal/budget"
	"cashflow/internal/core"
	"cashflow/internal/ledger"
	applog "cashflow/internal/log"
	"cashflow/internal/profile"
	"cashflow/internal/session"
)

type monthResponse struct {
	Key      string           `json:"key"`
	Month    core.MonthRecord `json:"month"`
	Summary  budget.Summary   `json:"summary"`
	Currency string           `json:"currency"`
}

func (s *Server) handleGetMonth(w http.ResponseWriter, r *http.Request, userID string) {
	key := r.URL.Query().Get("key")
	if key == "" {
		key = s.ledger.CurrentMonthKey()
	}
	month, err := s.ledger.GetMonth(r.Context(), userID, key)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	prof, err := s.profiles.Get(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, monthResponse{
		Key:      key,
		Month:    month,
		Summary:  budget.Summarize(month),
		Currency: prof.Currency,
	})
}

type yearResponse struct {
	Year   int                         `json:"year"`
	Months map[string]core.MonthRecord `json:"months"`
}

func (s *Server) handleGetYear(w http.ResponseWriter, r *http.Request, userID string) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	months, err := s.ledger.GetYear(r.Context(), userID, year)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, yearResponse{Year: year, Months: months})
}

func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return time.Now().Year(), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 || year > 9999 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid year: " + raw})
		return 0, false
	}
	return year, true
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request, userID string) {
	var in ledger.ExpenseInput
	if !decodeJSON(w, r, &in) {
		return
	}
	exp, err := s.ledger.AddExpense(r.Context(), userID, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateExports(userID)
	writeJSON(w, http.StatusCreated, exp)
}

// handleDeleteExpense answers 204 whether or not the expense existed.
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request, userID string) {
	monthKey := r.URL.Query().Get("key")
	if err := s.ledger.DeleteExpense(r.Context(), userID, r.PathValue("id"), monthKey); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateExports(userID)
	w.WriteHeader(http.StatusNoContent)
}

type incomeRequest struct {
	Income float64 `json:"income"`
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request, userID string) {
	var in incomeRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := s.ledger.UpdateIncome(r.Context(), userID, in.Income); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateExports(userID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetCategories(w http.ResponseWriter, r *http.Request, userID string) {
	if r.URL.Query().Get("with_spent") == "true" {
		cats, err := s.ledger.GetCategoriesWithSpent(r.Context(), userID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, cats)
		return
	}
	cats, err := s.ledger.GetCategories(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

type limitRequest struct {
	Limit float64 `json:"limit"`
}

func (s *Server) handleSaveLimit(w http.ResponseWriter, r *http.Request, userID string) {
	var in limitRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := s.ledger.SaveBudgetLimit(r.Context(), userID, r.PathValue("id"), in.Limit); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateExports(userID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearLimit(w http.ResponseWriter, r *http.Request, userID string) {
	if err := s.ledger.ClearBudgetLimit(r.Context(), userID, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateExports(userID)
	w.WriteHeader(http.StatusNoContent)
}

type subscriptionView struct {
	core.Subscription
	MonthlyCost float64 `json:"monthlyCost"`
}

func (s *Server) handleGetSubscriptions(w http.ResponseWriter, r *http.Request, userID string) {
	subs, err := s.ledger.GetSubscriptions(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	views := make([]subscriptionView, 0, len(subs))
	for _, sub := range subs {
		views = append(views, subscriptionView{
			Subscription: sub,
			MonthlyCost:  budget.MonthlyCost(sub),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleAddSubscription(w http.ResponseWriter, r *http.Request, userID string) {
	var in ledger.SubscriptionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	sub, err := s.ledger.AddSubscription(r.Context(), userID, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateExports(userID)
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) handleDeleteSubscription(w http.ResponseWriter, r *http.Request, userID string) {
	if err := s.ledger.DeleteSubscription(r.Context(), userID, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateExports(userID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request, userID string) {
	prof, err := s.profiles.Get(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prof)
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request, userID string) {
	var in profile.Profile
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := s.profiles.Save(r.Context(), userID, in); err != nil {
		s.writeError(w, r, err)
		return
	}
	// Currency changes alter rendered amounts.
	s.invalidateExports(userID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Load(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if sess == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no active session"})
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

type signInRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var in signInRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.UserID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "userId is required"})
		return
	}
	sess := session.Session{
		UserID:    in.UserID,
		Email:     in.Email,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.InfoContext(r.Context(), "Session started", applog.FieldUserID, in.UserID)
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Clear(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
