package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/skillverse/skillverse/internal/models"
	bookingService "github.com/skillverse/skillverse/internal/services/booking"
	ledgerService "github.com/skillverse/skillverse/internal/services/ledger"
	reviewService "github.com/skillverse/skillverse/internal/services/review"
	sessionService "github.com/skillverse/skillverse/internal/services/session"
)

// bookRequest is the JSON body for POST /api/bookings
type bookRequest struct {
	HostID          string    `json:"host_id"`
	ScheduledTime   time.Time `json:"scheduled_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

// bookResponse pairs the created session with its booking mirror
type bookResponse struct {
	Session *models.Session `json:"session"`
	Booking *models.Booking `json:"booking"`
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	output, err := s.booking.Book(r.Context(), &bookingService.BookInput{
		LearnerID:       callerID(r),
		HostID:          req.HostID,
		ScheduledTime:   req.ScheduledTime,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	s.metrics.BookingsCreated.Inc()
	writeJSON(w, http.StatusCreated, bookResponse{
		Session: output.Session,
		Booking: output.Booking,
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	output, err := s.booking.ListSessions(r.Context(), &bookingService.ListSessionsInput{
		UserID: callerID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"sessions": output.Sessions})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	output, err := s.booking.GetSession(r.Context(), &bookingService.GetSessionInput{
		SessionID: chi.URLParam(r, "sessionID"),
		ActorID:   callerID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bookResponse{
		Session: output.Session,
		Booking: output.Booking,
	})
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	output, err := s.booking.Confirm(r.Context(), &bookingService.ConfirmInput{
		SessionID: chi.URLParam(r, "sessionID"),
		ActorID:   callerID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	s.metrics.SessionsConfirmed.Inc()
	writeJSON(w, http.StatusOK, map[string]any{"session": output.Session})
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	output, err := s.booking.Cancel(r.Context(), &bookingService.CancelInput{
		SessionID: chi.URLParam(r, "sessionID"),
		ActorID:   callerID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	s.metrics.SessionsCancelled.Inc()
	writeJSON(w, http.StatusOK, map[string]any{"session": output.Session})
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	output, err := s.session.Complete(r.Context(), &sessionService.CompleteInput{
		SessionID: chi.URLParam(r, "sessionID"),
		ActorID:   callerID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	s.metrics.SessionsCompleted.Inc()
	s.metrics.CreditsTransferred.Add(float64(output.CreditEntry.Amount))
	writeJSON(w, http.StatusOK, map[string]any{"session": output.Session})
}

func (s *Server) handleVideoToken(w http.ResponseWriter, r *http.Request) {
	output, err := s.session.VideoToken(r.Context(), &sessionService.VideoTokenInput{
		SessionID: chi.URLParam(r, "sessionID"),
		ActorID:   callerID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": output.Token})
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	output, err := s.ledger.Balance(r.Context(), &ledgerService.BalanceInput{
		UserID: callerID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"balance": output.Balance})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	output, err := s.ledger.History(r.Context(), &ledgerService.HistoryInput{
		UserID: callerID(r),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entries": output.Entries,
		"page":    output.Page,
		"limit":   output.Limit,
	})
}

// grantRequest is the JSON body for POST /api/ledger/grant
type grantRequest struct {
	Amount      int64  `json:"amount"`
	Kind        string `json:"kind"`
	ReferenceID string `json:"reference_id"`
}

func (s *Server) handleGrant(w http.ResponseWriter, r *http.Request) {
	var req grantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	output, err := s.ledger.Grant(r.Context(), &ledgerService.GrantInput{
		UserID:      callerID(r),
		Amount:      req.Amount,
		Kind:        models.LedgerEntryKind(req.Kind),
		ReferenceID: req.ReferenceID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	s.metrics.CreditsGranted.Add(float64(output.Entry.Amount))
	writeJSON(w, http.StatusCreated, map[string]any{"entry": output.Entry})
}

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	output, err := s.ledger.Reconcile(r.Context(), &ledgerService.ReconcileInput{
		UserID: callerID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"log_balance":    output.LogBalance,
		"cached_balance": output.CachedBalance,
		"repaired":       output.Repaired,
	})
}

// submitReviewRequest is the JSON body for POST /api/reviews
type submitReviewRequest struct {
	SessionID string `json:"session_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	var req submitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	output, err := s.review.Submit(r.Context(), &reviewService.SubmitInput{
		SessionID:  req.SessionID,
		ReviewerID: callerID(r),
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	s.metrics.ReviewsSubmitted.Inc()
	writeJSON(w, http.StatusCreated, map[string]any{
		"review":         output.Review,
		"average_rating": output.AverageRating,
	})
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	output, err := s.review.ListForUser(r.Context(), &reviewService.ListForUserInput{
		UserID: chi.URLParam(r, "userID"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reviews": output.Reviews})
}
