package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/dashboard"
	"github.com/jonathan/career-compass/internal/recommend"
	"github.com/jonathan/career-compass/internal/server/middleware"
	"github.com/jonathan/career-compass/internal/types"
)

// recommendationResponse is a batch plus its default dashboard view.
type recommendationResponse struct {
	*recommend.Result
	Dashboard dashboard.Dashboard `json:"dashboard"`
}

// dashboardRequest regroups a batch the caller already holds.
type dashboardRequest struct {
	Paths  []types.CareerPath `json:"paths"`
	Sector types.Sector       `json:"sector,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.AllOptions())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var req dashboardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}
	view, err := dashboard.Build(req.Paths, req.Sector)
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "sector", Message: err.Error()})
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var profile types.UserProfile
	if err := decodeJSON(w, r, &profile); err != nil {
		s.errorResponse(w, err)
		return
	}

	resp, err := s.recommend(r, profile)
	if err != nil {
		s.jsonResponse(w, HTTPStatus(err), failureFor(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleRecommendationsStream(w http.ResponseWriter, r *http.Request) {
	var profile types.UserProfile
	if err := decodeJSON(w, r, &profile); err != nil {
		s.errorResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.jsonResponse(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	sse.WriteLoading()

	resp, err := s.recommend(r, profile)
	if err != nil {
		sse.WriteError(err)
		return
	}
	sse.WriteComplete(resp)
}

func (s *Server) recommend(r *http.Request, profile types.UserProfile) (recommendationResponse, error) {
	logger := s.logger.With(zap.String("request_id", requestID(r)))
	if caller, err := middleware.GetCaller(r); err == nil {
		logger = logger.With(zap.String("caller", caller))
	}

	result, err := s.recommender.Submit(r.Context(), profile)
	if err != nil {
		logger.Warn("recommendation failed",
			zap.String("kind", string(recommend.KindOf(err))),
			zap.Error(err),
		)
		return recommendationResponse{}, err
	}

	view, err := dashboard.Build(result.Paths, "")
	if err != nil {
		return recommendationResponse{}, err
	}
	logger.Debug("recommendation served",
		zap.String("batch_id", result.BatchID),
		zap.Int("entries", len(result.Paths)),
	)
	return recommendationResponse{Result: result, Dashboard: view}, nil
}
