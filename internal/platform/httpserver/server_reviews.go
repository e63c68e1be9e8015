package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	reviewerrors "pixmart/contexts/community-experience/review-service/domain/errors"
	reviewhttp "pixmart/contexts/community-experience/review-service/transport/http"
	"pixmart/internal/platform/token"
)

func (s *Server) handleListProductReviews(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reviews.Handler.ListListingReviewsHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	var req reviewhttp.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.reviews.Handler.CreateReviewHandler(r.Context(), r.PathValue("id"), claims.Subject, req)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	var req reviewhttp.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.reviews.Handler.UpdateReviewHandler(r.Context(), r.PathValue("id"), claims.Subject, claims.Role, req)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	resp, err := s.reviews.Handler.DeleteReviewHandler(r.Context(), r.PathValue("id"), claims.Subject, claims.Role)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeReviewDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reviewerrors.ErrInvalidRequest),
		errors.Is(err, reviewerrors.ErrInvalidRating),
		errors.Is(err, reviewerrors.ErrCommentTooLong):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, reviewerrors.ErrReviewNotFound):
		writeError(w, http.StatusNotFound, "review_not_found", err.Error())
	case errors.Is(err, reviewerrors.ErrListingNotFound):
		writeError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, reviewerrors.ErrDuplicateReview):
		writeError(w, http.StatusConflict, "duplicate_review", err.Error())
	case errors.Is(err, reviewerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
