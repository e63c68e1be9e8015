package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	downloaderrors "pixmart/contexts/commerce/download-service/domain/errors"
	downloadhttp "pixmart/contexts/commerce/download-service/transport/http"
	"pixmart/internal/platform/token"
)

func (s *Server) handleDownloadProduct(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	resp, err := s.downloads.Handler.RequestDownloadHandler(r.Context(), claims.Subject, r.PathValue("id"))
	if err != nil {
		writeDownloadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListDownloads(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	resp, err := s.downloads.Handler.ListDownloadsHandler(r.Context(), claims.Subject)
	if err != nil {
		writeDownloadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	resp, err := s.downloads.Handler.ListFavoritesHandler(r.Context(), claims.Subject)
	if err != nil {
		writeDownloadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	var req downloadhttp.AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.downloads.Handler.AddFavoriteHandler(r.Context(), claims.Subject, req)
	if err != nil {
		writeDownloadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	resp, err := s.downloads.Handler.RemoveFavoriteHandler(r.Context(), claims.Subject, r.PathValue("product_id"))
	if err != nil {
		writeDownloadDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeDownloadDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, downloaderrors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, downloaderrors.ErrListingNotFound):
		writeError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, downloaderrors.ErrPurchaseRequired):
		writeError(w, http.StatusForbidden, "purchase_required", err.Error())
	case errors.Is(err, downloaderrors.ErrAssetMissing):
		writeError(w, http.StatusNotFound, "asset_missing", err.Error())
	case errors.Is(err, downloaderrors.ErrFavoriteNotFound):
		writeError(w, http.StatusNotFound, "favorite_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
