package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	listingerrors "pixmart/contexts/catalog/listing-service/domain/errors"
	listinghttp "pixmart/contexts/catalog/listing-service/transport/http"
	"pixmart/internal/platform/token"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := listinghttp.ListListingsRequest{
		VendorID: query.Get("vendor_id"),
		Status:   query.Get("status"),
		Search:   query.Get("search"),
	}
	if pageRaw := query.Get("page"); pageRaw != "" {
		page, err := strconv.Atoi(pageRaw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_page", "page must be an integer")
			return
		}
		req.Page = page
	}
	if limitRaw := query.Get("limit"); limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		req.Limit = limit
	}

	// Status pinning is only honored for admin tokens; everyone else sees
	// the active catalog.
	privileged := false
	if header := r.Header.Get("Authorization"); header != "" {
		if claims, err := parseBearer(header); err == nil && claims.Role == "admin" {
			privileged = true
		}
	}

	resp, err := s.catalog.Handler.ListListingsHandler(r.Context(), req, privileged)
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.GetListingHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	// Non-active listings are visible only to their vendor and admins.
	if resp.Status != "active" {
		claims, err := parseBearer(r.Header.Get("Authorization"))
		if err != nil || (claims.Role != "admin" && claims.Subject != resp.VendorID) {
			writeListingDomainError(w, listingerrors.ErrListingNotFound)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.CategoriesHandler(r.Context())
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	var req listinghttp.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.CreateListingHandler(r.Context(), claims.Subject, req)
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	var req listinghttp.UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.UpdateListingHandler(r.Context(), r.PathValue("id"), claims.Subject, claims.Role, req)
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	resp, err := s.catalog.Handler.DeleteListingHandler(r.Context(), r.PathValue("id"), claims.Subject, claims.Role)
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListVendorProducts(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	resp, err := s.catalog.Handler.ListVendorListingsHandler(r.Context(), claims.Subject, r.URL.Query().Get("status"))
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveProduct(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	resp, err := s.catalog.Handler.ApproveListingHandler(r.Context(), r.PathValue("id"), claims.Subject)
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectProduct(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	var req listinghttp.RejectListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.RejectListingHandler(r.Context(), r.PathValue("id"), claims.Subject, req)
	if err != nil {
		writeListingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeListingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, listingerrors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, listingerrors.ErrReasonRequired):
		writeError(w, http.StatusBadRequest, "reason_required", err.Error())
	case errors.Is(err, listingerrors.ErrListingNotFound):
		writeError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, listingerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, listingerrors.ErrListingDeleted):
		writeError(w, http.StatusGone, "product_deleted", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
