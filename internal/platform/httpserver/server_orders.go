package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	ordererrors "pixmart/contexts/commerce/order-service/domain/errors"
	orderhttp "pixmart/contexts/commerce/order-service/transport/http"
	"pixmart/internal/platform/token"
)

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	var req orderhttp.CreateOrderRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
			return
		}
	}
	resp, err := s.orders.Handler.CreateOrderHandler(r.Context(), claims.Subject, req)
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	resp, err := s.orders.Handler.GetOrderHandler(r.Context(), r.PathValue("id"), claims.Subject, claims.Role)
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListBuyerOrders(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	resp, err := s.orders.Handler.ListBuyerOrdersHandler(r.Context(), claims.Subject)
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListVendorOrders(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	resp, err := s.orders.Handler.ListVendorOrdersHandler(r.Context(), claims.Subject)
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	var req orderhttp.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.orders.Handler.UpdateOrderStatusHandler(r.Context(), r.PathValue("id"), claims.Subject, claims.Role, req)
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	resp, err := s.orders.Handler.GetCartHandler(r.Context(), claims.Subject)
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddCartItem(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	var req orderhttp.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.orders.Handler.AddCartItemHandler(r.Context(), claims.Subject, req)
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request, claims *token.Claims) {
	resp, err := s.orders.Handler.RemoveCartItemHandler(r.Context(), claims.Subject, r.PathValue("product_id"))
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeOrderDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ordererrors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ordererrors.ErrEmptyOrder):
		writeError(w, http.StatusBadRequest, "empty_order", err.Error())
	case errors.Is(err, ordererrors.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid_status", err.Error())
	case errors.Is(err, ordererrors.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, ordererrors.ErrCartItemNotFound):
		writeError(w, http.StatusNotFound, "cart_item_not_found", err.Error())
	case errors.Is(err, ordererrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, ordererrors.ErrListingUnavailable):
		writeError(w, http.StatusConflict, "product_unavailable", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
