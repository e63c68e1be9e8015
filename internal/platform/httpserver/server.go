package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	listingservice "pixmart/contexts/catalog/listing-service"
	downloadservice "pixmart/contexts/commerce/download-service"
	orderservice "pixmart/contexts/commerce/order-service"
	reviewservice "pixmart/contexts/community-experience/review-service"
	accountservice "pixmart/contexts/identity-access/account-service"
	"pixmart/internal/platform/token"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "pixmart/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	accounts  accountservice.Module
	catalog   listingservice.Module
	orders    orderservice.Module
	downloads downloadservice.Module
	reviews   reviewservice.Module
}

func New(
	accounts accountservice.Module,
	catalog listingservice.Module,
	orders orderservice.Module,
	downloads downloadservice.Module,
	reviews reviewservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		accounts:  accounts,
		catalog:   catalog,
		orders:    orders,
		downloads: downloads,
		reviews:   reviews,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routing table for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /auth/login", s.handleLogin)
	s.mux.HandleFunc("GET /profile", s.authenticated(s.handleGetProfile))
	s.mux.HandleFunc("PUT /profile", s.authenticated(s.handleUpdateProfile))
	s.mux.HandleFunc("PUT /profile/password", s.authenticated(s.handleChangePassword))
	s.mux.HandleFunc("GET /vendors", s.handleListVendors)
	s.mux.HandleFunc("GET /admin/users", s.requireRole("admin", s.handleListAccounts))
	s.mux.HandleFunc("PUT /admin/users/{id}/approve", s.requireRole("admin", s.handleApproveAccount))
	s.mux.HandleFunc("PUT /admin/users/{id}/block", s.requireRole("admin", s.handleBlockAccount))
	s.mux.HandleFunc("PUT /admin/users/{id}/unblock", s.requireRole("admin", s.handleUnblockAccount))

	s.mux.HandleFunc("GET /products", s.handleListProducts)
	s.mux.HandleFunc("GET /products/{id}", s.handleGetProduct)
	s.mux.HandleFunc("GET /categories", s.handleListCategories)
	s.mux.HandleFunc("POST /products", s.requireRole("vendor", s.handleCreateProduct))
	s.mux.HandleFunc("PUT /products/{id}", s.authenticated(s.handleUpdateProduct))
	s.mux.HandleFunc("DELETE /products/{id}", s.authenticated(s.handleDeleteProduct))
	s.mux.HandleFunc("GET /vendor/products", s.requireRole("vendor", s.handleListVendorProducts))
	s.mux.HandleFunc("PUT /admin/products/{id}/approve", s.requireRole("admin", s.handleApproveProduct))
	s.mux.HandleFunc("PUT /admin/products/{id}/reject", s.requireRole("admin", s.handleRejectProduct))

	s.mux.HandleFunc("POST /orders", s.authenticated(s.handleCreateOrder))
	s.mux.HandleFunc("GET /orders", s.authenticated(s.handleListBuyerOrders))
	s.mux.HandleFunc("GET /orders/{id}", s.authenticated(s.handleGetOrder))
	s.mux.HandleFunc("GET /vendor/orders", s.requireRole("vendor", s.handleListVendorOrders))
	s.mux.HandleFunc("PUT /vendor/orders/{id}/status", s.requireRole("vendor", s.handleUpdateOrderStatus))
	s.mux.HandleFunc("GET /cart", s.authenticated(s.handleGetCart))
	s.mux.HandleFunc("POST /cart", s.authenticated(s.handleAddCartItem))
	s.mux.HandleFunc("DELETE /cart/{product_id}", s.authenticated(s.handleRemoveCartItem))

	s.mux.HandleFunc("GET /products/{id}/download", s.authenticated(s.handleDownloadProduct))
	s.mux.HandleFunc("GET /downloads", s.authenticated(s.handleListDownloads))
	s.mux.HandleFunc("GET /favorites", s.authenticated(s.handleListFavorites))
	s.mux.HandleFunc("POST /favorites", s.authenticated(s.handleAddFavorite))
	s.mux.HandleFunc("DELETE /favorites/{product_id}", s.authenticated(s.handleRemoveFavorite))

	s.mux.HandleFunc("GET /products/{id}/reviews", s.handleListProductReviews)
	s.mux.HandleFunc("POST /products/{id}/reviews", s.authenticated(s.handleCreateReview))
	s.mux.HandleFunc("PUT /reviews/{id}", s.authenticated(s.handleUpdateReview))
	s.mux.HandleFunc("DELETE /reviews/{id}", s.authenticated(s.handleDeleteReview))
}

type authedHandler func(w http.ResponseWriter, r *http.Request, claims *token.Claims)

// authenticated requires a valid bearer token and passes the claims down.
func (s *Server) authenticated(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.resolveClaims(w, r)
		if !ok {
			return
		}
		next(w, r, claims)
	}
}

// requireRole additionally gates on the token's role. Admins pass every
// vendor gate.
func (s *Server) requireRole(role string, next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.resolveClaims(w, r)
		if !ok {
			return
		}
		if claims.Role != role && claims.Role != "admin" {
			writeError(w, http.StatusForbidden, "forbidden", "insufficient role for this operation")
			return
		}
		next(w, r, claims)
	}
}

func (s *Server) resolveClaims(w http.ResponseWriter, r *http.Request) (*token.Claims, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		writeError(w, http.StatusUnauthorized, "missing_token", "Authorization header is required")
		return nil, false
	}
	claims, err := parseBearer(header)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_token", "token is missing, expired, or malformed")
		return nil, false
	}
	return claims, true
}

func parseBearer(header string) (*token.Claims, error) {
	raw := strings.TrimSpace(header)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "Bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	return token.ParseAndValidate(raw)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
