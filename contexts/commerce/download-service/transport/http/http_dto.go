package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type DownloadResponse struct {
	DownloadURL string `json:"download_url"`
	Filename    string `json:"filename"`
}

type EntitlementDTO struct {
	ProductID   string  `json:"product_id"`
	OrderID     string  `json:"order_id,omitempty"`
	Title       string  `json:"title,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	OriginalURL string  `json:"original_url,omitempty"`
	GrantedAt   string  `json:"granted_at"`
}

type ListEntitlementsResponse struct {
	Downloads []EntitlementDTO `json:"downloads"`
}

type AddFavoriteRequest struct {
	ProductID string `json:"product_id"`
}

type FavoriteDTO struct {
	ProductID string `json:"product_id"`
	AddedAt   string `json:"added_at"`
}

type ListFavoritesResponse struct {
	Favorites []FavoriteDTO `json:"favorites"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
