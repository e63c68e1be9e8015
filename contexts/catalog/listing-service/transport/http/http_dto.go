package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ListingDTO struct {
	ID              string  `json:"id"`
	VendorID        string  `json:"vendor_id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	Category        string  `json:"category"`
	ImageURL        string  `json:"image_url"`
	OriginalURL     string  `json:"original_url,omitempty"`
	Status          string  `json:"status"`
	ApprovedBy      string  `json:"approved_by,omitempty"`
	ApprovedAt      string  `json:"approved_at,omitempty"`
	RejectionReason string  `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type CreateListingRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
	ImageURL    string  `json:"image_url"`
	OriginalURL string  `json:"original_url,omitempty"`
}

type UpdateListingRequest struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    string   `json:"category,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	OriginalURL string   `json:"original_url,omitempty"`
}

type RejectListingRequest struct {
	Reason string `json:"reason"`
}

type ListListingsRequest struct {
	VendorID string
	Status   string
	Search   string
	Page     int
	Limit    int
}

type ListListingsResponse struct {
	Products   []ListingDTO `json:"products"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
