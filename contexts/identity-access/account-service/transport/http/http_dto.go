package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AccountDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previous_status,omitempty"`
	ProfilePicURL  string `json:"profile_pic_url,omitempty"`
	CreatedAt      string `json:"created_at"`
}

type RegisterRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role,omitempty"`
	ProfilePicURL string `json:"profile_pic_url,omitempty"`
}

type RegisterResponse struct {
	Message string     `json:"message"`
	Token   string     `json:"token,omitempty"`
	User    AccountDTO `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  AccountDTO `json:"user"`
}

type StatusChangeResponse struct {
	Message string     `json:"message"`
	User    AccountDTO `json:"user"`
}

type ListAccountsResponse struct {
	Users []AccountDTO `json:"users"`
}

type UpdateProfileRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	ProfilePicURL string `json:"profile_pic_url,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
