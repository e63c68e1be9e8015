package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"pixmart/contexts/identity-access/account-service/application"
	"pixmart/contexts/identity-access/account-service/domain/entities"
	"pixmart/contexts/identity-access/account-service/ports"
	httptransport "pixmart/contexts/identity-access/account-service/transport/http"
)

type Handler struct {
	Service application.Service
	Tokens  ports.TokenIssuer
	Logger  *slog.Logger
}

func (h Handler) RegisterHandler(ctx context.Context, req httptransport.RegisterRequest) (httptransport.RegisterResponse, error) {
	result, err := h.Service.Register(ctx, ports.RegisterInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		RequestedRole: req.Role,
		ProfilePicURL: req.ProfilePicURL,
	})
	if err != nil {
		return httptransport.RegisterResponse{}, err
	}

	resp := httptransport.RegisterResponse{
		Message: "Registration successful! Please wait for admin approval to login.",
		User:    toAccountDTO(result.Account),
	}
	if result.Bootstrap {
		token, err := h.Tokens.Issue(result.Account.AccountID, string(result.Account.Role))
		if err != nil {
			return httptransport.RegisterResponse{}, err
		}
		resp.Message = "Welcome! You are the first admin user. Your account has been automatically approved."
		resp.Token = token
	}
	return resp, nil
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	account, err := h.Service.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	token, err := h.Tokens.Issue(account.AccountID, string(account.Role))
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return httptransport.LoginResponse{
		Token: token,
		User:  toAccountDTO(account),
	}, nil
}

func (h Handler) ApproveHandler(ctx context.Context, accountID string) (httptransport.StatusChangeResponse, error) {
	account, err := h.Service.SetStatus(ctx, accountID, entities.StatusApproved)
	if err != nil {
		return httptransport.StatusChangeResponse{}, err
	}
	return httptransport.StatusChangeResponse{
		Message: "User approved successfully",
		User:    toAccountDTO(account),
	}, nil
}

func (h Handler) BlockHandler(ctx context.Context, accountID string) (httptransport.StatusChangeResponse, error) {
	account, err := h.Service.SetStatus(ctx, accountID, entities.StatusBlocked)
	if err != nil {
		return httptransport.StatusChangeResponse{}, err
	}
	return httptransport.StatusChangeResponse{
		Message: "User blocked successfully",
		User:    toAccountDTO(account),
	}, nil
}

func (h Handler) UnblockHandler(ctx context.Context, accountID string) (httptransport.StatusChangeResponse, error) {
	account, err := h.Service.Restore(ctx, accountID)
	if err != nil {
		return httptransport.StatusChangeResponse{}, err
	}
	return httptransport.StatusChangeResponse{
		Message: "User restored successfully",
		User:    toAccountDTO(account),
	}, nil
}

func (h Handler) GetProfileHandler(ctx context.Context, accountID string) (httptransport.AccountDTO, error) {
	account, err := h.Service.GetAccount(ctx, accountID)
	if err != nil {
		return httptransport.AccountDTO{}, err
	}
	return toAccountDTO(account), nil
}

func (h Handler) UpdateProfileHandler(ctx context.Context, accountID string, req httptransport.UpdateProfileRequest) (httptransport.AccountDTO, error) {
	account, err := h.Service.UpdateProfile(ctx, accountID, ports.ProfileUpdateInput{
		Name:          req.Name,
		Email:         req.Email,
		ProfilePicURL: req.ProfilePicURL,
	})
	if err != nil {
		return httptransport.AccountDTO{}, err
	}
	return toAccountDTO(account), nil
}

func (h Handler) ChangePasswordHandler(ctx context.Context, accountID string, req httptransport.ChangePasswordRequest) (httptransport.MessageResponse, error) {
	if err := h.Service.ChangePassword(ctx, accountID, req.OldPassword, req.NewPassword); err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: "Password changed successfully"}, nil
}

func (h Handler) ListAccountsHandler(ctx context.Context) (httptransport.ListAccountsResponse, error) {
	accounts, err := h.Service.ListAccounts(ctx)
	if err != nil {
		return httptransport.ListAccountsResponse{}, err
	}
	return toListResponse(accounts), nil
}

func (h Handler) ListVendorsHandler(ctx context.Context) (httptransport.ListAccountsResponse, error) {
	accounts, err := h.Service.ListVendors(ctx)
	if err != nil {
		return httptransport.ListAccountsResponse{}, err
	}
	return toListResponse(accounts), nil
}

func toListResponse(accounts []entities.Account) httptransport.ListAccountsResponse {
	resp := httptransport.ListAccountsResponse{Users: make([]httptransport.AccountDTO, 0, len(accounts))}
	for _, account := range accounts {
		resp.Users = append(resp.Users, toAccountDTO(account))
	}
	return resp
}

func toAccountDTO(account entities.Account) httptransport.AccountDTO {
	dto := httptransport.AccountDTO{
		ID:            account.AccountID,
		Name:          account.Name,
		Email:         account.Email,
		Role:          string(account.Role),
		Status:        string(account.Status),
		ProfilePicURL: account.ProfilePicURL,
		CreatedAt:     account.CreatedAt.UTC().Format(time.RFC3339),
	}
	if account.PreviousStatus != nil {
		dto.PreviousStatus = string(*account.PreviousStatus)
	}
	return dto
}
