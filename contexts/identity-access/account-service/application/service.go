package application

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"pixmart/contexts/identity-access/account-service/domain/entities"
	domainerrors "pixmart/contexts/identity-access/account-service/domain/errors"
	"pixmart/contexts/identity-access/account-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Hasher ports.PasswordHasher
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// RegisterResult carries the created account plus whether the caller hit the
// bootstrap path and should immediately receive a session credential.
type RegisterResult struct {
	Account   entities.Account
	Bootstrap bool
}

func (s Service) Register(ctx context.Context, input ports.RegisterInput) (RegisterResult, error) {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		input.Password == "" {
		return RegisterResult{}, domainerrors.ErrInvalidRequest
	}
	if err := validatePassword(input.Password); err != nil {
		return RegisterResult{}, err
	}
	role, ok := entities.ParseRole(input.RequestedRole)
	if !ok {
		return RegisterResult{}, domainerrors.ErrInvalidRequest
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, exists, err := s.Repo.GetAccountByEmail(ctx, email); err != nil {
		return RegisterResult{}, err
	} else if exists {
		return RegisterResult{}, domainerrors.ErrEmailTaken
	}

	// The very first account ever created becomes the admin; there is no
	// other way to obtain one. This is a read-then-act check and two truly
	// concurrent first registrations can both observe an empty store.
	count, err := s.Repo.CountAccounts(ctx)
	if err != nil {
		return RegisterResult{}, err
	}
	bootstrap := count == 0

	status := entities.StatusPending
	if bootstrap {
		role = entities.RoleAdmin
		status = entities.StatusApproved
	}

	hash, err := s.Hasher.Hash(input.Password)
	if err != nil {
		return RegisterResult{}, err
	}
	accountID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return RegisterResult{}, err
	}
	account, err := entities.NewAccount(accountID, input.Name, email, hash, role, status, s.now())
	if err != nil {
		return RegisterResult{}, err
	}
	account.ProfilePicURL = strings.TrimSpace(input.ProfilePicURL)

	created, err := s.Repo.CreateAccount(ctx, account)
	if err != nil {
		return RegisterResult{}, err
	}

	resolveLogger(s.Logger).Info("account registered",
		"event", "account_registered",
		"module", "identity-access/account-service",
		"layer", "application",
		"account_id", created.AccountID,
		"role", string(created.Role),
		"bootstrap", bootstrap,
	)
	return RegisterResult{Account: created, Bootstrap: bootstrap}, nil
}

func (s Service) Authenticate(ctx context.Context, email string, password string) (entities.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return entities.Account{}, domainerrors.ErrInvalidRequest
	}
	account, found, err := s.Repo.GetAccountByEmail(ctx, email)
	if err != nil {
		return entities.Account{}, err
	}
	if !found {
		return entities.Account{}, domainerrors.ErrInvalidCredentials
	}
	switch account.Status {
	case entities.StatusBlocked:
		return entities.Account{}, domainerrors.ErrAccountBlocked
	case entities.StatusPending:
		return entities.Account{}, domainerrors.ErrAccountPending
	}
	if account.PasswordHash == "" {
		return entities.Account{}, domainerrors.ErrInvalidCredentials
	}
	if err := s.Hasher.Compare(account.PasswordHash, password); err != nil {
		return entities.Account{}, domainerrors.ErrInvalidCredentials
	}
	if account.Status != entities.StatusApproved {
		return entities.Account{}, domainerrors.ErrAccountPending
	}
	return account, nil
}

// SetStatus backs both admin approve and admin block.
func (s Service) SetStatus(ctx context.Context, accountID string, status entities.AccountStatus) (entities.Account, error) {
	if strings.TrimSpace(accountID) == "" {
		return entities.Account{}, domainerrors.ErrInvalidRequest
	}
	account, err := s.Repo.GetAccount(ctx, accountID)
	if err != nil {
		return entities.Account{}, err
	}
	if err := account.ApplyStatus(status, s.now()); err != nil {
		return entities.Account{}, err
	}
	updated, err := s.Repo.UpdateAccount(ctx, account)
	if err != nil {
		return entities.Account{}, err
	}
	resolveLogger(s.Logger).Info("account status changed",
		"event", "account_status_changed",
		"module", "identity-access/account-service",
		"layer", "application",
		"account_id", updated.AccountID,
		"status", string(updated.Status),
	)
	return updated, nil
}

func (s Service) Restore(ctx context.Context, accountID string) (entities.Account, error) {
	if strings.TrimSpace(accountID) == "" {
		return entities.Account{}, domainerrors.ErrInvalidRequest
	}
	account, err := s.Repo.GetAccount(ctx, accountID)
	if err != nil {
		return entities.Account{}, err
	}
	if err := account.Restore(s.now()); err != nil {
		return entities.Account{}, err
	}
	return s.Repo.UpdateAccount(ctx, account)
}

func (s Service) GetAccount(ctx context.Context, accountID string) (entities.Account, error) {
	if strings.TrimSpace(accountID) == "" {
		return entities.Account{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.GetAccount(ctx, accountID)
}

func (s Service) ListAccounts(ctx context.Context) ([]entities.Account, error) {
	return s.Repo.ListAccounts(ctx)
}

// ListVendors is the public directory; only approved vendors are shown.
func (s Service) ListVendors(ctx context.Context) ([]entities.Account, error) {
	vendors, err := s.Repo.ListAccountsByRole(ctx, entities.RoleVendor)
	if err != nil {
		return nil, err
	}
	approved := make([]entities.Account, 0, len(vendors))
	for _, vendor := range vendors {
		if vendor.Status == entities.StatusApproved {
			approved = append(approved, vendor)
		}
	}
	return approved, nil
}

func (s Service) UpdateProfile(ctx context.Context, accountID string, input ports.ProfileUpdateInput) (entities.Account, error) {
	if strings.TrimSpace(accountID) == "" ||
		strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Email) == "" {
		return entities.Account{}, domainerrors.ErrInvalidRequest
	}
	account, err := s.Repo.GetAccount(ctx, accountID)
	if err != nil {
		return entities.Account{}, err
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != account.Email {
		if existing, exists, err := s.Repo.GetAccountByEmail(ctx, email); err != nil {
			return entities.Account{}, err
		} else if exists && existing.AccountID != accountID {
			return entities.Account{}, domainerrors.ErrEmailTaken
		}
	}
	account.Name = strings.TrimSpace(input.Name)
	account.Email = email
	if strings.TrimSpace(input.ProfilePicURL) != "" {
		account.ProfilePicURL = strings.TrimSpace(input.ProfilePicURL)
	}
	account.UpdatedAt = s.now()
	return s.Repo.UpdateAccount(ctx, account)
}

func (s Service) ChangePassword(ctx context.Context, accountID string, oldPassword string, newPassword string) error {
	if strings.TrimSpace(accountID) == "" || oldPassword == "" || newPassword == "" {
		return domainerrors.ErrInvalidRequest
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	account, err := s.Repo.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if err := s.Hasher.Compare(account.PasswordHash, oldPassword); err != nil {
		return domainerrors.ErrInvalidCredentials
	}
	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	account.UpdatedAt = s.now()
	_, err = s.Repo.UpdateAccount(ctx, account)
	return err
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

// validatePassword mirrors the platform password policy: minimum eight
// characters with at least one capital letter, one digit, and one special
// character.
func validatePassword(password string) error {
	if len(password) < 8 {
		return domainerrors.ErrWeakPassword
	}
	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasDigit || !hasSpecial {
		return domainerrors.ErrWeakPassword
	}
	return nil
}
