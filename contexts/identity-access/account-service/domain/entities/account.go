package entities

import (
	"strings"
	"time"

	domainerrors "pixmart/contexts/identity-access/account-service/domain/errors"
)

type Role string

const (
	RoleBuyer  Role = "user"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleBuyer, "":
		return RoleBuyer, true
	case RoleVendor:
		return RoleVendor, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

type AccountStatus string

const (
	StatusPending  AccountStatus = "pending"
	StatusApproved AccountStatus = "approved"
	StatusBlocked  AccountStatus = "blocked"
)

func IsValidStatus(status AccountStatus) bool {
	switch status {
	case StatusPending, StatusApproved, StatusBlocked:
		return true
	default:
		return false
	}
}

type Account struct {
	AccountID      string
	Name           string
	Email          string
	PasswordHash   string
	Role           Role
	Status         AccountStatus
	PreviousStatus *AccountStatus
	ProfilePicURL  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewAccount(
	accountID string,
	name string,
	email string,
	passwordHash string,
	role Role,
	status AccountStatus,
	createdAt time.Time,
) (Account, error) {
	if strings.TrimSpace(accountID) == "" ||
		strings.TrimSpace(name) == "" ||
		strings.TrimSpace(email) == "" ||
		strings.TrimSpace(passwordHash) == "" {
		return Account{}, domainerrors.ErrInvalidRequest
	}
	if !IsValidStatus(status) {
		return Account{}, domainerrors.ErrInvalidStatus
	}
	return Account{
		AccountID:    accountID,
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		Role:         role,
		Status:       status,
		CreatedAt:    createdAt.UTC(),
		UpdatedAt:    createdAt.UTC(),
	}, nil
}

// ApplyStatus captures the current status before moving to the new one so a
// later restore can put the account back exactly where it was. Admin accounts
// never change status.
func (a *Account) ApplyStatus(status AccountStatus, now time.Time) error {
	if a.Role == RoleAdmin {
		return domainerrors.ErrAdminImmutable
	}
	if status != StatusApproved && status != StatusBlocked {
		return domainerrors.ErrInvalidStatus
	}
	previous := a.Status
	a.PreviousStatus = &previous
	a.Status = status
	a.UpdatedAt = now.UTC()
	return nil
}

// Restore consumes PreviousStatus; with nothing recorded the account falls
// back to pending.
func (a *Account) Restore(now time.Time) error {
	if a.Role == RoleAdmin {
		return domainerrors.ErrAdminImmutable
	}
	if a.PreviousStatus != nil {
		a.Status = *a.PreviousStatus
	} else {
		a.Status = StatusPending
	}
	a.PreviousStatus = nil
	a.UpdatedAt = now.UTC()
	return nil
}
