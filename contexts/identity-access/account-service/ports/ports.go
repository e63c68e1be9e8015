package ports

import (
	"context"
	"time"

	"pixmart/contexts/identity-access/account-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PasswordHasher isolates the hashing mechanics from the lifecycle logic.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// TokenIssuer mints a session credential for an approved account. The
// concrete signer lives in the platform layer.
type TokenIssuer interface {
	Issue(accountID string, role string) (string, error)
}

type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	RequestedRole string
	ProfilePicURL string
}

type ProfileUpdateInput struct {
	Name          string
	Email         string
	ProfilePicURL string
}

type Repository interface {
	CreateAccount(ctx context.Context, account entities.Account) (entities.Account, error)
	GetAccount(ctx context.Context, accountID string) (entities.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (entities.Account, bool, error)
	CountAccounts(ctx context.Context) (int64, error)
	UpdateAccount(ctx context.Context, account entities.Account) (entities.Account, error)
	ListAccounts(ctx context.Context) ([]entities.Account, error)
	ListAccountsByRole(ctx context.Context, role entities.Role) ([]entities.Account, error)
}
