package application

import (
	"context"
	"errors"
	"testing"

	"pixmart/contexts/identity-access/account-service/adapters/memory"
	"pixmart/contexts/identity-access/account-service/adapters/security"
	"pixmart/contexts/identity-access/account-service/domain/entities"
	domainerrors "pixmart/contexts/identity-access/account-service/domain/errors"
	"pixmart/contexts/identity-access/account-service/ports"
)

func newTestService() (Service, *memory.Store) {
	store := memory.NewStore()
	return Service{
		Repo:   store,
		Hasher: security.BcryptHasher{},
		Clock:  store,
		IDGen:  store,
	}, store
}

func register(t *testing.T, service Service, name string, email string, role string) RegisterResult {
	t.Helper()
	result, err := service.Register(context.Background(), ports.RegisterInput{
		Name:          name,
		Email:         email,
		Password:      "Sup3rSecret!",
		RequestedRole: role,
	})
	if err != nil {
		t.Fatalf("register %s failed: %v", email, err)
	}
	return result
}

func TestFirstRegistrationBootstrapsAdmin(t *testing.T) {
	service, _ := newTestService()

	first := register(t, service, "Alice", "alice@example.com", "vendor")
	if !first.Bootstrap {
		t.Fatal("expected bootstrap on first registration")
	}
	if first.Account.Role != entities.RoleAdmin {
		t.Fatalf("expected admin role, got %s", first.Account.Role)
	}
	if first.Account.Status != entities.StatusApproved {
		t.Fatalf("expected approved status, got %s", first.Account.Status)
	}

	second := register(t, service, "Bob", "bob@example.com", "vendor")
	if second.Bootstrap {
		t.Fatal("second registration must not bootstrap")
	}
	if second.Account.Role != entities.RoleVendor || second.Account.Status != entities.StatusPending {
		t.Fatalf("expected pending vendor, got %s/%s", second.Account.Role, second.Account.Status)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	service, _ := newTestService()
	register(t, service, "Alice", "alice@example.com", "")

	_, err := service.Register(context.Background(), ports.RegisterInput{
		Name:     "Imposter",
		Email:    "Alice@Example.com",
		Password: "Sup3rSecret!",
	})
	if !errors.Is(err, domainerrors.ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
}

func TestRegisterRejectsWeakPasswords(t *testing.T) {
	service, _ := newTestService()
	for _, password := range []string{"short1!", "nocapital1!", "NoDigits!!", "NoSpecial11"} {
		_, err := service.Register(context.Background(), ports.RegisterInput{
			Name:     "Weak",
			Email:    "weak@example.com",
			Password: password,
		})
		if !errors.Is(err, domainerrors.ErrWeakPassword) {
			t.Fatalf("password %q: expected weak password error, got %v", password, err)
		}
	}
}

func TestAuthenticateLifecycleGates(t *testing.T) {
	service, _ := newTestService()
	register(t, service, "Admin", "admin@example.com", "")
	vendor := register(t, service, "Vera", "vera@example.com", "vendor")

	_, err := service.Authenticate(context.Background(), "vera@example.com", "Sup3rSecret!")
	if !errors.Is(err, domainerrors.ErrAccountPending) {
		t.Fatalf("expected pending error before approval, got %v", err)
	}

	if _, err := service.SetStatus(context.Background(), vendor.Account.AccountID, entities.StatusApproved); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	account, err := service.Authenticate(context.Background(), "vera@example.com", "Sup3rSecret!")
	if err != nil {
		t.Fatalf("login after approval failed: %v", err)
	}
	if account.AccountID != vendor.Account.AccountID {
		t.Fatalf("unexpected account %s", account.AccountID)
	}

	if _, err := service.SetStatus(context.Background(), vendor.Account.AccountID, entities.StatusBlocked); err != nil {
		t.Fatalf("block failed: %v", err)
	}
	_, err = service.Authenticate(context.Background(), "vera@example.com", "Sup3rSecret!")
	if !errors.Is(err, domainerrors.ErrAccountBlocked) {
		t.Fatalf("expected blocked error, got %v", err)
	}

	_, err = service.Authenticate(context.Background(), "vera@example.com", "WrongPass1!")
	if !errors.Is(err, domainerrors.ErrAccountBlocked) {
		t.Fatalf("blocked check must precede password check, got %v", err)
	}
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	service, _ := newTestService()
	_, err := service.Authenticate(context.Background(), "ghost@example.com", "Sup3rSecret!")
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestBlockThenRestoreReturnsPriorStatus(t *testing.T) {
	service, _ := newTestService()
	register(t, service, "Admin", "admin@example.com", "")
	vendor := register(t, service, "Vera", "vera@example.com", "vendor")

	if _, err := service.SetStatus(context.Background(), vendor.Account.AccountID, entities.StatusApproved); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	blocked, err := service.SetStatus(context.Background(), vendor.Account.AccountID, entities.StatusBlocked)
	if err != nil {
		t.Fatalf("block failed: %v", err)
	}
	if blocked.PreviousStatus == nil || *blocked.PreviousStatus != entities.StatusApproved {
		t.Fatalf("expected previous status approved, got %v", blocked.PreviousStatus)
	}

	restored, err := service.Restore(context.Background(), vendor.Account.AccountID)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if restored.Status != entities.StatusApproved {
		t.Fatalf("expected restore to approved, got %s", restored.Status)
	}
	if restored.PreviousStatus != nil {
		t.Fatalf("previous status must be cleared after restore, got %v", restored.PreviousStatus)
	}
}

func TestRestoreWithoutHistoryFallsBackToPending(t *testing.T) {
	service, _ := newTestService()
	register(t, service, "Admin", "admin@example.com", "")
	vendor := register(t, service, "Vera", "vera@example.com", "vendor")

	restored, err := service.Restore(context.Background(), vendor.Account.AccountID)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if restored.Status != entities.StatusPending {
		t.Fatalf("expected pending fallback, got %s", restored.Status)
	}
}

func TestAdminAccountsAreImmutable(t *testing.T) {
	service, _ := newTestService()
	admin := register(t, service, "Admin", "admin@example.com", "")

	for _, status := range []entities.AccountStatus{entities.StatusApproved, entities.StatusBlocked} {
		_, err := service.SetStatus(context.Background(), admin.Account.AccountID, status)
		if !errors.Is(err, domainerrors.ErrAdminImmutable) {
			t.Fatalf("status %s: expected admin immutable, got %v", status, err)
		}
	}
	_, err := service.Restore(context.Background(), admin.Account.AccountID)
	if !errors.Is(err, domainerrors.ErrAdminImmutable) {
		t.Fatalf("expected admin immutable on restore, got %v", err)
	}
}

func TestChangePasswordVerifiesOldPassword(t *testing.T) {
	service, _ := newTestService()
	admin := register(t, service, "Admin", "admin@example.com", "")

	err := service.ChangePassword(context.Background(), admin.Account.AccountID, "WrongPass1!", "An0therSecret!")
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if err := service.ChangePassword(context.Background(), admin.Account.AccountID, "Sup3rSecret!", "An0therSecret!"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := service.Authenticate(context.Background(), "admin@example.com", "An0therSecret!"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
