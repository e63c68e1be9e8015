package accountservice

import (
	"log/slog"

	httpadapter "pixmart/contexts/identity-access/account-service/adapters/http"
	"pixmart/contexts/identity-access/account-service/adapters/memory"
	"pixmart/contexts/identity-access/account-service/adapters/security"
	"pixmart/contexts/identity-access/account-service/application"
	"pixmart/contexts/identity-access/account-service/ports"
)

// Module is the composition surface for the account lifecycle.
// Runtime wiring should consume Handler; Store is exposed for tests/inspection.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Hasher     ports.PasswordHasher
	Tokens     ports.TokenIssuer
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Hasher: deps.Hasher,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Tokens:  deps.Tokens,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(tokens ports.TokenIssuer, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Hasher:     security.BcryptHasher{},
		Tokens:     tokens,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
