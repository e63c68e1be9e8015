package downloadservice

import (
	"log/slog"

	httpadapter "pixmart/contexts/commerce/download-service/adapters/http"
	"pixmart/contexts/commerce/download-service/adapters/memory"
	"pixmart/contexts/commerce/download-service/application"
	"pixmart/contexts/commerce/download-service/application/workers"
	"pixmart/contexts/commerce/download-service/ports"
)

type Module struct {
	Handler   httpadapter.Handler
	Service   application.Service
	Projector workers.EntitlementProjector
	Store     *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Favorites  ports.FavoritesRepository
	Listings   ports.ListingReader
	Purchases  ports.PurchaseReader
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:      deps.Repository,
		Favorites: deps.Favorites,
		Listings:  deps.Listings,
		Purchases: deps.Purchases,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
		Projector: workers.EntitlementProjector{
			Grants: service,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(listings ports.ListingReader, purchases ports.PurchaseReader, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Favorites:  store,
		Listings:   listings,
		Purchases:  purchases,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
