package orderservice

import (
	"log/slog"

	httpadapter "pixmart/contexts/commerce/order-service/adapters/http"
	"pixmart/contexts/commerce/order-service/adapters/memory"
	"pixmart/contexts/commerce/order-service/application"
	"pixmart/contexts/commerce/order-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Cart       ports.CartRepository
	Listings   ports.ListingReader
	Publisher  ports.EventPublisher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:      deps.Repository,
		Cart:      deps.Cart,
		Listings:  deps.Listings,
		Publisher: deps.Publisher,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(listings ports.ListingReader, publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Cart:       store,
		Listings:   listings,
		Publisher:  publisher,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
