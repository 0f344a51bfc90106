package contracts

import (
	"context"

	"github.com/julienschmidt/httprouter"
)

// Handler is implemented by every domain handler mounted on the API router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// Pinger is a dependency checked by the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RoutesFunc adapts a plain function to Handler.
type RoutesFunc func(*httprouter.Router)

func (f RoutesFunc) RegisterRoutes(router *httprouter.Router) {
	f(router)
}
