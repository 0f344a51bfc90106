package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	apperrors "stayquest/pkg/errors"
	httputil "stayquest/pkg/http"
)

const hotelsPath = "/api/hotels"

// Mount serves GET /api/hotels/<subpath> with handle instead of treating
// subpath as a hotel id. It must be called before RegisterRoutes is served.
func (h *HotelHandler) Mount(subpath string, handle httprouter.Handle) {
	h.mounts[strings.Trim(subpath, "/")] = handle
}

// RegisterRoutes wires the hotel endpoints. GET uses a catch-all because
// httprouter cannot hold a static child such as search/retrieve next to :id.
func (h *HotelHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET(hotelsPath, h.GetAll)
	router.POST(hotelsPath, h.guard.RequireAdminUser(h.Create))
	router.GET(hotelsPath+"/*path", h.dispatchGet)
	router.PUT(hotelsPath+"/:id", h.guard.RequireAdminUser(h.Update))
	router.DELETE(hotelsPath+"/:id", h.guard.RequireAdminUser(h.Delete))
}

func (h *HotelHandler) dispatchGet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rest := strings.Trim(ps.ByName("path"), "/")

	if handle, ok := h.mounts[rest]; ok {
		handle(w, r, nil)
		return
	}

	if rest == "" || strings.Contains(rest, "/") {
		if err := httputil.WriteError(w, apperrors.NotFound("Route")); err != nil {
			h.log.Error("failed to write error response", "handler", "dispatchGet", "operation", "WriteError", "error", err)
		}
		return
	}

	h.GetByID(w, r, httprouter.Params{{Key: "id", Value: rest}})
}
