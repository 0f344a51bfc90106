package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"stayquest/internal/bookings/service"
	"stayquest/pkg/auth"
	httputil "stayquest/pkg/http"
	"stayquest/pkg/logger"
	"stayquest/pkg/model"
)

const msgBookingDeleted = "Booking deleted successfully"

// Guard is the subset of auth.Guard the booking routes need.
type Guard interface {
	RequireAuth(next httprouter.Handle) httprouter.Handle
	RequireAdminUser(next httprouter.Handle) httprouter.Handle
}

type BookingHandler struct {
	service service.BookingService
	guard   Guard
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, guard Guard, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CreateBookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if _, err := h.service.Create(r.Context(), &req, auth.UserIDFromContext(r.Context())); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	httputil.WriteCreated(w)
}

func (h *BookingHandler) ListForUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.ListForUser(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, "ListForUser", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListForUser", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ListForHotel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookings, err := h.service.ListForHotel(r.Context(), ps.ByName("hotelId"))
	if err != nil {
		h.writeError(w, "ListForHotel", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListForHotel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.Delete(r.Context(), ps.ByName("bookingId"), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, httputil.BookingMessageResponse{
		Message: msgBookingDeleted,
		Booking: booking,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/bookings", h.guard.RequireAuth(h.Create))
	router.GET("/api/bookings/user", h.guard.RequireAuth(h.ListForUser))
	router.GET("/api/bookings/hotels/:hotelId", h.guard.RequireAdminUser(h.ListForHotel))
	router.DELETE("/api/bookings/:bookingId", h.guard.RequireAuth(h.Delete))
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
