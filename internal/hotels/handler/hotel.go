package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"stayquest/internal/hotels/service"
	httputil "stayquest/pkg/http"
	"stayquest/pkg/logger"
	"stayquest/pkg/model"
)

const (
	msgHotelCreated = "Hotel created successfully"
	msgHotelUpdated = "Hotel updated successfully"
	msgHotelDeleted = "Hotel deleted successfully"
)

type HotelHandler struct {
	service service.HotelService
	guard   Guard
	log     *logger.Logger
	mounts  map[string]httprouter.Handle
}

// Guard is the subset of auth.Guard the hotel routes need.
type Guard interface {
	RequireAdminUser(next httprouter.Handle) httprouter.Handle
}

func NewHotelHandler(service service.HotelService, guard Guard, log *logger.Logger) *HotelHandler {
	return &HotelHandler{
		service: service,
		guard:   guard,
		log:     log,
		mounts:  make(map[string]httprouter.Handle),
	}
}

func (h *HotelHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	minPrice, err := httputil.OptionalFloatQuery(r, "minPrice")
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}
	maxPrice, err := httputil.OptionalFloatQuery(r, "maxPrice")
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	filter := model.HotelFilter{
		Location: httputil.QueryString(r, "location"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Sort:     httputil.QueryString(r, "sort"),
	}

	hotels, err := h.service.GetAll(r.Context(), filter)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, hotels); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HotelHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hotel, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, hotel); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HotelHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CreateHotelRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if _, err := h.service.Create(r.Context(), &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteMessage(w, http.StatusCreated, msgHotelCreated); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteMessage", "error", err)
	}
}

func (h *HotelHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.CreateHotelRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	hotel, err := h.service.Update(r.Context(), ps.ByName("id"), &req)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, httputil.HotelMessageResponse{
		Message: msgHotelUpdated,
		Hotel:   hotel,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HotelHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hotel, err := h.service.Delete(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, httputil.HotelMessageResponse{
		Message: msgHotelDeleted,
		Hotel:   hotel,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HotelHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
