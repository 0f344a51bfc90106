package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"stayquest/internal/retrieval/service"
	httputil "stayquest/pkg/http"
	"stayquest/pkg/logger"
	"stayquest/pkg/model"
)

const (
	hotelsPath       = "/api/hotels"
	retrieveSubpath  = "search/retrieve"
	msgIndexCreated  = "Embeddings created successfully"
	queryParamSearch = "query"
)

type RetrievalHandler struct {
	service service.RetrievalService
	guard   Guard
	log     *logger.Logger
}

type Guard interface {
	RequireAdminUser(next httprouter.Handle) httprouter.Handle
}

// Mounter serves a GET subpath under /api/hotels. The hotel handler owns that
// tree.
type Mounter interface {
	Mount(subpath string, handle httprouter.Handle)
}

func NewRetrievalHandler(service service.RetrievalService, guard Guard, log *logger.Logger) *RetrievalHandler {
	return &RetrievalHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *RetrievalHandler) RegisterRoutes(router *httprouter.Router, hotels Mounter) {
	hotels.Mount(retrieveSubpath, h.Retrieve)
	router.POST(hotelsPath+"/llm", h.Generate)
	router.POST(hotelsPath+"/embeddings/create", h.guard.RequireAdminUser(h.CreateEmbeddings))
}

func (h *RetrievalHandler) Retrieve(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	results, err := h.service.Retrieve(r.Context(), httputil.QueryString(r, queryParamSearch))
	if err != nil {
		h.writeError(w, "Retrieve", err)
		return
	}

	if err := httputil.WriteSuccess(w, results); err != nil {
		h.log.Error("failed to write success response", "handler", "Retrieve", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RetrievalHandler) Generate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.GenerateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Generate", err)
		return
	}

	resp, err := h.service.Generate(r.Context(), req.Prompt)
	if err != nil {
		h.writeError(w, "Generate", err)
		return
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Generate", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RetrievalHandler) CreateEmbeddings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	indexed, err := h.service.IndexHotels(r.Context())
	if err != nil {
		h.writeError(w, "CreateEmbeddings", err)
		return
	}

	if err := httputil.WriteSuccess(w, httputil.IndexResponse{
		Message: msgIndexCreated,
		Indexed: indexed,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "CreateEmbeddings", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RetrievalHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
