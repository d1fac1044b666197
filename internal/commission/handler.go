package commission

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Handler exposes the commission engine over HTTP.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func dealID(r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// Calculate handles POST /deals/{id}/commissions/calculate.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	id, ok := dealID(r)
	if !ok {
		http.Error(w, "invalid deal ID", http.StatusBadRequest)
		return
	}
	result, err := h.Service.Calculate(id)
	if err != nil {
		http.Error(w, "could not calculate commissions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Chargeback handles POST /deals/{id}/commissions/chargeback.
func (h *Handler) Chargeback(w http.ResponseWriter, r *http.Request) {
	id, ok := dealID(r)
	if !ok {
		http.Error(w, "invalid deal ID", http.StatusBadRequest)
		return
	}
	result, err := h.Service.Chargeback(id)
	if err != nil {
		http.Error(w, "could not charge back commissions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Reinstate handles POST /deals/{id}/commissions/reinstate.
func (h *Handler) Reinstate(w http.ResponseWriter, r *http.Request) {
	id, ok := dealID(r)
	if !ok {
		http.Error(w, "invalid deal ID", http.StatusBadRequest)
		return
	}
	result, err := h.Service.Reinstate(id)
	if err != nil {
		http.Error(w, "could not reinstate commissions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// ListByDeal handles GET /deals/{id}/commissions.
func (h *Handler) ListByDeal(w http.ResponseWriter, r *http.Request) {
	id, ok := dealID(r)
	if !ok {
		http.Error(w, "invalid deal ID", http.StatusBadRequest)
		return
	}
	list, err := h.Service.Repo.ListByDeal(id)
	if err != nil {
		http.Error(w, "could not list commissions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// ListByAgent handles GET /agents/{id}/commissions.
func (h *Handler) ListByAgent(w http.ResponseWriter, r *http.Request) {
	id, ok := dealID(r)
	if !ok {
		http.Error(w, "invalid agent ID", http.StatusBadRequest)
		return
	}
	list, err := h.Service.Repo.ListByAgent(id)
	if err != nil {
		http.Error(w, "could not list commissions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}
