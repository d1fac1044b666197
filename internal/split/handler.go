package split

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler serves the split routes nested under products.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

type listResponse struct {
	Splits []CommissionSplit `json:"splits"`
	Total  float64           `json:"totalPercentage"`
}

// Create handles POST /products/{id}/splits.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	var s CommissionSplit
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if s.Percentage < 0 || s.Percentage > 100 {
		http.Error(w, "percentage must be between 0 and 100", http.StatusBadRequest)
		return
	}
	s.ProductID = uint(productID)
	if err := h.Repo.Create(&s); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "a split for this product and position already exists", http.StatusConflict)
			return
		}
		http.Error(w, "could not create split", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

// ListByProduct handles GET /products/{id}/splits.
func (h *Handler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	list, err := h.Repo.ListByProduct(uint(productID))
	if err != nil {
		http.Error(w, "could not list splits", http.StatusInternalServerError)
		return
	}
	total, err := h.Repo.SumByProduct(uint(productID))
	if err != nil {
		http.Error(w, "could not sum splits", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listResponse{Splits: list, Total: total})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["sid"])
	if err != nil {
		http.Error(w, "invalid split ID", http.StatusBadRequest)
		return
	}
	s, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "split not found", http.StatusNotFound)
		return
	}
	var payload CommissionSplit
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if payload.Percentage < 0 || payload.Percentage > 100 {
		http.Error(w, "percentage must be between 0 and 100", http.StatusBadRequest)
		return
	}
	s.Percentage = payload.Percentage
	if err := h.Repo.Update(s); err != nil {
		http.Error(w, "could not update split", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["sid"])
	if err != nil {
		http.Error(w, "invalid split ID", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(uint(id)); err != nil {
		http.Error(w, "could not delete split", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
