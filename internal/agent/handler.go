package agent

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hypermarketllc/commission-crm/internal/auth"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createAgentRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Password   string `json:"password"`
	IsAdmin    bool   `json:"isAdmin"`
	PositionID *uint  `json:"positionId"`
	UplineID   *uint  `json:"uplineId"`
}

// Handler serves login and agent CRUD routes.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Login issues a JWT for valid credentials. The token carries the agent's
// position level so permission checks don't need another lookup.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}

	a, err := h.Repo.FindByEmail(req.Email)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !CheckPassword(a.PasswordHash, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	level := 0
	if a.Position != nil {
		level = a.Position.Level
	}
	token, err := auth.GenerateToken(a.ID, a.IsAdmin, level)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		http.Error(w, "could not process password", http.StatusInternalServerError)
		return
	}

	a := Agent{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin,
		PositionID:   req.PositionID,
		UplineID:     req.UplineID,
	}
	if err := h.Repo.Create(&a); err != nil {
		http.Error(w, "could not create agent", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(a)
}

// List returns every agent for admins, or only the caller's own record.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !auth.IsAdmin(ctx) {
		a, err := h.Repo.FindByID(auth.UserID(ctx))
		if err != nil {
			http.Error(w, "agent not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Agent{*a})
		return
	}

	list, err := h.Repo.List()
	if err != nil {
		http.Error(w, "could not list agents", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid agent ID", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	if !auth.IsAdmin(ctx) && auth.UserID(ctx) != uint(id) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	a, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "agent not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid agent ID", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	if !auth.IsAdmin(ctx) && auth.UserID(ctx) != uint(id) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	a, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "agent not found", http.StatusNotFound)
		return
	}

	var req createAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}

	a.FirstName = req.FirstName
	a.LastName = req.LastName
	a.Email = req.Email
	a.Phone = req.Phone
	a.UplineID = req.UplineID
	if req.Password != "" {
		hash, err := HashPassword(req.Password)
		if err != nil {
			http.Error(w, "could not process password", http.StatusInternalServerError)
			return
		}
		a.PasswordHash = hash
	}
	// Position and admin flag only move through admin hands.
	if auth.IsAdmin(ctx) {
		a.PositionID = req.PositionID
		a.IsAdmin = req.IsAdmin
	}

	if err := h.Repo.Update(a); err != nil {
		http.Error(w, "could not update agent", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid agent ID", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(uint(id)); err != nil {
		http.Error(w, "could not delete agent", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
