package telegramchat

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

type registerRequest struct {
	ChatID int64  `json:"chat_id"`
	Title  string `json:"title"`
}

type result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Handler serves the chat registration routes.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Register handles POST /telegram/chats/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChatID == 0 {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Register(req.ChatID, req.Title); err != nil {
		http.Error(w, "could not register chat", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result{Success: true, Message: "chat registered"})
}

// Unregister handles POST /telegram/chats/unregister.
func (h *Handler) Unregister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChatID == 0 {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	err := h.Repo.Unregister(req.ChatID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result{Success: false, Message: "chat is not registered"})
		return
	}
	if err != nil {
		http.Error(w, "could not unregister chat", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result{Success: true, Message: "chat unregistered"})
}
