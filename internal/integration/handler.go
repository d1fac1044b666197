package integration

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Handler serves the integration CRUD routes.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

func validate(i *Integration) string {
	switch i.Type {
	case TypeDiscord:
		if i.Config.WebhookURL == "" {
			return "discord integrations require a webhook URL"
		}
	case TypeTelegram:
		if i.Config.BotToken == "" {
			return "telegram integrations require a bot token"
		}
	default:
		return "type must be 'discord' or 'telegram'"
	}
	return ""
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var i Integration
	if err := json.NewDecoder(r.Body).Decode(&i); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if msg := validate(&i); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if err := h.Repo.Create(&i); err != nil {
		http.Error(w, "could not create integration", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(i)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List()
	if err != nil {
		http.Error(w, "could not list integrations", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid integration ID", http.StatusBadRequest)
		return
	}
	i, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "integration not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(i)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid integration ID", http.StatusBadRequest)
		return
	}
	i, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "integration not found", http.StatusNotFound)
		return
	}
	var payload Integration
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	i.Name = payload.Name
	i.Type = payload.Type
	i.Config = payload.Config
	i.IsActive = payload.IsActive
	if msg := validate(i); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if err := h.Repo.Update(i); err != nil {
		http.Error(w, "could not update integration", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(i)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid integration ID", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(uint(id)); err != nil {
		http.Error(w, "could not delete integration", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
