package deal

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/hypermarketllc/commission-crm/internal/auth"
	"github.com/hypermarketllc/commission-crm/internal/commission"
	"github.com/hypermarketllc/commission-crm/internal/integration"
)

// Handler serves the deal routes. Creating a deal also fans out notification
// queue entries and runs the commission engine; both are best-effort once the
// deal row is committed.
type Handler struct {
	Repo        *Repository
	Commissions *commission.Service
	Enqueuer    *integration.Enqueuer
	Log         *logrus.Logger
}

func NewHandler(repo *Repository, commissions *commission.Service, enqueuer *integration.Enqueuer, log *logrus.Logger) *Handler {
	return &Handler{Repo: repo, Commissions: commissions, Enqueuer: enqueuer, Log: log}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var d Deal
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if d.AnnualPremium < 0 {
		http.Error(w, "annual premium must not be negative", http.StatusBadRequest)
		return
	}
	if d.AgentID == 0 {
		d.AgentID = auth.UserID(r.Context())
	}
	if d.Status == "" {
		d.Status = StatusPending
	}
	if d.SubmittedAt.IsZero() {
		d.SubmittedAt = time.Now()
	}

	if err := h.Repo.Create(&d); err != nil {
		http.Error(w, "could not create deal", http.StatusInternalServerError)
		return
	}

	// The deal is committed; notification and commission problems are queue
	// and engine concerns, not reasons to fail the request.
	if err := h.Enqueuer.EnqueueDealCreated(d.ID); err != nil {
		h.Log.Errorf("enqueue notifications for deal %d: %v", d.ID, err)
	}
	if _, err := h.Commissions.Calculate(d.ID); err != nil {
		h.Log.Errorf("calculate commissions for deal %d: %v", d.ID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(d)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var agentID uint
	if raw := r.URL.Query().Get("agentId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid agent ID", http.StatusBadRequest)
			return
		}
		agentID = uint(id)
	}
	ctx := r.Context()
	if !auth.IsAdmin(ctx) && auth.PositionLevel(ctx) < 3 {
		// Agents below manager level only see their own book.
		agentID = auth.UserID(ctx)
	}

	list, err := h.Repo.List(agentID, r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, "could not list deals", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal ID", http.StatusBadRequest)
		return
	}
	d, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "deal not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal ID", http.StatusBadRequest)
		return
	}
	d, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "deal not found", http.StatusNotFound)
		return
	}

	var payload Deal
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if payload.AnnualPremium < 0 {
		http.Error(w, "annual premium must not be negative", http.StatusBadRequest)
		return
	}

	previousStatus := d.Status
	d.AgentID = payload.AgentID
	d.CarrierID = payload.CarrierID
	d.ProductID = payload.ProductID
	d.ClientName = payload.ClientName
	d.ClientPhone = payload.ClientPhone
	d.AnnualPremium = payload.AnnualPremium
	d.MonthlyPremium = payload.MonthlyPremium
	d.PolicyNumber = payload.PolicyNumber
	d.AppNumber = payload.AppNumber
	d.Status = payload.Status
	d.IsReferral = payload.IsReferral
	if !payload.SubmittedAt.IsZero() {
		d.SubmittedAt = payload.SubmittedAt
	}

	if err := h.Repo.Update(d); err != nil {
		http.Error(w, "could not update deal", http.StatusInternalServerError)
		return
	}

	// Only the active/lapsed edges carry side effects.
	switch {
	case previousStatus != StatusLapsed && d.Status == StatusLapsed:
		if _, err := h.Commissions.Chargeback(d.ID); err != nil {
			h.Log.Errorf("charge back commissions for deal %d: %v", d.ID, err)
		}
	case previousStatus == StatusLapsed && d.Status == StatusActive:
		if _, err := h.Commissions.Reinstate(d.ID); err != nil {
			h.Log.Errorf("reinstate commissions for deal %d: %v", d.ID, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal ID", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(uint(id)); err != nil {
		http.Error(w, "could not delete deal", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
