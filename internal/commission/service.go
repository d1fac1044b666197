package commission

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hypermarketllc/commission-crm/internal/metrics"
)

// Store is the slice of the repository the engine needs.
type Store interface {
	DealInput(id uint) (*DealInput, error)
	CarrierInput(id uint) (*CarrierInput, error)
	Splits(productID uint) ([]SplitInput, error)
	AgentPosition(agentID uint) (*uint, error)
	OwnerAgent() (uint, *uint, error)
	CreateInBatch(rows []Commission) error
	ListByDeal(dealID uint) ([]Commission, error)
	ListByAgent(agentID uint) ([]Commission, error)
}

// Service runs the commission engine against the database: it loads the
// deal's inputs, computes rows and persists them. Skips are reported in the
// Result and logged, never turned into errors (compute what you can, log
// what you can't).
type Service struct {
	Repo Store
	Log  *logrus.Logger
}

func NewService(repo Store, log *logrus.Logger) *Service {
	return &Service{Repo: repo, Log: log}
}

// persist writes the rows and counts them per type.
func (s *Service) persist(rows []Commission) error {
	if err := s.Repo.CreateInBatch(rows); err != nil {
		return err
	}
	for _, row := range rows {
		metrics.CommissionRowsCreatedTotal.WithLabelValues(row.Type).Inc()
	}
	return nil
}

// Calculate computes and stores the commission rows for a deal.
func (s *Service) Calculate(dealID uint) (*Result, error) {
	deal, err := s.Repo.DealInput(dealID)
	if err != nil {
		return nil, err
	}

	result := &Result{DealID: dealID}

	carrier, err := s.Repo.CarrierInput(deal.CarrierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.Log.Warnf("commission: carrier %d not found for deal %d", deal.CarrierID, dealID)
			result.Skipped = append(result.Skipped, SkipReason{Reason: "carrier not found"})
			return result, nil
		}
		return nil, err
	}

	splits, err := s.Repo.Splits(deal.ProductID)
	if err != nil {
		return nil, err
	}

	recipients, err := s.recipients(deal)
	if err != nil {
		return nil, err
	}

	rows, skipped := Compute(*deal, *carrier, splits, recipients, time.Now())
	for _, skip := range skipped {
		s.Log.Warnf("commission: deal %d skipped %s (agent %d): %s", dealID, skip.Role, skip.AgentID, skip.Reason)
	}
	if err := s.persist(rows); err != nil {
		return nil, err
	}

	result.Created = rows
	result.Skipped = skipped
	return result, nil
}

// Chargeback reverses every active commission on the deal with negative
// mirror rows.
func (s *Service) Chargeback(dealID uint) (*Result, error) {
	rows, err := s.Repo.ListByDeal(dealID)
	if err != nil {
		return nil, err
	}
	created := BuildChargebacks(rows, time.Now())
	if err := s.persist(created); err != nil {
		return nil, err
	}
	return &Result{DealID: dealID, Created: created}, nil
}

// Reinstate reverses outstanding chargebacks, returning the deal's net
// commission to its pre-chargeback value.
func (s *Service) Reinstate(dealID uint) (*Result, error) {
	rows, err := s.Repo.ListByDeal(dealID)
	if err != nil {
		return nil, err
	}
	created := BuildReinstatements(rows, time.Now())
	if err := s.persist(created); err != nil {
		return nil, err
	}
	return &Result{DealID: dealID, Created: created}, nil
}

// recipients builds the agent and owner recipients for a deal. The owner is
// the first level-5 agent; when none exists the deal's agent takes the owner
// role as well.
func (s *Service) recipients(deal *DealInput) ([]Recipient, error) {
	agentPos, err := s.Repo.AgentPosition(deal.AgentID)
	if err != nil {
		return nil, err
	}

	ownerID, ownerPos, err := s.Repo.OwnerAgent()
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		ownerID, ownerPos = deal.AgentID, agentPos
	}

	return []Recipient{
		{AgentID: deal.AgentID, PositionID: agentPos, Role: RoleAgent},
		{AgentID: ownerID, PositionID: ownerPos, Role: RoleOwner},
	}, nil
}
