package commission

import (
	"fmt"
	"math"
	"time"
)

// DealInput is the slice of a deal the engine needs.
type DealInput struct {
	ID             uint
	AgentID        uint
	CarrierID      uint
	ProductID      uint
	AnnualPremium  float64
	MonthlyPremium float64
}

// CarrierInput carries the carrier's payment terms. AdvanceRate is a 0-100
// percentage everywhere in this codebase.
type CarrierInput struct {
	ID                  uint
	AdvanceRate         float64
	AdvancePeriodMonths int
	PaymentType         string
}

// SplitInput is one (position, percentage) pair for the deal's product.
type SplitInput struct {
	PositionID uint
	Percentage float64
}

// Recipient is someone who earns commission on a deal: the writing agent and
// the owner (first level-5 agent, or the writing agent when none exists).
type Recipient struct {
	AgentID    uint
	PositionID *uint
	Role       string
}

// SkipReason records a recipient the engine could not compute for. Skips are
// partial-success information, not errors: the computation continues.
type SkipReason struct {
	AgentID uint   `json:"agentId,omitempty"`
	Role    string `json:"role"`
	Reason  string `json:"reason"`
}

// Result is what one calculation (or chargeback/reinstatement) produced.
type Result struct {
	DealID  uint         `json:"dealId"`
	Created []Commission `json:"created"`
	Skipped []SkipReason `json:"skipped"`
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Compute builds the commission rows for one deal. For advance carriers each
// recipient gets an advance row dated now plus a future row for the remainder
// dated after the advance period. For monthly carriers each recipient gets one
// row per month of the advance period at monthly_premium x split.
func Compute(deal DealInput, carrier CarrierInput, splits []SplitInput, recipients []Recipient, now time.Time) ([]Commission, []SkipReason) {
	splitByPosition := make(map[uint]float64, len(splits))
	for _, s := range splits {
		splitByPosition[s.PositionID] = s.Percentage
	}

	if carrier.PaymentType != "advance" && carrier.PaymentType != "monthly" {
		return nil, []SkipReason{{Reason: fmt.Sprintf("unknown payment type %q", carrier.PaymentType)}}
	}

	var rows []Commission
	var skipped []SkipReason

	for _, rec := range recipients {
		if rec.PositionID == nil {
			skipped = append(skipped, SkipReason{AgentID: rec.AgentID, Role: rec.Role, Reason: "agent has no position"})
			continue
		}
		pct, ok := splitByPosition[*rec.PositionID]
		if !ok {
			skipped = append(skipped, SkipReason{AgentID: rec.AgentID, Role: rec.Role, Reason: "no split percentage for position"})
			continue
		}

		switch carrier.PaymentType {
		case "advance":
			advanceAmount := deal.AnnualPremium * carrier.AdvanceRate / 100
			futureAmount := deal.AnnualPremium - advanceAmount
			rows = append(rows,
				Commission{
					DealID:      deal.ID,
					AgentID:     rec.AgentID,
					Role:        rec.Role,
					Type:        TypeAdvance,
					Amount:      roundCents(advanceAmount * pct / 100),
					Percentage:  pct,
					PaymentDate: now,
				},
				Commission{
					DealID:      deal.ID,
					AgentID:     rec.AgentID,
					Role:        rec.Role,
					Type:        TypeFuture,
					Amount:      roundCents(futureAmount * pct / 100),
					Percentage:  pct,
					PaymentDate: now.AddDate(0, carrier.AdvancePeriodMonths, 0),
				},
			)

		case "monthly":
			for i := 0; i < carrier.AdvancePeriodMonths; i++ {
				rows = append(rows, Commission{
					DealID:      deal.ID,
					AgentID:     rec.AgentID,
					Role:        rec.Role,
					Type:        TypeMonthly,
					Amount:      roundCents(deal.MonthlyPremium * pct / 100),
					Percentage:  pct,
					PaymentDate: now.AddDate(0, i, 0),
				})
			}
		}
	}

	return rows, skipped
}

// BuildChargebacks returns the negative mirror rows that reverse every
// currently-active commission on the deal. An original row counts as active
// when every chargeback against it has already been reinstated (or it was
// never charged back). Running it again with nothing left to reverse returns
// no rows, so the operation is idempotent.
func BuildChargebacks(rows []Commission, at time.Time) []Commission {
	childrenOf := indexByParent(rows)

	var out []Commission
	for _, orig := range rows {
		if orig.IsChargeback || orig.ParentID != nil {
			continue
		}
		if hasOpenChargeback(orig.ID, childrenOf) {
			continue
		}
		parentID := orig.ID
		chargebackAt := at
		out = append(out, Commission{
			DealID:         orig.DealID,
			AgentID:        orig.AgentID,
			Role:           orig.Role,
			Type:           orig.Type,
			Amount:         -orig.Amount,
			Percentage:     orig.Percentage,
			PaymentDate:    at,
			IsChargeback:   true,
			ChargebackDate: &chargebackAt,
			ParentID:       &parentID,
		})
	}
	return out
}

// BuildReinstatements returns positive mirror rows for every chargeback that
// has not been reinstated yet. The chargeback is reversed, not recomputed, so
// the net commission returns to its original pre-chargeback value.
func BuildReinstatements(rows []Commission, at time.Time) []Commission {
	childrenOf := indexByParent(rows)

	var out []Commission
	for _, cb := range rows {
		if !cb.IsChargeback {
			continue
		}
		if len(childrenOf[cb.ID]) > 0 {
			continue
		}
		parentID := cb.ID
		out = append(out, Commission{
			DealID:      cb.DealID,
			AgentID:     cb.AgentID,
			Role:        cb.Role,
			Type:        cb.Type,
			Amount:      -cb.Amount,
			Percentage:  cb.Percentage,
			PaymentDate: at,
			ParentID:    &parentID,
		})
	}
	return out
}

func indexByParent(rows []Commission) map[uint][]Commission {
	m := make(map[uint][]Commission)
	for _, row := range rows {
		if row.ParentID != nil {
			m[*row.ParentID] = append(m[*row.ParentID], row)
		}
	}
	return m
}

// hasOpenChargeback reports whether the original row has a chargeback child
// that is still waiting on a reinstatement.
func hasOpenChargeback(originalID uint, childrenOf map[uint][]Commission) bool {
	for _, cb := range childrenOf[originalID] {
		if cb.IsChargeback && len(childrenOf[cb.ID]) == 0 {
			return true
		}
	}
	return false
}
