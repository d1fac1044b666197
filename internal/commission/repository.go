package commission

import (
	"gorm.io/gorm"
)

// Repository encapsulates database access for commission rows and the
// engine's input lookups. Inputs are read by table name so this package does
// not depend on the deal/carrier/agent packages.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) CreateInBatch(rows []Commission) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB.Create(&rows).Error
}

func (r *Repository) ListByDeal(dealID uint) ([]Commission, error) {
	var list []Commission
	err := r.DB.Where("deal_id = ?", dealID).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *Repository) ListByAgent(agentID uint) ([]Commission, error) {
	var list []Commission
	err := r.DB.Where("agent_id = ?", agentID).Order("payment_date ASC").Find(&list).Error
	return list, err
}

// DealInput loads the engine's view of a deal.
func (r *Repository) DealInput(id uint) (*DealInput, error) {
	var d DealInput
	err := r.DB.Table("deals").
		Select("id, agent_id, carrier_id, product_id, annual_premium, monthly_premium").
		Where("id = ? AND deleted_at IS NULL", id).
		Take(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CarrierInput loads the carrier's payment terms.
func (r *Repository) CarrierInput(id uint) (*CarrierInput, error) {
	var c CarrierInput
	err := r.DB.Table("carriers").
		Select("id, advance_rate, advance_period_months, payment_type").
		Where("id = ? AND deleted_at IS NULL", id).
		Take(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Splits loads the (position, percentage) pairs for a product.
func (r *Repository) Splits(productID uint) ([]SplitInput, error) {
	var splits []SplitInput
	err := r.DB.Table("commission_splits").
		Select("position_id, percentage").
		Where("product_id = ?", productID).
		Scan(&splits).Error
	return splits, err
}

// AgentPosition returns an agent's position ID, nil when unassigned.
func (r *Repository) AgentPosition(agentID uint) (*uint, error) {
	var row struct{ PositionID *uint }
	err := r.DB.Table("agents").
		Select("position_id").
		Where("id = ? AND deleted_at IS NULL", agentID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return row.PositionID, nil
}

// OwnerAgent returns the first agent holding a level-5 position.
// gorm.ErrRecordNotFound means no owner exists and the caller falls back to
// the deal's agent.
func (r *Repository) OwnerAgent() (uint, *uint, error) {
	var row struct {
		ID         uint
		PositionID *uint
	}
	err := r.DB.Table("agents").
		Select("agents.id, agents.position_id").
		Joins("JOIN positions ON positions.id = agents.position_id").
		Where("positions.level = ? AND agents.deleted_at IS NULL", 5).
		Order("agents.id ASC").
		Take(&row).Error
	if err != nil {
		return 0, nil, err
	}
	return row.ID, row.PositionID, nil
}
