// Package authz centralizes the position-based permission checks that were
// previously scattered across individual screens. Handlers ask a single
// Service whether the caller may touch a section instead of re-reading the
// position table ad hoc.
package authz

// Actions a caller can perform on a section.
const (
	ActionRead  = "read"
	ActionWrite = "write"
)

// Sections of the application gated by position level.
const (
	SectionDeals        = "deals"
	SectionCommissions  = "commissions"
	SectionAgents       = "agents"
	SectionPositions    = "positions"
	SectionCarriers     = "carriers"
	SectionProducts     = "products"
	SectionSplits       = "splits"
	SectionIntegrations = "integrations"
	SectionSettings     = "settings"
)

// Service answers CanAccess questions from a static rule table mapping
// (section, action) to the minimum position level. Levels run 1 (agent) to
// 5 (owner); admins bypass the table entirely.
type Service struct {
	rules map[string]map[string]int
}

func NewService() *Service {
	return &Service{
		rules: map[string]map[string]int{
			SectionDeals:        {ActionRead: 1, ActionWrite: 1},
			SectionCommissions:  {ActionRead: 1, ActionWrite: 3},
			SectionAgents:       {ActionRead: 3, ActionWrite: 4},
			SectionPositions:    {ActionRead: 1, ActionWrite: 5},
			SectionCarriers:     {ActionRead: 1, ActionWrite: 4},
			SectionProducts:     {ActionRead: 1, ActionWrite: 4},
			SectionSplits:       {ActionRead: 2, ActionWrite: 4},
			SectionIntegrations: {ActionRead: 4, ActionWrite: 5},
			SectionSettings:     {ActionRead: 1, ActionWrite: 5},
		},
	}
}

// CanAccess reports whether a caller with the given position level may perform
// action on section. Unknown sections and actions are denied.
func (s *Service) CanAccess(level int, isAdmin bool, section, action string) bool {
	if isAdmin {
		return true
	}
	actions, ok := s.rules[section]
	if !ok {
		return false
	}
	min, ok := actions[action]
	if !ok {
		return false
	}
	return level >= min
}
