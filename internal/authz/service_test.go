package authz

import "testing"

func TestCanAccessRuleTable(t *testing.T) {
	s := NewService()

	cases := []struct {
		section string
		action  string
		level   int
		want    bool
	}{
		{SectionDeals, ActionRead, 1, true},
		{SectionDeals, ActionWrite, 1, true},
		{SectionCommissions, ActionRead, 1, true},
		{SectionCommissions, ActionWrite, 2, false},
		{SectionCommissions, ActionWrite, 3, true},
		{SectionAgents, ActionRead, 2, false},
		{SectionAgents, ActionRead, 3, true},
		{SectionAgents, ActionWrite, 3, false},
		{SectionAgents, ActionWrite, 4, true},
		{SectionPositions, ActionRead, 1, true},
		{SectionPositions, ActionWrite, 4, false},
		{SectionPositions, ActionWrite, 5, true},
		{SectionSplits, ActionRead, 1, false},
		{SectionSplits, ActionRead, 2, true},
		{SectionIntegrations, ActionRead, 3, false},
		{SectionIntegrations, ActionRead, 4, true},
		{SectionIntegrations, ActionWrite, 4, false},
		{SectionIntegrations, ActionWrite, 5, true},
		{SectionSettings, ActionRead, 1, true},
		{SectionSettings, ActionWrite, 4, false},
		{SectionSettings, ActionWrite, 5, true},
	}
	for _, tc := range cases {
		got := s.CanAccess(tc.level, false, tc.section, tc.action)
		if got != tc.want {
			t.Errorf("CanAccess(level=%d, %s/%s) = %v, want %v", tc.level, tc.section, tc.action, got, tc.want)
		}
	}
}

func TestCanAccessAdminBypass(t *testing.T) {
	s := NewService()
	if !s.CanAccess(1, true, SectionIntegrations, ActionWrite) {
		t.Error("admin should bypass the rule table")
	}
	if !s.CanAccess(0, true, "unknown-section", ActionWrite) {
		t.Error("admin should bypass unknown sections too")
	}
}

func TestCanAccessDeniesUnknown(t *testing.T) {
	s := NewService()
	if s.CanAccess(5, false, "payroll", ActionRead) {
		t.Error("unknown section should be denied")
	}
	if s.CanAccess(5, false, SectionDeals, "delete") {
		t.Error("unknown action should be denied")
	}
}
