package commission

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func findRow(t *testing.T, rows []Commission, agentID uint, typ string) Commission {
	t.Helper()
	for _, row := range rows {
		if row.AgentID == agentID && row.Type == typ {
			return row
		}
	}
	t.Fatalf("no %s row for agent %d", typ, agentID)
	return Commission{}
}

func TestComputeAdvance(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	deal := DealInput{ID: 1, AgentID: 10, AnnualPremium: 1200}
	carrier := CarrierInput{AdvanceRate: 75, AdvancePeriodMonths: 9, PaymentType: "advance"}
	agentPos, ownerPos := uint(1), uint(5)
	splits := []SplitInput{
		{PositionID: agentPos, Percentage: 40},
		{PositionID: ownerPos, Percentage: 60},
	}
	recipients := []Recipient{
		{AgentID: 10, PositionID: &agentPos, Role: RoleAgent},
		{AgentID: 20, PositionID: &ownerPos, Role: RoleOwner},
	}

	rows, skipped := Compute(deal, carrier, splits, recipients, now)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %v", skipped)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	agentAdvance := findRow(t, rows, 10, TypeAdvance)
	if !almostEqual(agentAdvance.Amount, 360) {
		t.Errorf("agent advance = %v, want 360", agentAdvance.Amount)
	}
	if !agentAdvance.PaymentDate.Equal(now) {
		t.Errorf("agent advance dated %v, want %v", agentAdvance.PaymentDate, now)
	}

	ownerAdvance := findRow(t, rows, 20, TypeAdvance)
	if !almostEqual(ownerAdvance.Amount, 540) {
		t.Errorf("owner advance = %v, want 540", ownerAdvance.Amount)
	}

	agentFuture := findRow(t, rows, 10, TypeFuture)
	if !almostEqual(agentFuture.Amount, 120) {
		t.Errorf("agent future = %v, want 120", agentFuture.Amount)
	}
	wantFutureDate := now.AddDate(0, 9, 0)
	if !agentFuture.PaymentDate.Equal(wantFutureDate) {
		t.Errorf("agent future dated %v, want %v", agentFuture.PaymentDate, wantFutureDate)
	}

	ownerFuture := findRow(t, rows, 20, TypeFuture)
	if !almostEqual(ownerFuture.Amount, 180) {
		t.Errorf("owner future = %v, want 180", ownerFuture.Amount)
	}

	// Splits sum to 100, so advances sum to the advance amount and
	// advance + future recovers the annual premium.
	var advanceTotal, futureTotal float64
	for _, row := range rows {
		switch row.Type {
		case TypeAdvance:
			advanceTotal += row.Amount
		case TypeFuture:
			futureTotal += row.Amount
		}
	}
	if !almostEqual(advanceTotal, 900) {
		t.Errorf("advance total = %v, want 900", advanceTotal)
	}
	if !almostEqual(advanceTotal+futureTotal, deal.AnnualPremium) {
		t.Errorf("advance+future = %v, want %v", advanceTotal+futureTotal, deal.AnnualPremium)
	}
}

func TestComputeMonthly(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	deal := DealInput{ID: 2, AgentID: 10, AnnualPremium: 1200, MonthlyPremium: 100}
	carrier := CarrierInput{AdvanceRate: 75, AdvancePeriodMonths: 9, PaymentType: "monthly"}
	pos := uint(1)
	splits := []SplitInput{{PositionID: pos, Percentage: 40}}
	recipients := []Recipient{{AgentID: 10, PositionID: &pos, Role: RoleAgent}}

	rows, skipped := Compute(deal, carrier, splits, recipients, now)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %v", skipped)
	}
	if len(rows) != 9 {
		t.Fatalf("expected 9 monthly rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.Type != TypeMonthly {
			t.Errorf("row %d type = %q, want monthly", i, row.Type)
		}
		if !almostEqual(row.Amount, 40) {
			t.Errorf("row %d amount = %v, want 40", i, row.Amount)
		}
		want := now.AddDate(0, i, 0)
		if !row.PaymentDate.Equal(want) {
			t.Errorf("row %d dated %v, want %v", i, row.PaymentDate, want)
		}
	}
}

func TestComputeSkipsRecipientsItCannotPrice(t *testing.T) {
	now := time.Now()
	deal := DealInput{ID: 3, AgentID: 10, AnnualPremium: 1000}
	carrier := CarrierInput{AdvanceRate: 75, AdvancePeriodMonths: 9, PaymentType: "advance"}
	posWithSplit, posWithout := uint(1), uint(3)
	splits := []SplitInput{{PositionID: posWithSplit, Percentage: 50}}
	recipients := []Recipient{
		{AgentID: 10, PositionID: nil, Role: RoleAgent},
		{AgentID: 20, PositionID: &posWithout, Role: RoleOwner},
		{AgentID: 30, PositionID: &posWithSplit, Role: RoleAgent},
	}

	rows, skipped := Compute(deal, carrier, splits, recipients, now)
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skips, got %d: %v", len(skipped), skipped)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows for the priceable recipient, got %d", len(rows))
	}
}

func TestComputeUnknownPaymentType(t *testing.T) {
	pos := uint(1)
	rows, skipped := Compute(
		DealInput{ID: 4, AnnualPremium: 1000},
		CarrierInput{PaymentType: "quarterly"},
		[]SplitInput{{PositionID: pos, Percentage: 50}},
		[]Recipient{{AgentID: 10, PositionID: &pos, Role: RoleAgent}},
		time.Now(),
	)
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
	if len(skipped) != 1 {
		t.Fatalf("expected 1 skip, got %d", len(skipped))
	}
}

func TestComputeRoundsToCents(t *testing.T) {
	now := time.Now()
	pos := uint(1)
	rows, _ := Compute(
		DealInput{ID: 5, AgentID: 10, AnnualPremium: 999.99},
		CarrierInput{AdvanceRate: 75, AdvancePeriodMonths: 9, PaymentType: "advance"},
		[]SplitInput{{PositionID: pos, Percentage: 33}},
		[]Recipient{{AgentID: 10, PositionID: &pos, Role: RoleAgent}},
		now,
	)
	advance := findRow(t, rows, 10, TypeAdvance)
	// 999.99 * 0.75 * 0.33 = 247.497525
	if advance.Amount != 247.5 {
		t.Errorf("advance = %v, want 247.5", advance.Amount)
	}
}

func originalRows() []Commission {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []Commission{
		{ID: 1, DealID: 9, AgentID: 10, Role: RoleAgent, Type: TypeAdvance, Amount: 360, Percentage: 40, PaymentDate: base},
		{ID: 2, DealID: 9, AgentID: 10, Role: RoleAgent, Type: TypeFuture, Amount: 120, Percentage: 40, PaymentDate: base.AddDate(0, 9, 0)},
		{ID: 3, DealID: 9, AgentID: 20, Role: RoleOwner, Type: TypeAdvance, Amount: 540, Percentage: 60, PaymentDate: base},
		{ID: 4, DealID: 9, AgentID: 20, Role: RoleOwner, Type: TypeFuture, Amount: 180, Percentage: 60, PaymentDate: base.AddDate(0, 9, 0)},
	}
}

func TestChargebackMirrorsOriginals(t *testing.T) {
	rows := originalRows()
	at := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	chargebacks := BuildChargebacks(rows, at)
	if len(chargebacks) != 4 {
		t.Fatalf("expected 4 chargebacks, got %d", len(chargebacks))
	}
	byParent := make(map[uint]Commission)
	for _, cb := range chargebacks {
		if !cb.IsChargeback {
			t.Errorf("chargeback row not flagged")
		}
		if cb.ChargebackDate == nil || !cb.ChargebackDate.Equal(at) {
			t.Errorf("chargeback date not stamped")
		}
		if cb.ParentID == nil {
			t.Fatalf("chargeback missing parent")
		}
		byParent[*cb.ParentID] = cb
	}
	for _, orig := range rows {
		cb, ok := byParent[orig.ID]
		if !ok {
			t.Fatalf("original %d not reversed", orig.ID)
		}
		if !almostEqual(orig.Amount+cb.Amount, 0) {
			t.Errorf("original %d: %v + %v != 0", orig.ID, orig.Amount, cb.Amount)
		}
		if cb.Type != orig.Type || cb.AgentID != orig.AgentID || cb.Role != orig.Role {
			t.Errorf("chargeback for %d does not mirror recipient and type", orig.ID)
		}
	}
}

func TestChargebackIsIdempotent(t *testing.T) {
	rows := originalRows()
	at := time.Now()

	chargebacks := BuildChargebacks(rows, at)
	for i := range chargebacks {
		chargebacks[i].ID = uint(100 + i)
	}
	rows = append(rows, chargebacks...)

	again := BuildChargebacks(rows, at)
	if len(again) != 0 {
		t.Fatalf("second chargeback pass created %d rows, want 0", len(again))
	}
}

func TestReinstateRestoresOriginalAmounts(t *testing.T) {
	rows := originalRows()
	at := time.Now()

	chargebacks := BuildChargebacks(rows, at)
	for i := range chargebacks {
		chargebacks[i].ID = uint(100 + i)
	}
	rows = append(rows, chargebacks...)

	reinstatements := BuildReinstatements(rows, at)
	if len(reinstatements) != 4 {
		t.Fatalf("expected 4 reinstatements, got %d", len(reinstatements))
	}

	// Net per (agent, type) returns to the original value.
	net := make(map[[2]string]float64)
	all := append(append([]Commission{}, rows...), reinstatements...)
	for _, row := range all {
		key := [2]string{row.Role, row.Type}
		net[key] += row.Amount
	}
	want := map[[2]string]float64{
		{RoleAgent, TypeAdvance}: 360,
		{RoleAgent, TypeFuture}:  120,
		{RoleOwner, TypeAdvance}: 540,
		{RoleOwner, TypeFuture}:  180,
	}
	for key, amount := range want {
		if !almostEqual(net[key], amount) {
			t.Errorf("net for %v = %v, want %v", key, net[key], amount)
		}
	}

	// With every chargeback reinstated, a new lapse can reverse again.
	for i := range reinstatements {
		reinstatements[i].ID = uint(200 + i)
	}
	all = append(rows, reinstatements...)
	second := BuildChargebacks(all, at)
	if len(second) != 4 {
		t.Fatalf("expected a fresh lapse to reverse 4 originals, got %d", len(second))
	}
}

func TestReinstateWithoutChargebackDoesNothing(t *testing.T) {
	if out := BuildReinstatements(originalRows(), time.Now()); len(out) != 0 {
		t.Fatalf("expected no reinstatements, got %d", len(out))
	}
}
