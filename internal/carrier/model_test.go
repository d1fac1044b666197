package carrier

import "testing"

func TestValidate(t *testing.T) {
	valid := Carrier{Name: "Acme Life", AdvanceRate: 75, AdvancePeriodMonths: 9, PaymentType: PaymentTypeAdvance}
	if msg := valid.Validate(); msg != "" {
		t.Fatalf("valid carrier rejected: %s", msg)
	}

	cases := []struct {
		name   string
		mutate func(*Carrier)
	}{
		{"empty name", func(c *Carrier) { c.Name = "" }},
		{"negative rate", func(c *Carrier) { c.AdvanceRate = -1 }},
		{"rate over 100", func(c *Carrier) { c.AdvanceRate = 101 }},
		{"zero period", func(c *Carrier) { c.AdvancePeriodMonths = 0 }},
		{"unknown payment type", func(c *Carrier) { c.PaymentType = "quarterly" }},
	}
	for _, tc := range cases {
		c := valid
		tc.mutate(&c)
		if msg := c.Validate(); msg == "" {
			t.Errorf("%s: expected validation message", tc.name)
		}
	}
}
