package models

import "testing"

func TestLeaseOptions(t *testing.T) {
	product := &Product{
		LeasePrice: 48000,
		InitialFee: 6000,
	}

	options := product.LeaseOptions()

	if len(options) != len(LeaseWeeksPeriods) {
		t.Fatalf("got %d options, want %d", len(options), len(LeaseWeeksPeriods))
	}

	opt, ok := options[12]
	if !ok {
		t.Fatal("no option for 12 weeks")
	}
	if opt.WeeklyFee != 4000 {
		t.Errorf("WeeklyFee = %d, want 4000", opt.WeeklyFee)
	}
	if opt.Total != 6000+4000*12 {
		t.Errorf("Total = %d, want %d", opt.Total, 6000+4000*12)
	}

	// Более долгий срок означает меньший недельный платеж
	if options[48].WeeklyFee >= options[12].WeeklyFee {
		t.Error("longer period must have smaller weekly fee")
	}
}

func TestUserInGroup(t *testing.T) {
	user := &User{Groups: []Group{{Name: GroupCustomer}}}

	if !user.IsCustomer() {
		t.Error("user with CUSTOMER group must be a customer")
	}
	if user.InGroup(GroupAdmin) {
		t.Error("user must not be in ADMIN group")
	}
}
