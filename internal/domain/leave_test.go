package domain

import "testing"

func TestLeaveBalanceAvailable(t *testing.T) {
	b := DefaultLeaveBalance()

	cases := []struct {
		leaveType string
		want      float64
	}{
		{LeaveVacation, 15},
		{LeaveSick, 8},
		{LeavePersonal, 4},
		{LeaveMaternity, 999},
		{LeaveUnpaid, 999},
	}
	for _, tc := range cases {
		if got := b.Available(tc.leaveType); got != tc.want {
			t.Errorf("Available(%s) = %v, want %v", tc.leaveType, got, tc.want)
		}
	}
}

func TestDefaultLeavePolicy(t *testing.T) {
	p := DefaultLeavePolicy()
	if p.MaxConsecutiveDays != 30 || p.AdvanceNoticeDays != 3 {
		t.Fatalf("unexpected policy defaults %+v", p)
	}
	if !p.CarryOverEnabled || p.MaxCarryOverDays != 10 {
		t.Fatalf("unexpected carry-over defaults %+v", p)
	}
}

func TestEmptyLeavePage(t *testing.T) {
	p := EmptyLeavePage()
	if p.Content == nil || len(p.Content) != 0 || p.TotalElements != 0 {
		t.Fatalf("unexpected empty leave page %+v", p)
	}
}
