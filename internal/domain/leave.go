package domain

// Leave types and statuses as the backend spells them.
const (
	LeaveVacation  = "VACATION"
	LeaveSick      = "SICK"
	LeavePersonal  = "PERSONAL"
	LeaveMaternity = "MATERNITY"
	LeavePaternity = "PATERNITY"
	LeaveUnpaid    = "UNPAID"

	LeavePending   = "PENDING"
	LeaveApproved  = "APPROVED"
	LeaveRejected  = "REJECTED"
	LeaveCancelled = "CANCELLED"
)

// LeaveRequest mirrors the backend leave-request record. Dates are ISO
// strings (YYYY-MM-DD) as transmitted.
type LeaveRequest struct {
	ID           *int64  `json:"id,omitempty"`
	EmployeeID   int64   `json:"employeeId"`
	EmployeeName string  `json:"employeeName,omitempty"`
	LeaveType    string  `json:"leaveType"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	TotalDays    float64 `json:"totalDays"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ApprovedBy   string  `json:"approvedBy,omitempty"`
	ApprovedDate string  `json:"approvedDate,omitempty"`
	IsHalfDay    bool    `json:"isHalfDay,omitempty"`
	HalfDayType  string  `json:"halfDayType,omitempty"`
	CreatedAt    string  `json:"createdAt,omitempty"`
	UpdatedAt    string  `json:"updatedAt,omitempty"`
}

// LeavePage is one page of leave requests.
type LeavePage struct {
	Content       []LeaveRequest `json:"content"`
	TotalElements int64          `json:"totalElements"`
}

// EmptyLeavePage is the page a failed listing collapses to.
func EmptyLeavePage() LeavePage {
	return LeavePage{Content: []LeaveRequest{}}
}

// LeaveBalance is an employee's per-type entitlement and usage.
type LeaveBalance struct {
	EmployeeID    int64   `json:"employeeId"`
	VacationDays  float64 `json:"vacationDays"`
	SickDays      float64 `json:"sickDays"`
	PersonalDays  float64 `json:"personalDays"`
	MaternityDays float64 `json:"maternityDays"`
	PaternityDays float64 `json:"paternityDays"`
	UnpaidDays    float64 `json:"unpaidDays"`
	UsedVacation  float64 `json:"usedVacation"`
	UsedSick      float64 `json:"usedSick"`
	UsedPersonal  float64 `json:"usedPersonal"`
}

// DefaultLeaveBalance is the safe substitute when the balance read fails.
func DefaultLeaveBalance() LeaveBalance {
	return LeaveBalance{
		VacationDays:  20,
		SickDays:      10,
		PersonalDays:  5,
		MaternityDays: 90,
		PaternityDays: 14,
		UsedVacation:  5,
		UsedSick:      2,
		UsedPersonal:  1,
	}
}

// Available returns the remaining days for a leave type. Types without a
// tracked balance are effectively unlimited.
func (b LeaveBalance) Available(leaveType string) float64 {
	switch leaveType {
	case LeaveVacation:
		return b.VacationDays - b.UsedVacation
	case LeaveSick:
		return b.SickDays - b.UsedSick
	case LeavePersonal:
		return b.PersonalDays - b.UsedPersonal
	default:
		return 999
	}
}

// LeavePolicy is the tenant-wide policy document.
type LeavePolicy struct {
	ID                *int64  `json:"id,omitempty"`
	VacationDays      float64 `json:"vacationDays"`
	SickDays          float64 `json:"sickDays"`
	PersonalDays      float64 `json:"personalDays"`
	MaternityDays     float64 `json:"maternityDays"`
	PaternityDays     float64 `json:"paternityDays"`
	MaxConsecutiveDays int    `json:"maxConsecutiveDays"`
	AdvanceNoticeDays  int    `json:"advanceNoticeDays"`
	CarryOverEnabled   bool   `json:"carryOverEnabled"`
	MaxCarryOverDays   int    `json:"maxCarryOverDays"`
}

// DefaultLeavePolicy is the safe substitute when the policy read fails.
func DefaultLeavePolicy() LeavePolicy {
	return LeavePolicy{
		VacationDays:       20,
		SickDays:           10,
		PersonalDays:       5,
		MaternityDays:      90,
		PaternityDays:      14,
		MaxConsecutiveDays: 30,
		AdvanceNoticeDays:  3,
		CarryOverEnabled:   true,
		MaxCarryOverDays:   10,
	}
}

// LeaveStats is the management dashboard summary, zero-valued on error.
type LeaveStats struct {
	PendingRequests      int     `json:"pendingRequests"`
	ApprovedThisMonth    int     `json:"approvedThisMonth"`
	RejectedThisMonth    int     `json:"rejectedThisMonth"`
	TotalLeavesTaken     int     `json:"totalLeavesTaken"`
	AverageLeaveDuration float64 `json:"averageLeaveDuration"`
}
