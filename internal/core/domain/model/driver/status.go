package driver

import (
	"fulfillment/internal/pkg/errs"
)

// ApprovalStatus is the admin-controlled lifecycle state of a driver
// account. Registration creates a Pending driver; only an admin moves it
// from there.
//
// State transitions:
//
//	Pending ──┬──> Approved <──> Suspended
//	          └──> Rejected
type ApprovalStatus int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown ApprovalStatus = iota

	// StatusPending is the initial status after driver registration.
	StatusPending

	// StatusApproved allows the driver to take deliveries.
	StatusApproved

	// StatusRejected permanently declines the registration.
	StatusRejected

	// StatusSuspended temporarily removes an approved driver from duty.
	StatusSuspended
)

func getApprovalStatusStrings() map[ApprovalStatus]string {
	return map[ApprovalStatus]string{
		StatusUnknown:   "Unknown",
		StatusPending:   "Pending",
		StatusApproved:  "Approved",
		StatusRejected:  "Rejected",
		StatusSuspended: "Suspended",
	}
}

func approvalTransitionTable() map[ApprovalStatus][]ApprovalStatus {
	return map[ApprovalStatus][]ApprovalStatus{
		StatusPending:   {StatusApproved, StatusRejected},
		StatusApproved:  {StatusSuspended},
		StatusSuspended: {StatusApproved},
	}
}

// String returns the human-readable name of the status.
func (s ApprovalStatus) String() string {
	if str, ok := getApprovalStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the status is one of the defined values.
func (s ApprovalStatus) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidError("approval status is Unknown")
	}
	if _, ok := getApprovalStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("approval status is not a defined value")
	}
	return nil
}

// TransitionTo returns target if the admin action is legal, or an
// IllegalTransitionError.
func (s ApprovalStatus) TransitionTo(target ApprovalStatus) (ApprovalStatus, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}
	for _, allowed := range approvalTransitionTable()[s] {
		if allowed == target {
			return target, nil
		}
	}
	return StatusUnknown, errs.NewIllegalTransitionError(s.String(), target.String())
}

// ApprovalStatusFromString parses the wire representation used by the
// admin console.
func ApprovalStatusFromString(s string) (ApprovalStatus, error) {
	for status, str := range getApprovalStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidError("approval status " + s)
}
