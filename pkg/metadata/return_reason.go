package metadata

import (
	"fmt"
	"strings"
)

type ReturnReason string

const (
	ReasonReassignment ReturnReason = "Reassignment"
	ReasonEmployeeExit ReturnReason = "Employee Exit"
	ReasonDamaged      ReturnReason = "Asset Inactive / Damaged"
	ReasonOther        ReturnReason = "Other"
)

var returnReasons = []ReturnReason{ReasonReassignment, ReasonEmployeeExit, ReasonDamaged, ReasonOther}

func (r ReturnReason) IsValid() bool {
	for _, reason := range returnReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// DeactivatesItem reports whether returning with this reason takes the item out of service.
func (r ReturnReason) DeactivatesItem() bool {
	return r == ReasonDamaged
}

// NewReturnReason matches value against the asset return reasons ignoring case
// and surrounding whitespace.
func NewReturnReason(value string) (ReturnReason, error) {
	normalized := strings.TrimSpace(value)
	for _, reason := range returnReasons {
		if strings.EqualFold(normalized, string(reason)) {
			return reason, nil
		}
	}

	return "", fmt.Errorf(
		"value not valid, only valid values are: %s, %s, %s, %s",
		ReasonReassignment, ReasonEmployeeExit, ReasonDamaged, ReasonOther,
	)
}

func (r ReturnReason) String() string {
	return string(r)
}
