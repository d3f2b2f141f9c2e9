package metadata

import "fmt"

type AssignmentStatus string

const (
	StatusAssigned AssignmentStatus = "Assigned"
	StatusReturned AssignmentStatus = "Returned"
)

func (s AssignmentStatus) String() string {
	return string(s)
}

// SoftwareStatus is the license state of a software catalog row.
type SoftwareStatus string

const (
	SoftwareActive SoftwareStatus = "Active"
	SoftwarePaused SoftwareStatus = "Paused"
)

func NewSoftwareStatus(value string) (SoftwareStatus, error) {
	status := SoftwareStatus(value)
	switch status {
	case SoftwareActive, SoftwarePaused:
		return status, nil
	default:
		return "", fmt.Errorf("invalid software status: %s, only valid values are: %s, %s", value, SoftwareActive, SoftwarePaused)
	}
}

func (s SoftwareStatus) String() string {
	return string(s)
}

// EmploymentActive is the employment_status value of employees that may hold items.
const EmploymentActive = "Active"
