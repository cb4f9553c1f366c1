package contract

import (
	"errors"
)

// Status represents the lifecycle state of a contract.
type Status int

const (
	StatusCreated Status = iota
	StatusSigned
	StatusFinished
)

var statusNames = []string{"Created", "Signed", "Finished"}

func (s Status) String() string {
	if s < StatusCreated || s > StatusFinished {
		return "UNKNOWN"
	}
	return statusNames[s]
}

// StatusNames lists the permitted status values in lifecycle order.
func StatusNames() []string {
	return append([]string(nil), statusNames...)
}

// ParseStatus creates a Status from its textual value. Only the three
// enumerated values are permitted.
func ParseStatus(s string) (Status, error) {
	for i, name := range statusNames {
		if s == name {
			return Status(i), nil
		}
	}
	return Status(-1), errors.New("Status not in choice.")
}
