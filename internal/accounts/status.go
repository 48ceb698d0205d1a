// Package accounts holds the account rows shown by the dashboard and the
// dataset that backs them.
package accounts

import (
	"fmt"
	"strings"
)

// Status is the registration state of an account.
type Status string

// Account statuses.
const (
	StatusNotRegistered   Status = "not_registered"
	StatusRegistered      Status = "registered"
	StatusPlus            Status = "plus"
	StatusBusiness        Status = "business"
	StatusBanned          Status = "banned"
	StatusInvalidPassword Status = "invalid_password"
)

// Statuses lists the canonical statuses in display order.
var Statuses = []Status{
	StatusNotRegistered,
	StatusRegistered,
	StatusPlus,
	StatusBusiness,
	StatusBanned,
	StatusInvalidPassword,
}

// statusAliases maps legacy spellings to canonical statuses.
var statusAliases = map[string]Status{
	"busnis": StatusBusiness,
}

var statusLabels = map[Status]string{
	StatusNotRegistered:   "Not registered",
	StatusRegistered:      "Registered",
	StatusPlus:            "Plus",
	StatusBusiness:        "Business",
	StatusBanned:          "Banned",
	StatusInvalidPassword: "Wrong password",
}

var statusShortLabels = map[Status]string{
	StatusNotRegistered:   "new",
	StatusRegistered:      "reg",
	StatusPlus:            "plus",
	StatusBusiness:        "biz",
	StatusBanned:          "ban",
	StatusInvalidPassword: "pass",
}

// ParseStatus returns the canonical status for s, accepting legacy spellings.
func ParseStatus(s string) (Status, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := statusAliases[v]; ok {
		return alias, nil
	}
	st := Status(v)
	if _, ok := statusLabels[st]; !ok {
		return "", fmt.Errorf("invalid status %q", s)
	}
	return st, nil
}

// Label returns the long display name.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Short returns the compact display name.
func (s Status) Short() string {
	if l, ok := statusShortLabels[s]; ok {
		return l
	}
	return string(s)
}

// UnmarshalText accepts canonical and legacy spellings.
func (s *Status) UnmarshalText(text []byte) error {
	st, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}
