package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ticketly/ticketly/internal/common"
	"github.com/ticketly/ticketly/internal/timex"
)

// Status is the lifecycle state of a ticket.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusClosed}

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// Label is the human form: "Open", "In Progress", "Closed".
func (s Status) Label() string {
	switch s {
	case StatusInProgress:
		return "In Progress"
	case "":
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if !Status(v).Valid() {
		return fmt.Errorf("%w: unknown status %q", common.ErrValidation, v)
	}
	*s = Status(v)
	return nil
}

// ParseStatus accepts the stored form and a few typed variants
// ("in-progress", "In Progress").
func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	if st := Status(norm); st.Valid() {
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", common.ErrValidation, s)
}

// Priority is optional; the empty value means unset.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (p *Priority) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if !Priority(v).Valid() {
		return fmt.Errorf("%w: unknown priority %q", common.ErrValidation, v)
	}
	*p = Priority(v)
	return nil
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown priority %q", common.ErrValidation, s)
	}
	return p, nil
}

// Ticket is one record of the tickets collection.
type Ticket struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority,omitempty"`
	CreatedAt   timex.Time `json:"createdAt"`
	UpdatedAt   timex.Time `json:"updatedAt"`
}

// TicketDraft is a ticket before the repository assigns id and timestamps.
type TicketDraft struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
}

// TicketPatch carries the fields to merge into an existing ticket.
// Nil fields are left untouched; an empty Description clears it.
type TicketPatch struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
}

// Apply merges p into t. Timestamps are the caller's business.
func (p TicketPatch) Apply(t *Ticket) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
}

// Stats are aggregate counts over the tickets collection.
type Stats struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Closed     int `json:"closed"`
}
