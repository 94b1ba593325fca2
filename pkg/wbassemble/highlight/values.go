package highlight

import "strconv"

// Priority is the closed set of priority values.
type Priority int

const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityMedium
	PriorityLow
)

// Priorities lists every priority value.
func Priorities() []Priority {
	return []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
}

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "Critical"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	}
	return "Priority(" + strconv.Itoa(int(p)) + ")"
}

// Color returns the fill color as RRGGBB hex.
func (p Priority) Color() string {
	switch p {
	case PriorityCritical:
		return "FF0000"
	case PriorityHigh:
		return "FFA500"
	case PriorityMedium:
		return "FFFF00"
	case PriorityLow:
		return "90EE90"
	}
	panic("highlight: unknown priority " + p.String())
}

// Status is the closed set of workflow states that get a fill.
type Status int

const (
	StatusNew Status = iota
	StatusInProgress
	StatusResolved
	StatusWontFix
)

// Statuses lists every highlighted status value.
func Statuses() []Status {
	return []Status{StatusNew, StatusInProgress, StatusResolved, StatusWontFix}
}

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusInProgress:
		return "In Progress"
	case StatusResolved:
		return "Resolved"
	case StatusWontFix:
		return "Won't Fix"
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// Color returns the fill color as RRGGBB hex.
func (s Status) Color() string {
	switch s {
	case StatusNew:
		return "ADD8E6"
	case StatusInProgress:
		return "FFA500"
	case StatusResolved:
		return "90EE90"
	case StatusWontFix:
		return "D3D3D3"
	}
	panic("highlight: unknown status " + s.String())
}
