package entity

import (
	"time"
)

const (
	ReportStatusPending       = "pending"
	ReportStatusInvestigating = "investigating"
	ReportStatusResolved      = "resolved"
	ReportStatusDismissed     = "dismissed"
)

// Remediation actions an admin can apply when resolving a report.
const (
	ReportActionNone    = "none"
	ReportActionRemove  = "remove"
	ReportActionSuspend = "suspend"
	ReportActionBan     = "ban"
)

// ReportTargetType enumerates the entity kinds a report can point at.
type ReportTargetType string

const (
	ReportTargetVehicle ReportTargetType = "vehicle"
	ReportTargetPart    ReportTargetType = "part"
	ReportTargetUser    ReportTargetType = "user"
	ReportTargetSwap    ReportTargetType = "swap"
	ReportTargetReview  ReportTargetType = "review"
)

// Valid reports whether t names a known target kind.
func (t ReportTargetType) Valid() bool {
	switch t {
	case ReportTargetVehicle, ReportTargetPart, ReportTargetUser, ReportTargetSwap, ReportTargetReview:
		return true
	}
	return false
}

// ReportTarget is the typed polymorphic reference of a report.
type ReportTarget struct {
	Type ReportTargetType `json:"type" firestore:"type"`
	ID   string           `json:"id" firestore:"id"`
}

type Report struct {
	ID         string       `json:"id" firestore:"id"`
	ReporterID string       `json:"reporter_id" firestore:"reporterId"`
	Target     ReportTarget `json:"target" firestore:"target"`

	Reason      string `json:"reason" firestore:"reason"`
	Description string `json:"description,omitempty" firestore:"description,omitempty"`
	Status      string `json:"status" firestore:"status"`

	Resolution  string `json:"resolution,omitempty" firestore:"resolution,omitempty"`
	ActionTaken string `json:"action_taken,omitempty" firestore:"actionTaken,omitempty"`
	ResolvedBy  string `json:"resolved_by,omitempty" firestore:"resolvedBy,omitempty"`

	CreatedAt  time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time  `json:"updated_at" firestore:"updatedAt"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty" firestore:"resolvedAt,omitempty"`
}
