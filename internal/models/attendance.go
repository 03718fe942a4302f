package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/parishkeep/parishsync/internal/timex"
)

// AttendanceStatus enumerates the states an attendance mark can take.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// AttendanceMark records whether a member attended a given service. Several
// staff devices may edit the same mark, so divergence is resolved by
// last-write-wins on UpdatedAt with ties going to the remote copy.
type AttendanceMark struct {
	ID              string           `json:"id"`
	MemberID        string           `json:"member_id"`
	ServiceID       string           `json:"service_id"`
	OccursOn        timex.Date       `json:"occurs_on"`
	Status          AttendanceStatus `json:"status"`
	Note            *string          `json:"note,omitempty"`
	RecordedBy      *string          `json:"recorded_by,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	SyncStatus      SyncStatus       `json:"-"`
	ServerUpdatedAt *time.Time       `json:"-"`
}

// NewAttendanceMark creates a pending mark with a client-generated id.
func NewAttendanceMark(memberID, serviceID string, occursOn timex.Date, status AttendanceStatus) *AttendanceMark {
	now := time.Now().UTC()
	return &AttendanceMark{
		ID:         uuid.NewString(),
		MemberID:   memberID,
		ServiceID:  serviceID,
		OccursOn:   occursOn,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
		SyncStatus: StatusPending,
	}
}

// Touch records a local mutation, see SermonNote.Touch.
func (a *AttendanceMark) Touch(now time.Time) {
	if now.After(a.UpdatedAt) {
		a.UpdatedAt = now
	}
	a.SyncStatus = StatusPending
}

// RecordID returns the client-generated identifier.
func (a AttendanceMark) RecordID() string { return a.ID }

// ModifiedAt returns the client-authoritative modification stamp.
func (a AttendanceMark) ModifiedAt() time.Time { return a.UpdatedAt }
