package models

import (
	"time"
)

// Leave status values. A record starts pending and is moved exactly once to
// approved or rejected by an admin; rejection always carries a reason.
const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

// IsValidLeaveStatus reports whether s is a recognized leave status.
func IsValidLeaveStatus(s string) bool {
	return s == LeaveStatusPending || s == LeaveStatusApproved || s == LeaveStatusRejected
}

type LeaveRecord struct {
	LeaveID         string     `gorm:"primaryKey;column:leave_id" json:"id"`
	UserID          int        `gorm:"column:user_id;index" json:"user_id"`
	Email           string     `gorm:"column:email;index" json:"email"`
	LeaveType       string     `gorm:"column:leave_type" json:"leaveType"`
	FromDate        string     `gorm:"column:from_date" json:"fromDate"`
	ToDate          string     `gorm:"column:to_date" json:"toDate"`
	Days            int        `gorm:"column:days" json:"days"`
	Reason          string     `gorm:"column:reason;type:text" json:"reason"`
	Status          string     `gorm:"column:status;index" json:"status"`
	ApprovedBy      string     `gorm:"column:approved_by" json:"approvedBy,omitempty"`
	RejectionReason string     `gorm:"column:rejection_reason;type:text" json:"rejectionReason,omitempty"`
	DecidedAt       *time.Time `gorm:"column:decided_at" json:"decided_at,omitempty"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (LeaveRecord) TableName() string {
	return "leave_records"
}
