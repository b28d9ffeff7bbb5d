package models

import (
	"time"
)

// ProfileChangeLog records every role/scope edit made to a user account.
// Central admins must supply a note with each change; the note and the
// changed fields are kept for audit.
type ProfileChangeLog struct {
	LogID     string     `gorm:"primaryKey;column:log_id" json:"log_id"`
	UserID    int        `gorm:"column:user_id;index" json:"user_id"`
	ChangedBy string     `gorm:"column:changed_by" json:"changed_by"`
	Note      string     `gorm:"column:note;type:text" json:"note"`
	Changes   MetricMap  `gorm:"column:changes;type:text" json:"changes"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
}

func (ProfileChangeLog) TableName() string {
	return "profile_change_logs"
}
