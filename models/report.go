package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MetricMap holds the free-form metric fields of a report record. Values stay
// whatever JSON produced (float64, string, []interface{}) and are interpreted
// only at scoring time; the column stores the JSON text.
type MetricMap map[string]interface{}

func (m MetricMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *MetricMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("metric map: cannot scan %T", value)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(raw, m)
}

// ReportRecord is one submission for one category on one Dhaka calendar day.
// The (category, email, report_date) triple is unique: users submit each form
// at most once per day and never edit it afterwards.
type ReportRecord struct {
	RecordID      int        `gorm:"primaryKey;column:record_id" json:"record_id"`
	Category      string     `gorm:"column:category;index:idx_cat_email_date,unique" json:"category"`
	Email         string     `gorm:"column:email;index:idx_cat_email_date,unique" json:"email"`
	ReportDate    string     `gorm:"column:report_date;index:idx_cat_email_date,unique" json:"date"`
	Fields        MetricMap  `gorm:"column:fields;type:text" json:"fields"`
	EditorContent string     `gorm:"column:editor_content;type:text" json:"editorContent,omitempty"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (ReportRecord) TableName() string {
	return "report_records"
}

// WeeklyTodo is a planned-activity sheet for one week. Unlike daily report
// records it stays editable by its owner for the whole week.
type WeeklyTodo struct {
	TodoID    int        `gorm:"primaryKey;column:todo_id" json:"todo_id"`
	Email     string     `gorm:"column:email;index" json:"email"`
	WeekStart string     `gorm:"column:week_start" json:"week_start"`
	Entries   MetricMap  `gorm:"column:entries;type:text" json:"entries"`
	Notes     string     `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (WeeklyTodo) TableName() string {
	return "weekly_todos"
}
