package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Role names. District, upozila and union admins are legacy roles kept for
// accounts created before the markaz-based hierarchy.
const (
	RoleCentralAdmin  = "centraladmin"
	RoleDivisionAdmin = "divisionadmin"
	RoleDistrictAdmin = "districtadmin"
	RoleMarkazAdmin   = "markazadmin"
	RoleUpozilaAdmin  = "upozilaadmin"
	RoleUnionAdmin    = "unionadmin"
	RoleDaye          = "daye"
)

// AdminRoles lists every role that may view subordinate data.
var AdminRoles = []string{
	RoleCentralAdmin,
	RoleDivisionAdmin,
	RoleDistrictAdmin,
	RoleMarkazAdmin,
	RoleUpozilaAdmin,
	RoleUnionAdmin,
}

// IsKnownRole reports whether role is one of the recognized role names.
func IsKnownRole(role string) bool {
	switch role {
	case RoleCentralAdmin, RoleDivisionAdmin, RoleDistrictAdmin,
		RoleMarkazAdmin, RoleUpozilaAdmin, RoleUnionAdmin, RoleDaye:
		return true
	}
	return false
}

// IsAdminRole reports whether role may view subordinate data.
func IsAdminRole(role string) bool {
	for _, r := range AdminRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	UserID    int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Name      string     `gorm:"column:name" json:"name"`
	Email     string     `gorm:"column:email;unique" json:"email"`
	Password  string     `gorm:"column:password" json:"-"`
	Role      string     `gorm:"column:role" json:"role"`
	Division  string     `gorm:"column:division" json:"division,omitempty"`
	District  string     `gorm:"column:district" json:"district,omitempty"`
	Upazila   string     `gorm:"column:upazila" json:"upazila,omitempty"`
	UnionName string     `gorm:"column:union_name" json:"union,omitempty"`
	Markaz    MarkazRef  `gorm:"column:markaz;type:text" json:"markaz,omitempty"`
	Phone     *string    `gorm:"column:phone" json:"phone,omitempty"`
	Banned    bool       `gorm:"column:banned" json:"banned"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// MarkazRef carries the markaz a user belongs to. Two representations exist
// in the wild: legacy rows store a bare name string, normalized rows store a
// {id, name} relation. Both are accepted on input and preserved on output.
type MarkazRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// IsZero reports whether no markaz is set at all.
func (m MarkazRef) IsZero() bool {
	return m.ID == "" && m.Name == ""
}

// SameMarkaz reports whether two refs point at the same markaz. When both
// sides carry an id the ids decide; otherwise fall back to name equality.
func SameMarkaz(a, b MarkazRef) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	if a.ID != "" && b.ID != "" {
		return a.ID == b.ID
	}
	return a.Name != "" && strings.EqualFold(strings.TrimSpace(a.Name), strings.TrimSpace(b.Name))
}

// UnmarshalJSON accepts either "Markaz A" or {"id":"m1","name":"Markaz A"}.
func (m *MarkazRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = MarkazRef{}
		return nil
	}
	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*m = MarkazRef{Name: strings.TrimSpace(name)}
		return nil
	}
	type relation struct {
		ID   interface{} `json:"id"`
		Name string      `json:"name"`
	}
	var rel relation
	if err := json.Unmarshal(data, &rel); err != nil {
		return fmt.Errorf("markaz: unsupported shape: %w", err)
	}
	var id string
	switch v := rel.ID.(type) {
	case string:
		id = strings.TrimSpace(v)
	case float64:
		// Numeric ids come from exports of the old database.
		id = strconv.FormatFloat(v, 'f', -1, 64)
	}
	*m = MarkazRef{ID: id, Name: strings.TrimSpace(rel.Name)}
	return nil
}

// MarshalJSON emits the relation shape when an id is known, otherwise the
// legacy bare string, so round-tripping legacy rows does not invent ids.
func (m MarkazRef) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("null"), nil
	}
	if m.ID == "" {
		return json.Marshal(m.Name)
	}
	type relation struct {
		ID   string `json:"id"`
		Name string `json:"name,omitempty"`
	}
	return json.Marshal(relation{ID: m.ID, Name: m.Name})
}

// Value stores the JSON form in a text column.
func (m MarkazRef) Value() (driver.Value, error) {
	if m.IsZero() {
		return nil, nil
	}
	b, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan accepts NULL, JSON text and, for the oldest rows, plain names that
// were never JSON-encoded.
func (m *MarkazRef) Scan(value interface{}) error {
	if value == nil {
		*m = MarkazRef{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("markaz: cannot scan %T", value)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		*m = MarkazRef{}
		return nil
	}
	if raw[0] == '"' || raw[0] == '{' {
		return m.UnmarshalJSON(raw)
	}
	*m = MarkazRef{Name: string(raw)}
	return nil
}
