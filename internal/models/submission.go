package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores a multi-select field as a JSON array in a text column
// so the same model works on Postgres and the sqlite test driver.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

func (StringList) GormDataType() string { return "text" }

// ContactSubmission is a validated contact form submission. Rows are
// append-only; nothing in the API reads them back.
type ContactSubmission struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"not null" json:"name"`
	Email     string  `gorm:"not null;index" json:"email"`
	Phone     string  `json:"phone"`
	EventDate *string `gorm:"column:event_date" json:"event_date"`
	Location  string  `json:"location"`

	Instruments StringList `json:"instruments"`
	Genres      StringList `json:"genres"`
	GenreOther  string     `gorm:"column:genre_other" json:"genre_other"`

	Message  string `gorm:"type:text;not null" json:"message"`
	FormName string `gorm:"column:form_name" json:"form_name"`

	IPAddress string `gorm:"column:ip_address" json:"ip_address"`
	UserAgent string `gorm:"column:user_agent" json:"user_agent"`

	CreatedAt time.Time `json:"created_at"`
}

func (ContactSubmission) TableName() string { return "contact_submissions" }
