package domain

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringList is a list of strings stored as a PostgreSQL text[] column.
// Other dialects store the same array literal in a text column.
type StringList []string

// Value implements driver.Valuer
func (s StringList) Value() (driver.Value, error) {
	return pq.StringArray(s).Value()
}

// Scan implements sql.Scanner
func (s *StringList) Scan(src interface{}) error {
	return (*pq.StringArray)(s).Scan(src)
}

// GormDataType implements schema.GormDataTypeInterface
func (StringList) GormDataType() string {
	return "text[]"
}

// GormDBDataType implements migrator.GormDBDataTypeInterface
func (StringList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// Contains reports whether v is in the list
func (s StringList) Contains(v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}
