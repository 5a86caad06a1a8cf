package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is a list of strings persisted as a JSONB array.
type StringList []string

// Value implements [driver.Valuer].
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Scan implements [sql.Scanner].
func (l *StringList) Scan(src any) error {
	return scanJSON(src, (*[]string)(l))
}

// TimeList is a list of timestamps persisted as a JSONB array of RFC 3339 strings.
type TimeList []time.Time

// Value implements [driver.Valuer].
func (l TimeList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]time.Time(l))
}

// Scan implements [sql.Scanner].
func (l *TimeList) Scan(src any) error {
	return scanJSON(src, (*[]time.Time)(l))
}

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", src)
	}
}
