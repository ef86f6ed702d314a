package guuid

import (
	"database/sql/driver"
	"fmt"
)

// Scan implements the sql.Scanner interface for database compatibility.
// A 16-byte slice is taken as the raw representation and checked like
// FromBytes; any other string or byte slice is parsed as text.
func (u *UUID) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		return nil
	case string:
		if src == "" {
			return nil
		}
		id, err := Parse(src)
		if err != nil {
			return err
		}
		*u = id
		return nil
	case []byte:
		if len(src) == 0 {
			return nil
		}
		if len(src) == 16 {
			id, err := FromBytes(src)
			if err != nil {
				return err
			}
			*u = id
			return nil
		}
		id, err := Parse(string(src))
		if err != nil {
			return err
		}
		*u = id
		return nil
	default:
		return fmt.Errorf("guuid: cannot scan type %T into UUID", src)
	}
}

// Value implements the driver.Valuer interface for database compatibility
func (u UUID) Value() (driver.Value, error) {
	return u.String(), nil
}
