package uuid

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// UUID wraps google's uuid.UUID. Upload IDs are stored as BINARY(16) and
// travel as canonical text everywhere else.
type UUID uuid.UUID

var Nil UUID

func NewUUID() UUID {
	return UUID(uuid.New())
}

func Parse(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("invalid upload id %q: %w", s, err)
	}
	return UUID(id), nil
}

func (u UUID) IsZero() bool {
	return u == Nil
}

func (u UUID) String() string {
	return uuid.UUID(u).String()
}

// Scan accepts the 16-byte binary column as well as a textual UUID, which
// some drivers return for CHAR(36) columns and literal selects.
func (u *UUID) Scan(src any) error {
	var (
		id  uuid.UUID
		err error
	)
	switch v := src.(type) {
	case []byte:
		if len(v) == 16 {
			id, err = uuid.FromBytes(v)
		} else {
			id, err = uuid.ParseBytes(v)
		}
	case string:
		id, err = uuid.Parse(v)
	case nil:
		return fmt.Errorf("UUID.Scan: NULL upload id")
	default:
		return fmt.Errorf("UUID.Scan: unsupported type %T", src)
	}
	if err != nil {
		return fmt.Errorf("UUID.Scan: %w", err)
	}
	*u = UUID(id)
	return nil
}

func (u UUID) Value() (driver.Value, error) {
	return uuid.UUID(u).MarshalBinary()
}

func (u UUID) MarshalText() ([]byte, error) {
	return uuid.UUID(u).MarshalText()
}

func (u *UUID) UnmarshalText(text []byte) error {
	parsed, err := uuid.ParseBytes(text)
	if err != nil {
		return err
	}
	*u = UUID(parsed)
	return nil
}
