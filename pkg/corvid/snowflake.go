package corvid

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// discordEpochMillis is the first second of 2015, the epoch snowflake
// timestamps count from.
const discordEpochMillis = 1420070400000

// ID is a snowflake entity identifier.
//
// IDs are 64-bit unsigned integers surfaced on the wire as decimal strings.
// The zero ID means "absent / not set" and never names a real entity.
type ID uint64

// ParseID converts a decimal string into an ID.
func ParseID(value string) (ID, error) {
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse id %q: %w", value, err)
	}

	return ID(parsed), nil
}

// String returns the canonical decimal representation.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IsZero reports whether the ID is the absent sentinel.
func (id ID) IsZero() bool {
	return id == 0
}

// Timestamp extracts the creation time encoded in the snowflake.
// The result is meaningless for the zero ID.
func (id ID) Timestamp() time.Time {
	millis := int64(id>>22) + discordEpochMillis
	return time.UnixMilli(millis).UTC()
}

// MarshalJSON encodes the ID as a quoted decimal string, or null when absent.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}

	return []byte(`"` + id.String() + `"`), nil
}

// UnmarshalJSON accepts quoted decimal strings, bare numbers, and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = 0
		return nil
	}

	if trimmed[0] == '"' {
		unquoted, err := strconv.Unquote(string(trimmed))
		if err != nil {
			return fmt.Errorf("unmarshal id %s: %w", trimmed, err)
		}
		if unquoted == "" {
			*id = 0
			return nil
		}
		parsed, err := ParseID(unquoted)
		if err != nil {
			return fmt.Errorf("unmarshal id: %w", err)
		}
		*id = parsed
		return nil
	}

	parsed, err := strconv.ParseUint(string(trimmed), 10, 64)
	if err != nil {
		return fmt.Errorf("unmarshal id %s: %w", trimmed, err)
	}
	*id = ID(parsed)

	return nil
}
