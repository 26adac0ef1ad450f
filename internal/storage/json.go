package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// List- and map-valued attributes persist as JSON text columns and must
// round-trip losslessly through create -> read.

func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal json column: %w", err)
	}
	return string(data), nil
}

// decodeJSON leaves dst untouched for NULL or empty columns.
func decodeJSON(raw sql.NullString, dst any) error {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw.String), dst); err != nil {
		return fmt.Errorf("unmarshal json column: %w", err)
	}
	return nil
}
