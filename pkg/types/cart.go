package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Quantity is an integer that survives the loose shapes found in legacy cart
// documents: JSON numbers, quoted numbers, null, or a missing field all decode
// without error. Anything unreadable counts as zero.
type Quantity int

// UnmarshalJSON decodes numbers, numeric strings and null; other shapes
// become zero rather than failing the whole record.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		*q = 0
		return nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*q = Quantity(n)
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		*q = Quantity(int(f))
		return nil
	}
	unquoted := strings.Trim(raw, `"`)
	if n, err := strconv.ParseInt(strings.TrimSpace(unquoted), 10, 64); err == nil {
		*q = Quantity(n)
		return nil
	}
	*q = 0
	return nil
}

// Int returns the quantity clamped at zero.
func (q Quantity) Int() int {
	if q < 0 {
		return 0
	}
	return int(q)
}

// CartLine is the snapshot of one storefront cart row as stored inside an
// order document.
type CartLine struct {
	Name    string   `json:"name"`
	Qty     Quantity `json:"qty"`
	Unit    string   `json:"unit,omitempty"`
	Icon    string   `json:"icon,omitempty"`
	Image   string   `json:"image,omitempty"`
	Weighed bool     `json:"weighed,omitempty"`
	Extra   bool     `json:"extra,omitempty"`
}

// CartLines is the serialized cart column on orders. Stored as a JSON
// document so historical records with missing fields keep loading.
type CartLines []CartLine

// Value implements driver.Valuer.
func (c CartLines) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	data, err := json.Marshal([]CartLine(c))
	if err != nil {
		return nil, fmt.Errorf("cart lines: marshal: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner. A null or malformed column yields a nil slice,
// never an error: old orders must stay readable for reporting.
func (c *CartLines) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cart lines: unsupported scan type %T", value)
	}

	if len(raw) == 0 {
		*c = nil
		return nil
	}

	var lines []CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		*c = nil
		return nil
	}
	*c = lines
	return nil
}

// GormDataType tells GORM how to map the column.
func (CartLines) GormDataType() string {
	return "jsonb"
}
