package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Metadata holds the type-specific attributes of an asset. Only images carry
// dimensions; every other kind of file leaves them at zero.
type Metadata struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// IsImage reports whether the metadata describes a transformable raster.
// Resizing is only ever attempted when this returns true.
func (m Metadata) IsImage() bool {
	return m.Width > 0 && m.Height > 0
}

func (m Metadata) Value() (driver.Value, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal Metadata: %w", err)
	}
	return b, nil
}
func (m *Metadata) Scan(src interface{}) error {
	if src == nil {
		*m = Metadata{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("Metadata.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("unmarshal Metadata: %w", err)
	}
	return nil
}
