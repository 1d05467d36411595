package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// OptionalID distinguishes an absent JSON field from an explicit null.
// Set is true whenever the key was present; ID is nil for null.
type OptionalID struct {
	Set bool
	ID  *uint
}

// UnmarshalJSON is only invoked when the key is present.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.ID = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.ID = &id
	return nil
}

// OptionalTime is OptionalID for RFC 3339 timestamps.
type OptionalTime struct {
	Set  bool
	Time *time.Time
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Time = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	o.Time = &t
	return nil
}

// Column returns the value to store: the time, or nil to clear the column.
func (o OptionalTime) Column() any {
	if o.Time == nil {
		return nil
	}
	return *o.Time
}
