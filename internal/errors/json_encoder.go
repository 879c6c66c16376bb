package errors

import (
	"encoding/json"
)

// ToJSON converts a Report to JSON. Keys are emitted deterministically:
// struct fields in declaration order, data keys sorted by
// encoding/json's map ordering.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error

	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// EncodeAll renders a slice of reports as a single JSON array,
// preserving report order. Used by embedders that collect diagnostics
// for machine consumption.
func EncodeAll(reports []*Report, compact bool) (string, error) {
	if reports == nil {
		reports = []*Report{}
	}
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(reports)
	} else {
		data, err = json.MarshalIndent(reports, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
