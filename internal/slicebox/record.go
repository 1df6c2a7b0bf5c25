package slicebox

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrNoID is returned when a record carries no usable numeric id.
var ErrNoID = errors.New("record has no id")

// Record is one server-defined row (a box transaction or a log message).
// Its attributes are owned by the server; the monitor only reads "id" and
// whatever columns a table chooses to display.
type Record map[string]any

// ID returns the record's numeric id.
func (r Record) ID() (int64, error) {
	switch v := r["id"].(type) {
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNoID, v.String())
		}
		return id, nil
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, ErrNoID
	}
}

// Text renders one attribute for display. Missing keys render empty.
func (r Record) Text(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

// IDs collects the ids of records, failing on the first record without one.
func IDs(records []Record) ([]int64, error) {
	ids := make([]int64, 0, len(records))
	for i, r := range records {
		id, err := r.ID()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Page is one page of records as returned by a paged GET.
type Page struct {
	StartIndex int
	Count      int
	Records    []Record
}

// HasMore reports whether a following page may exist. Slicebox returns
// bare arrays without a total, so a full page is the only signal.
func (p Page) HasMore() bool {
	return p.Count > 0 && len(p.Records) >= p.Count
}
