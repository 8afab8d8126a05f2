package pipedrive

import (
	"encoding/json"
	"math"
	"strconv"
)

// Response is a decoded JSON object returned by the Pipedrive API.
// Numbers are kept as json.Number so the body round-trips unchanged.
type Response map[string]any

// Data returns the "data" envelope when it is an object.
func (r Response) Data() map[string]any {
	data, _ := r["data"].(map[string]any)
	return data
}

// List returns the "data" envelope when it is an array of objects.
func (r Response) List() []map[string]any {
	raw, _ := r["data"].([]any)
	list := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if obj, ok := entry.(map[string]any); ok {
			list = append(list, obj)
		}
	}
	return list
}

// Items returns the nested "item" objects of a search response
// (data.items[].item), in the order the API returned them.
func (r Response) Items() []map[string]any {
	raw, _ := r.Data()["items"].([]any)
	items := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		wrapper, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		item, _ := wrapper["item"].(map[string]any)
		items = append(items, item)
	}
	return items
}

// ID returns data.id as an integer when it is numeric.
func (r Response) ID() (int64, bool) {
	return IntValue(r.Data()["id"])
}

// IntValue converts a decoded JSON number to int64.
func IntValue(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, false
		}
		return int64(f), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}
