package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	appErrors "github.com/noah-isme/ppdb-pengumuman-api/pkg/errors"
)

// FilterParam is one structured filter entry: a comparison value plus the
// match mode requested by the client (equals, contains).
type FilterParam struct {
	Value     interface{} `json:"value"`
	MatchMode string      `json:"matchMode"`
}

// Filters maps field names to filter parameters.
type Filters map[string]FilterParam

// ParseFilters decodes the `filters` query value and rejects fields outside
// the endpoint's allow-list.
func ParseFilters(raw string, allowed ...string) (Filters, error) {
	if strings.TrimSpace(raw) == "" {
		return Filters{}, nil
	}
	var filters Filters
	if err := json.Unmarshal([]byte(raw), &filters); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "filters must be a valid JSON object")
	}
	allowSet := make(map[string]struct{}, len(allowed))
	for _, field := range allowed {
		allowSet[field] = struct{}{}
	}
	for field := range filters {
		if _, ok := allowSet[field]; !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("filter field %q is not allowed", field))
		}
	}
	return filters, nil
}

// Int64 returns the filter value for key as an int64 when present.
func (f Filters) Int64(key string) *int64 {
	param, ok := f[key]
	if !ok || param.Value == nil {
		return nil
	}
	switch v := param.Value.(type) {
	case float64:
		value := int64(v)
		return &value
	case string:
		value, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil
		}
		return &value
	}
	return nil
}

// String returns the filter value for key as a trimmed string.
func (f Filters) String(key string) string {
	param, ok := f[key]
	if !ok || param.Value == nil {
		return ""
	}
	if s, ok := param.Value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
