package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// stringList accepts either a JSON array of strings or comma separated text.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = cleanList(items)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected string or list of strings")
	}
	*l = splitList(s)
	return nil
}

func (l stringList) Join() string {
	return strings.Join(l, ", ")
}

// flexNumber accepts numbers and numeric strings.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("expected number, got %q", s)
		}
		*n = flexNumber(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("expected number, got %s", data)
	}
	*n = flexNumber(f)
	return nil
}

func toFloatMap(in map[string]flexNumber) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[strings.TrimSpace(k)] = float64(v)
	}
	return out
}

func splitList(s string) []string {
	return cleanList(strings.Split(s, ","))
}

func cleanList(items []string) []string {
	out := []string{}
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

type intentRecord struct {
	StandardizedCategory string     `json:"standardized_category"`
	BroaderCategories    stringList `json:"broader_categories"`
	Keywords             stringList `json:"keywords"`
	Description          string     `json:"description"`
}

type workAreaRecord struct {
	StandardizedWorkArea string     `json:"standardized_work_area"`
	BroaderCategories    stringList `json:"broader_categories"`
	BroaderWorkAreas     stringList `json:"broader_work_areas"`
}

type capabilityRecord struct {
	StandardizedCategory string                `json:"standardized_category"`
	UserQuery            string                `json:"user_query"`
	CapabilityAnalysis   map[string]flexNumber `json:"capability_analysis"`
}

type trainingRecord struct {
	StandardizedCategory string `json:"standardized_category"`
	TrainingAnalysis     struct {
		TrainingQuery string                `json:"training_query"`
		TrainingPlan  map[string]flexNumber `json:"training_plan"`
	} `json:"training_analysis"`
}

// decodeArray splits a JSON array into raw elements so that one malformed
// element fails alone. Anything other than an array, null included, is a
// parse failure.
func decodeArray(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrParse)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return items, nil
}
