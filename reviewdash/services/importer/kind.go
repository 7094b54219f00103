package importer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind selects the target table of an import.
type Kind string

const (
	KindReviews      Kind = "reviews"
	KindIntents      Kind = "intents"
	KindWorkAreas    Kind = "work_areas"
	KindCapabilities Kind = "capabilities"
	KindTraining     Kind = "training"
)

func Kinds() []Kind {
	return []Kind{KindReviews, KindIntents, KindWorkAreas, KindCapabilities, KindTraining}
}

// ParseKind accepts the table names used by the CLI --kind flag.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Snapshot kinds are replaced wholesale on every import.
func (k Kind) Snapshot() bool {
	return k != KindReviews
}

// DetectKind dispatches on substrings of the file name.
func DetectKind(path string) (Kind, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "intent_broader_categories"):
		return KindIntents, nil
	case strings.Contains(name, "work_area_broader_categories"):
		return KindWorkAreas, nil
	case strings.Contains(name, "capabilit"):
		return KindCapabilities, nil
	case strings.Contains(name, "training_recommendation"):
		return KindTraining, nil
	case strings.HasSuffix(name, ".csv"):
		return KindReviews, nil
	}
	return "", fmt.Errorf("%w: cannot infer from %s", ErrUnknownKind, path)
}
