package npmtree

import (
	"bytes"
	"encoding/json"

	"github.com/depclose/depclose/pkg/errors"
)

// rawLimit caps how much offending input is attached to a parse error.
const rawLimit = 2048

// Node is one position in the dependency tree. The same physical package can
// appear as many Nodes under different parents; all occurrences share the
// same Path. A Node with an empty Path is a placeholder some listings emit
// and carries no on-disk location.
type Node struct {
	Version      string          `json:"version"`
	Path         string          `json:"path"`
	Dependencies map[string]Node `json:"dependencies"`
}

// Entry is one top-level workspace project in the listing.
type Entry struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Path         string          `json:"path"`
	Dependencies map[string]Node `json:"dependencies"`
}

// Parse decodes raw listing output into workspace entries.
//
// The input is either a single entry object or an array of entries; both
// forms decode to the same representation. An entry without a "dependencies"
// field simply has no dependencies. Malformed input returns a TREE_PARSE
// error carrying (a prefix of) the offending text for diagnostics.
func Parse(raw []byte) ([]Entry, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New(errors.ErrCodeTreeParse, "empty dependency listing")
	}

	if trimmed[0] == '[' {
		var entries []Entry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, parseError(err, trimmed)
		}
		return entries, nil
	}

	var entry Entry
	if err := json.Unmarshal(trimmed, &entry); err != nil {
		return nil, parseError(err, trimmed)
	}
	return []Entry{entry}, nil
}

func parseError(err error, raw []byte) error {
	if len(raw) > rawLimit {
		raw = raw[:rawLimit]
	}
	return errors.Wrap(errors.ErrCodeTreeParse, err, "decode dependency listing: %q", raw)
}
