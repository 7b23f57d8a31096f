package task

import (
	"fmt"
	"strings"
)

// Resolve maps an id or a unique id prefix to the full task id.
// Matching is case-insensitive; an exact match wins over prefix matches.
func (s *Store) Resolve(prefix string) (string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrTaskNotFound)
	}

	var matches []string
	for _, t := range s.tasks {
		id := strings.ToLower(t.ID)
		if id == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrTaskNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d tasks", ErrAmbiguousID, prefix, len(matches))
	}
}

// PrefixLengths returns the shortest unique prefix length for each task id,
// keyed by lowercase id.
func (s *Store) PrefixLengths() map[string]int {
	ids := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		ids = append(ids, t.ID)
	}
	return UniquePrefixLengths(ids)
}

// UniquePrefixLengths returns the shortest unique prefix length for each ID.
func UniquePrefixLengths(ids []string) map[string]int {
	uniqueIDs := make([]string, 0, len(ids))
	seen := make(map[string]bool)
	for _, id := range ids {
		idLower := strings.ToLower(id)
		if idLower == "" || seen[idLower] {
			continue
		}
		seen[idLower] = true
		uniqueIDs = append(uniqueIDs, idLower)
	}

	lengths := make(map[string]int, len(uniqueIDs))
	for _, id := range uniqueIDs {
		lengths[id] = uniquePrefixLength(id, uniqueIDs)
	}
	return lengths
}

func uniquePrefixLength(id string, ids []string) int {
	for length := 1; length <= len(id); length++ {
		prefix := id[:length]
		unique := true
		for _, other := range ids {
			if other != id && strings.HasPrefix(other, prefix) {
				unique = false
				break
			}
		}
		if unique {
			return length
		}
	}
	return len(id)
}
