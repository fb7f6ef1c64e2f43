package services

// DuplicateGroup is a set of rows sharing one key, in input order
type DuplicateGroup[T any] struct {
	Key  string
	Rows []T
}

// DuplicateGroups returns every key carried by more than one row, ordered by
// first appearance. The input is not modified.
func DuplicateGroups[T any](rows []T, key func(T) string) []DuplicateGroup[T] {
	byKey := make(map[string][]T)
	var order []string
	for _, row := range rows {
		k := key(row)
		if _, seen := byKey[k]; !seen {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], row)
	}

	var groups []DuplicateGroup[T]
	for _, k := range order {
		if len(byKey[k]) > 1 {
			groups = append(groups, DuplicateGroup[T]{Key: k, Rows: byKey[k]})
		}
	}
	return groups
}

// Dedupe keeps the first row for every key and drops later ones. It returns
// a new slice and is idempotent.
func Dedupe[T any](rows []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(rows))
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		k := key(row)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, row)
	}
	return out
}
