// Package rowgroup provides generic helpers for grouping and reordering
// slices by a comparable key. The traversal driver uses OrderByKeys to
// restore the caller's requested root order; GroupByKey and
// OrderGroupsByKeys have no caller inside this module.
package rowgroup

// KeyFunc extracts a key from a value.
type KeyFunc[K comparable, V any] func(V) K

// GroupByKey groups values by a key function, preserving the relative
// order values appear in within each group.
func GroupByKey[K comparable, V any](values []V, keyFn KeyFunc[K, V]) map[K][]V {
	result := make(map[K][]V, len(values))
	for _, v := range values {
		k := keyFn(v)
		result[k] = append(result[k], v)
	}
	return result
}

// OrderGroupsByKeys returns, for each key in order, the group of values
// that share it (or nil if the key has no group).
func OrderGroupsByKeys[K comparable, V any](keys []K, groups map[K][]V) [][]V {
	result := make([][]V, len(keys))
	for i, k := range keys {
		result[i] = groups[k]
	}
	return result
}

// OrderByKeys reorders values to match the order of keys, using keyFn to
// identify each value's key. A key with no matching value is left as the
// zero value of V.
func OrderByKeys[K comparable, V any](keys []K, values []V, keyFn KeyFunc[K, V]) []V {
	lookup := make(map[K]V, len(values))
	for _, v := range values {
		lookup[keyFn(v)] = v
	}
	result := make([]V, len(keys))
	for i, k := range keys {
		result[i] = lookup[k]
	}
	return result
}
