// Package algo contains the in-node search and slice editing helpers used
// while traversing and restructuring the b+ tree.
package algo

import "sort"

const searchThreshold = 32

// FindChildIndex returns the index of the child pointer to follow for key:
// the position of the first separator strictly greater than key, or
// len(separators) when key belongs under the sentinel child.
func FindChildIndex(separators []int, key int) int {
	if len(separators) < searchThreshold {
		i := 0
		for i < len(separators) && key >= separators[i] {
			i++
		}
		return i
	}

	return sort.Search(len(separators), func(i int) bool {
		return key < separators[i]
	})
}

// FindKey returns the index of key in a sorted key slice and whether it was
// present. When it is absent the index is the position key would be inserted
// at to keep the slice sorted.
func FindKey(keys []int, key int) (int, bool) {
	if len(keys) < searchThreshold {
		pos := 0
		for pos < len(keys) && keys[pos] < key {
			pos++
		}
		return pos, pos < len(keys) && keys[pos] == key
	}

	pos := sort.SearchInts(keys, key)
	return pos, pos < len(keys) && keys[pos] == key
}

// InsertAt inserts v at index i, shifting the tail right. The spare capacity
// of s is reused when available.
func InsertAt[T any](s []T, i int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// RemoveAt removes the element at index i, shifting the tail left.
func RemoveAt[T any](s []T, i int) []T {
	copy(s[i:], s[i+1:])
	var zero T
	s[len(s)-1] = zero
	return s[:len(s)-1]
}

// Prepend returns head followed by s, reusing the backing array of s when it
// has room for both.
func Prepend[T any](s []T, head ...T) []T {
	if len(head) == 0 {
		return s
	}
	n := len(s)
	if cap(s) >= n+len(head) {
		s = s[:n+len(head)]
	} else {
		grown := make([]T, n+len(head))
		copy(grown, s)
		s = grown
	}
	copy(s[len(head):], s[:n])
	copy(s, head)
	return s
}
