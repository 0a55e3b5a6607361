package util

import (
	"os"
	"path/filepath"

	"golang.org/x/exp/constraints"
)

func Clamp[A constraints.Integer | constraints.Float](v, lo, hi A) A {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Product returns the product of nums, 1 for an empty slice.
func Product[A constraints.Integer](nums ...A) A {
	var total A = 1
	for _, v := range nums {
		total *= v
	}
	return total
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
