// Package cache provides a small thread-safe LRU cache for derived values
// that are expensive to recompute, such as translated shader source.
package cache
