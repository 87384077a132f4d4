// Package engine computes per-station min/mean/max over a file of
// "<name>;<value>" records in a single parallel pass.
//
// The input is exposed as a read-only Source, split by Partition into
// newline-aligned ranges, and each range is scanned by its own worker into a
// private Table. Tables are folded into a Final by Merge once every worker has
// returned, and Render formats the Final sorted by name.
//
// Values are kept in tenths (int16) so the hot path never touches floating
// point.
package engine
