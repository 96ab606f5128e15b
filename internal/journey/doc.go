// Package journey implements the operations on a caller-owned journey state:
// creation, wholesale regeneration, day-count changes and toggling days as passed.
//
// The generated content of a day is never edited in place. The only mutation
// of an existing journey is flipping a day's HasPassed flag.
package journey
