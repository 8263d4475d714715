// Package algo maps algorithm keys to step producers and display info.
//
// Sorts run over []int with the natural order. Traversals run over a
// grid.Grid. Unknown keys fall back to bubble sort.
package algo
