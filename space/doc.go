// Package space provides concrete state spaces for the search engine:
// weighted graphs with heuristic tables, terrain grids, and a YAML problem
// file format that loads either one as an Instance.
package space
