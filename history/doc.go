// Package history records finished transport runs in a SQLite database so
// that deposits can be compared and summed across runs.
package history
