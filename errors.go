package life

import "errors"

var (
	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = errors.New("life: invalid configuration")

	// ErrStateSize is returned when a cell-state slice does not match the grid.
	ErrStateSize = errors.New("life: cell state length does not match grid")
)
