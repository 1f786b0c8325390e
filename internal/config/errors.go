package config

import (
	"errors"
	"fmt"
)

// ErrDuplicateBlock is returned when a singular block appears in more than one file.
var ErrDuplicateBlock = errors.New("block defined more than once")

func errDuplicate(block string) error {
	return fmt.Errorf("config: %w: %s", ErrDuplicateBlock, block)
}
