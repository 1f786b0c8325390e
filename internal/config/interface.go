package config

import "context"

// Loader is the interface for a format-specific session loader.
type Loader interface {
	// Load reads every session file under the given paths, merges them into
	// one format-agnostic model and returns it normalized.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Merge folds src into dst. Outputs and rules accumulate; single blocks from
// src replace those in dst only when dst has none, so a second definition of
// the same block is an error.
func Merge(dst, src *Model) error {
	dst.Outputs = append(dst.Outputs, src.Outputs...)
	if src.Sounds != nil {
		if dst.Sounds != nil {
			return errDuplicate("sounds")
		}
		dst.Sounds = src.Sounds
	}
	if src.Explore != nil {
		if dst.Explore != nil {
			return errDuplicate("explore")
		}
		dst.Explore = src.Explore
	}
	if src.Progression != nil {
		if dst.Progression != nil {
			return errDuplicate("progression")
		}
		dst.Progression = src.Progression
	}
	return nil
}
