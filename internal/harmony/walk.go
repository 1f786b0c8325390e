package harmony

import (
	"context"
	"fmt"

	"github.com/specialistvlad/triadgrid/internal/ctxlog"
	"github.com/specialistvlad/triadgrid/internal/explore"
	"github.com/specialistvlad/triadgrid/internal/triad"
)

// Walk picks a progression of at most length chords starting at start.
//
// At each step it moves to the successor with the smallest voice-leading
// distance, preferring chords not yet played; ties go to the lower triad.
// The walk ends early when a chord has no successors. The heuristic is
// deterministic and makes no claim of optimality.
func Walk(ctx context.Context, g *explore.Graph[triad.Triad], start triad.Triad, length int) ([]triad.Triad, error) {
	logger := ctxlog.FromContext(ctx)
	if length <= 0 {
		return nil, nil
	}

	path := []triad.Triad{start}
	played := map[triad.Triad]struct{}{start: {}}
	curr := start
	for len(path) < length {
		successors, err := g.Successors(curr)
		if err != nil {
			return nil, fmt.Errorf("harmony: walk from %s: %w", curr, err)
		}
		next, ok := nearest(curr, successors, played)
		if !ok {
			logger.Debug("Walk: dead end.", "chord", curr, "length", len(path))
			break
		}
		path = append(path, next)
		played[next] = struct{}{}
		curr = next
	}
	logger.Debug("Walk: progression chosen.", "length", len(path))
	return path, nil
}

func nearest(from triad.Triad, candidates []triad.Triad, played map[triad.Triad]struct{}) (triad.Triad, bool) {
	var best triad.Triad
	found, bestFresh := false, false
	bestDist := 0
	for _, c := range candidates {
		_, seen := played[c]
		fresh := !seen
		d := from.Distance(c)
		switch {
		case !found:
		case fresh != bestFresh:
			if !fresh {
				continue
			}
		case d > bestDist:
			continue
		case d == bestDist && !c.Less(best):
			continue
		}
		best, bestDist, bestFresh, found = c, d, fresh, true
	}
	return best, found
}
