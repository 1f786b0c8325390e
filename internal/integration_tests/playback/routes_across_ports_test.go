package integration_tests

import (
	"testing"

	"github.com/specialistvlad/triadgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPlayback_RoutesAcrossPorts checks that sounds spill onto the next port
// once a port's channels are used up, and that every voice plays one note
// per chord on its own port and channel.
func TestPlayback_RoutesAcrossPorts(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Four channels per port: sounds 0-3 land on loop-1, 4-5 on loop-2.
	sessionHCL := `
		output "memory" "loop-1" {}
		output "memory" "loop-2" {}

		sounds {
			sounds_file       = "sounds.csv"
			ranges_file       = "ranges.csv"
			channels_per_port = 4
		}

		explore {
			start = ["C4", "E4", "G4"]
			steps = 3
			rule "scale_step" {}
		}

		progression {
			length   = 4
			beat     = "250ms"
			duration = "200ms"

			voice "first" {
				section      = "Strings"
				instrument   = "Violins 1"
				articulation = "Spiccato"
				voice        = 2
			}

			voice "second" {
				section      = "Strings"
				instrument   = "Violins 2"
				articulation = "Spiccato"
				voice        = 1
			}
		}
	`
	files := testutil.With(map[string]string{"session/main.hcl": sessionHCL})

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertBalanced(t, result, "loop-1")
	testutil.AssertBalanced(t, result, "loop-2")

	first := testutil.NotesOn(t, result, "loop-1")
	second := testutil.NotesOn(t, result, "loop-2")
	assert.Len(t, first, 1, "only Violins 1 plays on loop-1")
	assert.Len(t, first[3], 4)
	assert.Len(t, second, 1, "only Violins 2 plays on loop-2")
	assert.Len(t, second[0], 4)
}
