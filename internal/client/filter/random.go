package filter

import (
	"math/rand"

	"github.com/acemeet/aceletters/internal/client/models"
)

// Pick chooses one profile uniformly at random ("let luck choose").
// A nil rng uses the shared global source; tests pass a seeded one.
func Pick(profiles []models.Profile, rng *rand.Rand) (models.Profile, bool) {
	if len(profiles) == 0 {
		return models.Profile{}, false
	}
	var n int
	if rng != nil {
		n = rng.Intn(len(profiles))
	} else {
		n = rand.Intn(len(profiles))
	}
	return profiles[n], true
}
