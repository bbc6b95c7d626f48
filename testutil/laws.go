package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cs-au-dk/absint/analysis/absint"
)

// CheckLaws checks the lattice laws on every pair of the given states,
// extended with bottom and top.
func CheckLaws[S, A any](t *testing.T, lat *absint.Lattice[S, A], states ...S) {
	t.Helper()

	bot, top := lat.Bot(), lat.Top()
	all := append([]S{bot, top}, states...)

	for _, x := range all {
		assert.True(t, lat.Leq(bot, x), "⊥ ⊑ %v", x)
		assert.True(t, lat.Leq(x, top), "%v ⊑ ⊤", x)
		assert.True(t, lat.Eq(x, lat.Join(x, x)), "%v ⊔ %v = %v", x, x, lat.Join(x, x))

		for _, y := range all {
			ub := lat.Join(x, y)
			assert.True(t, lat.Leq(x, ub) && lat.Leq(y, ub), "%v ⊔ %v = %v is not an upper bound", x, y, ub)
			assert.True(t, lat.Eq(ub, lat.Join(y, x)), "%v ⊔ %v is not commutative", x, y)

			if lat.HasMeet() {
				lb := lat.Meet(x, y)
				assert.True(t, lat.Leq(lb, x) && lat.Leq(lb, y), "%v ⊓ %v = %v is not a lower bound", x, y, lb)
				assert.True(t, lat.Eq(lb, lat.Meet(y, x)), "%v ⊓ %v is not commutative", x, y)
			}

			eq := lat.Eq(x, y)
			assert.Equal(t, lat.Leq(x, y) && lat.Leq(y, x), eq, "%v = %v", x, y)
			if lat.Lt(x, y) {
				assert.False(t, eq, "%v < %v but %v = %v", x, y, x, y)
			}
		}
	}
}
