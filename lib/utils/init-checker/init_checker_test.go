package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type dep struct{}

func TestCheckInit(t *testing.T) {
	t.Run(`initialized dependencies pass`, func(t *testing.T) {
		require.NotPanics(t, func() {
			CheckInit("store", &dep{}, "name", "value")
		})
	})
	t.Run(`nil dependency panics`, func(t *testing.T) {
		require.PanicsWithValue(t, "store dependency not initialized", func() {
			CheckInit("store", nil)
		})
	})
	t.Run(`typed nil dependency panics`, func(t *testing.T) {
		var d *dep
		require.Panics(t, func() {
			CheckInit("store", d)
		})
	})
	t.Run(`odd arguments panic`, func(t *testing.T) {
		require.Panics(t, func() {
			CheckInit("store")
		})
	})
}
