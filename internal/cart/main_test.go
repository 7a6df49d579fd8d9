package cart

import (
	"testing"

	"go.uber.org/goleak"
)

// Session locks and sweeps must not leave goroutines behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
