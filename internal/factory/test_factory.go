package factory

import (
	"time"

	"github.com/mcoot/gomemo/internal/dependencies/mocks"
	"github.com/mcoot/gomemo/internal/services/replay"
	"github.com/mcoot/gomemo/internal/storage/memory"
	"github.com/mcoot/gomemo/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The mock random source returns 0 unless values are queued, so the
// opponent always waits exactly the configured minimum delay.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, replay.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// Sample game records used across tests
const (
	// SampleGame is a short 9x9 game: B(2,2) W(6,6) B(6,2) W(2,6) B pass
	SampleGame = "(;GM[1]FF[4]SZ[9]KM[6.5]PB[Alice]PW[Bob]GN[Sample];B[cc];W[gg];B[gc];W[cg];B[])"

	// HandicapGame starts with two black setup stones and white to move
	HandicapGame = "(;SZ[9]AB[cc][gg]PB[Carol]PW[Dan];W[ee];B[ce])"
)
