package factory

import (
	"time"

	"github.com/mcoot/scrumpoker/internal/dependencies/mocks"
	"github.com/mcoot/scrumpoker/internal/storage/memory"
	"github.com/mcoot/scrumpoker/internal/testutil"
	"github.com/mcoot/scrumpoker/internal/transport/ws"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.MockIDs
	Transport *testutil.RecordingTransport
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Broadcasts are recorded instead of written to sockets.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDs()
	transport := testutil.NewRecordingTransport()

	app := newWithDependencies(store, mockClock, mockIDs, transport, ws.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
		Transport: transport,
	}
}
