package teams

import (
	"log/slog"
	"os"
	"testing"

	"github.com/hugh/planit/internal/testutil"
	"github.com/hugh/planit/pkg/clock"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *testutil.TestSetup) {
	t.Helper()
	setup := testutil.NewTestContext(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService(setup.DB, logger), setup
}

func mustDate(t *testing.T, s string) clock.Date {
	t.Helper()
	d, err := clock.ParseDate(s)
	require.NoError(t, err)
	return d
}

func mustTime(t *testing.T, s string) *clock.Time {
	t.Helper()
	tm, err := clock.ParseTime(s)
	require.NoError(t, err)
	return &tm
}
