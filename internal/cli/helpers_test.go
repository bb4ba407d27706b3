package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/alexanderramin/confsched/internal/repository"
	"github.com/alexanderramin/confsched/internal/sessions"
	"github.com/alexanderramin/confsched/internal/testutil"
	"github.com/alexanderramin/confsched/internal/usermessage"
	"github.com/stretchr/testify/require"
)

// seedItems is a small three-day schedule used by the CLI tests.
func seedItems() []domain.TimetableItem {
	return []domain.TimetableItem{
		testutil.NewTestItem("Compose Workshop",
			testutil.WithID("ws-1"), testutil.WithDay(domain.DayWorkshop),
			testutil.WithSlot(10, 0, 120), testutil.WithRoom("Arctic Fox", 1)),
		testutil.NewTestItem("Opening Keynote",
			testutil.WithID("d1-1"), testutil.WithSlot(10, 0, 40),
			testutil.WithRoom("Flamingo", 1), testutil.WithSpeakers("Aiko")),
		testutil.NewTestItem("Coroutines Deep Dive",
			testutil.WithID("d1-2"), testutil.WithSlot(11, 0, 40),
			testutil.WithRoom("Giraffe", 2), testutil.WithSpeakers("Mika"),
			testutil.WithCategory("Concurrency")),
		testutil.NewTestItem("Testing at Scale",
			testutil.WithID("d2-1"), testutil.WithDay(domain.Day2),
			testutil.WithSlot(13, 0, 40), testutil.WithRoom("Hedgehog", 3)),
	}
}

// testApp wires a full App backed by an in-memory DB and seeds the schedule.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	store := sessions.NewStore(
		repository.NewSQLiteTimetableItemRepo(database),
		repository.NewSQLiteBookmarkRepo(database),
		testutil.NewTestUoW(database),
	)
	t.Cleanup(store.Close)
	require.NoError(t, store.ReplaceTimetable(context.Background(), seedItems()))

	return &App{
		Sessions: store,
		Settings: repository.NewSQLiteSettingsRepo(database),
		Messages: usermessage.NewHolder(),
	}
}

// executeCmd runs a cobra command and captures stdout and stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}
