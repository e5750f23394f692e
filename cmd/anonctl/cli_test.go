package main

import (
	"anon-chat/auth"
	"anon-chat/domain/event"
	"anon-chat/infrastructure/storage"
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "anonctl-secret-for-tests"

func executeCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ADMIN_SECRET", testSecret)
	t.Setenv("ANONCTL_COLOURS", "false")

	root := newRootCmd()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stdout)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func seedLedger(t *testing.T, outcomes ...storage.DiskOutcome) string {
	t.Helper()
	dir := t.TempDir()
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	repository := storage.NewOutcomeRepository(db, logs.GetLoggerFromLevel(slog.LevelError), nil)
	for _, o := range outcomes {
		require.NoError(t, repository.StoreOutcome(o))
	}
	require.NoError(t, db.Close())
	return dir
}

func TestSessionsListsLedger(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	revealed := storage.DiskOutcome{ID: uuid.New(), Reason: event.EndRevealed, StartedAt: at, EndedAt: at.Add(90 * time.Second), Relayed: 14}
	declined := storage.DiskOutcome{ID: uuid.New(), Reason: event.EndDeclined, StartedAt: at, EndedAt: at.Add(time.Hour), Relayed: 2}
	dir := seedLedger(t, revealed, declined)

	stdout, err := executeCLI(t, "sessions", "--db", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, revealed.ID.String())
	assert.Contains(t, stdout, "1m30s")
	assert.Contains(t, stdout, "14")
	// Most recent first
	assert.Less(t, strings.Index(stdout, declined.ID.String()), strings.Index(stdout, revealed.ID.String()))
}

func TestSessionsPaginates(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	dir := seedLedger(t,
		storage.DiskOutcome{ID: uuid.New(), Reason: event.EndStopped, StartedAt: at, EndedAt: at.Add(time.Minute)},
		storage.DiskOutcome{ID: uuid.New(), Reason: event.EndStopped, StartedAt: at, EndedAt: at.Add(2 * time.Minute)},
	)

	stdout, err := executeCLI(t, "sessions", "--db", dir, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "next page: --cursor")
}

func TestTokenIsValidAdminToken(t *testing.T) {
	stdout, err := executeCLI(t, "token", "--operator", "alice", "--ttl", "10m")
	require.NoError(t, err)

	claims, err := auth.NewSigner(testSecret).ValidateToken(strings.TrimSpace(stdout))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Operator)
	assert.True(t, claims.HasRole("admin"))
}
