package sim

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(cfg Config) (*Runner, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return NewRunner(cfg, logger), buf
}

func TestRunPlaysFullRounds(t *testing.T) {
	r, _ := newTestRunner(Config{Games: 2, Seed: 11, AppVersion: "test"})
	results, err := r.Run()
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, res := range results {
		assert.NotEqual(t, uuid.Nil, res.GameID)
		assert.Greater(t, res.Tricks, 0)
		assert.GreaterOrEqual(t, res.AttackingPoints, 0)
		assert.LessOrEqual(t, res.AttackingPoints, 200)
		assert.Equal(t, res.AttackingPoints >= attackingTarget, res.AttackingWon)
	}
	// Declarer rotates per game.
	assert.NotEqual(t, results[0].Declarer, results[1].Declarer)
}

func TestRunIsSeedDeterministic(t *testing.T) {
	cfg := Config{Games: 2, Seed: 7, AppVersion: "test"}
	r1, _ := newTestRunner(cfg)
	r2, _ := newTestRunner(cfg)

	a, err := r1.Run()
	require.NoError(t, err)
	b, err := r2.Run()
	require.NoError(t, err)

	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Tricks, b[i].Tricks, "game %d trick count", i)
		assert.Equal(t, a[i].AttackingPoints, b[i].AttackingPoints, "game %d points", i)
		assert.Equal(t, a[i].AttackingWon, b[i].AttackingWon, "game %d outcome", i)
	}
}

func TestRunEmitsJSONLEvents(t *testing.T) {
	r, buf := newTestRunner(Config{Games: 1, Seed: 3, AppVersion: "v1.2.3"})
	results, err := r.Run()
	require.NoError(t, err)
	require.Len(t, results, 1)

	counts := map[string]int{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var row map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &row), "line %q", line)
		if ev, ok := row["event"].(string); ok {
			counts[ev]++
			assert.Equal(t, results[0].GameID.String(), row["gameId"])
			assert.Equal(t, "v1.2.3", row["appVersion"])
		}
	}
	assert.Equal(t, 1, counts[EventGameInitialized])
	assert.Equal(t, 1, counts[EventGameOver])
	assert.Equal(t, results[0].Tricks, counts[EventTrickCompleted])
}

func TestRunRejectsBadConfig(t *testing.T) {
	r, _ := newTestRunner(Config{Games: 0})
	_, err := r.Run()
	require.Error(t, err)
}
