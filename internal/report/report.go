// Package report aggregates simulation logs into round KPIs, locally or by
// uploading the raw rows to a Postgres warehouse.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LogEntry is one JSONL row as written by the simulator's logger. Unknown
// fields are ignored; rows that fail to parse are skipped, not fatal.
type LogEntry struct {
	Event      string         `json:"event"`
	GameID     string         `json:"gameId"`
	AppVersion string         `json:"appVersion"`
	Level      string         `json:"level"`
	Time       time.Time      `json:"time"`
	Data       map[string]any `json:"data"`
}

// LoadLogs reads every .jsonl and .log file under dir, in name order, and
// returns the parseable rows along with the count of skipped lines.
func LoadLogs(dir string) ([]LogEntry, int, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".jsonl", ".log":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("report: scan %s: %w", dir, err)
	}

	var entries []LogEntry
	skipped := 0
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return entries, skipped, fmt.Errorf("report: open %s: %w", path, err)
		}
		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			var e LogEntry
			if json.Unmarshal([]byte(line), &e) != nil || e.Event == "" {
				skipped++
				continue
			}
			entries = append(entries, e)
		}
		scanErr := sc.Err()
		f.Close()
		if scanErr != nil {
			return entries, skipped, fmt.Errorf("report: read %s: %w", path, scanErr)
		}
	}
	return entries, skipped, nil
}

// Summary holds the local KPIs over a batch of game logs.
type Summary struct {
	Games           int
	GamesByVersion  map[string]int
	AttackingWins   int
	DefendingWins   int
	TotalPoints     int
	TricksPerGame   float64
	PointsPerGame   float64
	DegenerateGames int
}

// AttackingWinRate is the share of finished games the attacking side won.
func (s Summary) AttackingWinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.AttackingWins) / float64(s.Games)
}

// Summarize folds the game_over rows into a Summary. Other events only
// contribute to per-version game counts via their game_initialized rows.
func Summarize(entries []LogEntry) Summary {
	s := Summary{GamesByVersion: make(map[string]int)}
	tricks := 0
	for _, e := range entries {
		switch e.Event {
		case "game_initialized":
			s.GamesByVersion[e.AppVersion]++
		case "game_over":
			s.Games++
			if b, _ := e.Data["attackingWon"].(bool); b {
				s.AttackingWins++
			} else {
				s.DefendingWins++
			}
			s.TotalPoints += intField(e.Data, "attackingPoints")
			tricks += intField(e.Data, "tricks")
			if intField(e.Data, "degenerateCards") > 0 {
				s.DegenerateGames++
			}
		}
	}
	if s.Games > 0 {
		s.TricksPerGame = float64(tricks) / float64(s.Games)
		s.PointsPerGame = float64(s.TotalPoints) / float64(s.Games)
	}
	return s
}

// intField reads a numeric JSON field, which arrives as float64 from
// encoding/json.
func intField(data map[string]any, key string) int {
	if v, ok := data[key].(float64); ok {
		return int(v)
	}
	return 0
}
