// Command tractor-sim runs batches of self-play Tractor rounds and writes a
// JSONL event log per run, ready for tractor-report.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ejfn/tractor-go/internal/sim"
)

func main() {
	_ = godotenv.Load()

	games := flag.Int("games", 100, "number of self-play games")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "run seed (per-game seeds derive from it)")
	logDir := flag.String("log-dir", envOr("TRACTOR_LOG_DIR", "logs"), "directory for JSONL game logs")
	version := flag.String("app-version", envOr("TRACTOR_APP_VERSION", "dev"), "version stamped on every log row")
	flag.Parse()

	if err := os.MkdirAll(*logDir, 0o755); err != nil {
		logrus.WithError(err).Fatal("create log directory")
	}
	path := filepath.Join(*logDir, fmt.Sprintf("sim-%d.jsonl", time.Now().Unix()))
	f, err := os.Create(path)
	if err != nil {
		logrus.WithError(err).Fatal("create log file")
	}
	defer f.Close()

	gameLog := logrus.New()
	gameLog.SetOutput(f)
	gameLog.SetFormatter(&logrus.JSONFormatter{})

	cfg := sim.Config{Games: *games, Seed: *seed, AppVersion: *version}
	start := time.Now()
	results, err := sim.NewRunner(cfg, gameLog).Run()
	if err != nil {
		logrus.WithError(err).Fatal("simulation failed")
	}

	wins, points, degenerate := 0, 0, 0
	for _, r := range results {
		if r.AttackingWon {
			wins++
		}
		points += r.AttackingPoints
		degenerate += r.DegenerateCards
	}
	logrus.WithFields(logrus.Fields{
		"games":           len(results),
		"seed":            *seed,
		"attackingWins":   wins,
		"avgPoints":       float64(points) / float64(len(results)),
		"degenerateCards": degenerate,
		"elapsed":         time.Since(start).Round(time.Millisecond).String(),
		"log":             path,
	}).Info("simulation complete")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
