// Command tractor-report summarizes simulation logs locally and optionally
// uploads the raw rows to the Postgres warehouse.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ejfn/tractor-go/internal/report"
)

func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", "logs", "directory of JSONL game logs")
	upload := flag.Bool("upload", false, "upload raw rows to Postgres (DATABASE_URL)")
	flag.Parse()

	entries, skipped, err := report.LoadLogs(*dir)
	if err != nil {
		logrus.WithError(err).Fatal("load logs")
	}
	if skipped > 0 {
		logrus.WithField("lines", skipped).Warn("skipped unparseable log lines")
	}

	s := report.Summarize(entries)
	fmt.Printf("games:            %d\n", s.Games)
	fmt.Printf("attacking wins:   %d (%.1f%%)\n", s.AttackingWins, 100*s.AttackingWinRate())
	fmt.Printf("defending wins:   %d\n", s.DefendingWins)
	fmt.Printf("points per game:  %.1f\n", s.PointsPerGame)
	fmt.Printf("tricks per game:  %.1f\n", s.TricksPerGame)
	fmt.Printf("degenerate games: %d\n", s.DegenerateGames)
	versions := make([]string, 0, len(s.GamesByVersion))
	for v := range s.GamesByVersion {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	for _, v := range versions {
		fmt.Printf("  %-16s %d games\n", v, s.GamesByVersion[v])
	}

	if !*upload {
		return
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logrus.Fatal("upload requested but DATABASE_URL is not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	up, err := report.NewUploader(ctx, dsn)
	if err != nil {
		logrus.WithError(err).Fatal("connect warehouse")
	}
	defer up.Close()
	if err := up.EnsureSchema(ctx); err != nil {
		logrus.WithError(err).Fatal("ensure schema")
	}
	n, err := up.Upload(ctx, entries)
	if err != nil {
		logrus.WithError(err).Fatal("upload rows")
	}
	logrus.WithField("rows", n).Info("upload complete")
}
