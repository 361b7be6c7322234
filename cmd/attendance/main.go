package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/progenxxx/hris-sub011/internal/config"
	"github.com/progenxxx/hris-sub011/internal/domain/attendance"
	"github.com/progenxxx/hris-sub011/internal/pkg/database"
	"github.com/progenxxx/hris-sub011/internal/repository/postgresql"
	attendanceService "github.com/progenxxx/hris-sub011/internal/service/attendance"
)

const usage = `Usage: attendance <command> [flags]

Commands:
  recalculate   Recompute late/undertime/hours-worked for stored rows
  fix           Repair night-shift import inconsistencies, then recompute

Flags:
  -employee-id string   limit the run to one employee
  -date string          single day (YYYY-MM-DD); wins over a date range
  -start-date string    inclusive range start (YYYY-MM-DD)
  -end-date string      inclusive range end (YYYY-MM-DD)
  -dry-run              report what would change without persisting anything
  -batch-size int       rows read per chunk (default BATCH_SIZE env or 100)
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}

	command := os.Args[1]
	if command == "help" || command == "-h" || command == "--help" {
		fmt.Print(usage)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogger(cfg.App.LogLevel)

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	employeeID := fs.String("employee-id", "", "limit the run to one employee")
	dateStr := fs.String("date", "", "single day (YYYY-MM-DD)")
	startStr := fs.String("start-date", "", "inclusive range start (YYYY-MM-DD)")
	endStr := fs.String("end-date", "", "inclusive range end (YYYY-MM-DD)")
	dryRun := fs.Bool("dry-run", false, "report changes without persisting")
	batchSize := fs.Int("batch-size", cfg.Batch.Size, "rows read per chunk")
	if err := fs.Parse(os.Args[2:]); err != nil {
		return err
	}

	req := attendance.BatchRequest{
		DryRun:    *dryRun,
		BatchSize: *batchSize,
	}
	if *employeeID != "" {
		req.Filter.EmployeeID = employeeID
	}
	if req.Filter.Date, err = parseDate(*dateStr); err != nil {
		return err
	}
	if req.Filter.StartDate, err = parseDate(*startStr); err != nil {
		return err
	}
	if req.Filter.EndDate, err = parseDate(*endStr); err != nil {
		return err
	}

	// An interrupted live run cancels the context mid-transaction and nothing
	// is persisted.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	svc := attendanceService.NewAttendanceService(db, attendanceRepo, attendanceService.DefaultPolicy())

	var report attendance.BatchReport
	switch command {
	case "recalculate":
		report, err = svc.Recalculate(ctx, req)
	case "fix":
		report, err = svc.FixImported(ctx, req)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		return err
	}

	mode := "live"
	if req.DryRun {
		mode = "dry-run"
	}
	fmt.Printf("%s (%s): total=%d processed=%d changed=%d errors=%d\n",
		command, mode, report.TotalRecords, report.Processed, report.Changed, report.Errors)
	return nil
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return &t, nil
}
