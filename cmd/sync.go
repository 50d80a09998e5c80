package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"netbox-importer/core/config"
	"netbox-importer/core/database"
	"netbox-importer/core/diff"
	"netbox-importer/core/inventory"
	"netbox-importer/core/logger"
	"netbox-importer/core/netbox"
	"netbox-importer/core/storage"
	"netbox-importer/feature/history"
	"netbox-importer/feature/importer"
	"netbox-importer/feature/snapshot"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	inventoryFile string
	baselineFile  string
	dryRunSync    bool
	yesConfirm    bool
	archiveRun    bool
)

// syncCmd reconciles the local inventory against NetBox.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the local inventory against NetBox",
	Long: `Sync calculates the difference between a desired-state inventory
snapshot and the observed NetBox state, then applies the missing creates,
updates and deletes in dependency order.

Examples:
  # Report only (dry-run)
  netbox-importer sync --inventory inventory.json --dry-run

  # Apply against an empty baseline (first run)
  netbox-importer sync --inventory inventory.json

  # Apply against the snapshot of a previous run
  netbox-importer sync --inventory inventory.json --baseline last-run.json --yes`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&inventoryFile, "inventory", "", "Path to the desired-state inventory snapshot (required)")
	syncCmd.Flags().StringVar(&baselineFile, "baseline", "", "Path to the observed-state baseline snapshot")
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Calculate and report the plan without applying it")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm deletions (non-interactive)")
	syncCmd.Flags().BoolVar(&archiveRun, "archive", false, "Archive the resulting inventory snapshot in object storage")
	_ = syncCmd.MarkFlagRequired("inventory")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	runID := uuid.NewString()
	startedAt := time.Now()
	l.Info("Starting sync run", zap.String("run_id", runID))

	desired, err := loadSnapshotFile("local", inventoryFile, nil)
	if err != nil {
		return err
	}

	client, err := netbox.NewClient(cfg.Netbox)
	if err != nil {
		return fmt.Errorf("failed to create netbox client: %w", err)
	}
	observed := inventory.NewContext("netbox", client, l)
	if baselineFile != "" {
		if observed, err = loadSnapshotFile("netbox", baselineFile, client); err != nil {
			return err
		}
	}

	plan := diff.Calculate(desired, observed)
	printPlan(l, plan)

	if dryRunSync {
		l.Info("Dry-run mode: No changes were made.")
		recordRun(ctx, l, cfg, &history.Run{
			ID:        runID,
			StartedAt: startedAt,
			DryRun:    true,
			Intents:   plan.Len(),
			Status:    history.RunStatusSuccess,
		})
		return nil
	}

	if planDeletes(plan) > 0 && !confirmDeletions() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	adapter := importer.New(observed, client, l, cfg.Importer)
	summary, applyErr := adapter.ApplyPlan(ctx, plan, desired)

	l.Info("Sync run finished",
		zap.String("run_id", runID),
		zap.Int("applied", summary.Applied),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))

	run := &history.Run{
		ID:        runID,
		StartedAt: startedAt,
		Intents:   plan.Len(),
		Applied:   summary.Applied,
		Skipped:   summary.Skipped,
		Failed:    summary.Failed,
		Status:    history.RunStatusSuccess,
	}
	if applyErr != nil {
		run.Status = history.RunStatusFailed
		run.Error = applyErr.Error()
	}
	recordRun(ctx, l, cfg, run)

	if archiveRun {
		archiveSnapshot(ctx, l, cfg, runID, adapter.Inventory().Export())
	}

	return applyErr
}

// loadSnapshotFile reads a snapshot file into a fresh context.
func loadSnapshotFile(name, path string, client netbox.Client) (*inventory.Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer f.Close()

	snap, err := inventory.ReadSnapshot(f)
	if err != nil {
		return nil, err
	}

	inv := inventory.NewContext(name, client, nil)
	if err := inv.Load(snap); err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", path, err)
	}
	return inv, nil
}

// printPlan reports the plan using the logger.
func printPlan(l *zap.Logger, plan *diff.Plan) {
	creates, updates, deletes := 0, 0, 0
	for _, intent := range plan.Intents {
		switch intent.Op {
		case diff.OpCreate:
			creates++
		case diff.OpUpdate:
			updates++
		case diff.OpDelete:
			deletes++
		}
	}

	l.Info("Reconciliation plan",
		zap.Int("total", plan.Len()),
		zap.Int("creates", creates),
		zap.Int("updates", updates),
		zap.Int("deletes", deletes),
	)

	// Show a sample of intents (max 5 for logger)
	maxShow := 5
	if plan.Len() < maxShow {
		maxShow = plan.Len()
	}
	for _, intent := range plan.Intents[:maxShow] {
		l.Info("Planned intent",
			zap.String("op", string(intent.Op)),
			zap.String("kind", string(intent.Kind)),
			zap.String("uid", intent.UID),
		)
	}
	if plan.Len() > maxShow {
		l.Info("Additional intents not shown", zap.Int("count", plan.Len()-maxShow))
	}
}

func planDeletes(plan *diff.Plan) int {
	deletes := 0
	for _, intent := range plan.Intents {
		if intent.Op == diff.OpDelete {
			deletes++
		}
	}
	return deletes
}

// recordRun persists the run in the optional history database.
func recordRun(ctx context.Context, l *zap.Logger, cfg *config.Config, run *history.Run) {
	run.FinishedAt = time.Now()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		l.Warn("Optional run history database unavailable", zap.Error(err))
		return
	}

	svc := history.NewService(db, l)
	if err := svc.Migrate(); err != nil {
		l.Warn("Failed to migrate run history schema", zap.Error(err))
		return
	}
	if err := svc.Record(ctx, run); err != nil {
		l.Warn("Failed to record run", zap.Error(err))
	}
}

// archiveSnapshot uploads the run's inventory to the snapshot bucket.
func archiveSnapshot(ctx context.Context, l *zap.Logger, cfg *config.Config, runID string, snap *inventory.Snapshot) {
	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		l.Warn("Snapshot archive unavailable", zap.Error(err))
		return
	}

	archiver := snapshot.NewArchiver(store, cfg.Storage.Bucket, l)
	if err := archiver.EnsureBucket(ctx); err != nil {
		l.Warn("Snapshot archive unavailable", zap.Error(err))
		return
	}
	if err := archiver.Archive(ctx, runID, snap); err != nil {
		l.Warn("Failed to archive snapshot", zap.Error(err))
	}
}

// confirmDeletions prompts the user for confirmation or uses --yes flag.
func confirmDeletions() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  The plan contains deletions. Type 'yes' to confirm: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
