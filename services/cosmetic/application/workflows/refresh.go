// Package workflows holds the Temporal workflow that refreshes the catalog
// snapshot on a schedule, outside any API process.
package workflows

import (
	"context"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/fnbrowser/services/cosmetic/domain/repositories"
)

const (
	RefreshCatalogWorkflowName = "RefreshCatalogWorkflow"
	// RefreshCatalogWorkflowID keeps a single cron run per namespace.
	RefreshCatalogWorkflowID = "catalog-refresh"

	errTypeEmptyCatalog = "EmptyCatalog"
)

// RefreshResult describes the snapshot a refresh persisted.
type RefreshResult struct {
	SnapshotID string `json:"snapshot_id"`
	ItemCount  int    `json:"item_count"`
}

// Activities fetches the catalog and persists it. Saving a snapshot publishes
// catalog.refreshed through the outbox.
type Activities struct {
	Source    repositories.CosmeticSource
	Snapshots repositories.SnapshotRepository
}

// FetchAndSnapshot downloads the full catalog and saves it as the newest snapshot.
// An empty catalog is rejected without retry so it never replaces a good one.
func (a *Activities) FetchAndSnapshot(ctx context.Context) (*RefreshResult, error) {
	log := activity.GetLogger(ctx)

	items, err := a.Source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	if len(items) == 0 {
		return nil, temporal.NewNonRetryableApplicationError("catalog response had no items", errTypeEmptyCatalog, nil)
	}

	snap, err := a.Snapshots.Save(ctx, items, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	log.Info("catalog snapshot saved", "snapshot_id", snap.ID.String(), "items", len(items))
	return &RefreshResult{SnapshotID: snap.ID.String(), ItemCount: len(items)}, nil
}

// RefreshCatalogWorkflow runs FetchAndSnapshot with a bounded retry policy.
func RefreshCatalogWorkflow(ctx workflow.Context) (*RefreshResult, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        15 * time.Second,
			BackoffCoefficient:     2,
			MaximumAttempts:        3,
			NonRetryableErrorTypes: []string{errTypeEmptyCatalog},
		},
	})

	var a *Activities
	var result RefreshResult
	if err := workflow.ExecuteActivity(ctx, a.FetchAndSnapshot).Get(ctx, &result); err != nil {
		return nil, err
	}

	workflow.GetLogger(ctx).Info("catalog refreshed",
		"snapshot_id", result.SnapshotID,
		"items", result.ItemCount,
	)
	return &result, nil
}

// Module registers the refresh workflow and its activities on a worker.
type Module struct {
	Activities *Activities
}

func (m *Module) Register(w worker.Registry) {
	w.RegisterWorkflowWithOptions(RefreshCatalogWorkflow, workflow.RegisterOptions{Name: RefreshCatalogWorkflowName})
	w.RegisterActivity(m.Activities)
}

// ScheduleRefresh starts the cron-scheduled refresh. If a run with the same
// workflow ID is already open, the existing run is kept.
func ScheduleRefresh(ctx context.Context, c client.Client, taskQueue, cron string) (client.WorkflowRun, error) {
	run, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:           RefreshCatalogWorkflowID,
		TaskQueue:    taskQueue,
		CronSchedule: cron,
	}, RefreshCatalogWorkflowName)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", RefreshCatalogWorkflowName, err)
	}
	return run, nil
}
