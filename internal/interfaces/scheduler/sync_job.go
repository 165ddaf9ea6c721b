package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"

	domainplaid "finwise/internal/domain/plaid"
	"finwise/internal/infrastructure/plaid"
)

// ItemSyncJob fetches one linked item's latest batch from the aggregation
// provider and reconciles it into the store.
type ItemSyncJob struct {
	item        *domainplaid.Item
	client      plaid.ClientInterface
	syncService *domainplaid.SyncService
}

func NewItemSyncJob(item *domainplaid.Item, client plaid.ClientInterface, syncService *domainplaid.SyncService) *ItemSyncJob {
	return &ItemSyncJob{
		item:        item,
		client:      client,
		syncService: syncService,
	}
}

// Execute fetches the batch and runs one sync pass over it.
func (j *ItemSyncJob) Execute(ctx context.Context) error {
	log.Printf("Starting sync for item %s (user %d)", j.item.ID, j.item.UserID)

	batch, err := j.client.SyncTransactions(ctx, j.item.AccessToken)
	if err != nil {
		return fmt.Errorf("failed to fetch batch for item %s: %w", j.item.ID, err)
	}
	if batch.ItemID == "" {
		batch.ItemID = j.item.ID
	}
	batch.BankName = j.item.BankName

	result, err := j.syncService.Sync(ctx, j.item.UserID, j.item.AccessToken, batch)
	if err != nil {
		return fmt.Errorf("sync failed for item %s: %w", j.item.ID, err)
	}

	if len(result.Errors) > 0 {
		log.Printf("Sync for item %s completed with errors: added=%d modified=%d removed=%d skipped=%d errors=%d",
			j.item.ID, result.Added, result.Modified, result.Removed, result.Skipped, len(result.Errors))
		// Surface the error count so the run is marked for retry.
		return fmt.Errorf("sync completed with %d errors", len(result.Errors))
	}

	log.Printf("Sync for item %s completed: accounts created=%d, txns added=%d modified=%d removed=%d skipped=%d",
		j.item.ID, result.AccountsCreated, result.Added, result.Modified, result.Removed, result.Skipped)

	return nil
}

// UserID returns the owning user's id.
func (j *ItemSyncJob) UserID() string {
	return strconv.FormatInt(j.item.UserID, 10)
}

// Description returns a human-readable description of the job.
func (j *ItemSyncJob) Description() string {
	return fmt.Sprintf("Sync for item %s (user %d)", j.item.ID, j.item.UserID)
}
