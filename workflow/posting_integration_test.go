package workflow_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/models"
	"github.com/mmsanduk/mahall_backend/utils"
	"github.com/mmsanduk/mahall_backend/workflow"
	"github.com/shopspring/decimal"
)

// Posting round-trip harness against a real MySQL.
//
// Usage: INTEGRATION_TESTS=1 DB_USER=... DB_PASSWORD=... DB_HOST=... \
//        DB_PORT=... DB_NAME=... go test ./workflow -run PostingRoundTrip -v

func TestPostingRoundTrip(t *testing.T) {
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run DB integration tests")
	}

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		t.Fatal("database not initialized; set DB_* env vars")
	}
	models.MigrateTable()

	tenantId := "it-" + time.Now().Format("150405")
	ctx := utils.SetTenantIdInContext(context.Background(), tenantId)
	logger := config.GetLogger()

	tenant := models.Tenant{ID: tenantId, Name: "Integration", Timezone: models.DefaultTimezone, IsActive: utils.NewTrue()}
	if err := db.WithContext(ctx).Create(&tenant).Error; err != nil {
		t.Fatalf("create tenant: %v", err)
	}
	institute := models.Institute{TenantId: tenantId, Name: "General", IsActive: utils.NewTrue()}
	if err := db.WithContext(ctx).Create(&institute).Error; err != nil {
		t.Fatalf("create institute: %v", err)
	}
	account := models.InstituteAccount{
		TenantId:    tenantId,
		InstituteId: institute.ID,
		Name:        "Main",
		Balance:     decimal.NewFromInt(1000),
		IsActive:    utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&account).Error; err != nil {
		t.Fatalf("create account: %v", err)
	}

	// Post income 500 and expense 200: balance must land at 1300.
	_, err := workflow.PostTransaction(ctx, db, logger, workflow.PostingRequest{
		TenantId:    tenantId,
		InstituteId: institute.ID,
		LedgerName:  "Donations",
		LedgerType:  models.LedgerTypeIncome,
		Amount:      decimal.NewFromInt(500),
		Date:        time.Now().UTC(),
		SourceTag:   models.SourceTagManual,
		SourceId:    7001,
	})
	if err != nil {
		t.Fatalf("post income: %v", err)
	}
	_, err = workflow.PostTransaction(ctx, db, logger, workflow.PostingRequest{
		TenantId:    tenantId,
		InstituteId: institute.ID,
		LedgerName:  "Rent",
		LedgerType:  models.LedgerTypeExpense,
		Amount:      decimal.NewFromInt(200),
		Date:        time.Now().UTC(),
		SourceTag:   models.SourceTagManual,
		SourceId:    7001,
	})
	if err != nil {
		t.Fatalf("post expense: %v", err)
	}

	var got models.InstituteAccount
	if err := db.WithContext(ctx).First(&got, account.ID).Error; err != nil {
		t.Fatalf("reload account: %v", err)
	}
	if !got.Balance.Equal(decimal.NewFromInt(1300)) {
		t.Fatalf("balance after posting: expected 1300, got %s", got.Balance)
	}

	// Reversal restores the opening balance and removes the episode.
	if err := workflow.ReversePosting(ctx, db, logger, tenantId, models.SourceTagManual, 7001); err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if err := db.WithContext(ctx).First(&got, account.ID).Error; err != nil {
		t.Fatalf("reload account: %v", err)
	}
	if !got.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("balance after reversal: expected 1000, got %s", got.Balance)
	}
	items, err := models.FindLedgerItemsBySource(ctx, db, tenantId, models.SourceTagManual, 7001)
	if err != nil {
		t.Fatalf("find items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected episode deleted, found %d items", len(items))
	}

	// Reversing again is a no-op.
	if err := workflow.ReversePosting(ctx, db, logger, tenantId, models.SourceTagManual, 7001); err != nil {
		t.Fatalf("idempotent reverse: %v", err)
	}
}
