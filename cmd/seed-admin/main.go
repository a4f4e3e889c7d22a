// seed-admin bootstraps a mahall: the tenant row, an admin user, a default
// institute with one bank account, and the starter ledgers the first reports
// expect.
//
// Usage:
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//   MAHALL_ID=demo MAHALL_NAME="Demo Mahall" go run ./cmd/seed-admin
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/models"
	"github.com/mmsanduk/mahall_backend/utils"
	"gorm.io/gorm"
)

const (
	defaultAdminUsername = "mahallAdmin"
	defaultAdminPassword = "M@hallAdmin1"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()

	tenantId := os.Getenv("MAHALL_ID")
	if tenantId == "" {
		fmt.Fprintln(os.Stderr, "MAHALL_ID is required")
		os.Exit(1)
	}

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	ctx := context.Background()
	ctx = utils.SetTenantIdInContext(ctx, tenantId)
	ctx = utils.SetUserIdInContext(ctx, 1)
	ctx = utils.SetUserNameInContext(ctx, "Seed")
	ctx = utils.SetIsAdminInContext(ctx, true)

	tenant := models.Tenant{
		ID:       tenantId,
		Name:     envOr("MAHALL_NAME", tenantId),
		Place:    os.Getenv("MAHALL_PLACE"),
		Timezone: envOr("MAHALL_TIMEZONE", models.DefaultTimezone),
		IsActive: utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Where("id = ?", tenantId).FirstOrCreate(&tenant).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to create tenant: %v\n", err)
		os.Exit(1)
	}

	adminId := seedAdminUser(ctx, db, tenantId)
	instituteId := seedDefaultInstitute(ctx, db, tenantId)
	seedDefaultAccount(ctx, db, tenantId, instituteId)
	seedStarterLedgers(ctx, db, tenantId)

	token, err := utils.JwtGenerate(adminId, tenantId, "admin")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to mint initial token: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Seeded mahall %q\n", tenantId)
	fmt.Printf("Initial API token (expires per TOKEN_HOUR_LIFESPAN):\n%s\n", token)
}

func seedAdminUser(ctx context.Context, db *gorm.DB, tenantId string) int {
	username := envOr("ADMIN_USERNAME", defaultAdminUsername)
	password := envOr("ADMIN_PASSWORD", defaultAdminPassword)

	var existing models.User
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND username = ?", tenantId, username).
		First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
			os.Exit(1)
		}
		hashed, err := utils.HashPassword(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
			os.Exit(1)
		}
		u := models.User{
			TenantId: tenantId,
			Username: username,
			Name:     "Mahall Admin",
			Password: string(hashed),
			Role:     "admin",
			IsActive: utils.NewTrue(),
		}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created admin user %q\n", username)
		return u.ID
	}

	updates := map[string]any{
		"role":      "admin",
		"is_active": utils.NewTrue(),
	}
	// Re-running the seed must not churn the stored hash when the password
	// has not changed.
	if utils.ComparePassword(existing.Password, password) != nil {
		hashed, err := utils.HashPassword(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
			os.Exit(1)
		}
		updates["password"] = string(hashed)
	}
	err = db.WithContext(ctx).Model(&models.User{}).
		Where("tenant_id = ? AND username = ?", tenantId, username).
		Updates(updates).Error
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Updated admin user %q\n", username)
	return existing.ID
}

func seedDefaultInstitute(ctx context.Context, db *gorm.DB, tenantId string) int {
	institute := models.Institute{
		TenantId: tenantId,
		Name:     envOr("DEFAULT_INSTITUTE_NAME", "General"),
		IsActive: utils.NewTrue(),
	}
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND name = ?", tenantId, institute.Name).
		FirstOrCreate(&institute).Error
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create default institute: %v\n", err)
		os.Exit(1)
	}
	return institute.ID
}

func seedDefaultAccount(ctx context.Context, db *gorm.DB, tenantId string, instituteId int) {
	account := models.InstituteAccount{
		TenantId:    tenantId,
		InstituteId: instituteId,
		Name:        "Main Account",
		IsActive:    utils.NewTrue(),
	}
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND institute_id = ? AND name = ?", tenantId, instituteId, account.Name).
		FirstOrCreate(&account).Error
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create default account: %v\n", err)
		os.Exit(1)
	}
}

func seedStarterLedgers(ctx context.Context, db *gorm.DB, tenantId string) {
	starters := []struct {
		name       string
		ledgerType models.LedgerType
	}{
		{"Varisangya", models.LedgerTypeIncome},
		{"Zakat", models.LedgerTypeIncome},
		{"Donations", models.LedgerTypeIncome},
		{"Salaries", models.LedgerTypeExpense},
		{"Maintenance", models.LedgerTypeExpense},
	}
	for _, s := range starters {
		if _, err := models.FindOrCreateLedger(ctx, db, tenantId, 0, s.name, s.ledgerType); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create ledger %q: %v\n", s.name, err)
			os.Exit(1)
		}
	}
}
