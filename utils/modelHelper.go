package utils

import (
	"context"

	"github.com/mmsanduk/mahall_backend/config"
)

/* DB fetching */

// fetch model from db
// (ctx's tenant_id is used in query's WHERE, may return RecordNotFound)
func FetchModel[T any](ctx context.Context, tenantId string, id int, associations ...string) (*T, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("tenant_id = ?", tenantId)
	// preloading
	for _, field := range associations {
		dbCtx.Preload(field)
	}
	var result T
	err := dbCtx.First(&result, id).Error
	if err != nil {
		return nil, ErrorRecordNotFound
	}
	return &result, nil
}

// fetch all models from db
// (ctx's tenant_id is used in query's WHERE)
func FetchAllModels[T any](ctx context.Context, tenantId string, associations ...string) ([]*T, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("tenant_id = ?", tenantId)
	// preloading
	for _, field := range associations {
		dbCtx.Preload(field)
	}
	var results []*T
	err := dbCtx.Find(&results).Error
	if err != nil {
		return nil, ErrorRecordNotFound
	}
	return results, nil
}
