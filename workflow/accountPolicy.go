package workflow

import (
	"context"

	"github.com/mmsanduk/mahall_backend/models"
	"gorm.io/gorm"
)

// SelectPostingAccount picks the institute account whose running balance a
// posting should move. Current policy: the earliest-created active account of
// the institute, with id as tiebreaker. Returns nil when the institute has no
// active account, in which case the transaction is recorded without a balance
// update.
func SelectPostingAccount(ctx context.Context, tx *gorm.DB, tenantId string, instituteId int) (*models.InstituteAccount, error) {
	if instituteId <= 0 {
		return nil, nil
	}
	return models.FirstActiveAccount(ctx, tx, tenantId, instituteId)
}
