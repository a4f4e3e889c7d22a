package utils

import (
	"context"

	"github.com/mmsanduk/mahall_backend/appctx"
)

var (
	ContextKeyToken         = appctx.ContextKeyToken
	ContextKeyTenantId      = appctx.ContextKeyTenantId
	ContextKeyUserId        = appctx.ContextKeyUserId
	ContextKeyUserName      = appctx.ContextKeyUserName
	ContextKeyCorrelationId = appctx.ContextKeyCorrelationId

	ContextKeyIsAdmin = appctx.ContextKeyIsAdmin
)

func GetTenantIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyTenantId)
}

func GetUserIdFromContext(ctx context.Context) (int, bool) {
	return appctx.GetInt(ctx, ContextKeyUserId)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func SetTokenInContext(ctx context.Context, token string) context.Context {
	return appctx.Set(ctx, ContextKeyToken, token)
}

func SetTenantIdInContext(ctx context.Context, tenantId string) context.Context {
	return appctx.Set(ctx, ContextKeyTenantId, tenantId)
}

func SetUserIdInContext(ctx context.Context, userId int) context.Context {
	return appctx.Set(ctx, ContextKeyUserId, userId)
}

func SetUserNameInContext(ctx context.Context, userName string) context.Context {
	return appctx.Set(ctx, ContextKeyUserName, userName)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}

func SetIsAdminInContext(ctx context.Context, isAdmin bool) context.Context {
	return appctx.Set(ctx, ContextKeyIsAdmin, isAdmin)
}
