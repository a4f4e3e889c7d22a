package config

import (
	"context"
	"strings"

	"github.com/mmsanduk/mahall_backend/appctx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TenantGuardPlugin enforces multi-tenant isolation by automatically scoping
// queries/updates/deletes to the request's tenant_id when the model has a tenant_id column.
//
// NOTE:
// - This does NOT apply to Raw SQL queries. Those must include tenant_id manually.
// - Admin/internal bypass is explicit via context flags.
type TenantGuardPlugin struct{}

func NewTenantGuardPlugin() *TenantGuardPlugin { return &TenantGuardPlugin{} }

func (p *TenantGuardPlugin) Name() string { return "tenant_guard" }

func (p *TenantGuardPlugin) Initialize(db *gorm.DB) error {
	if err := db.Callback().Query().Before("gorm:query").Register("tenant_guard:query", tenantGuardCallback); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("tenant_guard:row", tenantGuardCallback); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("tenant_guard:update", tenantGuardCallback); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("tenant_guard:delete", tenantGuardCallback); err != nil {
		return err
	}
	return nil
}

func tenantGuardCallback(db *gorm.DB) {
	if db == nil || db.Statement == nil {
		return
	}
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	if shouldBypassTenantScope(ctx) {
		return
	}
	tenantID := tenantIdFromContext(ctx)
	if tenantID == "" {
		return
	}

	// Only apply if the current model/table includes a tenant_id column.
	if db.Statement.Schema == nil {
		return
	}
	hasTenantID := false
	for _, f := range db.Statement.Schema.Fields {
		if strings.EqualFold(f.DBName, "tenant_id") {
			hasTenantID = true
			break
		}
	}
	if !hasTenantID {
		return
	}

	// Don't duplicate an explicit tenant filter.
	if whereHasTenantID(db.Statement.Clauses["WHERE"]) {
		return
	}

	db.Statement.AddClause(clause.Where{
		Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: db.Statement.Table, Name: "tenant_id"},
				Value:  tenantID,
			},
		},
	})
}

func tenantIdFromContext(ctx context.Context) string {
	if v, ok := appctx.GetString(ctx, appctx.ContextKeyTenantId); ok && v != "" {
		return v
	}
	return ""
}

func shouldBypassTenantScope(ctx context.Context) bool {
	admin, ok := appctx.GetBool(ctx, appctx.ContextKeyIsAdmin)
	return ok && admin
}

func whereHasTenantID(c clause.Clause) bool {
	if c.Expression == nil {
		return false
	}
	w, ok := c.Expression.(clause.Where)
	if !ok {
		return false
	}
	for _, e := range w.Exprs {
		if exprHasTenantID(e) {
			return true
		}
	}
	return false
}

func exprHasTenantID(e clause.Expression) bool {
	switch v := e.(type) {
	case clause.Eq:
		return colIsTenantID(v.Column)
	case clause.Neq:
		return colIsTenantID(v.Column)
	case clause.Gt:
		return colIsTenantID(v.Column)
	case clause.Gte:
		return colIsTenantID(v.Column)
	case clause.Lt:
		return colIsTenantID(v.Column)
	case clause.Lte:
		return colIsTenantID(v.Column)
	case clause.IN:
		return colIsTenantID(v.Column)
	case clause.AndConditions:
		for _, x := range v.Exprs {
			if exprHasTenantID(x) {
				return true
			}
		}
		return false
	case clause.OrConditions:
		for _, x := range v.Exprs {
			if exprHasTenantID(x) {
				return true
			}
		}
		return false
	case clause.Expr:
		// Best-effort for raw expressions.
		return strings.Contains(strings.ToLower(v.SQL), "tenant_id")
	default:
		return false
	}
}

func colIsTenantID(col any) bool {
	switch c := col.(type) {
	case string:
		return strings.EqualFold(c, "tenant_id")
	case clause.Column:
		return strings.EqualFold(c.Name, "tenant_id")
	default:
		return false
	}
}
