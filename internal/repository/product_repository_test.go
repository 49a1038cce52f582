package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// queryRecorder captures every statement gorm builds, so tests can pin the
// exact SQL a repository emits without a database connection.
type queryRecorder struct {
	sqls []string
}

func (r *queryRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }
func (r *queryRecorder) Info(context.Context, string, ...interface{})     {}
func (r *queryRecorder) Warn(context.Context, string, ...interface{})     {}
func (r *queryRecorder) Error(context.Context, string, ...interface{})    {}
func (r *queryRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.sqls = append(r.sqls, sql)
}

func (r *queryRecorder) last(t *testing.T) string {
	t.Helper()
	assert.NotEmpty(t, r.sqls)
	if len(r.sqls) == 0 {
		return ""
	}
	return r.sqls[len(r.sqls)-1]
}

// newDryRunDB opens gorm with the mysql dialector in dry-run mode. sql.Open
// is lazy and version probing is skipped, so no connection is ever made.
func newDryRunDB(t *testing.T) (*gorm.DB, *queryRecorder) {
	t.Helper()
	rec := &queryRecorder{}
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "dryrun:dryrun@tcp(127.0.0.1:3306)/storefront?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, SkipDefaultTransaction: true, Logger: rec})
	assert.NoError(t, err)
	return db, rec
}

func TestProductRepository_FindByIDForUpdate_EmitsRowLock(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewProductRepository(db)

	_, _ = repo.FindByIDForUpdate(context.Background(), 1)

	assert.Contains(t, rec.last(t), "FOR UPDATE")
}

func TestProductRepository_FindByID_PlainReadIsUnlocked(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewProductRepository(db)

	_, _ = repo.FindByID(context.Background(), 1)

	assert.NotContains(t, rec.last(t), "FOR UPDATE")
}

func TestProductRepository_AdjustStock_GuardsAgainstNegativeStock(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewProductRepository(db)

	_ = repo.AdjustStock(context.Background(), 1, -3)

	sql := rec.last(t)
	assert.Contains(t, sql, "stock_quantity + ")
	assert.Contains(t, sql, ">= 0")
}
