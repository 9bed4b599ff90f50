package vuln

import (
	"context"
	"testing"

	"github.com/faust64/pakiti3/internal/config"
	"github.com/faust64/pakiti3/internal/model/vuln"
	"github.com/faust64/pakiti3/internal/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteConnection(&config.SQLiteConfig{Path: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestCveExceptionRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pkgs := NewPkgRepository(db)
	repo := NewCveExceptionRepository(db)

	openssl := &vuln.Pkg{Name: "openssl", Version: "3.0.7", Release: "25.el9", Arch: "x86_64", Type: "rpm"}
	require.NoError(t, pkgs.FirstOrCreate(ctx, openssl))
	again := &vuln.Pkg{Name: "openssl", Version: "3.0.7", Release: "25.el9", Arch: "x86_64", Type: "rpm"}
	require.NoError(t, pkgs.FirstOrCreate(ctx, again))
	assert.Equal(t, openssl.ID, again.ID)

	e1 := &vuln.CveException{PkgID: openssl.ID, CveName: "CVE-2021-1234", Reason: "backported", Modifier: "admin"}
	e2 := &vuln.CveException{PkgID: openssl.ID, CveName: "CVE-2022-0001", OsGroupID: 2}
	require.NoError(t, repo.Create(ctx, e1))
	require.NoError(t, repo.Create(ctx, e2))
	assert.NotZero(t, e1.ID)

	got, err := repo.GetByID(ctx, e1.ID)
	require.NoError(t, err)
	assert.Equal(t, "backported", got.Reason)

	missing, err := repo.GetByID(ctx, e2.ID+10)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	byPkg, err := repo.GetByPkgID(ctx, openssl.ID)
	require.NoError(t, err)
	assert.Len(t, byPkg, 2)

	byCve, err := repo.GetByCveName(ctx, "CVE-2021-1234")
	require.NoError(t, err)
	require.Len(t, byCve, 1)
	assert.Equal(t, e1.ID, byCve[0].ID)

	require.NoError(t, repo.Delete(ctx, e1.ID))
	byPkg, err = repo.GetByPkgID(ctx, openssl.ID)
	require.NoError(t, err)
	assert.Len(t, byPkg, 1)

	// 删除包时级联删除例外
	require.NoError(t, pkgs.Delete(ctx, openssl.ID))
	byPkg, err = repo.GetByPkgID(ctx, openssl.ID)
	require.NoError(t, err)
	assert.Empty(t, byPkg)
}

func TestCveExceptionRepositoryRejectsUnknownPkg(t *testing.T) {
	db := newTestDB(t)
	repo := NewCveExceptionRepository(db)
	err := repo.Create(context.Background(), &vuln.CveException{PkgID: 404, CveName: "CVE-2021-1234"})
	assert.Error(t, err)
}
