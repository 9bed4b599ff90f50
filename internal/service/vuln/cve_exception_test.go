package vuln

import (
	"context"
	"testing"

	"github.com/faust64/pakiti3/internal/config"
	"github.com/faust64/pakiti3/internal/model/basemodel"
	"github.com/faust64/pakiti3/internal/model/system"
	"github.com/faust64/pakiti3/internal/model/vuln"
	"github.com/faust64/pakiti3/internal/pkg/database"
	vulnrepo "github.com/faust64/pakiti3/internal/repo/mysql/vuln"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockCveExceptionRepository 记录调用次数
type MockCveExceptionRepository struct {
	Calls     int
	PkgLookup []uint64
}

func (m *MockCveExceptionRepository) Create(ctx context.Context, e *vuln.CveException) error {
	m.Calls++
	e.ID = 1
	return nil
}
func (m *MockCveExceptionRepository) GetByID(ctx context.Context, id uint64) (*vuln.CveException, error) {
	m.Calls++
	return nil, nil
}
func (m *MockCveExceptionRepository) GetByPkgID(ctx context.Context, pkgID uint64) ([]*vuln.CveException, error) {
	m.Calls++
	m.PkgLookup = append(m.PkgLookup, pkgID)
	return []*vuln.CveException{{PkgID: pkgID}}, nil
}
func (m *MockCveExceptionRepository) GetByCveName(ctx context.Context, cveName string) ([]*vuln.CveException, error) {
	m.Calls++
	return nil, nil
}
func (m *MockCveExceptionRepository) Delete(ctx context.Context, id uint64) error {
	m.Calls++
	return nil
}

func TestCreateCveExceptionValidation(t *testing.T) {
	repo := &MockCveExceptionRepository{}
	m := NewCveExceptionsManager(repo)
	ctx := context.Background()

	for _, e := range []*vuln.CveException{nil, {CveName: "CVE-2021-1234"}, {PkgID: 3}} {
		got, err := m.CreateCveException(ctx, e)
		assert.Nil(t, got)
		assert.True(t, system.IsValidationError(err))
	}
	assert.Zero(t, repo.Calls)
}

func TestRemoveCveExceptionRequiresID(t *testing.T) {
	repo := &MockCveExceptionRepository{}
	m := NewCveExceptionsManager(repo)
	ctx := context.Background()

	assert.True(t, system.IsValidationError(m.RemoveCveException(ctx, nil)))
	assert.True(t, system.IsValidationError(m.RemoveCveException(ctx, &vuln.CveException{CveName: "CVE-2021-1234"})))
	assert.Zero(t, repo.Calls)

	require.NoError(t, m.RemoveCveException(ctx, &vuln.CveException{BaseModel: basemodel.BaseModel{ID: 8}}))
	assert.Equal(t, 1, repo.Calls)
}

func TestGetCveExceptionsByPkgRunsLookupOnly(t *testing.T) {
	repo := &MockCveExceptionRepository{}
	m := NewCveExceptionsManager(repo)
	ctx := context.Background()

	assert.True(t, system.IsValidationError(m.GetCveExceptionsByPkg(ctx, nil)))
	require.NoError(t, m.GetCveExceptionsByPkg(ctx, &vuln.Pkg{ID: 12}))
	assert.Equal(t, []uint64{12}, repo.PkgLookup)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteConnection(&config.SQLiteConfig{Path: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestCveExceptionsEndToEnd(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	pkgs := vulnrepo.NewPkgRepository(db)
	m := NewCveExceptionsManager(vulnrepo.NewCveExceptionRepository(db))

	_, err := m.CreateCveException(ctx, nil)
	assert.True(t, system.IsValidationError(err))

	pkg := &vuln.Pkg{Name: "openssl", Version: "1.1.1k", Release: "9.el8", Arch: "x86_64", Type: "rpm"}
	require.NoError(t, pkgs.FirstOrCreate(ctx, pkg))

	stored, err := m.CreateCveException(ctx, &vuln.CveException{
		PkgID:    pkg.ID,
		CveName:  "CVE-2021-1234",
		Reason:   "fix backported by vendor",
		Modifier: "secteam",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotZero(t, stored.ID)

	got, err := m.GetCveExceptionByID(ctx, stored.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "secteam", got.Modifier)

	list, err := m.GetCveExceptionsByCveName(ctx, "CVE-2021-1234")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, m.GetCveExceptionsByPkg(ctx, pkg))

	require.NoError(t, m.RemoveCveException(ctx, stored))
	got, err = m.GetCveExceptionByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
