package host

import (
	"context"
	"errors"
	"testing"

	"github.com/faust64/pakiti3/internal/model/basemodel"
	"github.com/faust64/pakiti3/internal/model/host"
	"github.com/faust64/pakiti3/internal/model/system"
	"github.com/faust64/pakiti3/internal/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreHostRejectsInvalidHost(t *testing.T) {
	ctx := context.Background()
	cases := map[string]*host.Host{
		"nil":            nil,
		"empty_hostname": {IP: "10.0.0.1", OsName: "linux"},
		"blank_hostname": {Hostname: "  .", OsName: "linux"},
	}

	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			m, d := newMockManager()

			created, err := m.StoreHost(ctx, h)
			assert.False(t, created)
			assert.True(t, system.IsValidationError(err))

			_, found, err := m.GetHostID(ctx, h)
			assert.False(t, found)
			assert.True(t, system.IsValidationError(err))

			assert.Empty(t, d.hosts.Calls)
			assert.Zero(t, d.oses.Calls+d.archs.Calls+d.domains.Calls)
		})
	}
}

func TestStoreHostCreatesWhenNoMatch(t *testing.T) {
	m, d := newMockManager()
	h := &host.Host{
		Hostname:   "web01.example.com.",
		IP:         "10.0.0.1:5000",
		ReporterIP: "::ffff:10.0.0.1",
		OsName:     "linux",
		ArchName:   "x86_64",
		DomainName: "example.com",
	}

	created, err := m.StoreHost(context.Background(), h)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, []string{"GetID", "Create"}, d.hosts.Calls)

	assert.Equal(t, "web01.example.com", h.Hostname)
	assert.Equal(t, "10.0.0.1", h.IP)
	assert.Equal(t, "10.0.0.1", h.ReporterIP)
	assert.NotZero(t, h.OsID)
	require.NotNil(t, h.Os)
	assert.Equal(t, "linux", h.Os.Name)
	assert.Equal(t, h.ArchID, h.Arch.ID)
	assert.Equal(t, "example.com", h.Domain.Name)
}

func TestStoreHostRejectsMissingDimensionBeforeWriting(t *testing.T) {
	cases := map[string]func(h *host.Host){
		"os":     func(h *host.Host) { h.OsName = "" },
		"arch":   func(h *host.Host) { h.ArchName = "" },
		"domain": func(h *host.Host) { h.DomainName = "" },
	}

	for name, blank := range cases {
		t.Run(name, func(t *testing.T) {
			m, d := newMockManager()
			h := &host.Host{Hostname: "web09.example.com", OsName: "linux", ArchName: "x86_64", DomainName: "example.com"}
			blank(h)

			created, err := m.StoreHost(context.Background(), h)
			assert.False(t, created)
			assert.True(t, system.IsValidationError(err))
			assert.Contains(t, err.Error(), name)
			assert.Zero(t, d.oses.Calls)
			assert.Zero(t, d.archs.Calls+d.domains.Calls)
			assert.Empty(t, d.hosts.Calls)
		})
	}
}

func TestStoreHostForgetsDimensionsOnWriteFailure(t *testing.T) {
	m, d := newMockManager()
	d.hosts.CreateErr = errors.New("FOREIGN KEY constraint failed")
	h := &host.Host{Hostname: "web01", OsName: "linux", ArchName: "x86_64", DomainName: "example.com"}

	created, err := m.StoreHost(context.Background(), h)
	assert.False(t, created)
	assert.EqualError(t, err, "FOREIGN KEY constraint failed")
	assert.Equal(t, []string{"linux"}, d.oses.Forgotten)
	assert.Equal(t, []string{"x86_64"}, d.archs.Forgotten)
	assert.Equal(t, []string{"example.com"}, d.domains.Forgotten)
}

func TestDimensionManagerForgetDropsCachedID(t *testing.T) {
	ctx := context.Background()
	c := cache.NewLRUDimensionCache(16, 0)
	c.Set(ctx, KindOs, "linux", 7)
	c.Set(ctx, KindArch, "linux", 8)

	NewOsesManager(stubOsRepo{}, c).Forget(ctx, "linux")

	_, ok := c.Get(ctx, KindOs, "linux")
	assert.False(t, ok)
	id, ok := c.Get(ctx, KindArch, "linux")
	assert.True(t, ok)
	assert.Equal(t, uint64(8), id)
}

func TestGetHostsByTagNameUnknownTag(t *testing.T) {
	m, d := newMockManager()

	hosts, err := m.GetHostsByTagName(context.Background(), "nope")
	assert.Nil(t, hosts)
	assert.True(t, system.IsNotFoundError(err))
	assert.Empty(t, d.db.Queries)
	assert.Empty(t, d.hosts.Calls)
}

func TestGetHostsByTagNameRowIDTypes(t *testing.T) {
	m, d := newMockManager()
	d.tags.Tags["production"] = 5
	d.hosts.Hosts[1] = &host.Host{BaseModel: basemodel.BaseModel{ID: 1}, Hostname: "a"}
	d.hosts.Hosts[2] = &host.Host{BaseModel: basemodel.BaseModel{ID: 2}, Hostname: "b"}
	d.db.Rows = []map[string]interface{}{{"id": int64(1)}, {"id": []byte("2")}}

	// 回填使用空仓库
	m.archRepo = &stubArchRepo{}
	m.osRepo = &stubOsRepo{}
	m.domainRepo = &stubDomainRepo{}

	hosts, err := m.GetHostsByTagName(context.Background(), "production")
	require.NoError(t, err)
	require.Len(t, hosts, 2)
	assert.Equal(t, "b", hosts[1].Hostname)
	assert.Equal(t, []string{hostsByTagSQL}, d.db.Queries)
}

func TestDeleteHostRequiresID(t *testing.T) {
	m, d := newMockManager()
	ctx := context.Background()

	assert.True(t, system.IsValidationError(m.DeleteHost(ctx, nil)))
	assert.True(t, system.IsValidationError(m.DeleteHost(ctx, &host.Host{Hostname: "web01"})))
	assert.Empty(t, d.hosts.Calls)

	require.NoError(t, m.DeleteHost(ctx, &host.Host{BaseModel: basemodel.BaseModel{ID: 3}}))
	assert.Equal(t, []string{"Delete"}, d.hosts.Calls)
}

func TestSetLastReportIDRequiresBothIDs(t *testing.T) {
	m, d := newMockManager()
	ctx := context.Background()
	h := &host.Host{BaseModel: basemodel.BaseModel{ID: 3}}

	assert.True(t, system.IsValidationError(m.SetLastReportID(ctx, h, nil)))
	assert.True(t, system.IsValidationError(m.SetLastReportID(ctx, h, &host.Report{})))
	assert.True(t, system.IsValidationError(m.SetLastReportID(ctx, nil, &host.Report{ID: 9})))
	assert.Empty(t, d.hosts.Calls)

	require.NoError(t, m.SetLastReportID(ctx, h, &host.Report{ID: 9}))
	require.NotNil(t, h.LastReportID)
	assert.Equal(t, uint64(9), *h.LastReportID)
}

func TestCreateArchRequiresName(t *testing.T) {
	m, _ := newMockManager()
	_, err := m.CreateArch(context.Background(), "")
	assert.True(t, system.IsValidationError(err))
}

func TestToUint64(t *testing.T) {
	cases := []interface{}{int64(7), uint64(7), 7, int32(7), uint32(7), []byte("7"), "7"}
	for _, v := range cases {
		id, err := toUint64(v)
		assert.NoError(t, err, "%T", v)
		assert.Equal(t, uint64(7), id)
	}
	_, err := toUint64(3.5)
	assert.Error(t, err)
	_, err = toUint64("abc")
	assert.Error(t, err)
}

type stubOsRepo struct{}

func (stubOsRepo) Create(ctx context.Context, os *host.Os) error               { return nil }
func (stubOsRepo) GetByID(ctx context.Context, id uint64) (*host.Os, error)    { return nil, nil }
func (stubOsRepo) GetByName(ctx context.Context, n string) (*host.Os, error)   { return nil, nil }
func (stubOsRepo) ListIDs(context.Context, string, int, int) ([]uint64, error) { return nil, nil }

type stubArchRepo struct{}

func (stubArchRepo) Create(ctx context.Context, arch *host.Arch) error           { return nil }
func (stubArchRepo) GetByID(ctx context.Context, id uint64) (*host.Arch, error)  { return nil, nil }
func (stubArchRepo) GetByName(ctx context.Context, n string) (*host.Arch, error) { return nil, nil }
func (stubArchRepo) ListIDs(context.Context, string, int, int) ([]uint64, error) { return nil, nil }

type stubDomainRepo struct{}

func (stubDomainRepo) Create(ctx context.Context, domain *host.Domain) error         { return nil }
func (stubDomainRepo) GetByID(ctx context.Context, id uint64) (*host.Domain, error)  { return nil, nil }
func (stubDomainRepo) GetByName(ctx context.Context, n string) (*host.Domain, error) { return nil, nil }

func TestTagsManagerValidation(t *testing.T) {
	m := NewTagsManager(nil)
	ctx := context.Background()
	h := &host.Host{BaseModel: basemodel.BaseModel{ID: 1}}

	_, err := m.CreateTag(ctx, "", "")
	assert.True(t, system.IsValidationError(err))
	assert.True(t, system.IsValidationError(m.AssignTagToHost(ctx, h, nil)))
	assert.True(t, system.IsValidationError(m.AssignTagToHost(ctx, h, &host.Tag{Name: "unsaved"})))
	assert.True(t, system.IsValidationError(m.RemoveTagFromHost(ctx, nil, &host.Tag{})))
	_, err = m.GetHostTags(ctx, &host.Host{})
	assert.True(t, system.IsValidationError(err))
}
