package host

import (
	"context"

	"github.com/faust64/pakiti3/internal/model/host"
)

// MockHostRepository 记录所有调用，用于断言校验失败时没有访问存储
type MockHostRepository struct {
	Calls     []string
	Hosts     map[uint64]*host.Host
	CreateErr error
}

func (m *MockHostRepository) Create(ctx context.Context, h *host.Host) error {
	m.Calls = append(m.Calls, "Create")
	return m.CreateErr
}
func (m *MockHostRepository) Update(ctx context.Context, h *host.Host) error {
	m.Calls = append(m.Calls, "Update")
	return nil
}
func (m *MockHostRepository) Delete(ctx context.Context, id uint64) error {
	m.Calls = append(m.Calls, "Delete")
	return nil
}
func (m *MockHostRepository) GetByID(ctx context.Context, id uint64) (*host.Host, error) {
	m.Calls = append(m.Calls, "GetByID")
	return m.Hosts[id], nil
}
func (m *MockHostRepository) GetByHostname(ctx context.Context, hostname string) (*host.Host, error) {
	m.Calls = append(m.Calls, "GetByHostname")
	return nil, nil
}
func (m *MockHostRepository) GetID(ctx context.Context, h *host.Host) (uint64, bool, error) {
	m.Calls = append(m.Calls, "GetID")
	return 0, false, nil
}
func (m *MockHostRepository) ListIDs(ctx context.Context, orderBy string, pageSize, pageNum int) ([]uint64, error) {
	m.Calls = append(m.Calls, "ListIDs")
	return nil, nil
}
func (m *MockHostRepository) ListIDsByFirstLetter(ctx context.Context, letter string) ([]uint64, error) {
	m.Calls = append(m.Calls, "ListIDsByFirstLetter")
	return nil, nil
}
func (m *MockHostRepository) Count(ctx context.Context) (int64, error) {
	m.Calls = append(m.Calls, "Count")
	return int64(len(m.Hosts)), nil
}
func (m *MockHostRepository) SetLastReportID(ctx context.Context, hostID, reportID uint64) error {
	m.Calls = append(m.Calls, "SetLastReportID")
	return nil
}

// MockDimensionStore 维度 get-or-create 桩
type MockDimensionStore struct {
	Calls     int
	Next      uint64
	Forgotten []string
}

func (m *MockDimensionStore) Store(ctx context.Context, name string) (uint64, bool, error) {
	m.Calls++
	m.Next++
	return m.Next, true, nil
}

func (m *MockDimensionStore) Forget(ctx context.Context, name string) {
	m.Forgotten = append(m.Forgotten, name)
}

// MockTagResolver 标签解析桩
type MockTagResolver struct {
	Tags map[string]uint64
}

func (m *MockTagResolver) GetTagIDByName(ctx context.Context, name string) (uint64, bool, error) {
	id, ok := m.Tags[name]
	return id, ok, nil
}

// MockRowQuerier 原生查询桩
type MockRowQuerier struct {
	Queries []string
	Rows    []map[string]interface{}
}

func (m *MockRowQuerier) QueryToMultiRow(ctx context.Context, query string, args ...interface{}) ([]map[string]interface{}, error) {
	m.Queries = append(m.Queries, query)
	return m.Rows, nil
}

type mockDeps struct {
	hosts   *MockHostRepository
	oses    *MockDimensionStore
	archs   *MockDimensionStore
	domains *MockDimensionStore
	tags    *MockTagResolver
	db      *MockRowQuerier
}

func newMockManager() (*HostsManager, *mockDeps) {
	d := &mockDeps{
		hosts:   &MockHostRepository{Hosts: map[uint64]*host.Host{}},
		oses:    &MockDimensionStore{},
		archs:   &MockDimensionStore{},
		domains: &MockDimensionStore{},
		tags:    &MockTagResolver{Tags: map[string]uint64{}},
		db:      &MockRowQuerier{},
	}
	m := NewHostsManager(d.hosts, nil, nil, nil, d.oses, d.archs, d.domains, d.tags, d.db)
	return m, d
}
