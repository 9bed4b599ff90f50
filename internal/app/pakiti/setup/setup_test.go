package setup

import (
	"context"
	"testing"
	"time"

	"github.com/faust64/pakiti3/internal/config"
	"github.com/faust64/pakiti3/internal/model/host"
	"github.com/faust64/pakiti3/internal/pkg/cache"
	"github.com/faust64/pakiti3/internal/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDimensionCache(t *testing.T) {
	c, err := BuildDimensionCache(&config.CacheConfig{Driver: "none"}, nil)
	require.NoError(t, err)
	assert.IsType(t, cache.NoopDimensionCache{}, c)

	c, err = BuildDimensionCache(&config.CacheConfig{Driver: "lru", Size: 8, TTL: time.Minute}, nil)
	require.NoError(t, err)
	assert.IsType(t, &cache.LRUDimensionCache{}, c)

	_, err = BuildDimensionCache(&config.CacheConfig{Driver: "redis"}, nil)
	assert.Error(t, err)

	_, err = BuildDimensionCache(&config.CacheConfig{Driver: "memcached"}, nil)
	assert.Error(t, err)
}

func TestBuildModules(t *testing.T) {
	db, err := database.NewSQLiteConnection(&config.SQLiteConfig{Path: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, database.AutoMigrate(db))

	hosts := BuildHostModule(db, nil)
	vuln := BuildVulnModule(db)
	require.NotNil(t, hosts.HostsManager)
	require.NotNil(t, vuln.CveExceptionsManager)

	created, err := hosts.HostsManager.StoreHost(context.Background(), &host.Host{
		Hostname:   "web01",
		OsName:     "linux",
		ArchName:   "x86_64",
		DomainName: "example.com",
	})
	require.NoError(t, err)
	assert.True(t, created)

	id, created, err := hosts.OsesManager.Store(context.Background(), "linux")
	require.NoError(t, err)
	assert.False(t, created)
	assert.NotZero(t, id)
}
