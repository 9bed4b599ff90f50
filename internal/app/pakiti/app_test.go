package pakiti

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/faust64/pakiti3/internal/model/host"
	"github.com/faust64/pakiti3/internal/pkg/database"
	"github.com/faust64/pakiti3/internal/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sqliteConfig = `
database:
  driver: "sqlite"
  sqlite:
    path: ":memory:"
    log_level: "silent"
cache:
  driver: "lru"
  size: 32
  ttl: 1m
log:
  level: "warn"
  format: "json"
  output: "stdout"
app:
  environment: "test"
`

func TestNewApp(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.test.yaml"), []byte(sqliteConfig), 0644))
	t.Cleanup(func() { logger.LoggerInstance = nil })

	app, err := NewApp(dir, "test")
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, "sqlite", app.GetConfig().Database.Driver)
	require.NoError(t, database.AutoMigrate(app.GetDB()))

	ctx := context.Background()
	created, err := app.Hosts.HostsManager.StoreHost(ctx, &host.Host{
		Hostname:   "web01",
		OsName:     "linux",
		ArchName:   "x86_64",
		DomainName: "example.com",
	})
	require.NoError(t, err)
	assert.True(t, created)

	count, err := app.Hosts.HostsManager.GetHostsCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.NotNil(t, app.Vuln.CveExceptionsManager)
}

func TestNewAppMissingConfig(t *testing.T) {
	_, err := NewApp(t.TempDir(), "test")
	assert.Error(t, err)
}

func TestNewAppReloadsLogLevel(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.test.yaml")
	content := sqliteConfig + "  watch_config: true\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	t.Cleanup(func() { logger.LoggerInstance = nil })

	app, err := NewApp(dir, "test")
	require.NoError(t, err)
	defer app.Close()
	require.Equal(t, logrus.WarnLevel, logger.LoggerInstance.GetLogger().GetLevel())

	updated := strings.Replace(content, `level: "warn"`, `level: "debug"`, 1)
	require.NoError(t, os.WriteFile(file, []byte(updated), 0644))

	assert.Eventually(t, func() bool {
		return logger.LoggerInstance.GetLogger().GetLevel() == logrus.DebugLevel
	}, 5*time.Second, 50*time.Millisecond)
}
