package main

import (
	"context"
	"testing"

	"github.com/faust64/pakiti3/internal/config"
	"github.com/faust64/pakiti3/internal/model/host"
	"github.com/faust64/pakiti3/internal/model/vuln"
	"github.com/faust64/pakiti3/internal/pkg/database"
	"github.com/faust64/pakiti3/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformMigrationWithSeed(t *testing.T) {
	logManager, err := logger.InitLogger(&config.LogConfig{Level: "error", Format: "json", Output: "stdout"})
	require.NoError(t, err)
	t.Cleanup(func() { logger.LoggerInstance = nil })

	db, err := database.NewSQLiteConnection(&config.SQLiteConfig{Path: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	defer database.Close(db)

	opts := &MigrateOptions{SeedData: true}
	ctx := context.Background()
	require.NoError(t, performMigration(ctx, db, opts, logManager))
	// 重复执行保持幂等
	require.NoError(t, performMigration(ctx, db, opts, logManager))

	count := func(model interface{}) int64 {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		return n
	}
	assert.Equal(t, int64(3), count(&host.Host{}))
	assert.Equal(t, int64(2), count(&host.Os{}))
	assert.Equal(t, int64(2), count(&host.HostTag{}))
	assert.Equal(t, int64(1), count(&vuln.CveException{}))

	opts = &MigrateOptions{DropFirst: true}
	require.NoError(t, performMigration(ctx, db, opts, logManager))
	assert.Zero(t, count(&host.Host{}))
}
