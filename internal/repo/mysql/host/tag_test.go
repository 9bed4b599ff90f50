package host

import (
	"context"
	"testing"

	"github.com/faust64/pakiti3/internal/model/host"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tags := NewTagRepository(db)
	hosts := NewHostRepository(db)
	d := seedDims(t, db, "linux", "x86_64", "example.com")

	h := newHost("web01", d)
	require.NoError(t, hosts.Create(ctx, h))

	prod := &host.Tag{Name: "production", Enabled: true}
	web := &host.Tag{Name: "web", Description: "frontends", Enabled: true}
	require.NoError(t, tags.Create(ctx, prod))
	require.NoError(t, tags.Create(ctx, web))

	got, err := tags.GetByName(ctx, "production")
	require.NoError(t, err)
	assert.Equal(t, prod.ID, got.ID)

	missing, err := tags.GetByName(ctx, "staging")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, tags.AddHostTag(ctx, h.ID, web.ID))
	require.NoError(t, tags.AddHostTag(ctx, h.ID, prod.ID))
	// 重复添加不报错
	require.NoError(t, tags.AddHostTag(ctx, h.ID, prod.ID))

	hostTags, err := tags.GetHostTags(ctx, h.ID)
	require.NoError(t, err)
	require.Len(t, hostTags, 2)
	assert.Equal(t, "production", hostTags[0].Name)

	require.NoError(t, tags.RemoveHostTag(ctx, h.ID, web.ID))
	hostTags, err = tags.GetHostTags(ctx, h.ID)
	require.NoError(t, err)
	assert.Len(t, hostTags, 1)

	// 标签不存在时外键拒绝关联
	assert.Error(t, tags.AddHostTag(ctx, h.ID, web.ID+100))
}
