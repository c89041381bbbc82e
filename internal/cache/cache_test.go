package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paiban/nurseplan/pkg/model"
	"github.com/paiban/nurseplan/pkg/report"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RosterCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRosterCache(rdb, ttl), mr
}

func sampleView() *report.View {
	nurse := int64(1)
	return &report.View{
		RunID:       "run-1",
		Fitness:     320.5,
		StopReason:  "stagnation",
		Generations: 40,
		Assigned:    1,
		TotalShifts: 2,
		Rows: []report.Row{
			{ShiftID: 1, Date: "2025-02-19", ShiftType: model.ShiftMorning, NurseID: &nurse, NurseName: "Alice Johnson"},
			{ShiftID: 2, Date: "2025-02-19", ShiftType: model.ShiftNight, NurseName: report.Unassigned},
		},
		GeneratedAt: time.Date(2025, 2, 19, 0, 0, 0, 0, time.UTC),
	}
}

func TestRosterCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	got, err := c.GetLatest(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "空缓存应未命中")

	require.NoError(t, c.SetLatest(ctx, sampleView()))
	got, err = c.GetLatest(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sampleView(), got)

	require.NoError(t, c.Invalidate(ctx))
	got, err = c.GetLatest(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRosterCache_TTL(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetLatest(ctx, sampleView()))
	assert.Equal(t, time.Minute, mr.TTL(LatestKey))

	mr.FastForward(2 * time.Minute)
	got, err := c.GetLatest(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "过期后应未命中")
}

func TestRosterCache_CorruptEntry(t *testing.T) {
	c, mr := newTestCache(t, 0)
	require.NoError(t, mr.Set(LatestKey, "not json"))

	got, err := c.GetLatest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRosterCache_Unavailable(t *testing.T) {
	c, mr := newTestCache(t, 0)
	mr.Close()

	_, err := c.GetLatest(context.Background())
	assert.Error(t, err)
	assert.Error(t, c.Health(context.Background()))
}
