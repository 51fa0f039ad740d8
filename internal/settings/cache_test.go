package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetHitAndMiss(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewCache(rdb, time.Minute)
	ctx := context.Background()

	mock.ExpectGet("settings:working_hours").SetVal(`{"slot_interval":30}`)
	mock.ExpectGet("settings:closed_days").RedisNil()

	val, ok, err := cache.Get(ctx, KeyWorkingHours)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"slot_interval":30}`, val.String())

	val, ok, err = cache.Get(ctx, KeyClosedDays)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, val)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewCache(rdb, time.Minute)

	mock.ExpectGet("settings:working_hours").SetErr(errors.New("connection refused"))

	_, ok, err := cache.Get(context.Background(), KeyWorkingHours)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestCache_SetAndInvalidate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewCache(rdb, 5*time.Minute)
	ctx := context.Background()

	mock.ExpectSet("settings:closed_days", []byte(`[0]`), 5*time.Minute).SetVal("OK")
	mock.ExpectDel("settings:closed_days").SetVal(1)

	require.NoError(t, cache.Set(ctx, KeyClosedDays, types.JSONText(`[0]`)))
	require.NoError(t, cache.Invalidate(ctx, KeyClosedDays))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_FillOnlyWhenAbsent(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewCache(rdb, 5*time.Minute)
	ctx := context.Background()

	mock.ExpectSetNX("settings:closed_days", []byte(`[0]`), 5*time.Minute).SetVal(true)
	mock.ExpectSetNX("settings:closed_days", []byte(`[1]`), 5*time.Minute).SetVal(false)

	require.NoError(t, cache.Fill(ctx, KeyClosedDays, types.JSONText(`[0]`)))
	require.NoError(t, cache.Fill(ctx, KeyClosedDays, types.JSONText(`[1]`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
