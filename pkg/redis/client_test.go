package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/foodgram-backend/pkg/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	allowed, count, err := client.FixedWindowAllow(ctx, "user:7", 2, time.Minute)
	require.NoError(t, err)
	require.True(t, allowed)
	require.EqualValues(t, 1, count)
	assert.Equal(t, int64(60000), mock.ttlMillis["fg:rate_limit:user:7"])

	allowed, count, err = client.FixedWindowAllow(ctx, "user:7", 2, time.Minute)
	require.NoError(t, err)
	require.True(t, allowed)
	require.EqualValues(t, 2, count)

	allowed, _, err = client.FixedWindowAllow(ctx, "user:7", 2, time.Minute)
	require.NoError(t, err)
	require.False(t, allowed)

	allowed, count, err = client.FixedWindowAllow(ctx, "ip:10.0.0.1", 2, time.Minute)
	require.NoError(t, err)
	require.True(t, allowed, "scopes are counted separately")
	require.EqualValues(t, 1, count)
}

func TestFixedWindowAllowLoadsScriptOnce(t *testing.T) {
	mock := newMockCmdable()
	client := &Client{store: mock}

	for i := 0; i < 3; i++ {
		_, _, err := client.FixedWindowAllow(context.Background(), "user:1", 10, time.Second)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, mock.evalCalls, "only the first call should fall back to EVAL")
}

func TestFixedWindowAllowPropagatesErrors(t *testing.T) {
	mock := newMockCmdable()
	mock.scriptErr = errors.New("connection refused")
	client := &Client{store: mock}

	_, _, err := client.FixedWindowAllow(context.Background(), "k", 1, time.Second)
	require.Error(t, err)

	_, _, err = client.FixedWindowAllow(context.Background(), "k", 1, 0)
	require.Error(t, err)
}

func TestIdempotencyRecordLifecycle(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}
	key := client.IdempotencyKey("7|POST|/api/recipes", "abc")

	ok, err := client.SetNX(ctx, key, "payload", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = client.SetNX(ctx, key, "other", time.Hour)
	require.NoError(t, err)
	require.False(t, ok)

	got, err := client.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, "payload", got)

	require.NoError(t, client.Set(ctx, key, "final", time.Hour))
	got, err = client.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, "final", got)

	require.NoError(t, client.Del(ctx, key))
	_, err = client.Get(ctx, key)
	require.ErrorIs(t, err, redis.Nil)
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	assert.Equal(t, "fg:idempotency:scope:id", client.IdempotencyKey("scope", "id"))
	assert.Equal(t, "fg:rate_limit:scope", client.RateLimitKey("scope"))
	assert.Equal(t, "fg:idempotency:id", client.IdempotencyKey(" ", "id"), "empty parts are skipped")
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	require.Error(t, client.Ping(context.Background()))
	_, err := client.Get(context.Background(), "k")
	require.Error(t, err)
	require.NoError(t, client.Close())
}

func TestOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	require.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:pw@localhost:6380/2", PoolSize: 5})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 5, opts.PoolSize)

	opts, err = optionsFromConfig(config.RedisConfig{Address: "cache:6379", DB: 3, DialTimeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, time.Second, opts.DialTimeout)
}

type mockCmdable struct {
	data      map[string]string
	counters  map[string]int64
	ttlMillis map[string]int64
	loaded    bool
	evalCalls int
	scriptErr error
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data:      make(map[string]string),
		counters:  make(map[string]int64),
		ttlMillis: make(map[string]int64),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

type noScriptError struct{}

func (noScriptError) Error() string { return "NOSCRIPT No matching script. Please use EVAL." }

func (noScriptError) RedisError() {}

// runWindow mirrors fixedWindowScript.
func (m *mockCmdable) runWindow(keys []string, args []any) *redis.Cmd {
	if m.scriptErr != nil {
		return redis.NewCmdResult(nil, m.scriptErr)
	}
	key := keys[0]
	m.counters[key]++
	if _, ok := m.ttlMillis[key]; !ok {
		m.ttlMillis[key] = args[0].(int64)
	}
	return redis.NewCmdResult(m.counters[key], nil)
}

func (m *mockCmdable) Eval(_ context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	m.evalCalls++
	m.loaded = true
	return m.runWindow(keys, args)
}

func (m *mockCmdable) EvalSha(_ context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	if !m.loaded {
		return redis.NewCmdResult(nil, noScriptError{})
	}
	return m.runWindow(keys, args)
}

func (m *mockCmdable) EvalRO(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	return m.Eval(ctx, script, keys, args...)
}

func (m *mockCmdable) EvalShaRO(ctx context.Context, sha1 string, keys []string, args ...any) *redis.Cmd {
	return m.EvalSha(ctx, sha1, keys, args...)
}

func (m *mockCmdable) ScriptExists(_ context.Context, hashes ...string) *redis.BoolSliceCmd {
	out := make([]bool, len(hashes))
	for i := range out {
		out[i] = m.loaded
	}
	return redis.NewBoolSliceResult(out, nil)
}

func (m *mockCmdable) ScriptLoad(context.Context, string) *redis.StringCmd {
	m.loaded = true
	return redis.NewStringResult("sha", nil)
}

func (m *mockCmdable) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
