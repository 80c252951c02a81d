package directory_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/directory"
)

func newRedisDirectory(t *testing.T, mr *miniredis.Miniredis, seed []directory.User) *directory.RedisDirectory {
	t.Helper()
	d, err := directory.NewRedisDirectory(context.Background(), directory.RedisOptions{Addr: mr.Addr()}, seed)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestRedisDirectory(t *testing.T) {
	runDirectoryContract(t, func(t *testing.T, seed []directory.User) directory.Directory {
		return newRedisDirectory(t, miniredis.RunT(t), seed)
	})
}

// TestRedisDirectorySeedKeepsExistingKey verifies that reconnecting to a
// populated key does not reseed it.
func TestRedisDirectorySeedKeepsExistingKey(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	first := newRedisDirectory(t, mr, directory.DefaultUsers())
	require.NoError(t, first.Delete(ctx, 1))

	second := newRedisDirectory(t, mr, directory.DefaultUsers())
	users, err := second.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)
	assert.Equal(t, int32(2), users[0].ID)
}

func TestRedisDirectoryCustomKey(t *testing.T) {
	mr := miniredis.RunT(t)
	d, err := directory.NewRedisDirectory(context.Background(), directory.RedisOptions{
		Addr: mr.Addr(),
		Key:  "directory:test",
	}, directory.DefaultUsers())
	require.NoError(t, err)
	defer d.Close()

	assert.True(t, mr.Exists("directory:test"))
	assert.False(t, mr.Exists(directory.DefaultRedisKey))
}

func TestRedisDirectoryCorruptPayload(t *testing.T) {
	mr := miniredis.RunT(t)
	d := newRedisDirectory(t, mr, nil)
	require.NoError(t, mr.Set(directory.DefaultRedisKey, "not json"))

	_, err := d.List(context.Background())
	assert.ErrorContains(t, err, "failed to unmarshal users json")
}

func TestRedisDirectoryUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := directory.NewRedisDirectory(context.Background(), directory.RedisOptions{Addr: addr}, nil)
	assert.ErrorContains(t, err, "redis ping failed")
}
