package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// exerciseSlot checks the contract every backend must satisfy.
func exerciseSlot(t *testing.T, s Slot) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Read(ctx)
	require.ErrorIs(t, err, ErrSlotEmpty)

	require.NoError(t, s.Write(ctx, []byte(`{"v":1}`)))
	got, err := s.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, `{"v":1}`, string(got))

	require.NoError(t, s.Write(ctx, []byte(`{"v":2}`)))
	got, err = s.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, `{"v":2}`, string(got), "write must overwrite prior content")
}

func TestMemorySlot(t *testing.T) {
	t.Parallel()
	exerciseSlot(t, NewMemorySlot(nil))
}

func TestFileSlot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "board.json")
	exerciseSlot(t, FileSlot{Path: path})

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileSlot_BlankFileIsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "board.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))
	_, err := FileSlot{Path: path}.Read(context.Background())
	require.True(t, errors.Is(err, ErrSlotEmpty))
}

func TestSQLiteSlot(t *testing.T) {
	t.Parallel()

	s, err := OpenSQLiteSlot(context.Background(), filepath.Join(t.TempDir(), "board.sqlite"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exerciseSlot(t, s)
}

func TestSQLiteSlot_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "board.sqlite")
	a, err := OpenSQLiteSlot(ctx, path, "a")
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	b, err := OpenSQLiteSlot(ctx, path, "b")
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	require.NoError(t, a.Write(ctx, []byte("A")))
	_, err = b.Read(ctx)
	require.ErrorIs(t, err, ErrSlotEmpty)
}

func TestRedisSlot(t *testing.T) {
	t.Parallel()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisSlot(client, "")
	t.Cleanup(func() { _ = s.Close() })
	exerciseSlot(t, s)

	require.True(t, mr.Exists(DefaultSlotKey))
}

func TestDialRedis_BadURL(t *testing.T) {
	t.Parallel()

	_, err := DialRedis(context.Background(), "not-a-url")
	require.Error(t, err)
}
