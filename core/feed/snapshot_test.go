package feed_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"guardias/core/feed"
	"guardias/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_ReadFromStorage(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "guardias", "fallback/guardia.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader("a,b\n")), nil)

	snap := feed.Snapshot{Client: client, Bucket: "guardias", Object: "fallback/guardia.csv", File: "missing.csv"}
	data, origin, err := snap.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
	assert.Equal(t, feed.OriginStorage, origin)
}

func TestSnapshot_FallsBackToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guardia.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n"), 0o644))

	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "guardias", "fallback/guardia.csv", mock.Anything).Return(nil, assert.AnError)

	snap := feed.Snapshot{Client: client, Bucket: "guardias", Object: "fallback/guardia.csv", File: path}
	data, origin, err := snap.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "x,y\n", string(data))
	assert.Equal(t, feed.OriginFile, origin)
}

func TestSnapshot_NothingAvailable(t *testing.T) {
	_, _, err := feed.Snapshot{}.Read(context.Background())
	assert.ErrorIs(t, err, feed.ErrNoSnapshot)

	_, _, err = feed.Snapshot{File: filepath.Join(t.TempDir(), "none.csv")}.Read(context.Background())
	assert.ErrorIs(t, err, feed.ErrNoSnapshot)
}

func TestSnapshot_Save(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "guardias", "fallback/guardias.json", mock.Anything, int64(2), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	snap := feed.Snapshot{Client: client, Bucket: "guardias", Object: "fallback/guardias.json"}
	require.NoError(t, snap.Save(context.Background(), []byte("{}"), "application/json"))
	client.AssertExpectations(t)

	assert.NoError(t, feed.Snapshot{File: "local.json"}.Save(context.Background(), []byte("{}"), "application/json"))
}

func TestConfig_Snapshots(t *testing.T) {
	cfg := feed.Config{
		CSVFallbackObject:  "fallback/guardia.csv",
		CSVFallbackFile:    "guardia.csv",
		JSONFallbackObject: "fallback/guardias.json",
		JSONFallbackFile:   "guardias.json",
	}
	client := new(mocks.Client)

	csv := cfg.CSVSnapshot(client, "guardias")
	assert.Equal(t, feed.Snapshot{Client: client, Bucket: "guardias", Object: "fallback/guardia.csv", File: "guardia.csv"}, csv)

	js := cfg.JSONSnapshot(nil, "")
	assert.Equal(t, "fallback/guardias.json", js.Object)
	assert.Equal(t, "guardias.json", js.File)
	assert.Nil(t, js.Client)
}
