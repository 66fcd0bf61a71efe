package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadRendererOptionsMissingFileReturnsDefaults(t *testing.T) {
	opts, err := LoadRendererOptions(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	require.Equal(t, DefaultRendererOptions(), opts)
}

func TestLoadRendererOptionsOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renderer.toml")
	contents := "debug = true\nmax_frames_in_flight = 3\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	opts, err := LoadRendererOptions(path)
	require.NoError(t, err)
	require.True(t, opts.Debug)
	require.EqualValues(t, 3, opts.MaxFramesInFlight)
	require.EqualValues(t, 1024, opts.DescriptorPoolMaxSets)
}

func TestStatisticsAcquireRelease(t *testing.T) {
	stats := NewStatistics()
	stats.Acquire(ResourceKindTexture2D)
	stats.Acquire(ResourceKindTexture2D)
	stats.Acquire(ResourceKindVertexBuffer)
	require.EqualValues(t, 2, stats.Count(ResourceKindTexture2D))
	require.EqualValues(t, 3, stats.Total())

	stats.Release(ResourceKindTexture2D)
	require.EqualValues(t, 1, stats.Count(ResourceKindTexture2D))
	require.EqualValues(t, 2, stats.Total())
}

func TestNilStatisticsIsSafe(t *testing.T) {
	var stats *Statistics
	stats.Acquire(ResourceKindSwapChain)
	stats.Release(ResourceKindSwapChain)
	require.EqualValues(t, 0, stats.Count(ResourceKindSwapChain))
	require.EqualValues(t, 0, stats.Total())
}
