package renderer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchBytecodeFileReportsDecodedWords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "triangle.vert.spvc")

	words := []uint32{0x07230203, 1, 0, 2}
	reloaded := make(chan []uint32, 1)

	hr, err := WatchBytecodeFile(dir, func(_ string, words []uint32) {
		reloaded <- words
	})
	require.NoError(t, err)
	defer hr.Close()

	require.NoError(t, os.WriteFile(path, EncodeCompactBytecode(words), 0o644))

	select {
	case got := <-reloaded:
		require.Equal(t, words, got)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for hot-reload callback")
	}
}
