package renderer

import (
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/ral/engine/core"
)

// ShaderHotReloader watches a directory of compact-encoded SPIR-V bytecode
// files (see EncodeCompactBytecode/DecodeCompactBytecode) and calls back
// with the decoded words whenever one is written, so a host can rebuild
// the affected Shader/GraphicsProgram without restarting. One watcher
// covers a whole directory; stage, entry point and pipeline rebuilding
// are left entirely to the callback.
type ShaderHotReloader struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchBytecodeFile starts watching dir for writes/creates of compact
// bytecode files and invokes onReload(path, words) on the calling
// goroutine's behalf from a background goroutine. The returned reloader
// must be Closed to stop watching.
func WatchBytecodeFile(dir string, onReload func(path string, words []uint32)) (*ShaderHotReloader, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	hr := &ShaderHotReloader{watcher: w, done: make(chan struct{})}
	go hr.run(onReload)
	return hr, nil
}

func (hr *ShaderHotReloader) run(onReload func(path string, words []uint32)) {
	for {
		select {
		case ev, ok := <-hr.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			data, err := os.ReadFile(ev.Name)
			if err != nil {
				core.LogWarn("shader hot-reload: read %s: %v", ev.Name, err)
				continue
			}
			words, err := DecodeCompactBytecode(data)
			if err != nil {
				core.LogWarn("shader hot-reload: decode %s: %v", ev.Name, err)
				continue
			}
			onReload(ev.Name, words)
		case err, ok := <-hr.watcher.Errors:
			if !ok {
				return
			}
			core.LogWarn("shader hot-reload: watcher error: %v", err)
		case <-hr.done:
			return
		}
	}
}

// Close stops the watcher goroutine and releases its inotify/kqueue handle.
func (hr *ShaderHotReloader) Close() error {
	close(hr.done)
	return hr.watcher.Close()
}
