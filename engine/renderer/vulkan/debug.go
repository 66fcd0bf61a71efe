package vulkan

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/ral/engine/core"
)

// debugEventScope is one entry on Backend's open BeginDebugEvent/
// EndDebugEvent stack: a name plus the auto-generated correlation id used
// to pair a scope's begin/end log lines when the caller never bothered to
// name it (the common case for one-off per-draw-call markers).
type debugEventScope struct {
	name string
	id   string
}

// debugName returns name unchanged, or a short auto-generated tag derived
// from a fresh uuid when the caller passed an empty string. Vulkan
// validation layers and capture tools (RenderDoc, Nsight) key debug
// markers off exactly this kind of label, so an empty one is still worth
// replacing with something a frame capture can group by.
func debugName(name string) string {
	if name != "" {
		return name
	}
	return "anon-" + uuid.NewString()[:8]
}

// SetDebugMarker records a single point-in-time label in the log. The
// Vulkan debug-utils extension this would otherwise attach to
// (vkCmdInsertDebugUtilsLabelEXT) is not wired into this backend's
// goki/vulkan binding, so markers surface through the same structured
// logger the rest of the backend uses rather than a GPU capture overlay.
func (b *Backend) SetDebugMarker(name string) {
	if !b.debug {
		return
	}
	core.LogDebug("vulkan marker: %s", debugName(name))
}

// BeginDebugEvent opens a named scope; EndDebugEvent closes the most
// recently opened one. Scopes nest via a simple stack on Backend.
func (b *Backend) BeginDebugEvent(name string) {
	if !b.debug {
		return
	}
	scope := debugEventScope{name: debugName(name), id: uuid.NewString()[:8]}
	b.debugEvents = append(b.debugEvents, scope)
	core.LogDebug("vulkan event begin [%s]: %s", scope.id, scope.name)
}

func (b *Backend) EndDebugEvent() {
	if !b.debug || len(b.debugEvents) == 0 {
		return
	}
	last := len(b.debugEvents) - 1
	scope := b.debugEvents[last]
	b.debugEvents = b.debugEvents[:last]
	core.LogDebug("vulkan event end   [%s]: %s", scope.id, scope.name)
}
