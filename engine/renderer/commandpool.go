package renderer

import "github.com/spaghettifunk/ral/engine/containers"

// CommandBufferPool recycles CommandBuffer arenas across frames instead of
// reallocating one per frame: Acquire pops a released buffer off the ring
// and Resets it if one is available, or allocates a fresh one sized to
// capacityHint. Release pushes a buffer back after the caller is done
// submitting it.
type CommandBufferPool struct {
	renderer      *Renderer
	capacityHint  int
	free          *containers.RingQueue
}

// NewCommandBufferPool bounds the pool at maxInFlight buffers - typically
// Capabilities-independent, sized to the swap chain's frame-in-flight
// count.
func (r *Renderer) NewCommandBufferPool(maxInFlight int, capacityHint int) *CommandBufferPool {
	return &CommandBufferPool{
		renderer:     r,
		capacityHint: capacityHint,
		free:         containers.NewRingQueue(maxInFlight),
	}
}

// Acquire returns a ready-to-record CommandBuffer, reusing a freed one's
// backing array when the pool isn't empty.
func (p *CommandBufferPool) Acquire() *CommandBuffer {
	if v, err := p.free.Dequeue(); err == nil {
		cb := v.(*CommandBuffer)
		cb.Reset()
		return cb
	}
	return p.renderer.NewCommandBuffer(p.capacityHint)
}

// Release returns cb to the pool for reuse. If the pool is at capacity the
// buffer is simply dropped (garbage collected) rather than erroring -
// callers never need to check Release's success.
func (p *CommandBufferPool) Release(cb *CommandBuffer) {
	_ = p.free.Enqueue(cb)
}
