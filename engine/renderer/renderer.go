package renderer

import (
	"github.com/spaghettifunk/ral/engine/core"
)

// SceneState is the Idle/Recording state machine a Renderer walks through
// once per frame: BeginScene moves Idle -> Recording, EndScene
// moves Recording -> Idle. Every resource-creation and command-recording
// call is only valid in the state the state machine allows it in.
type SceneState int

const (
	SceneStateIdle SceneState = iota
	SceneStateRecording
)

// Renderer is the backend-agnostic entry point: it owns the
// reference-counted resource graph (RootSignature, Buffer, Texture, ...)
// and delegates every native operation to a Backend. There is exactly one
// Renderer per Backend instance, and a Renderer is not safe for concurrent
// use from multiple goroutines - callers serialize access
// themselves, typically from a single render thread.
type Renderer struct {
	ctx          core.Context
	backend      Backend
	capabilities Capabilities
	scene        SceneState
}

// NewRenderer initializes backend against ctx and appName/width/height,
// and queries its Capabilities once up front.
func NewRenderer(ctx core.Context, backend Backend, appName string, width, height uint32) (*Renderer, error) {
	if ctx == nil {
		ctx = core.NewDefaultContext(false)
	}
	if err := backend.Initialize(ctx, appName, width, height); err != nil {
		ctx.Log(core.LogLevelCritical, "NewRenderer: backend %q failed to initialize: %v", backend.Name(), err)
		return nil, err
	}
	r := &Renderer{
		ctx:          ctx,
		backend:      backend,
		capabilities: backend.Capabilities(),
		scene:        SceneStateIdle,
	}
	ctx.Log(core.LogLevelInformation, "renderer initialized with backend %q", backend.Name())
	return r, nil
}

func (r *Renderer) stats() *core.Statistics {
	if r == nil || r.ctx == nil {
		return nil
	}
	return r.ctx.Statistics()
}

func (r *Renderer) Context() core.Context       { return r.ctx }
func (r *Renderer) Capabilities() Capabilities  { return r.capabilities }
func (r *Renderer) BackendName() string         { return r.backend.Name() }
func (r *Renderer) SceneState() SceneState      { return r.scene }

// Resized forwards a window/surface resize to the backend. Valid in any
// scene state; the backends only record the new extent. Swap chains are
// rebuilt by AcquireNextImage/Present on core.ErrSwapchainOutdated, or
// by ResizeBuffers.
func (r *Renderer) Resized(width, height uint32) error {
	return r.backend.Resized(width, height)
}

// BeginScene implements the Idle -> Recording transition.
// Calling it while already recording is a programmer error: logged
// CRITICAL, no-op, following an ignore-plus-log policy.
func (r *Renderer) BeginScene() error {
	if r.scene != SceneStateIdle {
		r.ctx.Log(core.LogLevelCritical, "BeginScene: renderer is already recording a scene")
		return core.ErrUnknown
	}
	if err := r.backend.BeginFrame(); err != nil {
		r.ctx.Log(core.LogLevelCritical, "BeginScene: backend BeginFrame failed: %v", err)
		return err
	}
	r.scene = SceneStateRecording
	return nil
}

// EndScene implements the Recording -> Idle transition.
// Calling it while Idle is a programmer error: logged CRITICAL, no-op.
func (r *Renderer) EndScene() error {
	if r.scene != SceneStateRecording {
		r.ctx.Log(core.LogLevelCritical, "EndScene: renderer is not currently recording a scene")
		return core.ErrUnknown
	}
	if err := r.backend.EndFrame(); err != nil {
		r.ctx.Log(core.LogLevelCritical, "EndScene: backend EndFrame failed: %v", err)
		r.scene = SceneStateIdle
		return err
	}
	r.scene = SceneStateIdle
	return nil
}

// SubmitCommandBuffer hands a fully recorded CommandBuffer to the backend
// for execution. Only valid while Recording; a CommandBuffer
// recorded against a different Renderer is rejected by backend-affinity
// the same way any other Resource is.
func (r *Renderer) SubmitCommandBuffer(cb *CommandBuffer) error {
	if r.scene != SceneStateRecording {
		r.ctx.Log(core.LogLevelCritical, "SubmitCommandBuffer: no scene is currently being recorded")
		return core.ErrUnknown
	}
	if cb == nil || cb.renderer != r {
		r.ctx.Log(core.LogLevelCritical, "SubmitCommandBuffer: command buffer does not belong to this renderer")
		return core.ErrBackendMismatch
	}
	return r.dispatch(cb)
}

// Shutdown tears down the backend. Callers should have released every
// resource they created first; Statistics().Total() > 0 at this point
// indicates a leak.
func (r *Renderer) Shutdown() error {
	if leaked := r.stats().Total(); leaked > 0 {
		r.ctx.Log(core.LogLevelWarning, "Shutdown: %d resources still live, possible leak", leaked)
	}
	return r.backend.Shutdown()
}
