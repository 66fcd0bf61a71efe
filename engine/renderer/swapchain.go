package renderer

import (
	"errors"

	"github.com/spaghettifunk/ral/engine/core"
)

// SwapChainDescriptor is the construction-time argument for
// CreateSwapChain.
type SwapChainDescriptor struct {
	RenderPass *RenderPass
	Width, Height uint32
	VSync      bool
}

// acquisitionState is the swap-chain acquisition state machine: NoCurrentImage <-acquire-> Acquired(index) <-present-> NoCurrentImage.
type acquisitionState int

const (
	acquisitionNoCurrentImage acquisitionState = iota
	acquisitionAcquired
)

// SwapChain binds a RenderPass to an OS window plus presentable images
//.
type SwapChain struct {
	RefCounted
	renderPass *RenderPass
	width, height uint32
	vsync      bool
	fullscreen bool
	state      acquisitionState
	currentImageIndex uint32
	backend    BackendSwapChain
}

func (s *SwapChain) Backend() BackendSwapChain { return s.backend }

// GetWidthAndHeight returns the extent stored at creation or by the last
// ResizeBuffers; it does not query the OS window.
func (s *SwapChain) GetWidthAndHeight() (uint32, uint32) { return s.width, s.height }

func (s *SwapChain) GetFullscreenState() bool   { return s.fullscreen }
func (s *SwapChain) SetFullscreenState(v bool)  { s.fullscreen = v }

func (s *SwapChain) selfDestruct(r *Renderer) func() {
	return func() {
		s.renderPass.ReleaseReference()
		if s.backend != nil {
			r.backend.DestroySwapChain(s.backend)
		}
	}
}

// CreateSwapChain delegates surface/image/depth/framebuffer creation to
// the backend and starts the acquisition state machine at
// NoCurrentImage.
func (r *Renderer) CreateSwapChain(desc SwapChainDescriptor) *SwapChain {
	if !checkAffinity(r, desc.RenderPass) {
		return nil
	}
	backendSC := r.backend.CreateSwapChain(desc)
	if backendSC == nil {
		r.ctx.Log(core.LogLevelCritical, "CreateSwapChain: backend returned no native swap chain")
		return nil
	}
	sc := &SwapChain{
		renderPass: desc.RenderPass,
		width:      desc.Width,
		height:     desc.Height,
		vsync:      desc.VSync,
		state:      acquisitionNoCurrentImage,
	}
	sc.RefCounted = NewRefCounted(r, ResourceKindSwapChain, sc.selfDestruct(r))
	desc.RenderPass.AddReference()
	sc.backend = backendSC
	return sc
}

// AcquireNextImage implements the NoCurrentImage -> Acquired(index)
// transition. On OUT_OF_DATE it recreates and retries once,
// by retrying the acquire once against the recreated swap chain.
func (r *Renderer) AcquireNextImage(sc *SwapChain) (uint32, error) {
	if !checkAffinity(r, sc) {
		return 0, core.ErrBackendMismatch
	}
	idx, err := r.backend.SwapChainAcquireNext(sc.backend)
	if errors.Is(err, core.ErrSwapchainOutdated) {
		r.ctx.Log(core.LogLevelInformation, "AcquireNextImage: swap chain out of date, recreating")
		if rerr := r.recreateSwapChain(sc); rerr != nil {
			return 0, rerr
		}
		idx, err = r.backend.SwapChainAcquireNext(sc.backend)
	}
	if err != nil {
		r.ctx.Log(core.LogLevelCritical, "AcquireNextImage: %v", err)
		return 0, err
	}
	sc.state = acquisitionAcquired
	sc.currentImageIndex = idx
	return idx, nil
}

// Present implements the Acquired(index) -> NoCurrentImage transition:
// presents the acquired image through the backend and recovers
// automatically from OUT_OF_DATE/SUBOPTIMAL by recreating. It submits no
// command buffer of its own.
func (r *Renderer) Present(sc *SwapChain) error {
	if !checkAffinity(r, sc) {
		return core.ErrBackendMismatch
	}
	if sc.state != acquisitionAcquired {
		r.ctx.Log(core.LogLevelCritical, "Present: no image currently acquired on this swap chain")
		return core.ErrUnknown
	}
	err := r.backend.SwapChainPresent(sc.backend, sc.currentImageIndex)
	sc.state = acquisitionNoCurrentImage
	if errors.Is(err, core.ErrSwapchainOutdated) {
		r.ctx.Log(core.LogLevelInformation, "Present: swap chain out of date/suboptimal, recreating")
		return r.recreateSwapChain(sc)
	}
	if err != nil {
		r.ctx.Log(core.LogLevelCritical, "Present: %v", err)
	}
	return err
}

// ResizeBuffers implements resize_buffers: device-wait-idle,
// destroy and recreate swap-chain resources on the existing surface.
func (r *Renderer) ResizeBuffers(sc *SwapChain, width, height uint32) error {
	if !checkAffinity(r, sc) {
		return core.ErrBackendMismatch
	}
	sc.width, sc.height = width, height
	return r.recreateSwapChain(sc)
}

func (r *Renderer) recreateSwapChain(sc *SwapChain) error {
	newBackend := r.backend.CreateSwapChain(SwapChainDescriptor{
		RenderPass: sc.renderPass,
		Width:      sc.width,
		Height:     sc.height,
		VSync:      sc.vsync,
	})
	if newBackend == nil {
		r.ctx.Log(core.LogLevelCritical, "recreateSwapChain: backend failed to recreate swap chain")
		return core.ErrUnknown
	}
	r.backend.DestroySwapChain(sc.backend)
	sc.backend = newBackend
	sc.state = acquisitionNoCurrentImage
	return nil
}

func (r *Renderer) SetVSyncInterval(sc *SwapChain, vsync bool) {
	sc.vsync = vsync
}

// SwapChainCurrentFramebuffer returns the Framebuffer-equivalent backend handle
// for the currently acquired image, for use in SetGraphicsRenderTarget.
func (r *Renderer) SwapChainCurrentFramebuffer(sc *SwapChain) BackendFramebuffer {
	if sc.state != acquisitionAcquired {
		r.ctx.Log(core.LogLevelCritical, "SwapChainCurrentFramebuffer: no image currently acquired")
		return nil
	}
	return r.backend.SwapChainFramebuffer(sc.backend, sc.currentImageIndex)
}
