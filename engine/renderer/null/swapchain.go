package null

import "github.com/spaghettifunk/ral/engine/renderer"

// CreateSwapChain fabricates a single-image swap chain that never reports
// OUT_OF_DATE/SUBOPTIMAL: there is no real presentation surface to go
// stale, so AcquireNextImage/Present always succeed immediately.
func (b *Backend) CreateSwapChain(desc renderer.SwapChainDescriptor) renderer.BackendSwapChain {
	fb := handleFramebuffer{}
	return &handleSwapChain{desc: desc, imageCount: 1, framebuffers: []*handleFramebuffer{&fb}}
}

func (b *Backend) DestroySwapChain(renderer.BackendSwapChain) {}

func (b *Backend) SwapChainAcquireNext(sc renderer.BackendSwapChain) (uint32, error) {
	return 0, nil
}

func (b *Backend) SwapChainPresent(sc renderer.BackendSwapChain, imageIndex uint32) error {
	return nil
}

func (b *Backend) SwapChainFramebuffer(sc renderer.BackendSwapChain, imageIndex uint32) renderer.BackendFramebuffer {
	s := sc.(*handleSwapChain)
	if int(imageIndex) >= len(s.framebuffers) {
		return nil
	}
	return s.framebuffers[imageIndex]
}
