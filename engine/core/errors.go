package core

import (
	"errors"
)

var (
	ErrSwapchainBooting = errors.New("swapchain resized or recreated, booting")
	ErrSwapchainOutdated = errors.New("swapchain out of date, recreation required")
	ErrUnknown          = errors.New("unknown")

	// ErrBackendMismatch is returned (and logged as CRITICAL) whenever a
	// resource created by one Renderer is passed to an operation on a
	// different Renderer instance.
	ErrBackendMismatch = errors.New("resource does not belong to this renderer")

	ErrResourceDestroyed   = errors.New("operation on an already-destroyed resource")
	ErrInvalidRootSignature = errors.New("resource group slot does not match root signature descriptor range")
	ErrInvalidBufferUsage  = errors.New("buffer usage flags are invalid for this buffer kind")
	ErrInvalidTextureUsage = errors.New("texture flags are invalid for this texture kind")
	ErrCommandBufferOverflow = errors.New("command buffer arena exhausted")
	ErrNoActiveRenderPass  = errors.New("no render pass is currently open on the command buffer")
	ErrDeviceLost          = errors.New("graphics device lost")
)
