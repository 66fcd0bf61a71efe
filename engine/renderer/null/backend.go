// Package null implements a Backend that performs no native GPU work: it
// accepts every creation call, hands back a lightweight in-process handle,
// and counts frames, draws and dispatches in its own fields (FrameCount,
// DrawCount, DispatchCount). It
// exists for headless testing and for exercising the reference-counted
// resource graph in engine/renderer without a GPU.
package null

import (
	"github.com/spaghettifunk/ral/engine/core"
	"github.com/spaghettifunk/ral/engine/renderer"
)

// Backend is the null renderer.Backend implementation.
type Backend struct {
	ctx          core.Context
	width        uint32
	height       uint32
	capabilities renderer.Capabilities
	frameCount   uint64
	drawCount    uint64
	dispatchCount uint64
}

// FrameCount, DrawCount, and DispatchCount expose the call counts this
// backend has observed, for tests asserting the RAL's command recording
// actually reaches the backend.
func (b *Backend) FrameCount() uint64    { return b.frameCount }
func (b *Backend) DrawCount() uint64     { return b.drawCount }
func (b *Backend) DispatchCount() uint64 { return b.dispatchCount }

// New constructs an uninitialized null backend. Call Initialize (through
// renderer.NewRenderer) before using it.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Name() string { return "null" }

func (b *Backend) Capabilities() renderer.Capabilities { return b.capabilities }

// Initialize sets up capabilities that reflect a generous, always-capable
// device: the null backend's entire purpose is to never be the reason a
// resource-graph test fails.
func (b *Backend) Initialize(ctx core.Context, appName string, width, height uint32) error {
	b.ctx = ctx
	b.width, b.height = width, height
	b.capabilities = renderer.Capabilities{
		DeviceName:                   "null",
		PreferredSwapChainColorFormat: renderer.TextureFormatR8G8B8A8,
		PreferredSwapChainDepthFormat: renderer.TextureFormatD32Float,
		MaxViewports:                 16,
		MaxSimultaneousRenderTargets: renderer.MaxSimultaneousRenderTargetsLimit,
		MaxTextureDimension:          16384,
		Max2DTextureArraySlices:      2048,
		MaxUniformBufferBytes:        1 << 20,
		MaxTextureBufferTexels:       1 << 27,
		MaxIndirectBufferBytes:       1 << 20,
		MaxMultisamples:              renderer.MultisampleCount8x,
		MaxAnisotropy:                16,
		UpperLeftOrigin:              true,
		ZeroToOneClipZ:               true,
		IndividualUniforms:           true,
		InstancedArrays:              true,
		DrawInstanced:                true,
		BaseVertex:                   true,
		NativeMultiThreading:         false,
		ShaderBytecodeSupported:      true,
		VertexShaderSupported:        true,
		TessellationControlShaderSupported:    true,
		TessellationEvaluationShaderSupported: true,
		GeometryShaderSupported:      true,
		FragmentShaderSupported:      true,
		ComputeShaderSupported:       true,
		MaxPatchVertices:             32,
		MaxGsOutputVertices:          1024,
	}
	ctx.Log(core.LogLevelInformation, "null backend initialized for %q at %dx%d", appName, width, height)
	return nil
}

func (b *Backend) Shutdown() error {
	b.ctx.Log(core.LogLevelInformation, "null backend shut down after %d frames", b.frameCount)
	return nil
}

func (b *Backend) Resized(width, height uint32) error {
	b.width, b.height = width, height
	return nil
}

func (b *Backend) BeginFrame() error { return nil }

func (b *Backend) EndFrame() error {
	b.frameCount++
	return nil
}
