package renderer

// Capabilities is an immutable record of what the active backend supports,
// populated once during Renderer construction.
type Capabilities struct {
	DeviceName string

	PreferredSwapChainColorFormat TextureFormat
	PreferredSwapChainDepthFormat TextureFormat

	MaxViewports                 uint32
	MaxSimultaneousRenderTargets uint32 // <= 8
	MaxTextureDimension          uint32
	Max2DTextureArraySlices      uint32
	MaxUniformBufferBytes        uint64
	MaxTextureBufferTexels       uint64
	MaxIndirectBufferBytes       uint64
	MaxMultisamples              MultisampleCount // power of two, <= 8
	MaxAnisotropy                float32

	UpperLeftOrigin     bool
	ZeroToOneClipZ      bool
	IndividualUniforms  bool
	InstancedArrays     bool
	DrawInstanced       bool
	BaseVertex          bool
	NativeMultiThreading bool
	ShaderBytecodeSupported bool

	VertexShaderSupported                 bool
	TessellationControlShaderSupported    bool
	TessellationEvaluationShaderSupported bool
	GeometryShaderSupported                bool
	FragmentShaderSupported                bool
	ComputeShaderSupported                 bool

	MaxPatchVertices    uint32
	MaxGsOutputVertices uint32
}

// MaxRenderPassColorAttachments is strictly less than
// MaxSimultaneousRenderTargets").
const MaxRenderPassColorAttachments = 7

const MaxSimultaneousRenderTargetsLimit = 8
