package renderer

import "github.com/spaghettifunk/ral/engine/core"

// ResourceKind re-exports core.ResourceKind so callers only need to import
// one package for the common case; the type lives in core to keep
// engine/core free of a dependency on this package.
type ResourceKind = core.ResourceKind

const (
	ResourceKindRootSignature                = core.ResourceKindRootSignature
	ResourceKindResourceGroup                = core.ResourceKindResourceGroup
	ResourceKindGraphicsProgram               = core.ResourceKindGraphicsProgram
	ResourceKindVertexArray                   = core.ResourceKindVertexArray
	ResourceKindRenderPass                    = core.ResourceKindRenderPass
	ResourceKindSwapChain                     = core.ResourceKindSwapChain
	ResourceKindFramebuffer                   = core.ResourceKindFramebuffer
	ResourceKindIndexBuffer                   = core.ResourceKindIndexBuffer
	ResourceKindVertexBuffer                  = core.ResourceKindVertexBuffer
	ResourceKindTextureBuffer                 = core.ResourceKindTextureBuffer
	ResourceKindStructuredBuffer              = core.ResourceKindStructuredBuffer
	ResourceKindIndirectBuffer                = core.ResourceKindIndirectBuffer
	ResourceKindUniformBuffer                 = core.ResourceKindUniformBuffer
	ResourceKindTexture1D                     = core.ResourceKindTexture1D
	ResourceKindTexture2D                     = core.ResourceKindTexture2D
	ResourceKindTexture2DArray                = core.ResourceKindTexture2DArray
	ResourceKindTexture3D                     = core.ResourceKindTexture3D
	ResourceKindTextureCube                   = core.ResourceKindTextureCube
	ResourceKindGraphicsPipelineState         = core.ResourceKindGraphicsPipelineState
	ResourceKindComputePipelineState          = core.ResourceKindComputePipelineState
	ResourceKindSamplerState                  = core.ResourceKindSamplerState
	ResourceKindVertexShader                  = core.ResourceKindVertexShader
	ResourceKindTessellationControlShader     = core.ResourceKindTessellationControlShader
	ResourceKindTessellationEvaluationShader  = core.ResourceKindTessellationEvaluationShader
	ResourceKindGeometryShader                = core.ResourceKindGeometryShader
	ResourceKindFragmentShader                = core.ResourceKindFragmentShader
	ResourceKindComputeShader                 = core.ResourceKindComputeShader
)

// TextureFormat is the closed pixel-format enumeration.
type TextureFormat int

const (
	TextureFormatUnknown TextureFormat = iota
	TextureFormatR8
	TextureFormatR8G8B8
	TextureFormatR8G8B8A8
	TextureFormatR8G8B8A8SRGB
	TextureFormatB8G8R8A8
	TextureFormatR11G11B10F
	TextureFormatR16G16B16A16F
	TextureFormatR32G32B32A32F
	TextureFormatBC1
	TextureFormatBC1SRGB
	TextureFormatBC2
	TextureFormatBC2SRGB
	TextureFormatBC3
	TextureFormatBC3SRGB
	TextureFormatBC4
	TextureFormatBC5
	TextureFormatETC1
	TextureFormatR16Unorm
	TextureFormatR32Uint
	TextureFormatR32Float
	TextureFormatD32Float
	TextureFormatR16G16Snorm
	TextureFormatR16G16Float
)

// IsDepth reports whether the format is a depth (or depth-stencil) format.
func (f TextureFormat) IsDepth() bool {
	return f == TextureFormatD32Float
}

// IsCompressed reports whether the format is a block-compressed format,
// whose byte size must be computed per 4x4 block rather than per texel.
func (f TextureFormat) IsCompressed() bool {
	switch f {
	case TextureFormatBC1, TextureFormatBC1SRGB, TextureFormatBC2, TextureFormatBC2SRGB,
		TextureFormatBC3, TextureFormatBC3SRGB, TextureFormatBC4, TextureFormatBC5, TextureFormatETC1:
		return true
	default:
		return false
	}
}

// BytesPerElement returns the byte size of one texel (uncompressed formats)
// or one 4x4 block (compressed formats).
func (f TextureFormat) BytesPerElement() int {
	switch f {
	case TextureFormatR8:
		return 1
	case TextureFormatR16Unorm:
		return 2
	case TextureFormatR16G16Float, TextureFormatR16G16Snorm:
		return 4
	case TextureFormatR8G8B8:
		return 3
	case TextureFormatR8G8B8A8, TextureFormatR8G8B8A8SRGB, TextureFormatB8G8R8A8,
		TextureFormatR11G11B10F, TextureFormatR32Uint, TextureFormatR32Float, TextureFormatD32Float:
		return 4
	case TextureFormatR16G16B16A16F:
		return 8
	case TextureFormatR32G32B32A32F:
		return 16
	case TextureFormatBC1, TextureFormatBC1SRGB, TextureFormatBC4, TextureFormatETC1:
		return 8 // 4x4 block, 8 bytes
	case TextureFormatBC2, TextureFormatBC2SRGB, TextureFormatBC3, TextureFormatBC3SRGB, TextureFormatBC5:
		return 16 // 4x4 block, 16 bytes
	default:
		return 0
	}
}

// SizeInBytes computes the storage size of one mip level of dimensions
// (width, height), honoring the per-4x4-block accounting for compressed
// formats.
func (f TextureFormat) SizeInBytes(width, height uint32) uint64 {
	if f.IsCompressed() {
		blocksWide := uint64((width + 3) / 4)
		blocksHigh := uint64((height + 3) / 4)
		return blocksWide * blocksHigh * uint64(f.BytesPerElement())
	}
	return uint64(width) * uint64(height) * uint64(f.BytesPerElement())
}

// Filter is the sampler filter mode: decomposes into
// (min, mag, mipmap) native filters, with ANISOTROPIC mapping all three
// to LINEAR since anisotropy itself is a separate scalar.
type Filter int

const (
	FilterMinMagMipPoint Filter = iota
	FilterMinMagPointMipLinear
	FilterMinPointMagLinearMipPoint
	FilterMinPointMagMipLinear
	FilterMinLinearMagMipPoint
	FilterMinLinearMagPointMipLinear
	FilterMinMagLinearMipPoint
	FilterMinMagMipLinear
	FilterAnisotropic
	FilterComparisonMinMagMipPoint
	FilterComparisonMinMagMipLinear
	FilterComparisonAnisotropic
)

// AddressMode enumeration starts at 1 (WRAP); always index with value-1
// when building a lookup table.
type AddressMode int

const (
	AddressModeWrap AddressMode = iota + 1
	AddressModeMirror
	AddressModeClamp
	AddressModeBorder
	AddressModeMirrorOnce
)

// Index returns the zero-based table index for this address mode.
func (a AddressMode) Index() int { return int(a) - 1 }

// CompareFunction is 1-based.
type CompareFunction int

const (
	CompareFunctionNever CompareFunction = iota + 1
	CompareFunctionLess
	CompareFunctionEqual
	CompareFunctionLessEqual
	CompareFunctionGreater
	CompareFunctionNotEqual
	CompareFunctionGreaterEqual
	CompareFunctionAlways
)

// Index returns the zero-based table index for this compare function.
func (c CompareFunction) Index() int { return int(c) - 1 }

// BlendFactor enumeration has holes at values 12 and 13; a
// lookup table indexed directly by this value must carry placeholder
// entries at those slots.
type BlendFactor int

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcColor
	BlendFactorInvSrcColor
	BlendFactorSrcAlpha
	BlendFactorInvSrcAlpha
	BlendFactorDstAlpha
	BlendFactorInvDstAlpha
	BlendFactorDstColor
	BlendFactorInvDstColor
	BlendFactorSrcAlphaSat
	BlendFactorUnused11
	blendFactorHole12
	blendFactorHole13
	BlendFactorBlendFactor
	BlendFactorInvBlendFactor
	BlendFactorSrc1Color
	BlendFactorInvSrc1Color
	BlendFactorSrc1Alpha
	BlendFactorInvSrc1Alpha
)

type BlendOp int

const (
	BlendOpAdd BlendOp = iota + 1
	BlendOpSubtract
	BlendOpRevSubtract
	BlendOpMin
	BlendOpMax
)

// PrimitiveTopology. PATCH_LIST_1 == 33 so the whole PATCH_LIST_1..32
// range fits above TriangleStrip without colliding with it.
type PrimitiveTopology int

const (
	PrimitiveTopologyPointList PrimitiveTopology = iota + 1
	PrimitiveTopologyLineList
	PrimitiveTopologyLineStrip
	PrimitiveTopologyTriangleList
	PrimitiveTopologyTriangleStrip

	PrimitiveTopologyPatchList1 PrimitiveTopology = 33
)

const maxPatchListValue = PrimitiveTopologyPatchList1 + 31 // PATCH_LIST_32

// IsPatchList reports whether this topology names one of PATCH_LIST_1..32.
func (p PrimitiveTopology) IsPatchList() bool {
	return p >= PrimitiveTopologyPatchList1 && p <= maxPatchListValue
}

// PatchControlPoints returns the patch-control-point count for a
// PATCH_LIST_N topology (N for PATCH_LIST_N), or 1 for any non-patch-list
// topology.
func (p PrimitiveTopology) PatchControlPoints() int {
	if !p.IsPatchList() {
		return 1
	}
	return int(p-PrimitiveTopologyPatchList1) + 1
}

// IndexBufferFormat. UnsignedChar (1-byte indices) is unsupported on
// Vulkan - CreateIndexBuffer (validateBufferDescriptor in buffer.go)
// rejects it with a CRITICAL log rather than silently widening it.
type IndexBufferFormat int

const (
	IndexBufferFormatUnsignedChar IndexBufferFormat = iota
	IndexBufferFormatUnsignedShort
	IndexBufferFormatUnsignedInt
)

// MultisampleCount. The raw count doubles as the native sample-count bit
//.
type MultisampleCount int

const (
	MultisampleNone      MultisampleCount = 1
	MultisampleCount2x   MultisampleCount = 2
	MultisampleCount4x   MultisampleCount = 4
	MultisampleCount8x   MultisampleCount = 8
)

// BufferFlag bits.
type BufferFlag uint32

const (
	BufferFlagShaderResource BufferFlag = 1 << iota
	BufferFlagUnorderedAccess
	BufferFlagDrawArguments
	BufferFlagDrawIndexedArguments
)

type BufferUsage int

const (
	BufferUsageStaticDraw BufferUsage = iota
	BufferUsageDynamicDraw
	BufferUsageStreamDraw
)

// TextureFlag bits.
type TextureFlag uint32

const (
	TextureFlagShaderResource TextureFlag = 1 << iota
	TextureFlagUnorderedAccess
	TextureFlagRenderTarget
	TextureFlagDataContainsMipmaps
	TextureFlagGenerateMipmaps
)

// ShaderStage identifies one of the six programmable pipeline stages.
type ShaderStage int

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageTessellationControl
	ShaderStageTessellationEvaluation
	ShaderStageGeometry
	ShaderStageFragment
	ShaderStageCompute
)

func (s ShaderStage) ResourceKind() ResourceKind {
	switch s {
	case ShaderStageVertex:
		return ResourceKindVertexShader
	case ShaderStageTessellationControl:
		return ResourceKindTessellationControlShader
	case ShaderStageTessellationEvaluation:
		return ResourceKindTessellationEvaluationShader
	case ShaderStageGeometry:
		return ResourceKindGeometryShader
	case ShaderStageFragment:
		return ResourceKindFragmentShader
	case ShaderStageCompute:
		return ResourceKindComputeShader
	default:
		return ResourceKindVertexShader
	}
}

// ShaderVisibility is a bitmask of pipeline stages a root-parameter's
// descriptor table is visible to.
type ShaderVisibility uint32

const (
	ShaderVisibilityVertex ShaderVisibility = 1 << iota
	ShaderVisibilityTessellationControl
	ShaderVisibilityTessellationEvaluation
	ShaderVisibilityGeometry
	ShaderVisibilityFragment
	ShaderVisibilityCompute

	ShaderVisibilityAllGraphics = ShaderVisibilityVertex | ShaderVisibilityTessellationControl |
		ShaderVisibilityTessellationEvaluation | ShaderVisibilityGeometry | ShaderVisibilityFragment
	ShaderVisibilityAll = ShaderVisibilityAllGraphics | ShaderVisibilityCompute
)

// RangeType names what a DescriptorRange binds.
type RangeType int

const (
	RangeTypeSRV RangeType = iota
	RangeTypeUAV
	RangeTypeUBV
	RangeTypeSampler
)

// RootParameterType. DESCRIPTOR_TABLE is the only supported type.
type RootParameterType int

const (
	RootParameterTypeDescriptorTable RootParameterType = iota
)

// ClearFlag is a combinable bitmask.
type ClearFlag uint32

const (
	ClearFlagColor ClearFlag = 1 << iota
	ClearFlagDepth
	ClearFlagStencil
)

// FillMode / CullMode / FrontFace for rasterizer state.
type FillMode int

const (
	FillModeSolid FillMode = iota
	FillModeWireframe
)

type CullMode int

const (
	CullModeNone CullMode = iota
	CullModeFront
	CullModeBack
)

type FrontFace int

const (
	FrontFaceClockwise FrontFace = iota
	FrontFaceCounterClockwise
)

// VertexAttributeFormat names the wire format of one vertex attribute.
type VertexAttributeFormat int

const (
	VertexAttributeFormatFloat1 VertexAttributeFormat = iota
	VertexAttributeFormatFloat2
	VertexAttributeFormatFloat3
	VertexAttributeFormatFloat4
	VertexAttributeFormatByte4
	VertexAttributeFormatUint
)
