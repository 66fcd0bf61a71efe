package renderer

// FilterMode is the backend-agnostic point/linear choice a Filter
// decomposes into; ANISOTROPIC decomposes to all-LINEAR since anisotropy
// is tracked as Capabilities.MaxAnisotropy / SamplerDescriptor.MaxAnisotropy
// rather than as a filter mode itself.
type FilterMode int

const (
	FilterModePoint FilterMode = iota
	FilterModeLinear
)

// DecomposedFilter is the (min, mag, mipmap) triple a Filter value expands
// into, plus whether the sampler is a comparison (shadow) sampler.
type DecomposedFilter struct {
	Min, Mag, Mipmap FilterMode
	Comparison       bool
}

// DecomposeFilter implements the filter decomposition table.
func DecomposeFilter(f Filter) DecomposedFilter {
	switch f {
	case FilterMinMagMipPoint:
		return DecomposedFilter{FilterModePoint, FilterModePoint, FilterModePoint, false}
	case FilterMinMagPointMipLinear:
		return DecomposedFilter{FilterModePoint, FilterModePoint, FilterModeLinear, false}
	case FilterMinPointMagLinearMipPoint:
		return DecomposedFilter{FilterModePoint, FilterModeLinear, FilterModePoint, false}
	case FilterMinPointMagMipLinear:
		return DecomposedFilter{FilterModePoint, FilterModeLinear, FilterModeLinear, false}
	case FilterMinLinearMagMipPoint:
		return DecomposedFilter{FilterModeLinear, FilterModePoint, FilterModePoint, false}
	case FilterMinLinearMagPointMipLinear:
		return DecomposedFilter{FilterModeLinear, FilterModePoint, FilterModeLinear, false}
	case FilterMinMagLinearMipPoint:
		return DecomposedFilter{FilterModeLinear, FilterModeLinear, FilterModePoint, false}
	case FilterMinMagMipLinear:
		return DecomposedFilter{FilterModeLinear, FilterModeLinear, FilterModeLinear, false}
	case FilterAnisotropic:
		return DecomposedFilter{FilterModeLinear, FilterModeLinear, FilterModeLinear, false}
	case FilterComparisonMinMagMipPoint:
		return DecomposedFilter{FilterModePoint, FilterModePoint, FilterModePoint, true}
	case FilterComparisonMinMagMipLinear:
		return DecomposedFilter{FilterModeLinear, FilterModeLinear, FilterModeLinear, true}
	case FilterComparisonAnisotropic:
		return DecomposedFilter{FilterModeLinear, FilterModeLinear, FilterModeLinear, true}
	default:
		return DecomposedFilter{FilterModePoint, FilterModePoint, FilterModePoint, false}
	}
}

// DescriptorType names the native descriptor kind a (ResourceKind,
// RangeType) pair resolves to for root-signature/resource-group binding
//. Backends translate this into their own enum.
type DescriptorType int

const (
	DescriptorTypeNone DescriptorType = iota
	DescriptorTypeUniformTexelBuffer
	DescriptorTypeStorageTexelBuffer
	DescriptorTypeStorageBuffer
	DescriptorTypeUniformBuffer
	DescriptorTypeCombinedImageSampler
	DescriptorTypeStorageImage
)

// ResolveDescriptorType implements the ResourceKind x RangeType -> native
// shared descriptor-type resolution table. Returns (type, ok); ok is false
// for combinations the table marks "-" (not bindable).
func ResolveDescriptorType(kind ResourceKind, rt RangeType) (DescriptorType, bool) {
	switch kind {
	case ResourceKindTextureBuffer:
		switch rt {
		case RangeTypeSRV:
			return DescriptorTypeUniformTexelBuffer, true
		case RangeTypeUAV:
			return DescriptorTypeStorageTexelBuffer, true
		default:
			return DescriptorTypeNone, false
		}
	case ResourceKindIndexBuffer, ResourceKindVertexBuffer, ResourceKindStructuredBuffer, ResourceKindIndirectBuffer:
		switch rt {
		case RangeTypeSRV, RangeTypeUAV:
			return DescriptorTypeStorageBuffer, true
		default:
			return DescriptorTypeNone, false
		}
	case ResourceKindUniformBuffer:
		switch rt {
		case RangeTypeUAV:
			return DescriptorTypeStorageBuffer, true
		case RangeTypeUBV:
			return DescriptorTypeUniformBuffer, true
		default:
			return DescriptorTypeNone, false
		}
	case ResourceKindTexture1D, ResourceKindTexture2D, ResourceKindTexture2DArray,
		ResourceKindTexture3D, ResourceKindTextureCube:
		switch rt {
		case RangeTypeSRV:
			return DescriptorTypeCombinedImageSampler, true
		case RangeTypeUAV:
			return DescriptorTypeStorageImage, true
		default:
			return DescriptorTypeNone, false
		}
	default:
		return DescriptorTypeNone, false
	}
}

// ImageLayoutHint is the backend-agnostic layout family a resource-group
// image descriptor should target, derived from the texture's creation
// flags.
type ImageLayoutHint int

const (
	ImageLayoutHintShaderReadOnly ImageLayoutHint = iota
	ImageLayoutHintGeneral
	ImageLayoutHintPreinitialized
)

func ResolveImageLayoutHint(flags TextureFlag) ImageLayoutHint {
	switch {
	case flags&TextureFlagRenderTarget != 0:
		return ImageLayoutHintShaderReadOnly
	case flags&TextureFlagUnorderedAccess != 0:
		return ImageLayoutHintGeneral
	default:
		return ImageLayoutHintPreinitialized
	}
}

// MipLevelCount computes the mip-chain length for a texture of the given
// max(width, height), computed as floor(log2(max(w,h))) + 1, or 1 if
// mip generation/data is not requested.
func MipLevelCount(width, height uint32, flags TextureFlag) uint32 {
	if flags&(TextureFlagGenerateMipmaps|TextureFlagDataContainsMipmaps) == 0 {
		return 1
	}
	maxDim := width
	if height > maxDim {
		maxDim = height
	}
	if maxDim == 0 {
		return 1
	}
	levels := uint32(1)
	for maxDim > 1 {
		maxDim >>= 1
		levels++
	}
	return levels
}

// MipExtent returns max(dim >> mipIndex, 1), used by both mip-chain
// generation and Framebuffer width/height computation.
func MipExtent(dim uint32, mipIndex uint32) uint32 {
	v := dim >> mipIndex
	if v < 1 {
		return 1
	}
	return v
}
