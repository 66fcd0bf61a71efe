package renderer

import (
	"fmt"

	"github.com/spaghettifunk/ral/engine/core"
)

// TextureKind discriminates the five texture variants a Texture can take.
type TextureKind int

const (
	TextureKind1D TextureKind = iota
	TextureKind2D
	TextureKind2DArray
	TextureKind3D
	TextureKindCube
)

func (k TextureKind) resourceKind() ResourceKind {
	switch k {
	case TextureKind1D:
		return ResourceKindTexture1D
	case TextureKind2D:
		return ResourceKindTexture2D
	case TextureKind2DArray:
		return ResourceKindTexture2DArray
	case TextureKind3D:
		return ResourceKindTexture3D
	case TextureKindCube:
		return ResourceKindTextureCube
	default:
		return ResourceKindTexture2D
	}
}

// TextureDescriptor is the construction-time argument for CreateTexture
//. Width is always meaningful; Height/Depth are interpreted
// per-kind (for Kind2DArray, Depth is the slice count; Cube is materially
// a 2D array of 6 layers and ignores Depth).
type TextureDescriptor struct {
	Width, Height, Depth uint32
	Format               TextureFormat
	Flags                TextureFlag
	Multisamples         MultisampleCount // 2D only
	ClearValue           *[4]float32
}

// MipLevels returns the computed mip-chain length for this descriptor
//.
func (d TextureDescriptor) MipLevels() uint32 {
	return MipLevelCount(d.Width, d.Height, d.Flags)
}

// LayerCount returns the number of array layers: 6 for cube maps, Depth
// for 2D arrays, 1 otherwise.
func (d TextureDescriptor) LayerCount(kind TextureKind) uint32 {
	switch kind {
	case TextureKindCube:
		return 6
	case TextureKind2DArray:
		if d.Depth == 0 {
			return 1
		}
		return d.Depth
	default:
		return 1
	}
}

func validateTextureDescriptor(kind TextureKind, desc TextureDescriptor, hasInitialData bool) error {
	if desc.Flags&TextureFlagRenderTarget != 0 && hasInitialData {
		return fmt.Errorf("%w: RENDER_TARGET and non-null initial data are mutually exclusive", core.ErrInvalidTextureUsage)
	}
	if desc.Flags&TextureFlagDataContainsMipmaps != 0 && desc.Flags&TextureFlagGenerateMipmaps != 0 {
		return fmt.Errorf("%w: DATA_CONTAINS_MIPMAPS and GENERATE_MIPMAPS are mutually exclusive", core.ErrInvalidTextureUsage)
	}
	if kind == TextureKindCube && desc.Width != desc.Height {
		return fmt.Errorf("%w: cube texture faces must be square, got %dx%d", core.ErrInvalidTextureUsage, desc.Width, desc.Height)
	}
	return nil
}

// Texture is the RAL-visible handle for any of the five texture variants.
type Texture struct {
	RefCounted
	kind    TextureKind
	desc    TextureDescriptor
	backend BackendTexture
}

func (t *Texture) BackendHandle() interface{} { return t.backend }
func (t *Texture) Width() uint32              { return t.desc.Width }
func (t *Texture) Height() uint32             { return t.desc.Height }
func (t *Texture) MipLevels() uint32          { return t.desc.MipLevels() }
func (t *Texture) Format() TextureFormat      { return t.desc.Format }
func (t *Texture) Flags() TextureFlag         { return t.desc.Flags }

func (t *Texture) selfDestruct(r *Renderer) func() {
	return func() {
		if t.backend != nil {
			r.backend.DestroyTexture(t.backend)
		}
	}
}

func (r *Renderer) createTexture(kind TextureKind, desc TextureDescriptor, initial []byte) *Texture {
	if err := validateTextureDescriptor(kind, desc, len(initial) > 0); err != nil {
		r.ctx.Log(core.LogLevelCritical, "CreateTexture: %v", err)
		return nil
	}
	backendTex := r.backend.CreateTexture(kind, desc, initial)
	if backendTex == nil {
		r.ctx.Log(core.LogLevelCritical, "CreateTexture: backend returned no native texture for kind %s", kind.resourceKind())
		return nil
	}
	tex := &Texture{kind: kind, desc: desc}
	tex.RefCounted = NewRefCounted(r, kind.resourceKind(), tex.selfDestruct(r))
	tex.backend = backendTex
	return tex
}

func (r *Renderer) CreateTexture1D(desc TextureDescriptor, initial []byte) *Texture {
	return r.createTexture(TextureKind1D, desc, initial)
}

func (r *Renderer) CreateTexture2D(desc TextureDescriptor, initial []byte) *Texture {
	return r.createTexture(TextureKind2D, desc, initial)
}

func (r *Renderer) CreateTexture2DArray(desc TextureDescriptor, initial []byte) *Texture {
	return r.createTexture(TextureKind2DArray, desc, initial)
}

func (r *Renderer) CreateTexture3D(desc TextureDescriptor, initial []byte) *Texture {
	return r.createTexture(TextureKind3D, desc, initial)
}

func (r *Renderer) CreateTextureCube(desc TextureDescriptor, initial []byte) *Texture {
	return r.createTexture(TextureKindCube, desc, initial)
}
