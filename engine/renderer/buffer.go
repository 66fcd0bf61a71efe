package renderer

import (
	"fmt"

	"github.com/spaghettifunk/ral/engine/core"
)

// BufferKind discriminates the six buffer variants a Buffer can take.
type BufferKind int

const (
	BufferKindIndex BufferKind = iota
	BufferKindVertex
	BufferKindUniform
	BufferKindTexture
	BufferKindStructured
	BufferKindIndirect
)

func (k BufferKind) resourceKind() ResourceKind {
	switch k {
	case BufferKindIndex:
		return ResourceKindIndexBuffer
	case BufferKindVertex:
		return ResourceKindVertexBuffer
	case BufferKindUniform:
		return ResourceKindUniformBuffer
	case BufferKindTexture:
		return ResourceKindTextureBuffer
	case BufferKindStructured:
		return ResourceKindStructuredBuffer
	case BufferKindIndirect:
		return ResourceKindIndirectBuffer
	default:
		return ResourceKindVertexBuffer
	}
}

// DrawArguments mirrors vkCmdDrawIndirect's packed argument layout.
type DrawArguments struct {
	VertexCountPerInstance uint32
	InstanceCount          uint32
	StartVertexLocation    uint32
	StartInstanceLocation  uint32
}

// DrawIndexedArguments mirrors vkCmdDrawIndexedIndirect's layout.
type DrawIndexedArguments struct {
	IndexCountPerInstance uint32
	InstanceCount         uint32
	StartIndexLocation    uint32
	BaseVertexLocation    int32
	StartInstanceLocation uint32
}

const drawArgumentsSize = 16          // 4 x uint32
const drawIndexedArgumentsSize = 20    // 5 x uint32/int32

// BufferDescriptor is the construction-time argument for CreateBuffer
//.
type BufferDescriptor struct {
	SizeBytes  uint64
	Flags      BufferFlag
	Usage      BufferUsage
	Format     TextureFormat // only meaningful for BufferKindTexture
	IndirectIsIndexed bool   // only meaningful for BufferKindIndirect
	IndexFormat IndexBufferFormat // only meaningful for BufferKindIndex
	StructureByteStride uint64 // only meaningful for BufferKindStructured
}

// Buffer is the RAL-visible handle for any of the six buffer kinds.
type Buffer struct {
	RefCounted
	kind    BufferKind
	desc    BufferDescriptor
	backend BackendBuffer
}

func (b *Buffer) BackendHandle() interface{} { return b.backend }

func (b *Buffer) selfDestruct(r *Renderer) func() {
	return func() {
		if b.backend != nil {
			r.backend.DestroyBuffer(b.backend)
		}
	}
}

// validateBufferDescriptor enforces the descriptor invariants:
//   - IndirectBuffer size must be an exact multiple of the selected
//     arguments struct, and exactly one of DRAW_ARGUMENTS / DRAW_INDEXED_ARGUMENTS
//     must be set.
//   - StructuredBuffer size must be a multiple of the declared stride
//     (performance warning, not an error, if stride is not itself a
//     multiple of 16).
func validateBufferDescriptor(ctx core.Context, kind BufferKind, desc BufferDescriptor) error {
	switch kind {
	case BufferKindIndirect:
		drawSet := desc.Flags&BufferFlagDrawArguments != 0
		indexedSet := desc.Flags&BufferFlagDrawIndexedArguments != 0
		if drawSet == indexedSet {
			return fmt.Errorf("%w: indirect buffer must set exactly one of DRAW_ARGUMENTS/DRAW_INDEXED_ARGUMENTS", core.ErrInvalidBufferUsage)
		}
		elemSize := uint64(drawArgumentsSize)
		if indexedSet {
			elemSize = drawIndexedArgumentsSize
		}
		if desc.SizeBytes%elemSize != 0 {
			return fmt.Errorf("%w: indirect buffer size %d is not a multiple of argument struct size %d",
				core.ErrInvalidBufferUsage, desc.SizeBytes, elemSize)
		}
	case BufferKindStructured:
		if desc.StructureByteStride == 0 {
			return fmt.Errorf("%w: structured buffer stride must be non-zero", core.ErrInvalidBufferUsage)
		}
		if desc.SizeBytes%desc.StructureByteStride != 0 {
			return fmt.Errorf("%w: structured buffer size %d is not a multiple of its stride %d",
				core.ErrInvalidBufferUsage, desc.SizeBytes, desc.StructureByteStride)
		}
		if desc.StructureByteStride%16 != 0 {
			ctx.Log(core.LogLevelPerformanceWarning,
				"structured buffer stride %d bytes is not a multiple of 16; consider padding for alignment", desc.StructureByteStride)
		}
	case BufferKindIndex:
		if desc.IndexFormat == IndexBufferFormatUnsignedChar {
			return fmt.Errorf("%w: IndexBufferFormat.UNSIGNED_CHAR (1-byte indices) is unsupported on Vulkan", core.ErrInvalidBufferUsage)
		}
	}
	return nil
}

// createBuffer is the common path behind CreateIndexBuffer / CreateVertexBuffer
// / etc").
func (r *Renderer) createBuffer(kind BufferKind, desc BufferDescriptor, initial []byte) *Buffer {
	if err := validateBufferDescriptor(r.ctx, kind, desc); err != nil {
		r.ctx.Log(core.LogLevelCritical, "CreateBuffer: %v", err)
		return nil
	}
	backendBuf := r.backend.CreateBuffer(kind, desc, initial)
	if backendBuf == nil {
		r.ctx.Log(core.LogLevelCritical, "CreateBuffer: backend returned no native buffer for kind %s", kind.resourceKind())
		return nil
	}
	buf := &Buffer{kind: kind, desc: desc}
	buf.RefCounted = NewRefCounted(r, kind.resourceKind(), buf.selfDestruct(r))
	buf.backend = backendBuf
	return buf
}

func (r *Renderer) CreateIndexBuffer(desc BufferDescriptor, initial []byte) *Buffer {
	return r.createBuffer(BufferKindIndex, desc, initial)
}

func (r *Renderer) CreateVertexBuffer(desc BufferDescriptor, initial []byte) *Buffer {
	return r.createBuffer(BufferKindVertex, desc, initial)
}

func (r *Renderer) CreateUniformBuffer(desc BufferDescriptor, initial []byte) *Buffer {
	return r.createBuffer(BufferKindUniform, desc, initial)
}

func (r *Renderer) CreateTextureBuffer(desc BufferDescriptor, initial []byte) *Buffer {
	return r.createBuffer(BufferKindTexture, desc, initial)
}

func (r *Renderer) CreateStructuredBuffer(desc BufferDescriptor, initial []byte) *Buffer {
	return r.createBuffer(BufferKindStructured, desc, initial)
}

func (r *Renderer) CreateIndirectBuffer(desc BufferDescriptor, initial []byte) *Buffer {
	return r.createBuffer(BufferKindIndirect, desc, initial)
}
