package renderer

import "github.com/spaghettifunk/ral/engine/core"

// VertexArrayVertexBuffer binds one Buffer (kind Vertex) at a byte offset
// to one input slot of a VertexArray.
type VertexArrayVertexBuffer struct {
	VertexBuffer *Buffer
	Offset       uint64
}

// VertexArrayDescriptor is the construction-time argument for
// CreateVertexArray.
type VertexArrayDescriptor struct {
	VertexBuffers []VertexArrayVertexBuffer
	IndexBuffer   *Buffer // nil for non-indexed draws
}

// VertexArray groups a set of vertex-buffer bindings and an optional
// index buffer under one bindable handle.
//
// Unlike the source renderer's null backend - which never calls
// add_reference on the buffers it is handed, so a VertexArray silently
// outlives buffers the caller has already released - this implementation
// takes a strong reference on every bound buffer at creation and releases
// them on destruction, regardless of which Backend is in use. A
// VertexArray bound to buffers the caller still thinks it owns never
// observes them destroyed out from under it.
type VertexArray struct {
	RefCounted
	desc    VertexArrayDescriptor
	backend BackendVertexArray
}

func (v *VertexArray) Backend() BackendVertexArray { return v.backend }
func (v *VertexArray) IndexBuffer() *Buffer         { return v.desc.IndexBuffer }
func (v *VertexArray) VertexBufferCount() int       { return len(v.desc.VertexBuffers) }

func (v *VertexArray) selfDestruct(r *Renderer) func() {
	return func() {
		for _, vb := range v.desc.VertexBuffers {
			vb.VertexBuffer.ReleaseReference()
		}
		if v.desc.IndexBuffer != nil {
			v.desc.IndexBuffer.ReleaseReference()
		}
		if v.backend != nil {
			r.backend.DestroyVertexArray(v.backend)
		}
	}
}

// CreateVertexArray validates backend affinity of every bound buffer, then
// adds a strong reference to each before returning (see the VertexArray
// doc comment above for why this differs from the source null backend).
func (r *Renderer) CreateVertexArray(desc VertexArrayDescriptor) *VertexArray {
	for _, vb := range desc.VertexBuffers {
		if !checkAffinity(r, vb.VertexBuffer) {
			return nil
		}
	}
	if desc.IndexBuffer != nil && !checkAffinity(r, desc.IndexBuffer) {
		return nil
	}

	va := &VertexArray{desc: desc}
	va.RefCounted = NewRefCounted(r, ResourceKindVertexArray, va.selfDestruct(r))
	for _, vb := range desc.VertexBuffers {
		vb.VertexBuffer.AddReference()
	}
	if desc.IndexBuffer != nil {
		desc.IndexBuffer.AddReference()
	}

	va.backend = r.backend.CreateVertexArray(desc)
	if va.backend == nil {
		r.ctx.Log(core.LogLevelCritical, "CreateVertexArray: backend %q returned no native vertex array", r.backend.Name())
	}
	return va
}
