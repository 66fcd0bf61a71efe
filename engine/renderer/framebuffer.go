package renderer

import "github.com/spaghettifunk/ral/engine/core"

// FramebufferAttachment binds one texture (at one mip level) as a
// Framebuffer attachment.
type FramebufferAttachment struct {
	Texture  *Texture
	MipLevel uint32
}

// FramebufferDescriptor is the construction-time argument for
// CreateFramebuffer.
type FramebufferDescriptor struct {
	RenderPass       *RenderPass
	ColorAttachments []FramebufferAttachment
	DepthAttachment  *FramebufferAttachment

	// DebugName optionally labels the framebuffer for backend validation
	// layers/frame captures. Backends that have no such facility ignore it.
	DebugName string
}

// Framebuffer binds a RenderPass to concrete textures. Holds
// strong references to each attachment texture and stores its computed
// (width, height) = min over attachments of (attachment.width >> mip,
// attachment.height >> mip), each clamped to >= 1.
//
// This computation is ordinary backend-agnostic code, not something a
// backend can get wrong - unlike a conformance hole in the
// null-backend-equivalent source, width/height here are always computed
// for real regardless of which Backend created the native framebuffer.
type Framebuffer struct {
	RefCounted
	desc          FramebufferDescriptor
	width, height uint32
	backend       BackendFramebuffer
}

func (f *Framebuffer) Width() uint32  { return f.width }
func (f *Framebuffer) Height() uint32 { return f.height }
func (f *Framebuffer) Backend() BackendFramebuffer { return f.backend }

func computeFramebufferExtent(desc FramebufferDescriptor) (width, height uint32) {
	width, height = ^uint32(0), ^uint32(0) // max uint32, narrowed by every attachment below
	visit := func(a FramebufferAttachment) {
		w := MipExtent(a.Texture.Width(), a.MipLevel)
		h := MipExtent(a.Texture.Height(), a.MipLevel)
		if w < width {
			width = w
		}
		if h < height {
			height = h
		}
	}
	for _, a := range desc.ColorAttachments {
		visit(a)
	}
	if desc.DepthAttachment != nil {
		visit(*desc.DepthAttachment)
	}
	if width == ^uint32(0) {
		width = 1
	}
	if height == ^uint32(0) {
		height = 1
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

func (f *Framebuffer) selfDestruct(r *Renderer) func() {
	return func() {
		for _, a := range f.desc.ColorAttachments {
			a.Texture.ReleaseReference()
		}
		if f.desc.DepthAttachment != nil {
			f.desc.DepthAttachment.Texture.ReleaseReference()
		}
		f.desc.RenderPass.ReleaseReference()
		if f.backend != nil {
			r.backend.DestroyFramebuffer(f.backend)
		}
	}
}

// CreateFramebuffer enforces the attachment-count invariant: it
// must equal the render pass's declared attachment count exactly.
func (r *Renderer) CreateFramebuffer(desc FramebufferDescriptor) *Framebuffer {
	if !checkAffinity(r, desc.RenderPass) {
		return nil
	}
	attachmentCount := len(desc.ColorAttachments)
	if desc.DepthAttachment != nil {
		attachmentCount++
	}
	if attachmentCount != desc.RenderPass.AttachmentCount() {
		r.ctx.Log(core.LogLevelCritical,
			"CreateFramebuffer: %d attachments supplied but render pass declares %d",
			attachmentCount, desc.RenderPass.AttachmentCount())
		return nil
	}
	for _, a := range desc.ColorAttachments {
		if !checkAffinity(r, a.Texture) {
			return nil
		}
	}
	if desc.DepthAttachment != nil && !checkAffinity(r, desc.DepthAttachment.Texture) {
		return nil
	}

	backendFB := r.backend.CreateFramebuffer(desc)
	if backendFB == nil {
		r.ctx.Log(core.LogLevelCritical, "CreateFramebuffer: backend returned no native framebuffer")
		return nil
	}

	width, height := computeFramebufferExtent(desc)

	fb := &Framebuffer{desc: desc, width: width, height: height}
	fb.RefCounted = NewRefCounted(r, ResourceKindFramebuffer, fb.selfDestruct(r))
	desc.RenderPass.AddReference()
	for _, a := range desc.ColorAttachments {
		a.Texture.AddReference()
	}
	if desc.DepthAttachment != nil {
		desc.DepthAttachment.Texture.AddReference()
	}
	fb.backend = backendFB
	return fb
}
