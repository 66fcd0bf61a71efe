package renderer

import "github.com/spaghettifunk/ral/engine/core"

// RenderPassDescriptor is the construction-time argument for
// CreateRenderPass: an attachment-format description only -
// it does not hold attachment textures.
type RenderPassDescriptor struct {
	ColorFormats []TextureFormat
	DepthFormat  *TextureFormat
	Multisamples MultisampleCount
}

// RenderPass is an immutable description of an attachment set. The strictly-less-than-8 limit on color attachments
// is enforced at creation.
type RenderPass struct {
	RefCounted
	colorFormats []TextureFormat
	depthFormat  *TextureFormat
	multisamples MultisampleCount
	backend      BackendRenderPass
}

func (p *RenderPass) ColorAttachmentCount() int    { return len(p.colorFormats) }
func (p *RenderPass) HasDepthStencil() bool         { return p.depthFormat != nil }
func (p *RenderPass) Multisamples() MultisampleCount { return p.multisamples }
func (p *RenderPass) Backend() BackendRenderPass    { return p.backend }

// AttachmentCount is RenderPass's contribution to the attachment-count invariant:
// "every Framebuffer attached to P has attachment count = |color_formats|
// + (depth_format.is_some ? 1 : 0)".
func (p *RenderPass) AttachmentCount() int {
	n := len(p.colorFormats)
	if p.depthFormat != nil {
		n++
	}
	return n
}

func (p *RenderPass) selfDestruct(r *Renderer) func() {
	return func() {
		if p.backend != nil {
			r.backend.DestroyRenderPass(p.backend)
		}
	}
}

// CreateRenderPass enforces: color-attachment count strictly less than 8
//, and color count <= Capabilities.MaxSimultaneousRenderTargets.
func (r *Renderer) CreateRenderPass(desc RenderPassDescriptor) *RenderPass {
	if len(desc.ColorFormats) >= MaxSimultaneousRenderTargetsLimit {
		r.ctx.Log(core.LogLevelCritical,
			"CreateRenderPass: %d color attachments requested, must be strictly less than %d",
			len(desc.ColorFormats), MaxSimultaneousRenderTargetsLimit)
		return nil
	}
	if uint32(len(desc.ColorFormats)) > r.capabilities.MaxSimultaneousRenderTargets {
		r.ctx.Log(core.LogLevelCritical,
			"CreateRenderPass: %d color attachments exceeds capability max %d",
			len(desc.ColorFormats), r.capabilities.MaxSimultaneousRenderTargets)
		return nil
	}

	backendPass := r.backend.CreateRenderPass(desc)
	if backendPass == nil {
		r.ctx.Log(core.LogLevelCritical, "CreateRenderPass: backend returned no native render pass")
		return nil
	}

	var depthFormat *TextureFormat
	if desc.DepthFormat != nil {
		f := *desc.DepthFormat
		depthFormat = &f
	}

	pass := &RenderPass{
		colorFormats: append([]TextureFormat(nil), desc.ColorFormats...),
		depthFormat:  depthFormat,
		multisamples: desc.Multisamples,
	}
	pass.RefCounted = NewRefCounted(r, ResourceKindRenderPass, pass.selfDestruct(r))
	pass.backend = backendPass
	return pass
}
