package renderer

import "github.com/spaghettifunk/ral/engine/core"

// Resource is the small interface every RAL-visible object satisfies. It
// replaces the source renderer's polymorphic IResource hierarchy with a single
// embeddable struct (RefCounted) plus a ResourceKind tag, rather than a
// shared base class.
type Resource interface {
	Kind() ResourceKind
	AddReference()
	ReleaseReference()
	ReferenceCount() int32
	// BelongsTo reports whether r was created by this resource's owning
	// Renderer - the backend-affinity check every operation must perform
	// before touching backend state.
	BelongsTo(r *Renderer) bool
}

// RefCounted implements add_reference/release_reference/self_destruct
// with a plain (non-atomic) counter: the Renderer is not
// internally thread-safe, so every resource touch happens on
// the single render thread already serializing everything else.
type RefCounted struct {
	renderer *Renderer
	kind     ResourceKind
	count    int32
	destroy  func()
	alreadyDestroyed bool
}

// NewRefCounted constructs a RefCounted with an initial strong count of 1
//, registering the live-object count
// with the renderer's statistics if present.
func NewRefCounted(r *Renderer, kind ResourceKind, destroy func()) RefCounted {
	if r != nil && r.stats() != nil {
		r.stats().Acquire(kind)
	}
	return RefCounted{renderer: r, kind: kind, count: 1, destroy: destroy}
}

func (rc *RefCounted) Kind() ResourceKind { return rc.kind }

func (rc *RefCounted) AddReference() {
	rc.count++
}

func (rc *RefCounted) ReleaseReference() {
	if rc.alreadyDestroyed {
		return
	}
	rc.count--
	if rc.count <= 0 {
		rc.alreadyDestroyed = true
		if rc.renderer != nil && rc.renderer.stats() != nil {
			rc.renderer.stats().Release(rc.kind)
		}
		if rc.destroy != nil {
			rc.destroy()
		}
	}
}

func (rc *RefCounted) ReferenceCount() int32 { return rc.count }

// BelongsTo implements the backend-affinity check: using a resource from a different Renderer than the one that
// created it is a programmer error, logged CRITICAL, with the operation
// skipped rather than panicking.
func (rc *RefCounted) BelongsTo(r *Renderer) bool {
	if rc.renderer != r {
		if r != nil {
			r.ctx.Log(core.LogLevelCritical,
				"resource of kind %s does not belong to this renderer (backend-affinity violation)", rc.kind)
		}
		return false
	}
	return true
}

// checkAffinity is the common guard every Renderer method that receives a
// foreign Resource should call first.
func checkAffinity(r *Renderer, res Resource) bool {
	if res == nil {
		r.ctx.Log(core.LogLevelCritical, "nil resource passed to an operation expecting a live resource")
		return false
	}
	return res.BelongsTo(r)
}
