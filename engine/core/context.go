package core

// Context is the thin platform/host seam a Renderer is constructed with.
// It intentionally knows nothing about windows, input, or asset loading -
// those are the host application's job. A Renderer only needs somewhere to
// log, a place to read build-time feature toggles, and (for backends that
// render to a window) a native surface handle.
type Context interface {
	// Log routes a renderer message through the host's logging sink at the
	// given severity. The default implementation (DefaultContext) forwards
	// to the package-level Log function in logging.go.
	Log(level LogLevel, msg string, args ...interface{})

	// Statistics returns the live-object counter set this renderer should
	// record against, or nil if the host does not want statistics kept.
	Statistics() *Statistics

	// DebugEnabled reports whether the renderer should emit Vulkan
	// validation layers / debug object names (the DEBUG build switch,
	// validation layers). Builds without debug should pay nothing for this.
	DebugEnabled() bool

	// NativeWindowHandle returns the platform's native window handle
	// (e.g. a GLFW window cast to its OS handle) used to create a
	// swap chain surface. Returns nil for a headless/null renderer.
	NativeWindowHandle() interface{}

	// RendererOptions returns the tunables backends should use when
	// deciding things like physical-device selection requirements or
	// descriptor pool sizing. DefaultContext holds these as a plain field
	// so a host can set them once at construction (e.g. from
	// LoadRendererOptions) instead of threading them through every call.
	RendererOptions() RendererOptions
}

// DefaultContext is a Context implementation suitable for tests, tools,
// and any caller that doesn't need a real window surface: it logs through
// the package logger, keeps its own Statistics, and has no native window.
type DefaultContext struct {
	Debug   bool
	Options RendererOptions
	stats   *Statistics
}

func NewDefaultContext(debug bool) *DefaultContext {
	opts := DefaultRendererOptions()
	opts.Debug = debug
	return &DefaultContext{Debug: debug, Options: opts, stats: NewStatistics()}
}

// NewDefaultContextWithOptions builds a DefaultContext from an already
// loaded RendererOptions (see LoadRendererOptions), overriding Debug from
// the options rather than a separate flag.
func NewDefaultContextWithOptions(opts RendererOptions) *DefaultContext {
	return &DefaultContext{Debug: opts.Debug, Options: opts, stats: NewStatistics()}
}

func (c *DefaultContext) Log(level LogLevel, msg string, args ...interface{}) {
	Log(level, msg, args...)
}

func (c *DefaultContext) Statistics() *Statistics {
	return c.stats
}

func (c *DefaultContext) DebugEnabled() bool {
	return c.Debug
}

func (c *DefaultContext) NativeWindowHandle() interface{} {
	return nil
}

func (c *DefaultContext) RendererOptions() RendererOptions {
	return c.Options
}
