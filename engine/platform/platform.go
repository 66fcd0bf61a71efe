// Package platform provides the minimal native-window seam the Vulkan
// backend needs to create a presentable surface: a handle GLFW will create
// a VkSurfaceKHR from, and the list of instance extensions the platform
// requires. It does not handle input or application event loops - those
// are out of scope for a rendering abstraction layer.
package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/ral/engine/core"
)

func init() {
	// GLFW must be initialized and polled from the main OS thread.
	runtime.LockOSThread()
}

// Window wraps a GLFW window used only as a Vulkan presentation surface.
type Window struct {
	handle *glfw.Window
}

// NewWindow creates and shows a GLFW window configured for Vulkan: no
// client API is attached, since the Vulkan backend owns device creation.
func NewWindow(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("platform: glfw init: %w", err)
	}

	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return nil, fmt.Errorf("platform: glfw reports no Vulkan loader available")
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	handle, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("platform: create window: %w", err)
	}

	return &Window{handle: handle}, nil
}

// Handle returns the native *glfw.Window, the value a Context implementation
// passes back from NativeWindowHandle() for the Vulkan backend to consume.
func (w *Window) Handle() *glfw.Window {
	return w.handle
}

// RequiredInstanceExtensions returns the Vulkan instance extensions GLFW
// needs to create a surface for this window (VK_KHR_surface plus the
// platform-specific VK_KHR_*_surface extension).
func (w *Window) RequiredInstanceExtensions() []string {
	return glfw.GetRequiredInstanceExtensions()
}

// FramebufferSize returns the current drawable size in pixels, which may
// differ from the window size on HiDPI displays - this is what the
// swap chain's extent must match.
func (w *Window) FramebufferSize() (width, height int) {
	return w.handle.GetFramebufferSize()
}

// ShouldClose reports whether the host OS asked the window to close.
func (w *Window) ShouldClose() bool {
	return w.handle.ShouldClose()
}

// PollEvents pumps the platform event queue. Must be called from the main
// thread that called NewWindow.
func PollEvents() {
	glfw.PollEvents()
}

// Destroy tears down the window and terminates GLFW. Safe to call once.
func (w *Window) Destroy() error {
	if w.handle != nil {
		w.handle.Destroy()
	}
	glfw.Terminate()
	return nil
}

// windowContext adapts a *Window into core.Context.NativeWindowHandle, kept
// here (rather than in engine/core) to avoid core depending on glfw.
type windowContext struct {
	*core.DefaultContext
	window *Window
}

// NewContext builds a core.Context whose NativeWindowHandle() returns this
// window's glfw handle, for backends that render to an on-screen surface.
func NewContext(debug bool, window *Window) core.Context {
	return &windowContext{
		DefaultContext: core.NewDefaultContext(debug),
		window:         window,
	}
}

func (c *windowContext) NativeWindowHandle() interface{} {
	if c.window == nil {
		return nil
	}
	return c.window.Handle()
}
