/*
This is a demo application exercising the rendering abstraction layer:
it opens a window, stands up the Vulkan backend behind it, and clears
the swap chain to a solid color every frame until the window is closed.

Pass -backend=null to run the same loop against the headless null
backend instead, which is useful for CI or machines without a GPU.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spaghettifunk/ral/engine/core"
	"github.com/spaghettifunk/ral/engine/platform"
	"github.com/spaghettifunk/ral/engine/renderer"
	"github.com/spaghettifunk/ral/engine/renderer/null"
	"github.com/spaghettifunk/ral/engine/renderer/vulkan"
)

const (
	windowTitle  = "ral demo"
	windowWidth  = 1280
	windowHeight = 720
)

func main() {
	backendName := flag.String("backend", "vulkan", "rendering backend to use: vulkan or null")
	debug := flag.Bool("debug", false, "enable backend validation/debug layers")
	watchShaders := flag.String("watch-shaders", "", "optional directory of compact-bytecode shaders to watch for hot-reload")
	flag.Parse()

	if err := run(*backendName, *debug, *watchShaders); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(backendName string, debug bool, watchShadersDir string) error {
	if watchShadersDir != "" {
		reloader, err := renderer.WatchBytecodeFile(watchShadersDir, func(path string, words []uint32) {
			core.LogInfo("shader hot-reload: %s changed (%d SPIR-V words); rebuild the owning pipeline to pick it up", path, len(words))
		})
		if err != nil {
			return fmt.Errorf("watch shaders %q: %w", watchShadersDir, err)
		}
		defer reloader.Close()
	}

	switch backendName {
	case "vulkan":
		return runVulkan(debug)
	case "null":
		return runNull(debug)
	default:
		return fmt.Errorf("unknown backend %q (want vulkan or null)", backendName)
	}
}

func runVulkan(debug bool) error {
	window, err := platform.NewWindow(windowTitle, windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	ctx := platform.NewContext(debug, window)
	r, err := renderer.NewRenderer(ctx, vulkan.New(), windowTitle, windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer func() {
		if err := r.Shutdown(); err != nil {
			ctx.Log(core.LogLevelError, "shutdown: %v", err)
		}
	}()

	return renderLoop(r, func() bool { platform.PollEvents(); return window.ShouldClose() })
}

func runNull(debug bool) error {
	ctx := core.NewDefaultContext(debug)
	r, err := renderer.NewRenderer(ctx, null.New(), windowTitle, windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer func() {
		if err := r.Shutdown(); err != nil {
			ctx.Log(core.LogLevelError, "shutdown: %v", err)
		}
	}()

	frames := 0
	return renderLoop(r, func() bool {
		frames++
		return frames > 120
	})
}

// renderLoop builds a single color-only render pass/swap chain pair and
// clears every acquired image to a solid color each tick, until done
// reports the loop should stop. A real application would record draw
// commands between ClearGraphics and EndScene; this demo only exercises
// the acquire/record/present path.
func renderLoop(r *renderer.Renderer, done func() bool) error {
	pass := r.CreateRenderPass(renderer.RenderPassDescriptor{
		ColorFormats: []renderer.TextureFormat{renderer.TextureFormatB8G8R8A8},
	})
	defer pass.ReleaseReference()

	sc := r.CreateSwapChain(renderer.SwapChainDescriptor{
		RenderPass: pass,
		Width:      windowWidth,
		Height:     windowHeight,
		VSync:      true,
	})
	defer sc.ReleaseReference()

	cb := r.NewCommandBuffer(16)

	for !done() {
		if _, err := r.AcquireNextImage(sc); err != nil {
			return fmt.Errorf("acquire next image: %w", err)
		}

		if err := r.BeginScene(); err != nil {
			return fmt.Errorf("begin scene: %w", err)
		}

		cb.Reset()
		cb.SetGraphicsRenderTargetSwapChain(r.SwapChainCurrentFramebuffer(sc))
		cb.ClearGraphics(renderer.ClearFlagColor, [4]float32{0.02, 0.02, 0.08, 1.0}, 1.0, 0)
		if err := r.SubmitCommandBuffer(cb); err != nil {
			return fmt.Errorf("submit command buffer: %w", err)
		}

		if err := r.EndScene(); err != nil {
			return fmt.Errorf("end scene: %w", err)
		}

		if err := r.Present(sc); err != nil {
			return fmt.Errorf("present: %w", err)
		}
	}
	return nil
}
