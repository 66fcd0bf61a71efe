package core

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// RendererOptions are the tunables a host can set before constructing a
// Renderer. All fields have sane zero-value defaults, so a bare
// RendererOptions{} is valid.
type RendererOptions struct {
	// Debug enables Vulkan validation layers and debug object naming.
	Debug bool `toml:"debug"`

	// Statistics enables live-object counter tracking. Cheap enough to always run; this toggle
	// only controls whether a host bothers reading the counters back.
	Statistics bool `toml:"statistics"`

	// ValidationLayers lists additional Vulkan validation layer names to
	// request beyond VK_LAYER_KHRONOS_validation when Debug is set.
	ValidationLayers []string `toml:"validation_layers"`

	// DescriptorPoolMaxSets is how many descriptor sets the Vulkan backend
	// sizes each root signature's single descriptor pool for. No further
	// pool is allocated once it is exhausted.
	DescriptorPoolMaxSets uint32 `toml:"descriptor_pool_max_sets"`

	// PreferredSurfaceFormat is loaded from configuration but not read by
	// any backend: the Vulkan swap chain picks B8G8R8A8_UNORM with
	// SRGB_NONLINEAR when offered, else the first reported format.
	PreferredSurfaceFormat string `toml:"preferred_surface_format"`

	// MaxFramesInFlight is loaded from configuration but not read by any
	// backend: the Vulkan backend keeps one frame in flight (one command
	// buffer and one fence, with EndFrame waiting for the queue to idle).
	MaxFramesInFlight uint32 `toml:"max_frames_in_flight"`

	// RequireDiscreteGPU restricts physical-device selection to discrete
	// GPUs. A host targeting integrated-only hardware (or running under a
	// software Vulkan implementation in CI) sets this to false.
	RequireDiscreteGPU bool `toml:"require_discrete_gpu"`

	// RequireSamplerAnisotropy rejects physical devices that do not
	// support anisotropic filtering. Almost every GPU from the last
	// decade supports it; the toggle exists for software/CI devices that
	// don't.
	RequireSamplerAnisotropy bool `toml:"require_sampler_anisotropy"`
}

// DefaultRendererOptions mirrors what the Vulkan backend assumes when no
// configuration file is present.
func DefaultRendererOptions() RendererOptions {
	return RendererOptions{
		Debug:                    false,
		Statistics:               false,
		DescriptorPoolMaxSets:    1024,
		MaxFramesInFlight:        2,
		RequireDiscreteGPU:       true,
		RequireSamplerAnisotropy: true,
	}
}

// LoadRendererOptions reads a TOML configuration file and overlays it on
// top of DefaultRendererOptions. A missing file is not an error - it just
// yields the defaults, since most hosts won't ship one.
func LoadRendererOptions(path string) (RendererOptions, error) {
	opts := DefaultRendererOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("core: reading renderer config %q: %w", path, err)
	}

	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("core: parsing renderer config %q: %w", path, err)
	}

	if opts.DescriptorPoolMaxSets == 0 {
		opts.DescriptorPoolMaxSets = 1024
	}
	if opts.MaxFramesInFlight == 0 {
		opts.MaxFramesInFlight = 2
	}

	return opts, nil
}
