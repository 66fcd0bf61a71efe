package vulkan

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/ral/engine/core"
	"github.com/spaghettifunk/ral/engine/renderer"
)

// Backend is the Vulkan renderer.Backend implementation. Unlike the
// swapchain-indexed, semaphore-pipelined frame loop this package's
// context/command-buffer types were originally built for, this backend
// records each frame into a single reusable command buffer and waits for
// the graphics queue to go idle at EndFrame: BeginScene/EndScene here are
// already decoupled from swap-chain present (engine/renderer/swapchain.go
// drives acquire/present separately), so there is no second frame able to
// be in flight for the fence/semaphore dance to overlap with. Correctness
// over throughput.
type Backend struct {
	ctx    core.Context
	window *glfw.Window

	context *VulkanContext

	width  uint32
	height uint32
	debug  bool

	cmdPool    vk.CommandPool
	activeCmd  *VulkanCommandBuffer
	frameFence *VulkanFence

	currentFramebuffer           *backendFramebuffer
	currentGraphicsRootSignature *backendRootSignature
	currentComputeRootSignature  *backendRootSignature

	debugEvents []debugEventScope
}

// New constructs an uninitialized Vulkan backend. Call Initialize (through
// renderer.NewRenderer) before using it.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Name() string { return "vulkan" }

func (b *Backend) Capabilities() renderer.Capabilities {
	props := b.context.Device.Properties
	props.Deref()
	props.Limits.Deref()

	return renderer.Capabilities{
		DeviceName:                    vk.ToString(props.DeviceName[:]),
		PreferredSwapChainColorFormat: renderer.TextureFormatB8G8R8A8,
		PreferredSwapChainDepthFormat: renderer.TextureFormatD32Float,
		MaxViewports:                  1,
		MaxSimultaneousRenderTargets:  renderer.MaxSimultaneousRenderTargetsLimit,
		MaxTextureDimension:           props.Limits.MaxImageDimension2d,
		Max2DTextureArraySlices:       props.Limits.MaxImageArrayLayers,
		MaxUniformBufferBytes:         uint64(props.Limits.MaxUniformBufferRange),
		MaxTextureBufferTexels:        uint64(props.Limits.MaxTexelBufferElements),
		MaxIndirectBufferBytes:        1 << 20,
		MaxMultisamples:               renderer.MultisampleCount8x,
		MaxAnisotropy:                 props.Limits.MaxSamplerAnisotropy,
		UpperLeftOrigin:               true,
		ZeroToOneClipZ:                true,
		IndividualUniforms:            false,
		InstancedArrays:               true,
		DrawInstanced:                 true,
		BaseVertex:                    true,
		NativeMultiThreading:          false,
		ShaderBytecodeSupported:       true,
		VertexShaderSupported:         true,
		TessellationControlShaderSupported:    b.context.Device.Features.TessellationShader != vk.False,
		TessellationEvaluationShaderSupported:  b.context.Device.Features.TessellationShader != vk.False,
		GeometryShaderSupported:       b.context.Device.Features.GeometryShader != vk.False,
		FragmentShaderSupported:      true,
		ComputeShaderSupported:       true,
		MaxPatchVertices:             uint32(props.Limits.MaxTessellationPatchSize),
		MaxGsOutputVertices:          props.Limits.MaxGeometryOutputVertices,
	}
}

// Initialize creates the Vulkan instance, optional debug report callback,
// presentation surface, logical device, and the single reusable command
// pool/buffer this backend submits every frame through. ctx.NativeWindowHandle
// must return a *glfw.Window created with platform.NewWindow.
func (b *Backend) Initialize(ctx core.Context, appName string, width, height uint32) error {
	b.ctx = ctx
	b.width, b.height = width, height
	b.debug = ctx.DebugEnabled()

	window, ok := ctx.NativeWindowHandle().(*glfw.Window)
	if !ok || window == nil {
		err := fmt.Errorf("vulkan backend requires a *glfw.Window from Context.NativeWindowHandle")
		ctx.Log(core.LogLevelCritical, "Initialize: %v", err)
		return err
	}
	b.window = window

	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		err := fmt.Errorf("glfw reports no Vulkan instance proc address")
		ctx.Log(core.LogLevelCritical, "Initialize: %v", err)
		return err
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		ctx.Log(core.LogLevelCritical, "Initialize: vk.Init failed: %v", err)
		return err
	}

	b.context = &VulkanContext{
		FramebufferWidth:  width,
		FramebufferHeight: height,
		Allocator:         nil,
		Options:           ctx.RendererOptions(),
	}

	if err := b.createInstance(appName); err != nil {
		ctx.Log(core.LogLevelCritical, "Initialize: %v", err)
		return err
	}

	if b.debug {
		if err := b.createDebugReportCallback(); err != nil {
			ctx.Log(core.LogLevelCritical, "Initialize: %v", err)
			return err
		}
	}

	surfacePtr, err := window.CreateWindowSurface(b.context.Instance, nil)
	if err != nil {
		err = fmt.Errorf("failed to create window surface: %w", err)
		ctx.Log(core.LogLevelCritical, "Initialize: %v", err)
		return err
	}
	b.context.Surface = vk.SurfaceFromPointer(surfacePtr)

	if err := DeviceCreate(b.context); err != nil {
		err = fmt.Errorf("failed to create device: %w", err)
		ctx.Log(core.LogLevelCritical, "Initialize: %v", err)
		return err
	}

	poolCreateInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: b.context.Device.GraphicsQueueIndex,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}
	if res := vk.CreateCommandPool(b.context.Device.LogicalDevice, &poolCreateInfo, b.context.Allocator, &b.cmdPool); res != vk.Success {
		err := VulkanError("vkCreateCommandPool", res)
		ctx.Log(core.LogLevelCritical, "Initialize: %v", err)
		return err
	}

	cmd, err := NewVulkanCommandBuffer(b.context, b.cmdPool, true)
	if err != nil {
		ctx.Log(core.LogLevelCritical, "Initialize: %v", err)
		return err
	}
	b.activeCmd = cmd

	fence, err := NewFence(b.context, true)
	if err != nil {
		ctx.Log(core.LogLevelCritical, "Initialize: %v", err)
		return err
	}
	b.frameFence = fence

	ctx.Log(core.LogLevelInformation, "vulkan backend initialized for %q at %dx%d", appName, width, height)
	return nil
}

func (b *Backend) createInstance(appName string) error {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(appName),
		PEngineName:        VulkanSafeString("ral"),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	requiredExtensions := []string{"VK_KHR_surface"}
	requiredExtensions = append(requiredExtensions, glfw.GetRequiredInstanceExtensions()...)

	if runtime.GOOS == "darwin" {
		requiredExtensions = append(requiredExtensions,
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		)
	}

	if b.debug {
		requiredExtensions = append(requiredExtensions, vk.ExtDebugReportExtensionName)
	}

	createInfo.EnabledExtensionCount = uint32(len(requiredExtensions))
	createInfo.PpEnabledExtensionNames = VulkanSafeStrings(requiredExtensions)

	var requiredLayers []string
	if b.debug {
		requiredLayers = append([]string{"VK_LAYER_KHRONOS_validation"}, b.context.Options.ValidationLayers...)
		if runtime.GOOS == "darwin" {
			createInfo.Flags |= 1
		}

		var availableCount uint32
		if res := vk.EnumerateInstanceLayerProperties(&availableCount, nil); res != vk.Success {
			return fmt.Errorf("failed to enumerate instance layer properties")
		}
		available := make([]vk.LayerProperties, availableCount)
		if res := vk.EnumerateInstanceLayerProperties(&availableCount, available); res != vk.Success {
			return fmt.Errorf("failed to enumerate instance layer properties")
		}
		for _, name := range requiredLayers {
			found := false
			for j := range available {
				available[j].Deref()
				end := FindFirstZeroInByteArray(available[j].LayerName[:])
				if name == vk.ToString(available[j].LayerName[:end+1]) {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("required validation layer is missing: %s", name)
			}
		}
	}

	createInfo.EnabledLayerCount = uint32(len(requiredLayers))
	createInfo.PpEnabledLayerNames = VulkanSafeStrings(requiredLayers)

	if res := vk.CreateInstance(&createInfo, b.context.Allocator, &b.context.Instance); res != vk.Success {
		return VulkanError("vkCreateInstance", res)
	}
	if err := vk.InitInstance(b.context.Instance); err != nil {
		return err
	}
	return nil
}

func (b *Backend) createDebugReportCallback() error {
	debugCreateInfo := vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit),
		PfnCallback: func(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
			switch {
			case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
				b.ctx.Log(core.LogLevelCritical, "vulkan: [%s] %s", pLayerPrefix, pMessage)
			default:
				b.ctx.Log(core.LogLevelWarning, "vulkan: [%s] %s", pLayerPrefix, pMessage)
			}
			return vk.Bool32(vk.False)
		},
	}

	var dbg vk.DebugReportCallback
	if res := vk.Error(vk.CreateDebugReportCallback(b.context.Instance, &debugCreateInfo, nil, &dbg)); res != nil {
		return fmt.Errorf("failed to create debug report callback: %w", res)
	}
	b.context.debugMessenger = dbg
	return nil
}

func (b *Backend) Shutdown() error {
	vk.DeviceWaitIdle(b.context.Device.LogicalDevice)

	if b.frameFence != nil {
		b.frameFence.FenceDestroy(b.context)
		b.frameFence = nil
	}
	if b.activeCmd != nil {
		b.activeCmd.Free(b.context, b.cmdPool)
		b.activeCmd = nil
	}
	if b.cmdPool != nil {
		vk.DestroyCommandPool(b.context.Device.LogicalDevice, b.cmdPool, b.context.Allocator)
		b.cmdPool = nil
	}

	DeviceDestroy(b.context)

	if b.context.Surface != vk.NullSurface {
		vk.DestroySurface(b.context.Instance, b.context.Surface, b.context.Allocator)
		b.context.Surface = vk.NullSurface
	}

	if b.debug && b.context.debugMessenger != vk.NullDebugReportCallback {
		vk.DestroyDebugReportCallback(b.context.Instance, b.context.debugMessenger, b.context.Allocator)
	}

	vk.DestroyInstance(b.context.Instance, b.context.Allocator)

	b.ctx.Log(core.LogLevelInformation, "vulkan backend shut down")
	return nil
}

// Resized records the new framebuffer extent. Swap-chain images backing
// on-screen render passes are resized through Renderer.ResizeBuffers
// (engine/renderer/swapchain.go), not here - this
// backend has no per-swapchain-image resources to regenerate on its own.
func (b *Backend) Resized(width, height uint32) error {
	b.width, b.height = width, height
	b.context.FramebufferWidth = width
	b.context.FramebufferHeight = height
	b.context.FramebufferSizeGeneration++
	b.ctx.Log(core.LogLevelInformation, "vulkan backend resized: %dx%d", width, height)
	return nil
}

// BeginFrame waits for the previous frame's submission to finish (this
// backend keeps exactly one frame in flight), then resets and begins the
// single reusable command buffer every dispatch call records into.
func (b *Backend) BeginFrame() error {
	if err := b.frameFence.FenceWait(b.context, ^uint64(0)); err != nil {
		b.ctx.Log(core.LogLevelCritical, "BeginFrame: %v", err)
		return err
	}
	if err := b.frameFence.FenceReset(b.context); err != nil {
		b.ctx.Log(core.LogLevelCritical, "BeginFrame: %v", err)
		return err
	}

	b.activeCmd.Reset()
	if err := b.activeCmd.Begin(false, false, false); err != nil {
		b.ctx.Log(core.LogLevelCritical, "BeginFrame: %v", err)
		return err
	}
	return nil
}

// EndFrame closes any render pass still open, ends recording, and submits
// synchronously: no semaphores are involved because this backend never
// has two frames' command buffers live at once, and swap-chain image
// availability is handled by each backendSwapChain's own acquire fence
// (swapchain_backend.go).
func (b *Backend) EndFrame() error {
	b.endActiveRenderPass()

	if err := b.activeCmd.End(); err != nil {
		b.ctx.Log(core.LogLevelCritical, "EndFrame: %v", err)
		return err
	}

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{b.activeCmd.Handle},
	}
	if res := vk.QueueSubmit(b.context.Device.GraphicsQueue, 1, []vk.SubmitInfo{submitInfo}, b.frameFence.Handle); res != vk.Success {
		err := VulkanError("vkQueueSubmit", res)
		b.ctx.Log(core.LogLevelCritical, "EndFrame: %v", err)
		return err
	}
	b.activeCmd.UpdateSubmitted()

	if res := vk.QueueWaitIdle(b.context.Device.GraphicsQueue); res != vk.Success {
		err := VulkanError("vkQueueWaitIdle", res)
		b.ctx.Log(core.LogLevelCritical, "EndFrame: %v", err)
		return err
	}

	b.currentFramebuffer = nil
	b.currentGraphicsRootSignature = nil
	b.currentComputeRootSignature = nil
	return nil
}
