package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/ral/engine/core"
)

func TestVulkanResultStringSuccessAndError(t *testing.T) {
	require.Equal(t, "VK_SUCCESS", VulkanResultString(vk.Success, false))
	require.Contains(t, VulkanResultString(vk.Success, true), "successfully completed")
	require.Equal(t, "VK_ERROR_DEVICE_LOST", VulkanResultString(vk.ErrorDeviceLost, false))
}

func TestVulkanResultIsSuccess(t *testing.T) {
	require.True(t, VulkanResultIsSuccess(vk.Success))
	require.True(t, VulkanResultIsSuccess(vk.Suboptimal))
	require.False(t, VulkanResultIsSuccess(vk.ErrorDeviceLost))
	require.False(t, VulkanResultIsSuccess(vk.ErrorOutOfDate))
}

func TestConditionalOperator(t *testing.T) {
	require.Equal(t, "a", ConditionalOperator(true, "a", "b"))
	require.Equal(t, "b", ConditionalOperator(false, "a", "b"))
}

func TestVulkanSafeStringAppendsNulTerminator(t *testing.T) {
	require.Equal(t, "hello\x00", VulkanSafeString("hello"))
	require.Equal(t, "\x00", VulkanSafeString(""))
	require.Equal(t, "already\x00", VulkanSafeString("already\x00"))
}

func TestVulkanSafeStrings(t *testing.T) {
	out := VulkanSafeStrings([]string{"one", "two"})
	require.Equal(t, []string{"one\x00", "two\x00"}, out)
}

func TestVulkanErrorWrapsDeviceLost(t *testing.T) {
	err := VulkanError("vkQueueSubmit", vk.ErrorDeviceLost)
	require.ErrorIs(t, err, core.ErrDeviceLost)
	require.Contains(t, err.Error(), "vkQueueSubmit")
}

func TestVulkanErrorOtherResultNotDeviceLost(t *testing.T) {
	err := VulkanError("vkCreateDevice", vk.ErrorOutOfHostMemory)
	require.NotErrorIs(t, err, core.ErrDeviceLost)
	require.Contains(t, err.Error(), "vkCreateDevice")
}

func TestFindFirstZeroInByteArray(t *testing.T) {
	require.Equal(t, 3, FindFirstZeroInByteArray([]byte{'f', 'o', 'o', 0, 'x'}))
	require.Equal(t, 0, FindFirstZeroInByteArray([]byte{}))
	require.Equal(t, 0, FindFirstZeroInByteArray([]byte{'a', 'b', 'c'}))
}
