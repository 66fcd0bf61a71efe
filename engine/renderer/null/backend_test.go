package null_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/ral/engine/core"
	"github.com/spaghettifunk/ral/engine/renderer"
	"github.com/spaghettifunk/ral/engine/renderer/null"
)

func newTestRenderer(t *testing.T) (*renderer.Renderer, *null.Backend) {
	t.Helper()
	backend := null.New()
	r, err := renderer.NewRenderer(core.NewDefaultContext(true), backend, "test", 640, 480)
	require.NoError(t, err)
	return r, backend
}

func TestRendererBeginEndSceneAdvancesFrameCount(t *testing.T) {
	r, backend := newTestRenderer(t)
	require.NoError(t, r.BeginScene())
	require.NoError(t, r.EndScene())
	require.EqualValues(t, 1, backend.FrameCount())
}

func TestBeginSceneTwiceIsRejected(t *testing.T) {
	r, _ := newTestRenderer(t)
	require.NoError(t, r.BeginScene())
	require.Error(t, r.BeginScene())
	require.NoError(t, r.EndScene())
}

func TestEndSceneWithoutBeginIsRejected(t *testing.T) {
	r, _ := newTestRenderer(t)
	require.Error(t, r.EndScene())
}

func TestCreateVertexBufferAndArrayAndSubmitDraw(t *testing.T) {
	r, backend := newTestRenderer(t)

	vb := r.CreateVertexBuffer(renderer.BufferDescriptor{SizeBytes: 256}, nil)
	require.NotNil(t, vb)
	defer vb.ReleaseReference()

	va := r.CreateVertexArray(renderer.VertexArrayDescriptor{
		VertexBuffers: []renderer.VertexArrayVertexBuffer{{VertexBuffer: vb}},
	})
	require.NotNil(t, va)
	defer va.ReleaseReference()
	require.EqualValues(t, 2, vb.ReferenceCount())

	require.NoError(t, r.BeginScene())
	cb := r.NewCommandBuffer(4)
	cb.SetGraphicsVertexArray(va)
	cb.DrawGraphics(renderer.DrawArguments{VertexCountPerInstance: 3, InstanceCount: 1})
	require.NoError(t, r.SubmitCommandBuffer(cb))
	require.NoError(t, r.EndScene())

	require.EqualValues(t, 1, backend.DrawCount())
}

func TestResourceFromOtherRendererIsRejected(t *testing.T) {
	r1, _ := newTestRenderer(t)
	r2, _ := newTestRenderer(t)

	buf := r1.CreateVertexBuffer(renderer.BufferDescriptor{SizeBytes: 64}, nil)
	require.NotNil(t, buf)
	defer buf.ReleaseReference()

	va := r2.CreateVertexArray(renderer.VertexArrayDescriptor{
		VertexBuffers: []renderer.VertexArrayVertexBuffer{{VertexBuffer: buf}},
	})
	require.Nil(t, va)
}

func TestShutdownWarnsOnLeak(t *testing.T) {
	r, _ := newTestRenderer(t)
	buf := r.CreateVertexBuffer(renderer.BufferDescriptor{SizeBytes: 64}, nil)
	require.NotNil(t, buf)
	require.NoError(t, r.Shutdown())
}
