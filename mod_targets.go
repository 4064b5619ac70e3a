package shapes

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

// TargetId identifies an offscreen render target. The empty id addresses
// the window surface.
type TargetId string

const TargetSurface TargetId = ""

// RenderTarget owns one offscreen color texture usable both as a render
// attachment and as a sampled texture.
type RenderTarget struct {
	Id     TargetId
	Label  string
	Width  uint32
	Height uint32
	Format wgpu.TextureFormat

	texture *wgpu.Texture
	view    *wgpu.TextureView
}

// View returns the texture view, for attaching or sampling.
func (target *RenderTarget) View() *wgpu.TextureView {
	return target.view
}

// RenderTargets is the registry of offscreen targets, installed as a
// resource by the GPU backend.
type RenderTargets struct {
	gpu     *GpuState
	targets map[TargetId]*RenderTarget
}

func newRenderTargets(gpu *GpuState) *RenderTargets {
	return &RenderTargets{
		gpu:     gpu,
		targets: map[TargetId]*RenderTarget{},
	}
}

func (rt *RenderTargets) add(target *RenderTarget) TargetId {
	id := TargetId(uuid.NewString())
	target.Id = id
	rt.targets[id] = target
	return id
}

// CreateTarget allocates a color texture of the given size and registers
// it under a fresh id. Format undefined means BGRA8 sRGB, matching the
// surface. Panics when the device refuses the allocation.
func (rt *RenderTargets) CreateTarget(label string, width, height uint32, format wgpu.TextureFormat) TargetId {
	if format == wgpu.TextureFormatUndefined {
		format = wgpu.TextureFormatBGRA8UnormSrgb
	}
	texture, err := rt.gpu.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		panic(err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	return rt.add(&RenderTarget{
		Label:   label,
		Width:   width,
		Height:  height,
		Format:  format,
		texture: texture,
		view:    view,
	})
}

// Get returns the target for id, or nil when the id is unknown.
func (rt *RenderTargets) Get(id TargetId) *RenderTarget {
	return rt.targets[id]
}

// Release frees the target's GPU texture and forgets the id.
func (rt *RenderTargets) Release(id TargetId) {
	target, ok := rt.targets[id]
	if !ok {
		return
	}
	if target.view != nil {
		target.view.Release()
	}
	if target.texture != nil {
		target.texture.Release()
	}
	delete(rt.targets, id)
}

func (rt *RenderTargets) Len() int {
	return len(rt.targets)
}
