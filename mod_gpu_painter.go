package shapes

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/shapes/shaders"
)

const (
	defaultWindowWidth  = 1280
	defaultWindowHeight = 720
	defaultWindowTitle  = "Shapes"
)

var defaultLightPos = mgl32.Vec3{0, 0, 10}

// GpuPainterModule renders painter commands, meshes and the text overlay
// through wgpu. It owns the swapchain loop: every camera in CameraList gets
// its own render pass each frame, ordered by Camera.Order, targeting either
// an offscreen RenderTarget or the window surface.
type GpuPainterModule struct {
	// LightPos is the world-space point light used by the mesh shader.
	// Zero value picks a light above the origin on +Z.
	LightPos mgl32.Vec3
}

func (mod GpuPainterModule) Install(app *App, cmd *Commands) {
	ensureSingleBackend(app, string(BackendGPU))

	windowState := resourceOf[WindowState](app)
	if windowState == nil {
		windowState = createWindowState(defaultWindowWidth, defaultWindowHeight, defaultWindowTitle)
		cmd.AddResources(windowState)
	}

	gpuState := createGpuState(windowState)

	lightPos := mod.LightPos
	if lightPos == (mgl32.Vec3{}) {
		lightPos = defaultLightPos
	}

	if resourceOf[TextOverlay](app) == nil {
		OverlayModule{}.Install(app, cmd)
	}
	if resourceOf[Lifecycle](app) == nil {
		LifecycleModule{}.Install(app, cmd)
	}

	cmd.AddResources(
		gpuState,
		createGpuPainterState(gpuState, lightPos),
		newRenderTargets(gpuState),
		&CameraList{},
		&MeshList{},
	)

	app.UseSystem(
		System(windowEventsSystem).
			InStage(Prelude).
			RunAlways(),
	)
	app.UseSystem(
		System(gpuRenderSystem).
			InStage(Render).
			RunAlways(),
	)
}

func windowEventsSystem(windowState *WindowState, lifecycle *Lifecycle) {
	glfw.PollEvents()
	if windowState.ShouldClose() {
		lifecycle.RequestQuit()
	}
}

type shapeCameraUniform struct {
	ViewProjMx mgl32.Mat4
}

type sceneUniform struct {
	ViewProjMx mgl32.Mat4
	LightPos   mgl32.Vec4
}

type modelUniform struct {
	ModelMx mgl32.Mat4
}

type screenUniform struct {
	Size [2]float32
	Pad  [2]float32
}

// shapePassData pairs a pipeline with the bind group built from its layout.
// Auto layouts are not interchangeable across pipelines, so each target
// format keeps its own pair.
type shapePassData struct {
	pipeline  *wgpu.RenderPipeline
	bindGroup *wgpu.BindGroup
}

type meshGpuData struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	modelBuffer  *wgpu.Buffer
	bindGroup    *wgpu.BindGroup
	format       wgpu.TextureFormat
	indexCount   uint32
}

type gpuPainterState struct {
	shapePasses   map[wgpu.TextureFormat]*shapePassData
	meshPipelines map[wgpu.TextureFormat]*wgpu.RenderPipeline
	meshData      map[*Mesh]*meshGpuData

	shapeCameraBuffer *wgpu.Buffer
	sceneBuffer       *wgpu.Buffer

	textPipeline  *wgpu.RenderPipeline
	textBindGroup *wgpu.BindGroup
	atlasView     *wgpu.TextureView
	screenBuffer  *wgpu.Buffer

	lightPos mgl32.Vec4
}

func createGpuPainterState(gpuState *GpuState, lightPos mgl32.Vec3) *gpuPainterState {
	light := mgl32.Vec4{lightPos.X(), lightPos.Y(), lightPos.Z(), 1}
	return &gpuPainterState{
		shapePasses:   map[wgpu.TextureFormat]*shapePassData{},
		meshPipelines: map[wgpu.TextureFormat]*wgpu.RenderPipeline{},
		meshData:      map[*Mesh]*meshGpuData{},
		shapeCameraBuffer: createBuffer(
			"Shape Camera Uniform",
			shapeCameraUniform{ViewProjMx: mgl32.Ident4()},
			gpuState,
			wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst,
		),
		sceneBuffer: createBuffer(
			"Mesh Scene Uniform",
			sceneUniform{ViewProjMx: mgl32.Ident4(), LightPos: light},
			gpuState,
			wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst,
		),
		lightPos: light,
	}
}

func (state *gpuPainterState) ensureShapePass(format wgpu.TextureFormat, gpuState *GpuState) *shapePassData {
	if pass, ok := state.shapePasses[format]; ok {
		return pass
	}
	pipeline := createRenderPipeline(pipelineConfig{
		name:       "shape",
		shaderCode: shaders.ShapeWGSL,
		vertexType: ShapeVertex{},
		format:     format,
		blend:      &blendAlpha,
		cullMode:   wgpu.CullModeNone,
	}, gpuState)

	layout := pipeline.GetBindGroupLayout(0)
	defer layout.Release()
	bindGroup, err := gpuState.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Shape Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  state.shapeCameraBuffer,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		panic(err)
	}

	pass := &shapePassData{pipeline: pipeline, bindGroup: bindGroup}
	state.shapePasses[format] = pass
	return pass
}

func (state *gpuPainterState) ensureMeshPipeline(format wgpu.TextureFormat, gpuState *GpuState) *wgpu.RenderPipeline {
	if pipeline, ok := state.meshPipelines[format]; ok {
		return pipeline
	}
	pipeline := createRenderPipeline(pipelineConfig{
		name:       "mesh",
		shaderCode: shaders.MeshWGSL,
		vertexType: MeshVertex{},
		format:     format,
		blend:      nil,
		cullMode:   wgpu.CullModeBack,
	}, gpuState)
	state.meshPipelines[format] = pipeline
	return pipeline
}

// ensureMeshData uploads mesh buffers on first sight and (re)binds the mesh
// texture. Returns nil while the referenced render target does not exist yet,
// so meshes may be registered before the target that feeds them.
func (state *gpuPainterState) ensureMeshData(mesh *Mesh, format wgpu.TextureFormat, targets *RenderTargets, gpuState *GpuState) *meshGpuData {
	data := state.meshData[mesh]
	if data == nil {
		vertexBuffer, indexBuffer := createVertexIndexBuffers(mesh.Label, mesh.Vertices, mesh.Indices, gpuState.device)
		data = &meshGpuData{
			vertexBuffer: vertexBuffer,
			indexBuffer:  indexBuffer,
			modelBuffer: createBuffer(
				mesh.Label+" Model Uniform",
				modelUniform{ModelMx: mesh.Model},
				gpuState,
				wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst,
			),
			indexCount: uint32(len(mesh.Indices)),
		}
		state.meshData[mesh] = data
	}

	if data.bindGroup == nil || data.format != format {
		target := targets.Get(mesh.Texture)
		if target == nil {
			return nil
		}
		pipeline := state.ensureMeshPipeline(format, gpuState)
		layout := pipeline.GetBindGroupLayout(0)
		defer layout.Release()
		bindGroup, err := gpuState.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  mesh.Label + " Bind Group",
			Layout: layout,
			Entries: []wgpu.BindGroupEntry{
				{
					Binding: 0,
					Buffer:  state.sceneBuffer,
					Size:    wgpu.WholeSize,
				},
				{
					Binding: 1,
					Buffer:  data.modelBuffer,
					Size:    wgpu.WholeSize,
				},
				{
					Binding:     2,
					TextureView: target.View(),
					Size:        wgpu.WholeSize,
				},
				{
					Binding: 3,
					Sampler: gpuState.sampler,
					Size:    wgpu.WholeSize,
				},
			},
		})
		if err != nil {
			panic(err)
		}
		if data.bindGroup != nil {
			data.bindGroup.Release()
		}
		data.bindGroup = bindGroup
		data.format = format
	}
	return data
}

func (state *gpuPainterState) ensureTextResources(atlas *TextAtlas, windowState *WindowState, gpuState *GpuState) {
	if state.textPipeline != nil {
		return
	}

	extent := wgpu.Extent3D{
		Width:              uint32(atlas.Size),
		Height:             uint32(atlas.Size),
		DepthOrArrayLayers: 1,
	}
	texture, err := gpuState.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Glyph Atlas",
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}
	defer texture.Release()

	view, err := texture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	err = gpuState.queue.WriteTexture(
		texture.AsImageCopy(),
		wgpu.ToBytes(atlas.Image.Pix),
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(atlas.Image.Stride),
			RowsPerImage: uint32(atlas.Size),
		},
		&extent,
	)
	if err != nil {
		panic(err)
	}
	state.atlasView = view

	state.screenBuffer = createBuffer(
		"Screen Uniform",
		screenUniform{Size: [2]float32{float32(windowState.WindowWidth), float32(windowState.WindowHeight)}},
		gpuState,
		wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst,
	)

	state.textPipeline = createRenderPipeline(pipelineConfig{
		name:       "text",
		shaderCode: shaders.TextWGSL,
		vertexType: textVertex{},
		format:     gpuState.SurfaceFormat(),
		blend:      &blendAlpha,
		cullMode:   wgpu.CullModeNone,
	}, gpuState)

	layout := state.textPipeline.GetBindGroupLayout(0)
	defer layout.Release()
	bindGroup, err := gpuState.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Text Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  state.screenBuffer,
				Size:    wgpu.WholeSize,
			},
			{
				Binding:     1,
				TextureView: state.atlasView,
				Size:        wgpu.WholeSize,
			},
			{
				Binding: 2,
				Sampler: gpuState.sampler,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		panic(err)
	}
	state.textBindGroup = bindGroup
}

func gpuRenderSystem(
	state *gpuPainterState,
	windowState *WindowState,
	gpuState *GpuState,
	painter *Painter,
	cameras *CameraList,
	targets *RenderTargets,
	meshes *MeshList,
	overlay *TextOverlay,
	atlas *TextAtlas,
) {
	surfaceTexture, err := gpuState.surface.GetCurrentTexture()
	if err != nil {
		panic(err)
	}
	surfaceView, err := surfaceTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	defer surfaceView.Release()

	for _, camera := range cameras.Sorted() {
		view := surfaceView
		format := gpuState.SurfaceFormat()
		width := uint32(windowState.WindowWidth)
		height := uint32(windowState.WindowHeight)
		if camera.Target != TargetSurface {
			target := targets.Get(camera.Target)
			if target == nil {
				continue
			}
			view = target.View()
			format = target.Format
			width = target.Width
			height = target.Height
		}
		state.renderCameraPass(camera, view, format, width, height, painter, targets, meshes, gpuState)
	}

	state.renderOverlayPass(surfaceView, overlay, atlas, windowState, gpuState)

	gpuState.surface.Present()
}

func (state *gpuPainterState) renderCameraPass(
	camera Camera,
	view *wgpu.TextureView,
	format wgpu.TextureFormat,
	width, height uint32,
	painter *Painter,
	targets *RenderTargets,
	meshes *MeshList,
	gpuState *GpuState,
) {
	visible := camera.Layers.Normalized()
	vertices := Tessellate(painter.Commands(), visible)

	var visibleMeshes []*Mesh
	for _, mesh := range meshes.Meshes {
		if visible.Has(mesh.Layer) {
			visibleMeshes = append(visibleMeshes, mesh)
		}
	}
	if len(vertices) == 0 && len(visibleMeshes) == 0 && camera.ClearColor == nil {
		return
	}

	viewProj := camera.ViewProjection(float32(width) / float32(height))

	// Uniform writes land on queue submission, so each camera submits its
	// own command buffer before the next camera overwrites the uniforms.
	writeBuffer(state.shapeCameraBuffer, shapeCameraUniform{ViewProjMx: viewProj}, gpuState)

	var shapeBuffer *wgpu.Buffer
	if len(vertices) > 0 {
		shapeBuffer = createVertexBuffer("Shape Vertex Buffer", vertices, gpuState.device)
		defer shapeBuffer.Release()
	}

	var draws []*meshGpuData
	if len(visibleMeshes) > 0 {
		writeBuffer(state.sceneBuffer, sceneUniform{ViewProjMx: viewProj, LightPos: state.lightPos}, gpuState)
		for _, mesh := range visibleMeshes {
			data := state.ensureMeshData(mesh, format, targets, gpuState)
			if data == nil {
				continue
			}
			writeBuffer(data.modelBuffer, modelUniform{ModelMx: mesh.Model}, gpuState)
			draws = append(draws, data)
		}
	}

	encoder, err := gpuState.device.CreateCommandEncoder(nil)
	if err != nil {
		panic(err)
	}
	defer encoder.Release()

	loadOp := wgpu.LoadOpLoad
	var clearValue wgpu.Color
	if camera.ClearColor != nil {
		loadOp = wgpu.LoadOpClear
		clearValue = colorToWgpu(*camera.ClearColor)
	}

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     loadOp,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clearValue,
			},
		},
	})
	defer renderPass.Release()

	if shapeBuffer != nil {
		pass := state.ensureShapePass(format, gpuState)
		renderPass.SetPipeline(pass.pipeline)
		renderPass.SetBindGroup(0, pass.bindGroup, nil)
		renderPass.SetVertexBuffer(0, shapeBuffer, 0, wgpu.WholeSize)
		renderPass.Draw(uint32(len(vertices)), 1, 0, 0)
	}

	if len(draws) > 0 {
		renderPass.SetPipeline(state.ensureMeshPipeline(format, gpuState))
		for _, data := range draws {
			renderPass.SetBindGroup(0, data.bindGroup, nil)
			renderPass.SetVertexBuffer(0, data.vertexBuffer, 0, wgpu.WholeSize)
			renderPass.SetIndexBuffer(data.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
			renderPass.DrawIndexed(data.indexCount, 1, 0, 0, 0)
		}
	}

	err = renderPass.End()
	if err != nil {
		panic(err)
	}
	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		panic(err)
	}
	defer cmdBuffer.Release()

	gpuState.queue.Submit(cmdBuffer)
}

func (state *gpuPainterState) renderOverlayPass(
	surfaceView *wgpu.TextureView,
	overlay *TextOverlay,
	atlas *TextAtlas,
	windowState *WindowState,
	gpuState *GpuState,
) {
	if overlay.Len() == 0 {
		return
	}
	vertices := atlas.BuildVertices(overlay.Items())
	if len(vertices) == 0 {
		return
	}

	state.ensureTextResources(atlas, windowState, gpuState)

	textBuffer := createVertexBuffer("Text Vertex Buffer", vertices, gpuState.device)
	defer textBuffer.Release()

	encoder, err := gpuState.device.CreateCommandEncoder(nil)
	if err != nil {
		panic(err)
	}
	defer encoder.Release()

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    surfaceView,
				LoadOp:  wgpu.LoadOpLoad,
				StoreOp: wgpu.StoreOpStore,
			},
		},
	})
	defer renderPass.Release()

	renderPass.SetPipeline(state.textPipeline)
	renderPass.SetBindGroup(0, state.textBindGroup, nil)
	renderPass.SetVertexBuffer(0, textBuffer, 0, wgpu.WholeSize)
	renderPass.Draw(uint32(len(vertices)), 1, 0, 0)

	err = renderPass.End()
	if err != nil {
		panic(err)
	}
	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		panic(err)
	}
	defer cmdBuffer.Release()

	gpuState.queue.Submit(cmdBuffer)
}
