package gpu

import (
	"fmt"

	"github.com/gekko3d/lumen/deferred/ds/core"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

type objectResources struct {
	uniform   *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

type meshResources struct {
	vertices   *wgpu.Buffer
	indices    *wgpu.Buffer
	indexCount uint32
	material   *wgpu.Buffer
	bindGroup  *wgpu.BindGroup
}

// SceneResources mirrors a core.Scene on the GPU: per-frame camera and lighting uniforms,
// one uniform per object and one set of buffers per mesh. Meshes and textures are shared
// between objects that reference the same model.
type SceneResources struct {
	ctx    *Context
	Logger core.Logger

	CameraBuffer      *wgpu.Buffer
	CameraBindGroup   *wgpu.BindGroup
	LightingBuffer    *wgpu.Buffer
	LightingBindGroup *wgpu.BindGroup
	// QuadBuffer holds the full-screen quad used by screen-space passes.
	QuadBuffer *wgpu.Buffer

	objects  map[uuid.UUID]*objectResources
	meshes   map[*core.Mesh]*meshResources
	textures map[*core.Texture]*Target
	white    *Target
}

func NewSceneResources(ctx *Context, logger core.Logger) (*SceneResources, error) {
	r := &SceneResources{
		ctx:      ctx,
		Logger:   core.OrNop(logger),
		objects:  make(map[uuid.UUID]*objectResources),
		meshes:   make(map[*core.Mesh]*meshResources),
		textures: make(map[*core.Texture]*Target),
	}

	var err error
	if r.CameraBuffer, err = r.uniformBuffer("CameraUB", CameraUniformSize); err != nil {
		return nil, err
	}
	r.CameraBindGroup, err = ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "CameraBG",
		Layout:  ctx.Layouts.Camera,
		Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: r.CameraBuffer, Size: CameraUniformSize}},
	})
	if err != nil {
		r.Release()
		return nil, fmt.Errorf("camera bind group: %w", err)
	}

	if r.LightingBuffer, err = r.uniformBuffer("LightingUB", LightingUniformSize); err != nil {
		r.Release()
		return nil, err
	}
	r.LightingBindGroup, err = ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "LightingBG",
		Layout:  ctx.Layouts.Lighting,
		Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: r.LightingBuffer, Size: LightingUniformSize}},
	})
	if err != nil {
		r.Release()
		return nil, fmt.Errorf("lighting bind group: %w", err)
	}
	// zero lights until the first upload
	ctx.Queue.WriteBuffer(r.LightingBuffer, 0, PackLighting(LightingFrame{}))

	quad := FullscreenQuad()
	r.QuadBuffer, err = ctx.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "FullscreenQuadVB",
		Contents: wgpu.ToBytes(quad[:]),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		r.Release()
		return nil, fmt.Errorf("quad buffer: %w", err)
	}

	white := core.Texture{Name: "white", Width: 1, Height: 1, Pixels: []byte{255, 255, 255, 255}}
	if r.white, err = r.uploadTexture(&white, wgpu.TextureFormatRGBA8Unorm); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func (r *SceneResources) uniformBuffer(label string, size uint64) (*wgpu.Buffer, error) {
	buf, err := r.ctx.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("buffer %s: %w", label, err)
	}
	return buf, nil
}

func (r *SceneResources) uploadTexture(t *core.Texture, format wgpu.TextureFormat) (*Target, error) {
	desc := targetDescriptor(t.Name, format, wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst, t.Width, t.Height)
	target, err := NewTarget(r.ctx.Device, desc)
	if err != nil {
		return nil, err
	}
	err = r.ctx.Queue.WriteTexture(
		target.Texture.AsImageCopy(),
		t.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  t.Width * 4,
			RowsPerImage: t.Height,
		},
		&desc.Size,
	)
	if err != nil {
		target.Release()
		return nil, fmt.Errorf("texture %s upload: %w", t.Name, err)
	}
	return target, nil
}

// texture returns the GPU copy of t, uploading it on first use. Nil maps to white.
func (r *SceneResources) texture(t *core.Texture, format wgpu.TextureFormat) (*Target, error) {
	if t == nil {
		return r.white, nil
	}
	if target, ok := r.textures[t]; ok {
		return target, nil
	}
	target, err := r.uploadTexture(t, format)
	if err != nil {
		return nil, err
	}
	r.textures[t] = target
	return target, nil
}

func (r *SceneResources) uploadMesh(m *core.Mesh) (*meshResources, error) {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return nil, fmt.Errorf("mesh %s is empty", m.Name)
	}
	device := r.ctx.Device
	res := &meshResources{indexCount: uint32(len(m.Indices))}

	var err error
	res.vertices, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    m.Name + " VB",
		Contents: wgpu.ToBytes(m.Vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("mesh %s vertices: %w", m.Name, err)
	}
	res.indices, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    m.Name + " IB",
		Contents: wgpu.ToBytes(m.Indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		res.release()
		return nil, fmt.Errorf("mesh %s indices: %w", m.Name, err)
	}
	res.material, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    m.Name + " MaterialUB",
		Contents: PackMaterial(m.Material),
		Usage:    wgpu.BufferUsageUniform,
	})
	if err != nil {
		res.release()
		return nil, fmt.Errorf("mesh %s material: %w", m.Name, err)
	}

	diffuse, err := r.texture(m.Material.Diffuse, wgpu.TextureFormatRGBA8UnormSrgb)
	if err != nil {
		res.release()
		return nil, err
	}
	specular, err := r.texture(m.Material.Specular, wgpu.TextureFormatRGBA8Unorm)
	if err != nil {
		res.release()
		return nil, err
	}

	res.bindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  m.Name + " MaterialBG",
		Layout: r.ctx.Layouts.Material,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: diffuse.View},
			{Binding: 1, TextureView: specular.View},
			{Binding: 2, Sampler: r.ctx.Sampler},
			{Binding: 3, Buffer: res.material, Size: MaterialUniformSize},
		},
	})
	if err != nil {
		res.release()
		return nil, fmt.Errorf("mesh %s bind group: %w", m.Name, err)
	}
	return res, nil
}

func (r *SceneResources) createObject(o *core.Object) (*objectResources, error) {
	buf, err := r.uniformBuffer("ObjectUB "+o.Name, ObjectUniformSize)
	if err != nil {
		return nil, err
	}
	bg, err := r.ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "ObjectBG " + o.Name,
		Layout:  r.ctx.Layouts.Object,
		Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: buf, Size: ObjectUniformSize}},
	})
	if err != nil {
		buf.Release()
		return nil, fmt.Errorf("object %s bind group: %w", o.Name, err)
	}
	return &objectResources{uniform: buf, bindGroup: bg}, nil
}

// Sync creates resources for objects and meshes new to the scene and releases those
// of removed objects. Upload failures are fatal to the caller.
func (r *SceneResources) Sync(scene *core.Scene) error {
	live := make(map[uuid.UUID]bool, len(scene.Objects))
	for _, o := range scene.Objects {
		live[o.ID] = true
		if _, ok := r.objects[o.ID]; !ok {
			res, err := r.createObject(o)
			if err != nil {
				return err
			}
			r.objects[o.ID] = res
		}
		if o.Model == nil {
			continue
		}
		for _, m := range o.Model.Meshes {
			if _, ok := r.meshes[m]; ok {
				continue
			}
			res, err := r.uploadMesh(m)
			if err != nil {
				return err
			}
			r.meshes[m] = res
			r.Logger.Debugf("uploaded mesh %s: %d vertices, %d indices", m.Name, len(m.Vertices), len(m.Indices))
		}
	}
	for id, res := range r.objects {
		if !live[id] {
			res.release()
			delete(r.objects, id)
		}
	}
	return nil
}

func (r *SceneResources) UpdateCamera(cam *core.Camera, width, height uint32) {
	r.ctx.Queue.WriteBuffer(r.CameraBuffer, 0, PackCamera(cam, width, height))
}

func (r *SceneResources) UpdateLighting(frame LightingFrame) {
	r.ctx.Queue.WriteBuffer(r.LightingBuffer, 0, PackLighting(frame))
}

// UpdateObjects uploads the current transform of every synced object.
func (r *SceneResources) UpdateObjects(scene *core.Scene) {
	for _, o := range scene.Objects {
		if res, ok := r.objects[o.ID]; ok {
			r.ctx.Queue.WriteBuffer(res.uniform, 0, PackObject(o.Transform))
		}
	}
}

// DrawObjects issues one indexed draw per mesh of every object, in scene order. The
// pipeline and the camera bind group must already be set; objects use group 1 and
// materials group 2. It returns the number of draw calls.
func (r *SceneResources) DrawObjects(pass *wgpu.RenderPassEncoder, scene *core.Scene) int {
	draws := 0
	for _, o := range scene.Objects {
		obj, ok := r.objects[o.ID]
		if !ok || o.Model == nil {
			continue
		}
		pass.SetBindGroup(1, obj.bindGroup, nil)
		for _, m := range o.Model.Meshes {
			mesh, ok := r.meshes[m]
			if !ok {
				continue
			}
			pass.SetBindGroup(2, mesh.bindGroup, nil)
			pass.SetVertexBuffer(0, mesh.vertices, 0, wgpu.WholeSize)
			pass.SetIndexBuffer(mesh.indices, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
			pass.DrawIndexed(mesh.indexCount, 1, 0, 0, 0)
			draws++
		}
	}
	return draws
}

func (o *objectResources) release() {
	if o.bindGroup != nil {
		o.bindGroup.Release()
	}
	if o.uniform != nil {
		o.uniform.Release()
	}
}

func (m *meshResources) release() {
	if m.bindGroup != nil {
		m.bindGroup.Release()
	}
	for _, b := range []*wgpu.Buffer{m.material, m.indices, m.vertices} {
		if b != nil {
			b.Release()
		}
	}
}

func (r *SceneResources) Release() {
	for id, o := range r.objects {
		o.release()
		delete(r.objects, id)
	}
	for m, res := range r.meshes {
		res.release()
		delete(r.meshes, m)
	}
	for t, target := range r.textures {
		target.Release()
		delete(r.textures, t)
	}
	r.white.Release()
	r.white = nil
	for _, bg := range []*wgpu.BindGroup{r.LightingBindGroup, r.CameraBindGroup} {
		if bg != nil {
			bg.Release()
		}
	}
	for _, b := range []*wgpu.Buffer{r.QuadBuffer, r.LightingBuffer, r.CameraBuffer} {
		if b != nil {
			b.Release()
		}
	}
	r.QuadBuffer, r.LightingBuffer, r.CameraBuffer = nil, nil, nil
	r.LightingBindGroup, r.CameraBindGroup = nil, nil
}

// VertexLayout is the buffer layout of core.Vertex.
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 32,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		},
	}
}

// QuadLayout is the buffer layout of FullscreenQuad.
func QuadLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: QuadVertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
		},
	}
}
