package gpu

import (
	"fmt"
	"unsafe"

	"github.com/gekko3d/lumen/deferred/ds/core"
	"github.com/gekko3d/lumen/deferred/ds/shaders"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// MarkerInstance matches the per-instance attributes of the marker shader.
type MarkerInstance struct {
	Model mgl32.Mat4
	Color [4]float32
}

// MarkerInstances places a cube of the given scale at every light, tinted with its color.
func MarkerInstances(lights []*core.PointLight, scale float32) []MarkerInstance {
	out := make([]MarkerInstance, 0, len(lights))
	for _, l := range lights {
		p := l.Position
		out = append(out, MarkerInstance{
			Model: mgl32.Translate3D(p.X(), p.Y(), p.Z()).Mul4(mgl32.Scale3D(scale, scale, scale)),
			Color: [4]float32{l.Color.X(), l.Color.Y(), l.Color.Z(), 1},
		})
	}
	return out
}

// MarkerPass draws a small cube at each point light, forward rendered over the composited
// image and depth tested against the scene depth.
type MarkerPass struct {
	ctx          *Context
	program      *renderProgram
	cube         *wgpu.Buffer
	instances    *wgpu.Buffer
	instanceCap  uint32
	instanceUsed uint32
}

func NewMarkerPass(ctx *Context) (*MarkerPass, error) {
	program, err := newRenderProgram(ctx.Device, programDesc{
		label:  "LightMarker",
		source: shaders.LightMarkerWGSL,
		groups: []*wgpu.BindGroupLayout{ctx.Layouts.Camera},
		buffers: []wgpu.VertexBufferLayout{
			{
				ArrayStride: CubeVertexStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				},
			},
			{
				ArrayStride: uint64(unsafe.Sizeof(MarkerInstance{})),
				StepMode:    wgpu.VertexStepModeInstance,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 2},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 3},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 4},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 5},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 64, ShaderLocation: 6},
				},
			},
		},
		targets:  []wgpu.ColorTargetState{{Format: ctx.SurfaceFormat, WriteMask: wgpu.ColorWriteMaskAll}},
		depth:    depthTest(DepthFormat, true),
		cullMode: wgpu.CullModeNone,
	})
	if err != nil {
		return nil, err
	}

	cube := MarkerCube()
	buf, err := ctx.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "MarkerCubeVB",
		Contents: wgpu.ToBytes(cube[:]),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		program.Release()
		return nil, fmt.Errorf("marker cube: %w", err)
	}
	return &MarkerPass{ctx: ctx, program: program, cube: buf}, nil
}

// Update uploads one instance per light, growing the instance buffer when needed.
func (p *MarkerPass) Update(lights []*core.PointLight, scale float32) error {
	instances := MarkerInstances(lights, scale)
	p.instanceUsed = uint32(len(instances))
	if len(instances) == 0 {
		return nil
	}

	size := uint64(len(instances)) * uint64(unsafe.Sizeof(MarkerInstance{}))
	if p.instances == nil || p.instanceCap < p.instanceUsed {
		if p.instances != nil {
			p.instances.Release()
		}
		p.instanceCap = uint32(core.MaxPointLights)
		if p.instanceCap < p.instanceUsed {
			p.instanceCap = p.instanceUsed
		}
		var err error
		p.instances, err = p.ctx.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "MarkerInstanceVB",
			Size:  uint64(p.instanceCap) * uint64(unsafe.Sizeof(MarkerInstance{})),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.instanceCap, p.instanceUsed = 0, 0
			return fmt.Errorf("marker instances: %w", err)
		}
	}
	p.ctx.Queue.WriteBuffer(p.instances, 0, unsafe.Slice((*byte)(unsafe.Pointer(&instances[0])), size))
	return nil
}

// Encode draws the markers over color, keeping what earlier passes wrote to both targets.
func (p *MarkerPass) Encode(encoder *wgpu.CommandEncoder, color *wgpu.TextureView, depth *Target, res *SceneResources) error {
	if p.instanceUsed == 0 {
		return nil
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "LightMarkerPass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    color,
			LoadOp:  wgpu.LoadOpLoad,
			StoreOp: wgpu.StoreOpStore,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:         depth.View,
			DepthLoadOp:  wgpu.LoadOpLoad,
			DepthStoreOp: wgpu.StoreOpStore,
		},
	})
	pass.SetPipeline(p.program.Pipeline)
	pass.SetBindGroup(0, res.CameraBindGroup, nil)
	pass.SetVertexBuffer(0, p.cube, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, p.instances, 0, wgpu.WholeSize)
	pass.Draw(CubeVertexCount, p.instanceUsed, 0, 0)
	return pass.End()
}

func (p *MarkerPass) Release() {
	if p.instances != nil {
		p.instances.Release()
		p.instances = nil
	}
	if p.cube != nil {
		p.cube.Release()
		p.cube = nil
	}
	p.program.Release()
}
