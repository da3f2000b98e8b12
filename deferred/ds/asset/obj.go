package asset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gekko3d/lumen/deferred/ds/core"

	"github.com/go-gl/mathgl/mgl32"
)

// OBJLoader reads Wavefront OBJ models with their MTL materials.
type OBJLoader struct {
	Textures *TextureLoader
	Logger   core.Logger
}

func NewOBJLoader(textures *TextureLoader, logger core.Logger) *OBJLoader {
	if textures == nil {
		textures = NewTextureLoader(logger)
	}
	return &OBJLoader{Textures: textures, Logger: core.OrNop(logger)}
}

// Load reads the model at path. Missing or malformed geometry is an error;
// missing MTL files and textures only degrade the materials.
func (l *OBJLoader) Load(path string) (*core.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj %s: %w", path, err)
	}
	defer f.Close()

	model, err := l.Parse(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("obj %s: %w", path, err)
	}
	model.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	l.Logger.Infof("loaded model %s: %d meshes, %d triangles", model.Name, len(model.Meshes), model.TriangleCount())
	return model, nil
}

type objIndex struct {
	v, vt, vn int
}

type objBuilder struct {
	positions []mgl32.Vec3
	uvs       [][2]float32
	normals   []mgl32.Vec3

	materials map[string]core.Material
	meshes    []*core.Mesh
	current   *core.Mesh
	lookup    map[objIndex]uint32
	group     string
}

func (b *objBuilder) begin(name string, mat core.Material) {
	if b.current != nil && len(b.current.Indices) == 0 {
		b.current.Name = name
		b.current.Material = mat
		return
	}
	b.current = &core.Mesh{Name: name, Material: mat}
	b.meshes = append(b.meshes, b.current)
	b.lookup = make(map[objIndex]uint32)
}

// Parse reads OBJ data; baseDir resolves mtllib and texture paths.
func (l *OBJLoader) Parse(r io.Reader, baseDir string) (*core.Model, error) {
	b := &objBuilder{materials: make(map[string]core.Material)}
	b.begin("default", core.DefaultMaterial())

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		args := fields[1:]

		var err error
		switch strings.ToLower(fields[0]) {
		case "v":
			var p mgl32.Vec3
			p, err = parseVec3(args)
			b.positions = append(b.positions, p)
		case "vt":
			var uv [2]float32
			uv, err = parseUV(args)
			b.uvs = append(b.uvs, uv)
		case "vn":
			var n mgl32.Vec3
			n, err = parseVec3(args)
			b.normals = append(b.normals, n)
		case "f":
			err = l.face(b, args)
		case "o", "g":
			b.group = strings.Join(args, " ")
			b.begin(b.group, b.current.Material)
		case "usemtl":
			name := strings.Join(args, " ")
			mat, ok := b.materials[name]
			if !ok {
				l.Logger.Warnf("obj: unknown material %q, using default", name)
				mat = core.DefaultMaterial()
			}
			meshName := b.group
			if meshName == "" {
				meshName = name
			}
			b.begin(meshName, mat)
		case "mtllib":
			for _, lib := range args {
				mats, mtlErr := l.loadMTL(filepath.Join(baseDir, lib))
				if mtlErr != nil {
					l.Logger.Warnf("obj: material library %s: %v", lib, mtlErr)
					continue
				}
				for k, v := range mats {
					b.materials[k] = v
				}
			}
		case "s", "l", "p":
		default:
			l.Logger.Debugf("obj: ignoring %q on line %d", fields[0], lineNo)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	model := &core.Model{}
	for _, m := range b.meshes {
		if len(m.Indices) > 0 {
			model.Meshes = append(model.Meshes, m)
		}
	}
	if len(model.Meshes) == 0 {
		return nil, fmt.Errorf("no faces")
	}
	return model, nil
}

func (l *OBJLoader) face(b *objBuilder, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("face needs 3 vertices, got %d", len(args))
	}
	idx := make([]objIndex, len(args))
	for i, a := range args {
		var err error
		if idx[i], err = b.resolve(a); err != nil {
			return err
		}
	}

	// fan triangulation for quads and larger polygons
	for i := 1; i+1 < len(idx); i++ {
		tri := [3]objIndex{idx[0], idx[i], idx[i+1]}
		var flat mgl32.Vec3
		if tri[0].vn < 0 || tri[1].vn < 0 || tri[2].vn < 0 {
			p0, p1, p2 := b.positions[tri[0].v], b.positions[tri[1].v], b.positions[tri[2].v]
			flat = p1.Sub(p0).Cross(p2.Sub(p0))
			if flat.Len() > 0 {
				flat = flat.Normalize()
			}
		}
		for _, k := range tri {
			b.current.Indices = append(b.current.Indices, b.vertex(k, flat))
		}
	}
	return nil
}

func (b *objBuilder) vertex(k objIndex, flat mgl32.Vec3) uint32 {
	if k.vn >= 0 {
		if i, ok := b.lookup[k]; ok {
			return i
		}
	}
	v := core.Vertex{Position: b.positions[k.v]}
	if k.vt >= 0 {
		v.UV = b.uvs[k.vt]
	}
	if k.vn >= 0 {
		v.Normal = b.normals[k.vn]
	} else {
		v.Normal = flat
	}
	i := uint32(len(b.current.Vertices))
	b.current.Vertices = append(b.current.Vertices, v)
	if k.vn >= 0 {
		b.lookup[k] = i
	}
	return i
}

// resolve parses "v", "v/vt", "v//vn" or "v/vt/vn" with 1-based or negative indices.
func (b *objBuilder) resolve(s string) (objIndex, error) {
	parts := strings.Split(s, "/")
	out := objIndex{v: -1, vt: -1, vn: -1}

	ref := func(part string, n int) (int, error) {
		if part == "" {
			return -1, nil
		}
		i, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("bad index %q", part)
		}
		if i < 0 {
			i = n + i
		} else {
			i--
		}
		if i < 0 || i >= n {
			return 0, fmt.Errorf("index %q out of range (%d)", part, n)
		}
		return i, nil
	}

	var err error
	if out.v, err = ref(parts[0], len(b.positions)); err != nil {
		return out, err
	}
	if out.v < 0 {
		return out, fmt.Errorf("face vertex %q without position", s)
	}
	if len(parts) > 1 {
		if out.vt, err = ref(parts[1], len(b.uvs)); err != nil {
			return out, err
		}
	}
	if len(parts) > 2 {
		if out.vn, err = ref(parts[2], len(b.normals)); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (l *OBJLoader) loadMTL(path string) (map[string]core.Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	baseDir := filepath.Dir(path)
	mats := make(map[string]core.Material)
	var cur *core.Material
	flush := func() {
		if cur != nil {
			mats[cur.Name] = *cur
		}
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		args := fields[1:]
		value := strings.Join(args, " ")

		if strings.ToLower(fields[0]) == "newmtl" {
			flush()
			m := core.DefaultMaterial()
			m.Name = value
			cur = &m
			continue
		}
		if cur == nil {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "kd":
			if c, err := parseVec3(args); err == nil {
				cur.DiffuseTint = c
			}
		case "ks":
			if c, err := parseVec3(args); err == nil {
				cur.SpecularStrength = (c.X() + c.Y() + c.Z()) / 3
			}
		case "map_kd":
			cur.Diffuse = l.texture(baseDir, args)
			cur.DiffuseTint = mgl32.Vec3{1, 1, 1}
		case "map_ks":
			cur.Specular = l.texture(baseDir, args)
			cur.SpecularStrength = 1
		}
	}
	flush()
	return mats, scanner.Err()
}

// texture loads the last argument of a map_* statement; options before it are ignored.
func (l *OBJLoader) texture(baseDir string, args []string) *core.Texture {
	if len(args) == 0 {
		return nil
	}
	name := strings.ReplaceAll(args[len(args)-1], "\\", "/")
	tex, _ := l.Textures.Load(filepath.Join(baseDir, name))
	return tex
}

func parseFloats(args []string, n int) ([]float32, error) {
	if len(args) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(args))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseVec3(args []string) (mgl32.Vec3, error) {
	f, err := parseFloats(args, 3)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{f[0], f[1], f[2]}, nil
}

// parseUV flips v so row 0 of the image is v = 0.
func parseUV(args []string) ([2]float32, error) {
	f, err := parseFloats(args, 2)
	if err != nil {
		return [2]float32{}, err
	}
	return [2]float32{f[0], 1 - f[1]}, nil
}

// LoadOBJ loads a model with a fresh texture loader and no logging.
func LoadOBJ(path string) (*core.Model, error) {
	return NewOBJLoader(nil, nil).Load(path)
}
