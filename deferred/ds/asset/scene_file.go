package asset

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/gekko3d/lumen/deferred/ds/core"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// SceneFile is the YAML description of a scene.
type SceneFile struct {
	Objects        []ObjectSpec      `yaml:"objects"`
	Lights         []LightSpec       `yaml:"lights"`
	Random         *RandomLightsSpec `yaml:"random_lights"`
	Band           *[2]float32       `yaml:"band"`
	Attenuation    *core.Attenuation `yaml:"attenuation"`
	Cutoff         float32           `yaml:"cutoff"`
	TruncateLights bool              `yaml:"truncate_lights"`
}

// ObjectSpec places Count copies of a model, each offset by Stride from the previous one.
type ObjectSpec struct {
	Name      string      `yaml:"name"`
	Model     string      `yaml:"model"`     // OBJ path, relative to the scene file
	Primitive string      `yaml:"primitive"` // cube, plane or sphere when Model is empty
	Size      float32     `yaml:"size"`
	Color     *[3]float32 `yaml:"color"`
	Position  [3]float32  `yaml:"position"`
	Scale     float32     `yaml:"scale"`
	Count     int         `yaml:"count"`
	Stride    [3]float32  `yaml:"stride"`
}

type LightSpec struct {
	Position  [3]float32 `yaml:"position"`
	Color     [3]float32 `yaml:"color"`
	Speed     *float32   `yaml:"speed"`
	Direction string     `yaml:"direction"` // up or down
	Static    bool       `yaml:"static"`
}

type RandomLightsSpec struct {
	Count    int         `yaml:"count"`
	Seed     int64       `yaml:"seed"`
	Min      *[3]float32 `yaml:"min"`
	Max      *[3]float32 `yaml:"max"`
	ColorMin *float32    `yaml:"color_min"`
	ColorMax *float32    `yaml:"color_max"`
	SpeedMin *float32    `yaml:"speed_min"`
	SpeedMax *float32    `yaml:"speed_max"`
}

// SceneLoader builds scenes from scene files, sharing models between objects that name the same file.
type SceneLoader struct {
	Models *OBJLoader
	Logger core.Logger

	models map[string]*core.Model
}

func NewSceneLoader(models *OBJLoader, logger core.Logger) *SceneLoader {
	logger = core.OrNop(logger)
	if models == nil {
		models = NewOBJLoader(nil, logger)
	}
	return &SceneLoader{Models: models, Logger: logger, models: make(map[string]*core.Model)}
}

func ReadSceneFile(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return &sf, nil
}

// LoadFile reads and builds the scene at path.
func (l *SceneLoader) LoadFile(path string) (*core.Scene, error) {
	sf, err := ReadSceneFile(path)
	if err != nil {
		return nil, err
	}
	return l.Build(sf, filepath.Dir(path))
}

// Build turns sf into a scene. Light capacity overflow is an error unless TruncateLights is set.
func (l *SceneLoader) Build(sf *SceneFile, baseDir string) (*core.Scene, error) {
	scene := core.NewScene()
	if sf.Band != nil {
		scene.Band = core.VerticalBand{Min: sf.Band[0], Max: sf.Band[1]}
		if !scene.Band.Valid() {
			return nil, fmt.Errorf("scene: invalid band [%g, %g]", sf.Band[0], sf.Band[1])
		}
	}
	if sf.Attenuation != nil {
		scene.Attenuation = *sf.Attenuation
	}
	if sf.Cutoff > 0 {
		scene.Cutoff = sf.Cutoff
	}

	for i, spec := range sf.Objects {
		model, err := l.model(spec, baseDir)
		if err != nil {
			return nil, fmt.Errorf("scene: object %d: %w", i, err)
		}
		count := max(spec.Count, 1)
		scale := spec.Scale
		if scale == 0 {
			scale = 1
		}
		name := spec.Name
		if name == "" {
			name = model.Name
		}
		for c := 0; c < count; c++ {
			pos := mgl32.Vec3(spec.Position).Add(mgl32.Vec3(spec.Stride).Mul(float32(c)))
			objName := name
			if count > 1 {
				objName = fmt.Sprintf("%s.%d", name, c)
			}
			scene.AddObject(core.NewObject(objName, model, pos, scale))
		}
	}

	lights := make([]*core.PointLight, 0, len(sf.Lights))
	for i, spec := range sf.Lights {
		light, err := spec.light()
		if err != nil {
			return nil, fmt.Errorf("scene: light %d: %w", i, err)
		}
		lights = append(lights, light)
	}
	if sf.Random != nil && sf.Random.Count > 0 {
		rng := rand.New(rand.NewSource(sf.Random.Seed))
		lights = append(lights, core.RandomLights(rng, sf.Random.Count, sf.Random.bounds())...)
	}

	if sf.TruncateLights {
		if dropped := scene.TruncateLights(lights...); dropped > 0 {
			l.Logger.Warnf("scene: %d point lights over capacity %d were dropped", dropped, core.MaxPointLights)
		}
	} else {
		for _, light := range lights {
			if err := scene.AddPointLight(light); err != nil {
				return nil, fmt.Errorf("scene: %d lights requested: %w", len(lights), err)
			}
		}
	}

	l.Logger.Infof("scene: %d objects, %d point lights", len(scene.Objects), len(scene.PointLights))
	return scene, nil
}

func (l *SceneLoader) model(spec ObjectSpec, baseDir string) (*core.Model, error) {
	if spec.Model != "" {
		path := spec.Model
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		if m, ok := l.models[path]; ok {
			return m, nil
		}
		m, err := l.Models.Load(path)
		if err != nil {
			return nil, err
		}
		l.models[path] = m
		return m, nil
	}

	mat := core.DefaultMaterial()
	if spec.Color != nil {
		mat.DiffuseTint = mgl32.Vec3(*spec.Color)
	}
	size := spec.Size
	if size == 0 {
		size = 1
	}
	switch spec.Primitive {
	case "", "cube":
		return CubeModel(size, mat), nil
	case "plane":
		return PlaneModel(size, size, mat), nil
	case "sphere":
		return SphereModel(size/2, 16, 32, mat), nil
	default:
		return nil, fmt.Errorf("%w: primitive %q", ErrUnsupportedFormat, spec.Primitive)
	}
}

func (s LightSpec) light() (*core.PointLight, error) {
	l := core.NewPointLight(mgl32.Vec3(s.Position), mgl32.Vec3(s.Color))
	if s.Speed != nil {
		l.Speed = *s.Speed
	}
	l.Oscillate = !s.Static
	switch s.Direction {
	case "", "up":
	case "down":
		l.Direction = core.DirectionDown
	default:
		return nil, fmt.Errorf("unknown direction %q", s.Direction)
	}
	return l, nil
}

func (r *RandomLightsSpec) bounds() core.LightBounds {
	b := core.DefaultLightBounds()
	if r.Min != nil {
		b.Min = mgl32.Vec3(*r.Min)
	}
	if r.Max != nil {
		b.Max = mgl32.Vec3(*r.Max)
	}
	if r.ColorMin != nil {
		b.ColorMin = *r.ColorMin
	}
	if r.ColorMax != nil {
		b.ColorMax = *r.ColorMax
	}
	if r.SpeedMin != nil {
		b.SpeedMin = *r.SpeedMin
	}
	if r.SpeedMax != nil {
		b.SpeedMax = *r.SpeedMax
	}
	return b
}

// DefaultScene is the demo layout: four copies of model along -Z and five lights
// at x = -2 whose color shifts from cyan to yellow.
func DefaultScene(model *core.Model) *core.Scene {
	if model == nil {
		model = CubeModel(4, core.DefaultMaterial())
	}
	scene := core.NewScene()
	for i := 0; i < 4; i++ {
		scene.AddObject(core.NewObject(fmt.Sprintf("%s.%d", model.Name, i), model, mgl32.Vec3{0, 0, -float32(i)}, 0.1))
	}
	for i := 0; i < 5; i++ {
		fi := float32(i)
		light := core.NewPointLight(mgl32.Vec3{-2, 2, -fi}, mgl32.Vec3{0.25 * fi, 1, 1 - 0.25*fi})
		// five lights always fit
		_ = scene.AddPointLight(light)
	}
	return scene
}
