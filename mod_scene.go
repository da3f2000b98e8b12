package lumen

import (
	"fmt"
	"math/rand"

	"github.com/gekko3d/lumen/deferred/ds/asset"
	"github.com/gekko3d/lumen/deferred/ds/core"
)

// SceneInfo describes how the scene resource was built.
type SceneInfo struct {
	Source string
	// Placeholders counts textures that failed to load and were replaced.
	Placeholders int
}

// SceneModule loads the scene described by Config and animates its lights after each frame
// is rendered. Any load error is fatal.
type SceneModule struct {
	Config Config
	// Scene, when set, is used as is.
	Scene *core.Scene
}

func (m SceneModule) Install(app *App, cmd *Commands) {
	scene, info := m.Scene, &SceneInfo{Source: "provided"}
	if scene == nil {
		var err error
		scene, info, err = BuildScene(m.Config, app.Logger())
		if err != nil {
			panic(fmt.Errorf("scene: %w", err))
		}
	}
	app.Logger().Infof("scene %s: %d objects, %d lights", info.Source, len(scene.Objects), len(scene.PointLights))
	cmd.AddResources(scene, info)

	app.UseSystem(
		System(lightAnimationSystem).
			InStage(PostRender).
			RunAlways(),
	)
}

// BuildScene loads cfg.Scene, or the default scene around cfg.Model, then appends
// cfg.Lights random lights. Exceeding the light capacity is an error.
func BuildScene(cfg Config, logger Logger) (*core.Scene, *SceneInfo, error) {
	textures := asset.NewTextureLoader(logger)
	models := asset.NewOBJLoader(textures, logger)
	info := &SceneInfo{}

	var scene *core.Scene
	switch {
	case cfg.Scene != "":
		var err error
		scene, err = asset.NewSceneLoader(models, logger).LoadFile(cfg.Scene)
		if err != nil {
			return nil, nil, err
		}
		info.Source = cfg.Scene
	case cfg.Model != "":
		model, err := models.Load(cfg.Model)
		if err != nil {
			return nil, nil, err
		}
		scene = asset.DefaultScene(model)
		info.Source = "default:" + cfg.Model
	default:
		scene = asset.DefaultScene(nil)
		info.Source = "default"
	}

	if cfg.Lights > 0 {
		rng := rand.New(rand.NewSource(cfg.Seed))
		for _, l := range core.RandomLights(rng, cfg.Lights, core.DefaultLightBounds()) {
			if err := scene.AddPointLight(l); err != nil {
				return nil, nil, fmt.Errorf("%d random lights: %w", cfg.Lights, err)
			}
		}
	}

	info.Placeholders = textures.Failures()
	if info.Placeholders > 0 {
		logger.Warnf("%d texture(s) replaced by the placeholder", info.Placeholders)
	}
	return scene, info, nil
}

func lightAnimationSystem(t *Time, scene *core.Scene) {
	scene.Update(t.Seconds())
}
