package lumen

import (
	"github.com/gekko3d/lumen/deferred/ds/core"
)

// FlyingCameraModule installs the camera resource and drives it from Input: WASD moves in
// the view plane, the captured mouse turns it and the wheel zooms.
type FlyingCameraModule struct {
	Camera *core.Camera
}

func (m FlyingCameraModule) Install(app *App, cmd *Commands) {
	cam := m.Camera
	if cam == nil {
		cam = core.NewCamera()
	}
	cmd.AddResources(cam)
	app.UseSystem(
		System(flyingCameraSystem).
			InStage(Update).
			RunAlways(),
	)
}

func flyingCameraSystem(input *Input, t *Time, cam *core.Camera) {
	steerCamera(cam, input, t.Seconds())
}

func steerCamera(cam *core.Camera, input *Input, dt float32) {
	var forward, right float32
	if input.Pressed[KeyW] {
		forward += 1
	}
	if input.Pressed[KeyS] {
		forward -= 1
	}
	if input.Pressed[KeyD] {
		right += 1
	}
	if input.Pressed[KeyA] {
		right -= 1
	}
	if dt > 0 {
		cam.Move(forward, right, dt)
	}

	if input.MouseCaptured && (input.MouseDeltaX != 0 || input.MouseDeltaY != 0) {
		cam.Rotate(input.MouseDeltaX, input.MouseDeltaY)
	}
	if input.Scroll != 0 {
		cam.Zoom(input.Scroll)
	}
}
