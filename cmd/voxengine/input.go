package main

import (
	"voxengine/internal/terrain"
	"voxengine/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

var placeKeys = map[glfw.Key]world.BlockType{
	glfw.Key1: world.BlockTypeStone,
	glfw.Key2: world.BlockTypeDirt,
	glfw.Key3: world.BlockTypeGrass,
	glfw.Key4: world.BlockTypeWater,
}

func (a *App) bindInput() {
	a.window.SetCursorPosCallback(a.onCursorPos)
	a.window.SetMouseButtonCallback(a.onMouseButton)
	a.window.SetKeyCallback(a.onKey)
	a.window.SetFramebufferSizeCallback(a.onFramebufferSize)

	w, h := a.window.GetFramebufferSize()
	a.onFramebufferSize(a.window, w, h)
}

func (a *App) onCursorPos(w *glfw.Window, xpos, ypos float64) {
	if !a.paused {
		a.camera.Look(xpos, ypos)
	}
}

func (a *App) onFramebufferSize(w *glfw.Window, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	a.camera.SetViewport(width, height)
}

func (a *App) onMouseButton(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if a.paused || action != glfw.Press {
		return
	}
	origin, dir := a.camera.Position, a.camera.Front()
	switch button {
	case glfw.MouseButtonLeft:
		if pos, ok := a.chunks.CastRayIncluding(origin, dir); ok {
			a.setBlock(pos, world.Air)
		}
	case glfw.MouseButtonRight:
		if pos, ok := a.chunks.CastRayExcluding(origin, dir); ok {
			a.setBlock(pos, world.NewBlock(a.placeType))
		}
	}
}

func (a *App) setBlock(pos world.BlockPos, b world.Block) {
	if _, err := a.chunks.SetBlock(pos, b); err != nil {
		a.log.Debug("set block", zap.Ints("pos", pos[:]), zap.Error(err))
	}
}

func (a *App) onKey(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if t, ok := placeKeys[key]; ok {
		a.placeType = t
		return
	}
	switch key {
	case glfw.KeyEscape:
		a.paused = !a.paused
		if a.paused {
			w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		} else {
			w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		}
	case glfw.KeyQ:
		w.SetShouldClose(true)
	case glfw.KeyR:
		a.regenerate()
	}
}

// regenerate rebuilds the world with the next seed.
func (a *App) regenerate() {
	s := a.settings.Terrain
	s.Seed++
	gen, err := terrain.FromSettings(s)
	if err != nil {
		a.log.Warn("regenerate", zap.Error(err))
		return
	}
	a.settings.Terrain = s
	a.chunks.Regenerate(gen)
}

func (a *App) move(dt float32) {
	axis := func(pos, neg glfw.Key) float32 {
		var v float32
		if a.window.GetKey(pos) == glfw.Press {
			v++
		}
		if a.window.GetKey(neg) == glfw.Press {
			v--
		}
		return v
	}
	a.camera.Move(
		axis(glfw.KeyW, glfw.KeyS),
		axis(glfw.KeyD, glfw.KeyA),
		axis(glfw.KeySpace, glfw.KeyLeftShift),
		dt,
	)
}
