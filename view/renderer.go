package view

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charactercontroller/ecs"
	"github.com/milk9111/charactercontroller/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Renderer draws the world top-down through the camera rig. Height is shown
// by lifting shapes toward the top of the screen by the rig's pitch.
type Renderer struct {
	ShowPhysics bool
	ShowHUD     bool
}

func NewRenderer() *Renderer {
	return &Renderer{ShowHUD: true}
}

func (r *Renderer) Draw(screen *ebiten.Image, w *ecs.World, space *cp.Space) {
	screen.Fill(colornames.Darkslategray)

	rigEntity, ok := ecs.First(w, component.CameraRigComponent.Kind())
	if !ok {
		ebitenutil.DebugPrint(screen, "no camera rig")
		return
	}
	rig, _ := ecs.Get(w, rigEntity, component.CameraRigComponent.Kind())
	bounds := screen.Bounds()
	sw, sh := float64(bounds.Dx()), float64(bounds.Dy())
	p := projector{rig: rig, w: sw, h: sh}

	ecs.ForEach(w, component.LevelBoundsComponent.Kind(), func(_ ecs.Entity, b *component.LevelBounds) {
		p.fillQuad(screen, b.MinX, b.MinZ, b.MaxX, b.MaxZ, 0, colornames.Dimgray)
	})

	ecs.ForEach(w, component.ObstacleComponent.Kind(), func(_ ecs.Entity, o *component.Obstacle) {
		if !o.IsWall() {
			p.fillQuad(screen, o.MinX, o.MinZ, o.MaxX, o.MaxZ, 0, shade(o.Color, 0.6))
		}
	})
	ecs.ForEach(w, component.ObstacleComponent.Kind(), func(_ ecs.Entity, o *component.Obstacle) {
		top := o.Top
		if o.IsWall() {
			top = 0
		}
		p.fillQuad(screen, o.MinX, o.MinZ, o.MaxX, o.MaxZ, top, o.Color)
	})

	ecs.ForEach2(w, component.ClickTargetComponent.Kind(), component.PlayerComponent.Kind(), func(_ ecs.Entity, ct *component.ClickTarget, _ *component.Player) {
		if !ct.HasTarget {
			return
		}
		c := p.point(ct.Destination)
		radius := float32(math.Max(ct.ArriveRadius*rig.Scale(), 4))
		vector.StrokeCircle(screen, float32(c.X()), float32(c.Y()), radius, 2, colornames.Gold, true)
	})

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), component.CharacterBodyComponent.Kind(), func(_ ecs.Entity, player *component.Player, t *component.Transform, body *component.CharacterBody) {
		s := rig.Scale()
		radius := float32(body.Radius * s)

		shadow := p.point(mgl64.Vec3{t.Position.X(), body.FloorHeight, t.Position.Z()})
		vector.FillCircle(screen, float32(shadow.X()), float32(shadow.Y()), radius, color.NRGBA{A: 0x60}, true)

		c := p.point(t.Position)
		fill := player.Color
		if fill == nil {
			fill = colornames.Deepskyblue
		}
		vector.FillCircle(screen, float32(c.X()), float32(c.Y()), radius, fill, true)

		nose := p.point(t.Position.Add(facing(t.Yaw).Mul(body.Radius * 1.4)))
		vector.StrokeLine(screen, float32(c.X()), float32(c.Y()), float32(nose.X()), float32(nose.Y()), 2, colornames.White, true)
	})

	if r.ShowPhysics && space != nil {
		drawPhysicsDebug(screen, space, p)
	}
	if r.ShowHUD {
		r.drawHUD(screen, w)
	}
}

func (r *Renderer) drawHUD(screen *ebiten.Image, w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	loco, ok := ecs.Get(w, player, component.LocomotionComponent.Kind())
	if !ok || loco.Machine == nil {
		ebitenutil.DebugPrintAt(screen, "player disabled", 10, 10)
		return
	}
	source := ""
	if in, ok := ecs.Get(w, player, component.InputComponent.Kind()); ok {
		source = in.Resolved.Source
	}
	text := fmt.Sprintf("TPS: %.0f\nstate: %s (%.2fs)\nsource: %s", ebiten.ActualTPS(), loco.Machine.State(), loco.Machine.TimeInState(), source)
	if body, ok := ecs.Get(w, player, component.CharacterBodyComponent.Kind()); ok {
		text += fmt.Sprintf("\non floor: %v\nvelocity: %.2f %.2f %.2f", body.OnFloor, body.Velocity.X(), body.Velocity.Y(), body.Velocity.Z())
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

func facing(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{-math.Sin(yaw), 0, -math.Cos(yaw)}
}

func shade(c color.Color, f float64) color.Color {
	if c == nil {
		return colornames.Gray
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.NRGBA{R: uint8(float64(n.R) * f), G: uint8(float64(n.G) * f), B: uint8(float64(n.B) * f), A: n.A}
}
