package view

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/charactercontroller/ecs/component"
)

type projector struct {
	rig  *component.CameraRig
	w, h float64
}

// point projects p and lifts it by its height, foreshortened by pitch.
func (p projector) point(v mgl64.Vec3) mgl64.Vec2 {
	s := p.rig.WorldToScreen(v, p.w, p.h)
	lift := v.Y() * p.rig.Scale() * math.Cos(p.rig.Pitch)
	return mgl64.Vec2{s.X(), s.Y() - lift}
}

func (p projector) fillQuad(dst *ebiten.Image, minX, minZ, maxX, maxZ, y float64, c color.Color) {
	corners := [4]mgl64.Vec2{
		p.point(mgl64.Vec3{minX, y, minZ}),
		p.point(mgl64.Vec3{maxX, y, minZ}),
		p.point(mgl64.Vec3{maxX, y, maxZ}),
		p.point(mgl64.Vec3{minX, y, maxZ}),
	}
	fillPolygon(dst, corners[:], c)
}

// fillPolygon fills a convex polygon as a triangle fan.
func fillPolygon(dst *ebiten.Image, pts []mgl64.Vec2, c color.Color) {
	if len(pts) < 3 || c == nil {
		return
	}
	r, g, b, a := c.RGBA()
	cr, cg, cb, ca := float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff

	vertices := make([]ebiten.Vertex, len(pts))
	for i, pt := range pts {
		vertices[i] = ebiten.Vertex{
			DstX:   float32(pt.X()),
			DstY:   float32(pt.Y()),
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}
	indices := make([]uint16, 0, (len(pts)-2)*3)
	for i := 1; i < len(pts)-1; i++ {
		indices = append(indices, 0, uint16(i), uint16(i+1))
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	dst.DrawTriangles(vertices, indices, whiteSubImage, op)
}
