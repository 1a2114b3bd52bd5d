package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/doomenstein/common"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// camera maps world metres (y up) to screen pixels (y down).
type camera struct {
	center cp.Vector
	zoom   float64
}

func (c camera) toScreen(v cp.Vector) (float64, float64) {
	x := (v.X-c.center.X)*c.zoom + common.BaseWidth/2
	y := common.BaseHeight/2 - (v.Y-c.center.Y)*c.zoom
	return x, y
}

func (c camera) toWorld(x, y int) cp.Vector {
	return cp.Vector{
		X: (float64(x)-common.BaseWidth/2)/c.zoom + c.center.X,
		Y: (common.BaseHeight/2-float64(y))/c.zoom + c.center.Y,
	}
}

// screenDrawer renders physics debug primitives with ebitenutil lines.
type screenDrawer struct {
	screen *ebiten.Image
	cam    camera
}

func (d *screenDrawer) DrawCircle(center cp.Vector, radius, angle float64, color cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.DrawPolygon(points, color)
	d.DrawSegment(center, center.Add(cp.ForAngle(angle).Mult(radius)), color)
}

func (d *screenDrawer) DrawPolygon(verts []cp.Vector, color cp.FColor) {
	for i := range verts {
		d.DrawSegment(verts[i], verts[(i+1)%len(verts)], color)
	}
}

func (d *screenDrawer) DrawSegment(a, b cp.Vector, color cp.FColor) {
	x1, y1 := d.cam.toScreen(a)
	x2, y2 := d.cam.toScreen(b)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, toNRGBA(color))
}

// DrawDot draws a fixed size cross in screen space.
func (d *screenDrawer) DrawDot(pos cp.Vector, fill cp.FColor) {
	x, y := d.cam.toScreen(pos)
	half := float64(debugDotSize) / 2
	c := toNRGBA(fill)
	ebitenutil.DrawLine(d.screen, x-half, y, x+half, y, c)
	ebitenutil.DrawLine(d.screen, x, y-half, x, y+half, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func toFColor(c color.Color) cp.FColor {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return cp.FColor{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
