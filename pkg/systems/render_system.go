package systems

import (
	"image"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/ninjafruit/pkg/components"
	"github.com/decker502/ninjafruit/pkg/ecs"
	"github.com/decker502/ninjafruit/pkg/utils"
)

// halfCircleSegments 半圆的多边形边数
const halfCircleSegments = 24

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

	buttonFill        = color.RGBA{R: 0x1d, G: 0x1d, B: 0x24, A: 0xe0}
	buttonHoverFill   = color.RGBA{R: 0x3a, G: 0x2e, B: 0x1a, A: 0xf0}
	buttonBorder      = color.RGBA{R: 0xff, G: 0xd1, B: 0x66, A: 0xff}
	buttonDisabled    = color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
	toggleOnColor     = color.RGBA{R: 0x5c, G: 0xd6, B: 0x6b, A: 0xff}
	toggleOffColor    = color.RGBA{R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff}
	toggleIndicatorSz = float32(18)
)

func init() {
	whiteImage.Fill(color.White)
}

// RenderSystem 矢量渲染系统
//
// 不使用图片素材，所有实体都用 vector 包绘制：
//   - 水果、炸弹、果汁：实心圆
//   - 切开的水果：半圆（果皮 + 果肉）
//   - 圆环、按钮、文字
//   - 刀光轨迹：随点的年龄变细变淡的折线
//
// 绘制顺序按 AppearanceComponent.Layer 升序，同层按实体 ID 升序。
// 刀光画在 HUD 层之下。
type RenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{entityManager: em}
}

// Draw 绘制所有可见实体
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith2[*components.AppearanceComponent, *components.PositionComponent](s.entityManager)
	layers := make(map[ecs.EntityID]int, len(ids))
	for _, id := range ids {
		app, _ := ecs.GetComponent[*components.AppearanceComponent](s.entityManager, id)
		layers[id] = app.Layer
	}
	sort.SliceStable(ids, func(i, j int) bool { return layers[ids[i]] < layers[ids[j]] })

	trailsDrawn := false
	for _, id := range ids {
		if !trailsDrawn && layers[id] >= components.LayerHUD {
			s.drawTrails(screen)
			trailsDrawn = true
		}
		s.drawEntity(screen, id)
	}
	if !trailsDrawn {
		s.drawTrails(screen)
	}
}

func (s *RenderSystem) drawEntity(screen *ebiten.Image, id ecs.EntityID) {
	app, _ := ecs.GetComponent[*components.AppearanceComponent](s.entityManager, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if app.Hidden || app.Alpha <= 0 || app.Scale <= 0 {
		return
	}

	x, y := float32(pos.X), float32(pos.Y)
	r := float32(app.Radius * app.Scale)
	main := fade(app.Color, app.Alpha)

	if btn, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id); ok {
		s.drawButton(screen, btn, pos, app)
		return
	}

	switch app.Shape {
	case components.ShapeCircle:
		vector.DrawFilledCircle(screen, x, y, r, main, true)
		if app.Accent.A > 0 && app.Radius > 20 {
			// 高光
			hx := x + float32(math.Cos(app.Angle))*r*0.45
			hy := y + float32(math.Sin(app.Angle))*r*0.45
			vector.DrawFilledCircle(screen, hx, hy, r*0.22, fade(app.Accent, app.Alpha*0.6), true)
		}

	case components.ShapeRing:
		width := float32(app.StrokeWidth * app.Scale)
		vector.StrokeCircle(screen, x, y, r, width, main, true)
		if app.Accent.A > 0 {
			// 旋转的刻度，让圆环看起来在转动
			for i := 0; i < 4; i++ {
				a := app.Angle + float64(i)*math.Pi/2
				cx := x + float32(math.Cos(a))*r
				cy := y + float32(math.Sin(a))*r
				vector.DrawFilledCircle(screen, cx, cy, width*0.8, fade(app.Accent, app.Alpha), true)
			}
		}

	case components.ShapeHalfCircle:
		drawHalfCircle(screen, pos.X, pos.Y, app.Radius*app.Scale, app.Angle, main)
		drawHalfCircle(screen, pos.X, pos.Y, app.Radius*app.Scale*0.82, app.Angle, fade(app.Accent, app.Alpha))

	case components.ShapeRect:
		w, h := float32(app.Width*app.Scale), float32(app.Height*app.Scale)
		if app.StrokeWidth > 0 {
			vector.StrokeRect(screen, x, y, w, h, float32(app.StrokeWidth), main, true)
		} else {
			vector.DrawFilledRect(screen, x, y, w, h, main, true)
		}

	case components.ShapeText:
		drawText(screen, wrapLabel(app), app.Font, pos.X, pos.Y, app.Scale, app.AlignStart, main)

	case components.ShapeImage:
		if app.Image == nil {
			return
		}
		b := app.Image.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Scale(app.Scale, app.Scale)
		op.GeoM.Rotate(app.Angle)
		op.GeoM.Translate(pos.X, pos.Y)
		op.ColorScale.ScaleAlpha(float32(app.Alpha))
		screen.DrawImage(app.Image, op)
	}
}

func (s *RenderSystem) drawButton(screen *ebiten.Image, btn *components.ButtonComponent, pos *components.PositionComponent, app *components.AppearanceComponent) {
	x, y := float32(pos.X), float32(pos.Y)
	w, h := float32(btn.Width), float32(btn.Height)

	fill, border := buttonFill, buttonBorder
	switch btn.State {
	case components.UIHovered, components.UIClicked:
		fill = buttonHoverFill
	case components.UIDisabled:
		border = buttonDisabled
	}
	vector.DrawFilledRect(screen, x, y, w, h, fade(fill, app.Alpha), true)
	vector.StrokeRect(screen, x, y, w, h, 2, fade(border, app.Alpha), true)

	labelX := pos.X + btn.Width/2
	if btn.IsToggle {
		indicator := toggleOffColor
		if btn.Checked {
			indicator = toggleOnColor
		}
		ix := x + w - toggleIndicatorSz - 16
		iy := y + (h-toggleIndicatorSz)/2
		vector.DrawFilledRect(screen, ix, iy, toggleIndicatorSz, toggleIndicatorSz, fade(indicator, app.Alpha), true)
		labelX -= float64(toggleIndicatorSz)
	}
	drawText(screen, btn.Label, app.Font, labelX, pos.Y+btn.Height/2, 1, false, fade(app.Color, app.Alpha))
}

func (s *RenderSystem) drawTrails(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.BladeTrailComponent](s.entityManager) {
		trail, _ := ecs.GetComponent[*components.BladeTrailComponent](s.entityManager, id)
		for i := 1; i < len(trail.Points); i++ {
			a, b := trail.Points[i-1], trail.Points[i]
			life := 1.0
			if trail.Lifetime > 0 {
				life = 1 - b.Age/trail.Lifetime
			}
			if life <= 0 {
				continue
			}
			width := float32(trail.Width * life)
			vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, fade(trail.Color, life), true)
		}
	}
}

// wrapLabel 按 MaxWidth 折行，多行之间用换行符连接
func wrapLabel(app *components.AppearanceComponent) string {
	if app.MaxWidth <= 0 {
		return app.Text
	}
	return strings.Join(utils.WrapText(app.Text, app.Font, app.MaxWidth), "\n")
}

// drawText 以 (x, y) 为中心（或左上角）绘制文字
func drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y, scale float64, alignStart bool, c color.RGBA) {
	if face == nil || s == "" {
		return
	}
	op := &text.DrawOptions{}
	if !alignStart {
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
	}
	op.LineSpacing = face.Size * 1.3
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// drawHalfCircle 以三角扇绘制半圆，angle 为切口方向
func drawHalfCircle(screen *ebiten.Image, cx, cy, r, angle float64, c color.RGBA) {
	if r <= 0 || c.A == 0 {
		return
	}
	cr := float32(c.R) / 0xff
	cg := float32(c.G) / 0xff
	cb := float32(c.B) / 0xff
	ca := float32(c.A) / 0xff

	vertices := make([]ebiten.Vertex, 0, halfCircleSegments+2)
	vertices = append(vertices, ebiten.Vertex{
		DstX: float32(cx), DstY: float32(cy),
		SrcX: 1, SrcY: 1,
		ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
	})
	for i := 0; i <= halfCircleSegments; i++ {
		a := angle + math.Pi*float64(i)/halfCircleSegments
		vertices = append(vertices, ebiten.Vertex{
			DstX: float32(cx + math.Cos(a)*r), DstY: float32(cy + math.Sin(a)*r),
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}

	indices := make([]uint16, 0, halfCircleSegments*3)
	for i := 1; i <= halfCircleSegments; i++ {
		indices = append(indices, 0, uint16(i), uint16(i+1))
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	screen.DrawTriangles(vertices, indices, whiteSubImage, op)
}

// fade 按透明度缩放预乘颜色
func fade(c color.RGBA, alpha float64) color.RGBA {
	if alpha >= 1 {
		return c
	}
	if alpha <= 0 {
		return color.RGBA{}
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
