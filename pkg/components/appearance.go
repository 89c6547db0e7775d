package components

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ShapeKind 渲染形状
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRing
	ShapeHalfCircle // 被切开的半个水果，Angle 为切口方向
	ShapeRect
	ShapeText
	ShapeImage
)

// 渲染层级，数值小的先画
const (
	LayerBackground = 0
	LayerJuice      = 10
	LayerFruit      = 20
	LayerHalves     = 25
	LayerHUD        = 40
	LayerBanner     = 50
	LayerOverlay    = 60
	LayerDialog     = 70
	LayerToast      = 80
)

// AppearanceComponent 实体的矢量外观
// 不依赖图片素材，由 RenderSystem 使用 vector 包绘制
type AppearanceComponent struct {
	Shape       ShapeKind
	Radius      float64 // Circle / Ring / HalfCircle
	Width       float64 // Rect
	Height      float64 // Rect
	StrokeWidth float64 // Ring / Rect 描边宽度，0 表示填充
	Color       color.RGBA
	Accent      color.RGBA // 第二颜色（果肉、引信、描边）

	Text       string
	Font       *text.GoTextFace
	AlignStart bool    // 文字从 Position 向右排列（默认以 Position 为中心）
	MaxWidth   float64 // 文字超过该宽度时自动换行，0 表示不换行
	Image      *ebiten.Image

	Scale  float64 // 1.0 = 原始大小
	Alpha  float64 // 0 ~ 1
	Angle  float64 // 弧度
	Layer  int
	Hidden bool
}
