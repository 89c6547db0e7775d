package scenes

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/ninjafruit/pkg/config"
	"github.com/decker502/ninjafruit/pkg/entities"
	"github.com/decker502/ninjafruit/pkg/game"
	"github.com/decker502/ninjafruit/pkg/modules"
)

// minLoadingDuration 加载界面最短显示时间（秒）
const minLoadingDuration = 0.6

const (
	loadingBarWidth  = 420.0
	loadingBarHeight = 14.0
)

var (
	loadingBackColor = color.RGBA{R: 0x1b, G: 0x12, B: 0x0c, A: 0xff}
	loadingBarBack   = color.RGBA{R: 0x4a, G: 0x34, B: 0x24, A: 0xff}
	loadingBarFill   = color.RGBA{R: 0xf4, G: 0xa2, B: 0x61, A: 0xff}
)

// LoadingScene 启动时的加载界面
// 每帧预热一项资源（字体、各张背景），全部完成后切换到 next 创建的场景
type LoadingScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	next            func() game.Scene

	tasks    []func()
	done     int
	elapsed  float64
	switched bool

	titleFont *text.GoTextFace
	textFont  *text.GoTextFace
}

// NewLoadingScene 创建加载界面
//
// 参数:
//   - backgrounds: 需要预先渲染的背景
//   - next: 加载完成后创建下一个场景
func NewLoadingScene(rm *game.ResourceManager, sm *game.SceneManager, backgrounds []config.BackgroundPalette, next func() game.Scene) *LoadingScene {
	s := &LoadingScene{
		resourceManager: rm,
		sceneManager:    sm,
		next:            next,
		titleFont:       rm.MustFont(game.FontBold, 64),
		textFont:        rm.MustFont(game.FontRegular, 22),
	}

	s.tasks = append(s.tasks, func() { modules.LoadFonts(rm) })
	for _, bg := range backgrounds {
		s.tasks = append(s.tasks, func() { rm.BackgroundImage(bg) })
	}
	return s
}

// Progress 加载进度 0.0 ~ 1.0
func (s *LoadingScene) Progress() float64 {
	if len(s.tasks) == 0 {
		return 1
	}
	return float64(s.done) / float64(len(s.tasks))
}

// Update 执行下一项加载任务
func (s *LoadingScene) Update(deltaTime float64) {
	s.elapsed += deltaTime

	if s.done < len(s.tasks) {
		s.tasks[s.done]()
		s.done++
		return
	}

	if s.switched || s.elapsed < minLoadingDuration {
		return
	}
	s.switched = true
	log.Printf("[LoadingScene] Loaded %d resources in %.2fs", len(s.tasks), s.elapsed)
	if s.next != nil {
		s.sceneManager.SwitchTo(s.next())
	}
}

// Draw 绘制标题和进度条
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(loadingBackColor)

	cx := float32(config.GameWindowWidth / 2)
	cy := float32(config.GameWindowHeight / 2)

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(cx), float64(cy)-80)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(entities.TitleColor)
	text.Draw(screen, "Ninja Fruit", s.titleFont, op)

	x := cx - loadingBarWidth/2
	y := cy + 20
	vector.DrawFilledRect(screen, x, y, loadingBarWidth, loadingBarHeight, loadingBarBack, true)
	vector.DrawFilledRect(screen, x, y, float32(loadingBarWidth*s.Progress()), loadingBarHeight, loadingBarFill, true)

	op = &text.DrawOptions{}
	op.GeoM.Translate(float64(cx), float64(y)+48)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(entities.TextColor)
	text.Draw(screen, "Loading...", s.textFont, op)
}
