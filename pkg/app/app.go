// Package app 提供故事应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来，使其可以被桌面端、移动端和终端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用，
// 终端通过 RunTerminal() 运行。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/solarstory/pkg/config"
	"github.com/decker502/solarstory/pkg/display"
	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/sound"
)

// App 是故事应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	story        *config.StoryConfig
	display      *display.Display
	player       *sound.Player
	orchestrator *game.Orchestrator
	input        *pointerInput
	dt           float64
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// configureLogging 非 verbose 模式下丢弃日志
func configureLogging(verbose bool) {
	if !verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
}

// NewApp 创建并初始化故事应用
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	configureLogging(cfg.Verbose)

	story, err := LoadStory(cfg)
	if err != nil {
		return nil, err
	}

	width, height := story.Window.Width, story.Window.Height
	camera := Camera(story, float64(width)/float64(height))
	d, err := display.New(width, height, camera)
	if err != nil {
		return nil, fmt.Errorf("显示初始化失败: %w", err)
	}

	// 初始化音频上下文
	audioContext := audio.CurrentContext()
	if audioContext == nil {
		audioContext = audio.NewContext(48000)
	}
	player := sound.NewPlayer(sound.NewEbitenSink(audioContext), sound.NewVoice(story.Timings.SpeechWordsPerSecond))
	log.Printf("[App] Audio initialized (sample rate %d)", audioContext.SampleRate())

	orchestrator := NewOrchestrator(cfg, story, Collaborators{
		Builder: d.Graph,
		Visual:  d.Graph,
		UI:      d.UI,
		Audio:   player,
	}, camera)

	a := &App{
		story:        story,
		display:      d,
		player:       player,
		orchestrator: orchestrator,
		input:        newPointerInput(d.UI, orchestrator, width, height),
		dt:           1.0 / float64(story.TickRate),
		verbose:      cfg.Verbose,
	}
	ebiten.SetTPS(story.TickRate)

	start := startIndex(cfg, orchestrator.Count())
	log.Printf("[App] Starting scene: %d", start+1)
	orchestrator.LoadScene(start)
	return a, nil
}

// Update 更新逻辑
// 每个 tick 调用一次，核心按固定的 1/TickRate 秒推进
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.story.Window.Width, a.story.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.story.Window.Width, a.story.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// M 静音
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.player.SetMuted(!a.player.Muted())
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		a.display.UI.Advance()
	}
	a.input.update()

	a.Step(a.dt)
	return nil
}

// Step 按固定步长推进一帧（音频定时器、活动场景、界面动画）
func (a *App) Step(dt float64) {
	a.player.Update(dt)
	a.orchestrator.Update(dt)
	a.display.Update(dt)
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.display.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.story.Window.Width, a.story.Window.Height
}

// Story 返回加载的故事配置（窗口标题、尺寸）
func (a *App) Story() *config.StoryConfig {
	return a.story
}

// Orchestrator 返回场景编排器
func (a *App) Orchestrator() *game.Orchestrator {
	return a.orchestrator
}

// Shutdown 窗口关闭时清理活动场景
func (a *App) Shutdown() {
	a.orchestrator.Stop()
	log.Printf("[App] Shutdown")
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
