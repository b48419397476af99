// verify_story 无窗口地通关全部八个场景
//
// 使用 headless 协作者和真实的场景工厂 / 编排器，按固定步长推进，
// 由一个简单的"自动玩家"点击旁白、控件和场景对象。检查每个场景在
// 时限内完成、没有对象被重复释放，并且停止后场景图为空。
//
// 用法：
//
//	go run ./cmd/verify_story -verbose
//	go run ./cmd/verify_story -config data/story.yaml -timeout 60
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/decker502/solarstory/pkg/app"
	"github.com/decker502/solarstory/pkg/config"
	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/headless"
	"github.com/decker502/solarstory/pkg/input"
	"github.com/decker502/solarstory/pkg/utils"
)

const (
	tick     = 1.0 / 60
	actEvery = 0.3
	// memoryWait 翻两张牌之后等待判定
	memoryWait = 1.2
)

var (
	verbose   = flag.Bool("verbose", false, "显示详细调试信息")
	storyPath = flag.String("config", "data/story.yaml", "故事配置文件")
	timeout   = flag.Float64("timeout", 120, "单个场景的时限（模拟秒）")
	seed      = flag.Int64("seed", 7, "随机种子")
)

// sceneResult 一个场景的通关记录
type sceneResult struct {
	index   int
	seconds float64
	sounds  int
}

// pilot 自动玩家
type pilot struct {
	orchestrator *game.Orchestrator
	ui           *headless.UI
	visual       *headless.Visual
	camera       input.Camera
	story        *config.StoryConfig

	cooldown float64
	step     int
	gameKey  string
	pairI    int
	pairJ    int
	painted  bool
	done     bool
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	story, err := config.LoadStoryConfig(*storyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}

	results, err := run(story)
	for _, r := range results {
		fmt.Printf("✓ 场景 %d %-40q %6.1fs  音效 %d\n", r.index+1, story.Scenes[r.index].Title, r.seconds, r.sounds)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("全部 %d 个场景通过\n", len(results))
}

func run(story *config.StoryConfig) ([]sceneResult, error) {
	visual := headless.NewVisual()
	ui := headless.NewUI()
	audio := headless.NewAudio()
	camera := app.Camera(story, float64(story.Window.Width)/float64(story.Window.Height))

	orchestrator := app.NewOrchestrator(app.Config{Seed: *seed}, story, app.Collaborators{
		Builder: visual,
		Visual:  visual,
		UI:      ui,
		Audio:   audio,
	}, camera)

	p := &pilot{
		orchestrator: orchestrator,
		ui:           ui,
		visual:       visual,
		camera:       camera,
		story:        story,
	}
	p.reset()

	var results []sceneResult
	orchestrator.LoadScene(0)
	current, elapsed, sounds := 0, 0.0, 0

	for !p.done {
		orchestrator.Update(tick)
		elapsed += tick
		p.act(current)

		if dup := doubleDisposed(visual); dup != "" {
			return results, fmt.Errorf("场景 %d: %s", current+1, dup)
		}

		if idx := orchestrator.CurrentIndex(); idx != current && !p.done {
			if idx != current+1 {
				return results, fmt.Errorf("场景 %d 之后加载了场景 %d", current+1, idx+1)
			}
			results = append(results, sceneResult{index: current, seconds: elapsed, sounds: len(audio.Sounds) - sounds})
			current, elapsed, sounds = idx, 0, len(audio.Sounds)
			p.reset()
		}
		if elapsed > *timeout {
			return results, fmt.Errorf("场景 %d 超时 (%.0fs)", current+1, *timeout)
		}
	}
	results = append(results, sceneResult{index: current, seconds: elapsed, sounds: len(audio.Sounds) - sounds})

	// 重新开始回到第一个场景
	if orchestrator.CurrentIndex() != 0 {
		return results, fmt.Errorf("重新开始后场景序号为 %d", orchestrator.CurrentIndex())
	}

	orchestrator.Stop()
	if n := visual.Live(); n != 0 {
		return results, fmt.Errorf("停止后仍有 %d 个对象在场景图中", n)
	}
	for h, obj := range visual.Objects {
		if obj.Disposed != 1 {
			return results, fmt.Errorf("对象 %d (%s) 释放了 %d 次", h, obj.Prop, obj.Disposed)
		}
	}
	return results, nil
}

func doubleDisposed(visual *headless.Visual) string {
	for h, obj := range visual.Objects {
		if obj.Disposed > 1 {
			return fmt.Sprintf("对象 %d (%s) 被重复释放", h, obj.Prop)
		}
	}
	return ""
}

func (p *pilot) reset() {
	p.cooldown, p.step, p.gameKey = 0, 0, ""
	p.pairI, p.pairJ, p.painted = 0, 1, false
}

// act 每 actEvery 秒做一次操作：先推进旁白，再按场景玩小游戏
func (p *pilot) act(scene int) {
	p.cooldown -= tick
	if p.cooldown > 0 {
		return
	}
	p.cooldown = actEvery

	if p.ui.NarrationOpen() {
		p.ui.Advance()
		return
	}

	if g := p.ui.Game; g != nil && g.Title != p.gameKey {
		p.gameKey, p.step = g.Title, 0
	}

	items := p.story.Scenes[scene].Items
	switch scene {
	case 0:
		// 点击太阳发射 Sparky
		p.orchestrator.HandleClick(utils.Vec2{})
	case 1:
		// 拖动 Sparky 穿过太空
		p.orchestrator.HandlePointerDown(utils.Vec2{})
		p.orchestrator.HandlePointerMove(utils.Vec2{X: 0.3, Y: 0.1})
		p.orchestrator.HandlePointerUp()
	case 2:
		for _, it := range items {
			if c, ok := p.ui.Control("cable:" + it.ID); ok && c.State != game.ControlHidden && c.State != game.ControlDone {
				p.ui.Press("cable:" + it.ID)
				p.ui.Press("socket:" + it.ID)
				return
			}
		}
	case 3:
		if p.ui.Game == nil {
			return
		}
		if !p.painted {
			p.orchestrator.HandlePointerDown(utils.Vec2{X: -0.6, Y: 0.5})
			for x := -0.6; x <= 0.6; x += 0.05 {
				p.orchestrator.HandlePointerMove(utils.Vec2{X: x, Y: 0.5})
			}
			p.orchestrator.HandlePointerUp()
			p.painted = true
			return
		}
		p.ui.Press("finish")
	case 4:
		if p.step < len(items) {
			p.ui.Press(items[p.step].ID)
			p.step++
			return
		}
		p.ui.Press("continue")
	case 5:
		p.flipPair()
	case 6:
		if _, ok := p.ui.Control("shield"); ok {
			p.clickWaves()
			return
		}
		if p.ui.Game != nil && p.step < len(items) {
			p.ui.Press(items[p.step].ID)
			p.step++
		}
	case 7:
		if _, ok := p.ui.Control("restart"); ok {
			p.ui.Press("restart")
			p.done = true
			return
		}
		if p.step < len(items) {
			p.ui.Press(items[p.step].ID)
			p.step++
		}
	}
}

// flipPair 依次尝试每一对尚未配对的卡片
func (p *pilot) flipPair() {
	if p.ui.Game == nil {
		return
	}
	var cards []string
	for _, c := range p.ui.Game.Controls {
		if strings.HasPrefix(c.ID, "card:") {
			cards = append(cards, c.ID)
		}
	}
	open := func(i int) bool {
		c, ok := p.ui.Control("card:" + strconv.Itoa(i))
		return ok && c.State == game.ControlIdle
	}
	for ; p.pairI < len(cards); p.pairI, p.pairJ = p.pairI+1, p.pairI+2 {
		if !open(p.pairI) {
			continue
		}
		for ; p.pairJ < len(cards); p.pairJ++ {
			if !open(p.pairJ) {
				continue
			}
			p.ui.Press("card:" + strconv.Itoa(p.pairI))
			p.ui.Press("card:" + strconv.Itoa(p.pairJ))
			p.pairJ++
			p.cooldown = memoryWait
			return
		}
	}
	// 一轮结束仍未完成（判定期间的点击被忽略），从头再来
	p.pairI, p.pairJ = 0, 1
}

// clickWaves 点击场景图中所有辐射波的投影位置
func (p *pilot) clickWaves() {
	for _, obj := range p.visual.Objects {
		if obj.Prop != game.PropWave || !obj.Added || obj.Disposed > 0 {
			continue
		}
		if pos, ok := p.camera.Project(obj.Position); ok {
			p.orchestrator.HandleClick(pos)
		}
	}
}
