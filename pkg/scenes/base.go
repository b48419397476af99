// Package scenes 实现故事的八个场景
//
// 每个场景嵌入 Base。Base 负责生命周期阶段、场景自有的演员表、
// 定时器、旁白序列器、输入解析器和装饰道具；具体场景只描述自己的
// 道具布局、阶段转换和小游戏。
package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/solarstory/pkg/actors"
	"github.com/decker502/solarstory/pkg/config"
	"github.com/decker502/solarstory/pkg/ecs"
	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/input"
	"github.com/decker502/solarstory/pkg/narration"
	"github.com/decker502/solarstory/pkg/timer"
	"github.com/decker502/solarstory/pkg/utils"
)

// Phase 场景生命周期阶段
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseNarration
	PhaseFreeInteraction
	PhaseMiniGame
	PhaseComplete
)

// String 返回阶段名称
func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "Uninitialized"
	case PhaseNarration:
		return "Narration"
	case PhaseFreeInteraction:
		return "FreeInteraction"
	case PhaseMiniGame:
		return "MiniGame"
	case PhaseComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// transitions 合法的阶段切换；Complete 是终态
var transitions = map[Phase][]Phase{
	PhaseUninitialized:   {PhaseNarration},
	PhaseNarration:       {PhaseFreeInteraction, PhaseMiniGame},
	PhaseFreeInteraction: {PhaseComplete},
	PhaseMiniGame:        {PhaseComplete},
}

// Random 随机数来源，*rand.Rand 满足该接口
type Random interface {
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// Deps 场景共享的协作者
type Deps struct {
	Builder game.Builder
	Visual  game.Visual
	UI      game.UI
	Audio   game.Audio
	Camera  input.Camera
	Story   *config.StoryConfig
	Random  Random
}

// Base 场景公共部分
type Base struct {
	Deps

	index    int
	tag      string
	text     config.SceneConfig
	timings  config.TimingsConfig
	director game.Director

	phase              Phase
	interactionEnabled bool
	alive              bool
	// allowBridge 允许 MiniGame -> Narration（两段小游戏之间的过渡旁白）
	allowBridge bool

	actors    *actors.Registry
	timers    *timer.Scheduler
	narration *narration.Sequencer
	resolver  *input.Resolver
	props     []game.Handle

	// miniGame 当前的小游戏（可能为 nil）
	miniGame interface{ IsComplete() bool }
}

func newBase(deps Deps, index int, director game.Director) Base {
	timers := timer.NewScheduler()
	b := Base{
		Deps:      deps,
		index:     index,
		tag:       sceneTag(index),
		timings:   deps.Story.Timings,
		director:  director,
		timers:    timers,
		actors:    actors.NewRegistry(deps.Visual),
		narration: narration.NewSequencer(deps.UI, deps.Audio, timers),
		resolver:  input.NewResolver(deps.Camera, deps.Visual),
	}
	if index >= 0 && index < len(deps.Story.Scenes) {
		b.text = deps.Story.Scenes[index]
	}
	return b
}

func sceneTag(index int) string {
	return fmt.Sprintf("[Scene%d]", index+1)
}

// Phase 当前阶段
func (b *Base) Phase() Phase {
	return b.phase
}

// InteractionEnabled 是否接受场景内的指针输入
func (b *Base) InteractionEnabled() bool {
	return b.interactionEnabled
}

// Actors 场景的演员表
func (b *Base) Actors() *actors.Registry {
	return b.actors
}

// canEnter 按 transitions 判断能否切换到 next
func (b *Base) canEnter(next Phase) bool {
	if b.allowBridge && b.phase == PhaseMiniGame && next == PhaseNarration {
		return true
	}
	for _, p := range transitions[b.phase] {
		if p == next {
			return true
		}
	}
	return false
}

// enterPhase 切换阶段；不在 transitions 中的请求被拒绝
func (b *Base) enterPhase(next Phase) bool {
	if !b.canEnter(next) {
		log.Printf("%s 拒绝阶段切换 %s -> %s", b.tag, b.phase, next)
		return false
	}
	b.phase = next
	b.interactionEnabled = next == PhaseFreeInteraction || next == PhaseMiniGame
	log.Printf("%s 阶段 -> %s", b.tag, next)
	return true
}

// begin 进入场景：显示标题，delay 秒后播放开场旁白，结束后调用 next
func (b *Base) begin(delay float64, next func()) {
	b.alive = true
	b.enterPhase(PhaseNarration)

	b.UI.ShowSceneTitle(b.text.Title)
	b.after(b.timings.TitleDuration, b.UI.HideSceneTitle)

	start := func() { b.play(b.text.Intro, next) }
	if delay <= 0 {
		start()
		return
	}
	b.after(delay, start)
}

// play 播放一组旁白
func (b *Base) play(beats []config.BeatConfig, onDone func()) {
	seq := make([]narration.Beat, 0, len(beats))
	for _, beat := range beats {
		seq = append(seq, narration.Beat{Text: beat.Text, Auto: beat.Auto})
	}
	b.narration.Play(seq, b.guard(onDone))
}

// say 播放单条旁白
func (b *Base) say(text string, onDone func()) {
	b.play([]config.BeatConfig{{Text: text}}, onDone)
}

// complete 进入 Complete，播放结束旁白后调用 next
func (b *Base) complete(beats []config.BeatConfig, next func()) bool {
	if !b.enterPhase(PhaseComplete) {
		return false
	}
	b.UI.HideGameUI()
	b.play(beats, next)
	return true
}

// finish 播放结束旁白后进入下一个场景
func (b *Base) finish() bool {
	return b.complete(b.text.Outro, b.director.NextScene)
}

// guard 包装回调：场景清理后不再执行
func (b *Base) guard(fn func()) func() {
	return func() {
		if !b.alive || fn == nil {
			return
		}
		fn()
	}
}

// after 在 delay 秒后执行 fn（场景清理时自动取消）
func (b *Base) after(delay float64, fn func()) timer.ID {
	return b.timers.After(delay, b.guard(fn))
}

// addProp 创建装饰道具并加入场景图
func (b *Base) addProp(prop game.Prop, pos utils.Vec3) game.Handle {
	if b.Builder == nil {
		return game.NoHandle
	}
	h := b.Builder.Build(prop)
	if h == game.NoHandle {
		return h
	}
	b.props = append(b.props, h)
	b.Visual.AddObject(h)
	b.Visual.SetTransform(h, pos, utils.Vec3{}, 1)
	return h
}

// placeProp 更新道具变换
func (b *Base) placeProp(h game.Handle, pos, rot utils.Vec3, scale float64) {
	if h == game.NoHandle || b.Visual == nil {
		return
	}
	b.Visual.SetTransform(h, pos, rot, scale)
}

// spawn 生成演员
func (b *Base) spawn(spec actors.Spec) (ecs.EntityID, bool) {
	return b.actors.Spawn(spec)
}

// pick 命中测试
func (b *Base) pick(p utils.Vec2, candidates ...game.Handle) (game.Handle, bool) {
	return b.resolver.Pick(p, candidates)
}

// sound 播放音效
func (b *Base) sound(id game.SoundID) {
	if b.Audio != nil {
		b.Audio.PlaySound(id)
	}
}

// showGame 显示游戏界面，控件回调在场景清理后失效
func (b *Base) showGame(ui game.GameUI, onControl func(id string)) {
	ui.OnControl = func(id string) {
		if !b.alive {
			return
		}
		onControl(id)
	}
	b.UI.ShowGameUI(ui)
}

// item 按 ID 查找场景条目
func (b *Base) item(id string) (config.ItemConfig, bool) {
	for _, it := range b.text.Items {
		if it.ID == id {
			return it, true
		}
	}
	return config.ItemConfig{}, false
}

// itemIDs 场景条目 ID（按配置顺序）
func (b *Base) itemIDs() []string {
	ids := make([]string, 0, len(b.text.Items))
	for _, it := range b.text.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

// Update 推进定时器与演员
func (b *Base) Update(dt float64) {
	if !b.alive {
		return
	}
	b.timers.Update(dt)
	if !b.alive {
		return
	}
	b.actors.Tick(dt)
}

// Cleanup 释放场景拥有的全部资源
// 返回后任何残留的回调（定时器、旁白、控件）都是空操作
func (b *Base) Cleanup() {
	b.alive = false
	b.interactionEnabled = false

	b.timers.CancelAll()
	b.narration.Cancel()
	b.actors.DisposeAll()

	if b.Visual != nil {
		for _, h := range b.props {
			b.Visual.RemoveObject(h)
			b.Visual.DisposeObject(h)
		}
	}
	b.props = nil
	b.miniGame = nil

	b.UI.HideGameUI()
	b.UI.HideDialogue()
	b.UI.HideNarration()
	b.UI.HideSceneTitle()
	log.Printf("%s 清理完成", b.tag)
}
