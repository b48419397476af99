package game

import (
	"log"

	"github.com/decker502/solarstory/pkg/utils"
)

// DefaultEndNotice 全部场景完成后的提示
const DefaultEndNotice = "The End! Thank you for joining our space adventure!"

// handlers 活动场景实现的可选接口，每次加载时解析一次
type handlers struct {
	click   ClickHandler
	pointer PointerHandler
	touch   TouchHandler
}

// Orchestrator 管理有序的场景列表，驱动切换并把输入转发给活动场景
//
// 同一时刻只有一个活动场景。LoadScene 先同步完成旧场景的 Cleanup，
// 再构造并初始化新场景；场景在 Init / Cleanup 中发起的切换会推迟到
// 当前加载结束后执行。
type Orchestrator struct {
	count   int
	factory SceneFactory
	ui      UI
	audio   Audio

	current  Scene
	index    int
	handlers handlers

	storyComplete bool
	endNotice     string

	loading bool
	pending []int
}

// NewOrchestrator 创建场景编排器
func NewOrchestrator(count int, factory SceneFactory, ui UI, audio Audio) *Orchestrator {
	return &Orchestrator{
		count:     count,
		factory:   factory,
		ui:        ui,
		audio:     audio,
		index:     -1,
		endNotice: DefaultEndNotice,
	}
}

// SetEndNotice 设置故事结束提示
func (o *Orchestrator) SetEndNotice(text string) {
	if text != "" {
		o.endNotice = text
	}
}

// LoadScene 加载指定序号的场景
// 序号越界视为"故事完成"：显示结束提示，确认后回到第 0 个场景
func (o *Orchestrator) LoadScene(index int) {
	if o.loading {
		o.pending = append(o.pending, index)
		return
	}

	o.loading = true
	o.load(index)
	for len(o.pending) > 0 {
		next := o.pending[0]
		o.pending = o.pending[1:]
		o.load(next)
	}
	o.loading = false
}

func (o *Orchestrator) load(index int) {
	o.teardown()

	if index < 0 || index >= o.count {
		log.Printf("[Orchestrator] 所有场景已完成 (index=%d)", index)
		o.storyComplete = true
		o.index = -1
		if o.ui != nil {
			o.ui.ShowNarration(o.endNotice, o.acknowledgeEnd)
		}
		if o.audio != nil {
			o.audio.Speak(o.endNotice, func() {
				if o.storyComplete && o.ui != nil {
					o.ui.CueNext()
				}
			})
		}
		return
	}

	if o.factory == nil {
		log.Printf("[Orchestrator] 错误: SceneFactory 未设置")
		return
	}
	scene := o.factory(index, o)
	if scene == nil {
		log.Printf("[Orchestrator] 错误: 无法创建场景 %d", index)
		return
	}

	o.current = scene
	o.index = index
	o.storyComplete = false
	o.handlers = resolveHandlers(scene)

	log.Printf("[Orchestrator] 加载场景 %d/%d", index+1, o.count)
	scene.Init()

	if o.ui != nil {
		o.ui.UpdateProgress(float64(index+1) / float64(o.count) * 100)
		o.ui.UpdateSceneIndicator(index+1, o.count)
	}
}

// acknowledgeEnd 结束提示被确认
func (o *Orchestrator) acknowledgeEnd() {
	if !o.storyComplete {
		return
	}
	if o.audio != nil {
		o.audio.PlaySound(SoundClick)
	}
	o.LoadScene(0)
}

func resolveHandlers(scene Scene) handlers {
	var h handlers
	h.click, _ = scene.(ClickHandler)
	h.pointer, _ = scene.(PointerHandler)
	h.touch, _ = scene.(TouchHandler)
	return h
}

// teardown 清理活动场景（或结束提示），停止朗读
func (o *Orchestrator) teardown() {
	if o.storyComplete {
		o.storyComplete = false
		if o.ui != nil {
			o.ui.HideNarration()
		}
	}
	if o.current != nil {
		scene := o.current
		o.current = nil
		o.handlers = handlers{}
		scene.Cleanup()
	}
	if o.audio != nil {
		o.audio.StopSpeaking()
	}
}

// NextScene 加载下一个场景
func (o *Orchestrator) NextScene() {
	o.LoadScene(o.index + 1)
}

// Restart 回到第一个场景
func (o *Orchestrator) Restart() {
	o.LoadScene(0)
}

// Stop 清理活动场景且不加载新场景（窗口关闭）
func (o *Orchestrator) Stop() {
	if o.loading {
		return
	}
	o.teardown()
	o.index = -1
}

// Update 推进活动场景
func (o *Orchestrator) Update(dt float64) {
	if o.current != nil {
		o.current.Update(dt)
	}
}

// CurrentIndex 活动场景序号，没有活动场景时为 -1
func (o *Orchestrator) CurrentIndex() int {
	return o.index
}

// Current 活动场景
func (o *Orchestrator) Current() Scene {
	return o.current
}

// Count 场景总数
func (o *Orchestrator) Count() int {
	return o.count
}

// StoryComplete 是否处于"故事完成"状态
func (o *Orchestrator) StoryComplete() bool {
	return o.storyComplete
}

// HandleClick 转发点击
func (o *Orchestrator) HandleClick(p utils.Vec2) {
	if o.handlers.click != nil {
		o.handlers.click.HandleClick(p)
	}
}

// HandlePointerDown 转发鼠标按下
func (o *Orchestrator) HandlePointerDown(p utils.Vec2) {
	if o.handlers.pointer != nil {
		o.handlers.pointer.HandlePointerDown(p)
	}
}

// HandlePointerMove 转发鼠标移动
func (o *Orchestrator) HandlePointerMove(p utils.Vec2) {
	if o.handlers.pointer != nil {
		o.handlers.pointer.HandlePointerMove(p)
	}
}

// HandlePointerUp 转发鼠标抬起
func (o *Orchestrator) HandlePointerUp() {
	if o.handlers.pointer != nil {
		o.handlers.pointer.HandlePointerUp()
	}
}

// HandleTouchStart 转发触摸开始
func (o *Orchestrator) HandleTouchStart(p utils.Vec2) {
	switch {
	case o.handlers.touch != nil:
		o.handlers.touch.HandleTouchStart(p)
	case o.handlers.pointer != nil:
		o.handlers.pointer.HandlePointerDown(p)
	}
}

// HandleTouchMove 转发触摸移动
func (o *Orchestrator) HandleTouchMove(p utils.Vec2) {
	switch {
	case o.handlers.touch != nil:
		o.handlers.touch.HandleTouchMove(p)
	case o.handlers.pointer != nil:
		o.handlers.pointer.HandlePointerMove(p)
	}
}

// HandleTouchEnd 转发触摸结束
func (o *Orchestrator) HandleTouchEnd() {
	switch {
	case o.handlers.touch != nil:
		o.handlers.touch.HandleTouchEnd()
	case o.handlers.pointer != nil:
		o.handlers.pointer.HandlePointerUp()
	}
}
