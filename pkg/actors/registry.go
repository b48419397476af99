// Package actors 管理场景内短生命周期的可视实体（粒子、抛射物、辐射波）
//
// Registry 是 ECS 之上的一层薄包装：Spawn 组装组件并创建可视对象，
// Tick 依次运行运动、生命、淡出、变换同步系统，然后在同一帧内压缩
// 过期实体并释放它们的可视句柄。每个场景独占一个 Registry，
// 场景 Cleanup 时调用 DisposeAll。
package actors

import (
	"log"

	"github.com/decker502/solarstory/pkg/components"
	"github.com/decker502/solarstory/pkg/ecs"
	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/systems"
	"github.com/decker502/solarstory/pkg/utils"
)

// Spec 描述一次 Spawn
type Spec struct {
	Position utils.Vec3
	Velocity utils.Vec3
	Spin     utils.Vec3

	// Life 初始生命（秒），DecayRate 每秒衰减量（0 视为 1）
	Life      float64
	DecayRate float64
	// Immortal 不随时间衰减，只能通过 Remove / DisposeAll 移除
	Immortal bool

	Fade    components.FadeCurve
	Opacity float64 // FadeNone 的固定透明度，0 视为 1
	Scale   float64 // 基础缩放，0 视为 1

	// PulseRate / PulseAmplitude 非零时附加脉冲
	PulseRate      float64
	PulseAmplitude float64
	PulsePhase     float64

	// Bounds 非零时在矩形内反弹
	Bounds utils.Rect
	// Threat 标记为"点击清除"小游戏中的威胁
	Threat bool

	// Build 可视工厂，返回尚未加入场景图的对象；nil 表示没有可视对象
	Build func() game.Handle
}

// Registry 场景的演员表
type Registry struct {
	entityManager *ecs.EntityManager
	visual        game.Visual

	motion   *systems.MotionSystem
	lifetime *systems.LifetimeSystem
	fade     *systems.FadeSystem
	sync     *systems.TransformSyncSystem

	disposed bool
}

// NewRegistry 创建演员表；visual 可以为 nil（无渲染的测试 / 工具）
func NewRegistry(visual game.Visual) *Registry {
	em := ecs.NewEntityManager()
	return &Registry{
		entityManager: em,
		visual:        visual,
		motion:        systems.NewMotionSystem(em),
		lifetime:      systems.NewLifetimeSystem(em),
		fade:          systems.NewFadeSystem(em),
		sync:          systems.NewTransformSyncSystem(em, visual),
	}
}

// Spawn 创建一个演员
// 非有限的位置 / 速度 / 生命属于调用方的契约错误：debug 构建下 panic，
// 否则记录日志并拒绝。DisposeAll 之后的 Spawn 一律被拒绝。
func (r *Registry) Spawn(spec Spec) (ecs.EntityID, bool) {
	if r.disposed {
		log.Printf("[Registry] Spawn after DisposeAll ignored")
		return 0, false
	}
	if !spec.Position.IsFinite() || !spec.Velocity.IsFinite() || !spec.Spin.IsFinite() {
		assertf("spawn with non-finite vector: pos=%+v vel=%+v", spec.Position, spec.Velocity)
		return 0, false
	}
	if !utils.IsFinite(spec.Life) || !utils.IsFinite(spec.DecayRate) {
		assertf("spawn with non-finite life=%v decay=%v", spec.Life, spec.DecayRate)
		return 0, false
	}
	if !spec.Immortal && spec.Life <= 0 {
		assertf("spawn with non-positive life=%v", spec.Life)
		return 0, false
	}

	em := r.entityManager
	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.PositionComponent{Pos: spec.Position})
	ecs.AddComponent(em, id, &components.VelocityComponent{Vel: spec.Velocity})

	decay := spec.DecayRate
	if decay == 0 {
		decay = 1
	}
	ecs.AddComponent(em, id, &components.LifeComponent{
		Life:      spec.Life,
		MaxLife:   spec.Life,
		DecayRate: decay,
		Immortal:  spec.Immortal,
	})

	if spec.Spin != (utils.Vec3{}) {
		ecs.AddComponent(em, id, &components.SpinComponent{Rate: spec.Spin})
	}
	if !spec.Bounds.IsZero() {
		ecs.AddComponent(em, id, &components.BounceComponent{Bounds: spec.Bounds})
	}
	if spec.PulseRate != 0 || spec.PulseAmplitude != 0 {
		ecs.AddComponent(em, id, &components.PulseComponent{
			Phase:     spec.PulsePhase,
			Rate:      spec.PulseRate,
			Amplitude: spec.PulseAmplitude,
		})
	}
	if spec.Threat {
		ecs.AddComponent(em, id, &components.ThreatComponent{})
	}

	handle := game.NoHandle
	if spec.Build != nil {
		handle = spec.Build()
	}
	visual := &components.VisualComponent{
		Handle:      handle,
		Fade:        spec.Fade,
		BaseOpacity: orOne(spec.Opacity),
		BaseScale:   orOne(spec.Scale),
	}
	visual.Opacity, visual.Scale = systems.Fade(visual.Fade, spec.Life, spec.Life, visual.BaseOpacity, visual.BaseScale)
	ecs.AddComponent(em, id, visual)

	if handle != game.NoHandle && r.visual != nil {
		r.visual.AddObject(handle)
		r.visual.SetTransform(handle, spec.Position, utils.Vec3{}, visual.Scale)
		r.visual.SetOpacity(handle, visual.Opacity)
	}
	return id, true
}

// Tick 推进所有演员 dt 秒
// 生命 <= 0 的演员在本帧被移除，可视句柄恰好释放一次
func (r *Registry) Tick(dt float64) {
	if r.disposed {
		return
	}
	r.motion.Update(dt)
	r.lifetime.Update(dt)
	r.fade.Update(dt)
	r.sync.Update()
	r.compact()
}

// Remove 立即移除一个演员并释放其可视对象
func (r *Registry) Remove(id ecs.EntityID) bool {
	if !r.Has(id) {
		return false
	}
	r.entityManager.DestroyEntity(id)
	r.compact()
	return true
}

// DisposeAll 无条件释放所有演员，之后的调用是空操作
func (r *Registry) DisposeAll() {
	if r.disposed {
		return
	}
	for _, id := range r.entityManager.Entities() {
		r.entityManager.DestroyEntity(id)
	}
	n := r.compact()
	r.disposed = true
	log.Printf("[Registry] Disposed %d actors", n)
}

// compact 释放所有已标记实体的可视对象，然后压缩
func (r *Registry) compact() int {
	for _, id := range r.entityManager.MarkedEntities() {
		visual, ok := ecs.GetComponent[*components.VisualComponent](r.entityManager, id)
		if !ok || visual.Handle == game.NoHandle || r.visual == nil {
			continue
		}
		r.visual.RemoveObject(visual.Handle)
		r.visual.DisposeObject(visual.Handle)
	}
	return len(r.entityManager.RemoveMarkedEntities())
}

// Has 演员是否存活
func (r *Registry) Has(id ecs.EntityID) bool {
	return r.entityManager.Exists(id) && !r.entityManager.IsMarked(id)
}

// Count 存活演员数量
func (r *Registry) Count() int {
	return r.entityManager.Count()
}

// Disposed 是否已调用 DisposeAll
func (r *Registry) Disposed() bool {
	return r.disposed
}

// Position 返回演员位置
func (r *Registry) Position(id ecs.EntityID) (utils.Vec3, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](r.entityManager, id)
	if !ok {
		return utils.Vec3{}, false
	}
	return pos.Pos, true
}

// SetVelocity 修改演员速度
func (r *Registry) SetVelocity(id ecs.EntityID, v utils.Vec3) {
	if !v.IsFinite() {
		assertf("set non-finite velocity %+v", v)
		return
	}
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](r.entityManager, id); ok {
		vel.Vel = v
	}
}

// Handle 返回演员的可视句柄
func (r *Registry) Handle(id ecs.EntityID) game.Handle {
	if visual, ok := ecs.GetComponent[*components.VisualComponent](r.entityManager, id); ok {
		return visual.Handle
	}
	return game.NoHandle
}

// Lookup 通过可视句柄找到演员（命中测试之后使用）
func (r *Registry) Lookup(h game.Handle) (ecs.EntityID, bool) {
	if h == game.NoHandle {
		return 0, false
	}
	for _, id := range ecs.GetEntitiesWith1[*components.VisualComponent](r.entityManager) {
		if r.Handle(id) == h && r.Has(id) {
			return id, true
		}
	}
	return 0, false
}

// Within 返回与 anchor 距离 <= radius 的存活演员（按ID升序）
func (r *Registry) Within(anchor utils.Vec3, radius float64) []ecs.EntityID {
	var result []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith1[*components.PositionComponent](r.entityManager) {
		if !r.Has(id) {
			continue
		}
		pos, _ := r.Position(id)
		if pos.Distance(anchor) <= radius {
			result = append(result, id)
		}
	}
	return result
}

// Threats 返回所有存活的威胁演员
func (r *Registry) Threats() []ecs.EntityID {
	var result []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith1[*components.ThreatComponent](r.entityManager) {
		if r.Has(id) {
			result = append(result, id)
		}
	}
	return result
}

// Handles 返回一组演员的可视句柄（用作命中测试候选集）
func (r *Registry) Handles(ids []ecs.EntityID) []game.Handle {
	handles := make([]game.Handle, 0, len(ids))
	for _, id := range ids {
		if h := r.Handle(id); h != game.NoHandle {
			handles = append(handles, h)
		}
	}
	return handles
}

// Each 按ID升序遍历存活演员
func (r *Registry) Each(fn func(id ecs.EntityID, pos utils.Vec3)) {
	for _, id := range r.entityManager.Entities() {
		if !r.Has(id) {
			continue
		}
		pos, _ := r.Position(id)
		fn(id, pos)
	}
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
