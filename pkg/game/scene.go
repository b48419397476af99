package game

import "github.com/decker502/solarstory/pkg/utils"

// Scene 一个叙事场景
//
// 生命周期由 Orchestrator 驱动：Init → Update* → Cleanup。
// Cleanup 必须释放场景持有的全部对象，并且总是在下一个场景 Init 之前完成。
type Scene interface {
	// Init 构建装饰、启动旁白
	Init()
	// Update 推进场景逻辑，dt 为固定的名义帧时长（秒）
	Update(dt float64)
	// Cleanup 释放演员、可视对象、定时器与界面
	Cleanup()
}

// ClickHandler 可选接口：处理点击
// p 为归一化指针坐标（x、y ∈ [-1, 1]，y 向上）
type ClickHandler interface {
	HandleClick(p utils.Vec2)
}

// PointerHandler 可选接口：处理鼠标按下 / 移动 / 抬起
type PointerHandler interface {
	HandlePointerDown(p utils.Vec2)
	HandlePointerMove(p utils.Vec2)
	HandlePointerUp()
}

// TouchHandler 可选接口：处理触摸
// 未实现时触摸事件按 1:1 映射到 PointerHandler
type TouchHandler interface {
	HandleTouchStart(p utils.Vec2)
	HandleTouchMove(p utils.Vec2)
	HandleTouchEnd()
}

// Director 场景用来请求切换的接口（由 Orchestrator 实现）
type Director interface {
	// NextScene 加载下一个场景，只应由活动场景调用
	NextScene()
	// Restart 回到第一个场景
	Restart()
}

// SceneFactory 场景工厂函数类型
// 用于创建指定序号的场景，避免 game 与 scenes 包循环依赖
type SceneFactory func(index int, director Director) Scene
