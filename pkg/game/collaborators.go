package game

import "github.com/decker502/solarstory/pkg/utils"

// Handle 可视对象的不透明句柄，0 保留为无效值
// 由 Builder 创建，核心只负责添加 / 移除 / 变换 / 释放
type Handle uint64

// NoHandle 无效句柄
const NoHandle Handle = 0

// Prop 装饰性可视对象的种类（几何体与材质的拼装在核心之外完成）
type Prop string

const (
	PropStarfield Prop = "starfield"
	PropSun       Prop = "sun"
	PropPlanet    Prop = "planet"
	PropSparky    Prop = "sparky"
	PropSpark     Prop = "spark"
	PropTrail     Prop = "trail"
	PropRock      Prop = "rock"
	PropTractor   Prop = "tractor"
	PropSatellite Prop = "satellite"
	PropPowerPole Prop = "power-pole"
	PropEarth     Prop = "earth"
	PropPlane     Prop = "plane"
	PropChild     Prop = "child"
	PropAurora    Prop = "aurora"
	PropStation   Prop = "station"
	PropAstronaut Prop = "astronaut"
	PropWave      Prop = "wave"
	PropShield    Prop = "shield"
	PropHouse     Prop = "house"
	PropGround    Prop = "ground"
)

// Radius 道具的命中半径（世界单位，未缩放）
func (p Prop) Radius() float64 {
	switch p {
	case PropSun:
		return 2
	case PropEarth:
		return 1.5
	case PropPlanet:
		return 0.8
	case PropSparky, PropWave:
		return 0.5
	case PropShield:
		return 3
	case PropSpark, PropTrail, PropAurora:
		return 0.1
	default:
		return 0.7
	}
}

// Builder 装饰资源拼装（外部协作者）
// Build 创建一个尚未加入场景图的可视对象
type Builder interface {
	Build(prop Prop) Handle
}

// Visual 场景图协作者
//
// 场景图是所有场景共享的单例，同一时刻只有活动场景可以修改它
// （由 Orchestrator 的"先清理后初始化"顺序保证，而不是锁）。
type Visual interface {
	AddObject(h Handle)
	RemoveObject(h Handle)
	SetTransform(h Handle, position, rotation utils.Vec3, scale float64)
	SetOpacity(h Handle, value float64)
	DisposeObject(h Handle)
	// HitTest 返回与射线相交的最近对象（只在 candidates 中查找）
	HitTest(ray utils.Ray, candidates []Handle) (Handle, bool)
}

// SoundID 音效标识
type SoundID int

const (
	SoundClick SoundID = iota
	SoundSuccess
	SoundFailure
	SoundBeep
	SoundWhoosh
)

// String 返回音效名称
func (s SoundID) String() string {
	switch s {
	case SoundClick:
		return "click"
	case SoundSuccess:
		return "success"
	case SoundFailure:
		return "failure"
	case SoundBeep:
		return "beep"
	case SoundWhoosh:
		return "whoosh"
	default:
		return "unknown"
	}
}

// Audio 音频协作者
type Audio interface {
	PlaySound(id SoundID)
	// Speak 朗读文本，结束时调用 onEnd（可为 nil）
	// 被 StopSpeaking 打断时不会调用 onEnd
	Speak(text string, onEnd func())
	StopSpeaking()
}

// ControlState 游戏界面控件状态
type ControlState int

const (
	ControlIdle ControlState = iota
	ControlSelected
	ControlDone
	ControlHidden
	ControlDisabled
)

// Control 游戏界面中的一个可点击控件（按钮 / 卡片 / 插头）
type Control struct {
	ID    string
	Label string
	State ControlState
	// Row 布局行号，后端按行排列控件
	Row int
}

// GameUI 游戏界面描述符
// 核心只产出描述符，具体控件树由 UI 后端构建
type GameUI struct {
	Title    string
	Prompt   string
	Controls []Control
	Status   string
	Detail   string
	// OnControl 控件被点击时由后端回调
	OnControl func(id string)
}

// UI 界面协作者
type UI interface {
	ShowNarration(text string, onAdvance func())
	HideNarration()
	// CueNext 当前旁白已朗读完毕，提示玩家点击"下一步"
	CueNext()
	ShowSceneTitle(text string)
	HideSceneTitle()
	ShowDialogue(speaker, text string)
	HideDialogue()
	ShowGameUI(ui GameUI)
	HideGameUI()
	UpdateProgress(percent float64)
	UpdateSceneIndicator(current, total int)
	Celebrate()
}
