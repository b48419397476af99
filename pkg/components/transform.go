package components

import "github.com/decker502/solarstory/pkg/utils"

// PositionComponent 实体在世界坐标中的位置
type PositionComponent struct {
	Pos utils.Vec3
}

// VelocityComponent 实体速度（世界单位/秒）
// MotionSystem 每帧执行 Pos += Vel * dt
type VelocityComponent struct {
	Vel utils.Vec3
}

// SpinComponent 自转（弧度），Rate 为每秒角速度
type SpinComponent struct {
	Rotation utils.Vec3
	Rate     utils.Vec3
}

// BounceComponent 在固定矩形边界内反弹
// 与小游戏逻辑无关：越界时速度反向（辐射波的行为）
type BounceComponent struct {
	Bounds utils.Rect
}
