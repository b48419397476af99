package components

// LifeComponent 管理粒子/抛射物的剩余生命
// 用于自动清理存在时间有限的实体(如火花、尾迹、极光)
type LifeComponent struct {
	Life      float64 // 剩余生命(秒)，<= 0 即过期
	MaxLife   float64 // 初始生命(秒)，用于计算归一化进度
	DecayRate float64 // 衰减速率：Life -= dt * DecayRate，按粒子类型不同
	Immortal  bool    // 不衰减（辐射波等由游戏逻辑移除的实体）
}
