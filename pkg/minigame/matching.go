package minigame

// Matching 插头配对：把每个源键连接到同名的目标键
//
// 玩家先选中一个源（Select），再点击目标（Connect）。同名即配对成功，
// 目标被标记、源被移除；否则状态不变。错误尝试次数不限。
type Matching struct {
	completion

	required []string
	matched  map[string]bool
	sources  map[string]bool
	selected string
}

// NewMatching 创建配对游戏，keys 为需要配对的键（重复的键只算一次）
func NewMatching(keys []string) *Matching {
	m := &Matching{
		matched: make(map[string]bool, len(keys)),
		sources: make(map[string]bool, len(keys)),
	}
	for _, k := range keys {
		if m.sources[k] {
			continue
		}
		m.sources[k] = true
		m.required = append(m.required, k)
	}
	return m
}

// Start 设置 OnComplete 之后调用；没有需要配对的键时立即完成
func (m *Matching) Start() Outcome {
	return m.start(len(m.required) == 0)
}

// Select 选中一个尚未使用的源；再次选中同一个源会取消选中
func (m *Matching) Select(source string) Outcome {
	if m.done || !m.sources[source] {
		return Ignored
	}
	if m.selected == source {
		m.selected = ""
		return Ignored
	}
	m.selected = source
	return Correct
}

// Selected 当前选中的源，未选中为空
func (m *Matching) Selected() string {
	return m.selected
}

// Connect 把 source 连接到 target；source 为空时使用当前选中的源
func (m *Matching) Connect(source, target string) Outcome {
	if m.done {
		return Ignored
	}
	if source == "" {
		source = m.selected
	}
	if source == "" || !m.sources[source] || m.matched[target] {
		return Ignored
	}
	if source != target {
		m.selected = ""
		return Wrong
	}

	m.matched[target] = true
	delete(m.sources, source)
	m.selected = ""

	if len(m.matched) == len(m.required) {
		m.complete()
		return Completed
	}
	return Correct
}

// Mark 清单式用法：源与目标相同
func (m *Matching) Mark(key string) Outcome {
	return m.Connect(key, key)
}

// IsMatched 目标是否已配对
func (m *Matching) IsMatched(key string) bool {
	return m.matched[key]
}

// Matched 已配对数量
func (m *Matching) Matched() int {
	return len(m.matched)
}

// Remaining 剩余未配对数量
func (m *Matching) Remaining() int {
	return len(m.required) - len(m.matched)
}

// Keys 需要配对的键（按创建顺序）
func (m *Matching) Keys() []string {
	return m.required
}
