package config

import (
	"fmt"
	"os"

	"github.com/decker502/solarstory/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// SceneCount 故事固定的场景数量
const SceneCount = 8

// itemScenes 依赖条目列表的场景（0 起）：线缆、名词、卡片、无线电按钮、清单
var itemScenes = map[int]bool{2: true, 4: true, 5: true, 6: true, 7: true}

// EmbeddedStoryPath 嵌入文件系统中的故事配置路径
const EmbeddedStoryPath = "data/story.yaml"

// StoryConfig 故事配置数据结构
// 定义了窗口、节拍、相机、时间参数以及八个场景的文本内容
type StoryConfig struct {
	Window    WindowConfig  `yaml:"window"`    // 窗口配置
	TickRate  int           `yaml:"tickRate"`  // 每秒逻辑帧数，默认 60
	Camera    CameraConfig  `yaml:"camera"`    // 相机配置
	Timings   TimingsConfig `yaml:"timings"`   // 时间与玩法参数
	EndNotice string        `yaml:"endNotice"` // 故事结束提示（可选）
	Scenes    []SceneConfig `yaml:"scenes"`    // 场景列表，必须恰好 8 个
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`  // 默认 1280
	Height int    `yaml:"height"` // 默认 720
	Title  string `yaml:"title"`  // 默认 "Solar Story"
}

// CameraConfig 相机配置（相机位于 (0,0,Distance)，朝向 -Z）
type CameraConfig struct {
	FOV      float64 `yaml:"fov"`      // 垂直视场角（度），默认 75
	Distance float64 `yaml:"distance"` // 默认 10
}

// TimingsConfig 时间参数（单位：秒）
type TimingsConfig struct {
	IntroDelay           float64   `yaml:"introDelay"`           // 标题显示后开始旁白的延迟，默认 3
	TitleDuration        float64   `yaml:"titleDuration"`        // 场景标题自动隐藏时间，默认 3
	DialogueDuration     float64   `yaml:"dialogueDuration"`     // 对话气泡自动隐藏时间，默认 3
	DialogueDelays       []float64 `yaml:"dialogueDelays"`       // 场景2行星对话的触发时间，默认 [2, 5]
	ClosingDelay         float64   `yaml:"closingDelay"`         // 场景2结束旁白的触发时间，默认 10
	HintDelay            float64   `yaml:"hintDelay"`            // 场景4极光提示延迟，默认 3
	HintInterval         float64   `yaml:"hintInterval"`         // 提示粒子间隔，默认 0.05
	HintParticles        int       `yaml:"hintParticles"`        // 提示粒子数量，默认 20
	MemoryResolveDelay   float64   `yaml:"memoryResolveDelay"`   // 记忆翻牌判定延迟，默认 0.8
	CompleteDelay        float64   `yaml:"completeDelay"`        // 小游戏完成到结束旁白的延迟，默认 0.5
	BridgeDelay          float64   `yaml:"bridgeDelay"`          // 场景7/8阶段切换延迟，默认 1
	ShieldRadius         float64   `yaml:"shieldRadius"`         // 护盾半径，默认 3
	ShieldCooldown       float64   `yaml:"shieldCooldown"`       // 护盾冷却，默认 2
	SpeechWordsPerSecond float64   `yaml:"speechWordsPerSecond"` // 朗读语速（无 TTS 时估算朗读时长），默认 2.5
}

// BeatConfig 单条旁白
type BeatConfig struct {
	Text string  `yaml:"text"`
	Auto float64 `yaml:"auto"` // 大于 0 时自动推进（秒）
}

// DialogueConfig 角色对话
type DialogueConfig struct {
	Speaker string `yaml:"speaker"`
	Text    string `yaml:"text"`
}

// ItemConfig 游戏界面中的一个条目（线缆 / 名词 / 卡片符号 / 按钮）
type ItemConfig struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Text  string `yaml:"text"` // 可选：释义或附加文本
}

// SceneConfig 单个场景的文本内容
type SceneConfig struct {
	Title     string            `yaml:"title"`
	Intro     []BeatConfig      `yaml:"intro"`
	Outro     []BeatConfig      `yaml:"outro"`
	Dialogues []DialogueConfig  `yaml:"dialogues"`
	Items     []ItemConfig      `yaml:"items"`
	Lines     map[string]string `yaml:"lines"`
}

// Line 返回场景文本，缺失时返回 key 本身
func (s SceneConfig) Line(key string) string {
	if text, ok := s.Lines[key]; ok {
		return text
	}
	return key
}

// LoadStoryConfig 从YAML文件加载故事配置
func LoadStoryConfig(filepath string) (*StoryConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read story config file %s: %w", filepath, err)
	}

	cfg, err := ParseStoryConfig(data)
	if err != nil {
		return nil, fmt.Errorf("story config %s: %w", filepath, err)
	}
	return cfg, nil
}

// LoadEmbeddedStoryConfig 从嵌入文件系统加载故事配置
// embedded 未初始化或文件缺失时回退到磁盘上的同名文件
func LoadEmbeddedStoryConfig() (*StoryConfig, error) {
	data, err := embedded.ReadFileOrDisk(EmbeddedStoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded story config: %w", err)
	}
	return ParseStoryConfig(data)
}

// ParseStoryConfig 解析、补全默认值并验证故事配置
func ParseStoryConfig(data []byte) (*StoryConfig, error) {
	var cfg StoryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse story config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateStoryConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid story config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(cfg *StoryConfig) {
	if cfg.Window.Width == 0 {
		cfg.Window.Width = 1280
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = 720
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = "Solar Story"
	}
	if cfg.TickRate == 0 {
		cfg.TickRate = 60
	}
	if cfg.Camera.FOV == 0 {
		cfg.Camera.FOV = 75
	}
	if cfg.Camera.Distance == 0 {
		cfg.Camera.Distance = 10
	}

	t := &cfg.Timings
	setDefault(&t.IntroDelay, 3)
	setDefault(&t.TitleDuration, 3)
	setDefault(&t.DialogueDuration, 3)
	setDefault(&t.ClosingDelay, 10)
	setDefault(&t.HintDelay, 3)
	setDefault(&t.HintInterval, 0.05)
	setDefault(&t.MemoryResolveDelay, 0.8)
	setDefault(&t.CompleteDelay, 0.5)
	setDefault(&t.BridgeDelay, 1)
	setDefault(&t.ShieldRadius, 3)
	setDefault(&t.ShieldCooldown, 2)
	setDefault(&t.SpeechWordsPerSecond, 2.5)
	if t.HintParticles == 0 {
		t.HintParticles = 20
	}
	if len(t.DialogueDelays) == 0 {
		t.DialogueDelays = []float64{2, 5}
	}

	// EndNotice 为空时由 Orchestrator 使用内置文本
}

func setDefault(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

// validateStoryConfig 验证故事配置的完整性和合法性
func validateStoryConfig(cfg *StoryConfig) error {
	if cfg.TickRate < 0 {
		return fmt.Errorf("tickRate must be positive, got %d", cfg.TickRate)
	}
	if cfg.Window.Width < 0 || cfg.Window.Height < 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Camera.FOV <= 0 || cfg.Camera.FOV >= 180 {
		return fmt.Errorf("camera fov must be in (0, 180), got %v", cfg.Camera.FOV)
	}

	t := cfg.Timings
	for name, v := range map[string]float64{
		"introDelay":         t.IntroDelay,
		"titleDuration":      t.TitleDuration,
		"memoryResolveDelay": t.MemoryResolveDelay,
		"shieldRadius":       t.ShieldRadius,
		"shieldCooldown":     t.ShieldCooldown,
	} {
		if v < 0 {
			return fmt.Errorf("timings.%s cannot be negative, got %v", name, v)
		}
	}

	if len(cfg.Scenes) != SceneCount {
		return fmt.Errorf("exactly %d scenes are required, got %d", SceneCount, len(cfg.Scenes))
	}
	for i, scene := range cfg.Scenes {
		if scene.Title == "" {
			return fmt.Errorf("scene %d: title is required", i+1)
		}
		if len(scene.Intro) == 0 {
			return fmt.Errorf("scene %d: at least one intro beat is required", i+1)
		}
		for j, beat := range append(append([]BeatConfig{}, scene.Intro...), scene.Outro...) {
			if beat.Text == "" {
				return fmt.Errorf("scene %d, beat %d: text is required", i+1, j)
			}
			if beat.Auto < 0 {
				return fmt.Errorf("scene %d, beat %d: auto cannot be negative, got %v", i+1, j, beat.Auto)
			}
		}
		if err := validateItems(scene.Items, itemScenes[i]); err != nil {
			return fmt.Errorf("scene %d: %w", i+1, err)
		}
	}
	return nil
}

// validateItems 条目 ID 必须非空且唯一；required 时至少一个条目
func validateItems(items []ItemConfig, required bool) error {
	if required && len(items) == 0 {
		return fmt.Errorf("at least one item is required")
	}
	seen := make(map[string]bool, len(items))
	for j, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item %d: id is required", j)
		}
		if seen[item.ID] {
			return fmt.Errorf("item %d: duplicate id %q", j, item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}
