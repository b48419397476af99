package app

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/decker502/solarstory/pkg/config"
	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/input"
	"github.com/decker502/solarstory/pkg/scenes"
	"github.com/decker502/solarstory/pkg/utils"
)

// Config 定义应用启动配置
//
// 带 env 标签的字段可以由环境变量提供默认值，命令行参数优先。
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool `env:"SOLARSTORY_VERBOSE"`
	// StartScene 从第几个场景开始（0 起），越界时从 0 开始
	StartScene int
	// StoryPath 外部故事配置文件，为空则使用嵌入的 data/story.yaml
	StoryPath string `env:"SOLARSTORY_CONFIG"`
	// Seed 随机种子，0 表示使用当前时间
	Seed int64 `env:"SOLARSTORY_SEED"`
	// LogPath 终端模式的日志文件
	LogPath string `env:"SOLARSTORY_LOG"`
}

// ConfigFromEnv 从环境变量读取启动配置
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadStory 按启动配置加载故事
func LoadStory(cfg Config) (*config.StoryConfig, error) {
	if cfg.StoryPath != "" {
		story, err := config.LoadStoryConfig(cfg.StoryPath)
		if err != nil {
			return nil, fmt.Errorf("故事配置加载失败: %w", err)
		}
		log.Printf("[Config] 加载故事配置: %s", cfg.StoryPath)
		return story, nil
	}
	story, err := config.LoadEmbeddedStoryConfig()
	if err != nil {
		return nil, fmt.Errorf("故事配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载嵌入故事配置: %s", config.EmbeddedStoryPath)
	return story, nil
}

// Camera 按故事配置创建相机
func Camera(story *config.StoryConfig, aspect float64) input.Camera {
	return input.Camera{
		Position: utils.V3(0, 0, story.Camera.Distance),
		FOV:      story.Camera.FOV,
		Aspect:   aspect,
	}
}

// Collaborators 场景使用的外部协作者
type Collaborators struct {
	Builder game.Builder
	Visual  game.Visual
	UI      game.UI
	Audio   game.Audio
}

// NewOrchestrator 组装场景工厂与编排器，但不加载场景
func NewOrchestrator(cfg Config, story *config.StoryConfig, c Collaborators, camera input.Camera) *game.Orchestrator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	deps := scenes.Deps{
		Builder: c.Builder,
		Visual:  c.Visual,
		UI:      c.UI,
		Audio:   c.Audio,
		Camera:  camera,
		Story:   story,
		Random:  rand.New(rand.NewSource(seed)),
	}
	orchestrator := game.NewOrchestrator(len(story.Scenes), scenes.NewFactory(deps), c.UI, c.Audio)
	orchestrator.SetEndNotice(story.EndNotice)
	return orchestrator
}

// startIndex 合法化启动场景序号
func startIndex(cfg Config, count int) int {
	if cfg.StartScene < 0 || cfg.StartScene >= count {
		if cfg.StartScene != 0 {
			log.Printf("[App] 场景序号 %d 越界，从第一个场景开始", cfg.StartScene)
		}
		return 0
	}
	return cfg.StartScene
}
