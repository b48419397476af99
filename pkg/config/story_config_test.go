package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/solarstory/pkg/embedded"
)

// minimalStory 生成只含必填字段的故事配置
func minimalStory(scenes int) string {
	return storyWithItems(scenes, nil)
}

// storyWithItems 与 minimalStory 相同，但 items 中的场景（1 起）使用给定的条目 ID
// 未指定的需要条目的场景使用 [a, b]
func storyWithItems(scenes int, items map[int][]string) string {
	var b strings.Builder
	b.WriteString("scenes:\n")
	for i := 1; i <= scenes; i++ {
		fmt.Fprintf(&b, "  - title: \"Scene %d\"\n    intro:\n      - text: \"beat %d\"\n", i, i)
		ids, ok := items[i]
		if !ok && itemScenes[i-1] {
			ids = []string{"a", "b"}
		}
		if len(ids) > 0 {
			b.WriteString("    items:\n")
			for _, id := range ids {
				fmt.Fprintf(&b, "      - id: \"%s\"\n", id)
			}
		}
	}
	return b.String()
}

// TestLoadStoryConfigShipped 验证随程序发布的故事配置可以加载
func TestLoadStoryConfigShipped(t *testing.T) {
	cfg, err := LoadStoryConfig(filepath.Join("..", "..", "data", "story.yaml"))
	if err != nil {
		t.Fatalf("LoadStoryConfig() failed: %v", err)
	}

	if len(cfg.Scenes) != SceneCount {
		t.Fatalf("Expected %d scenes, got %d", SceneCount, len(cfg.Scenes))
	}
	if cfg.Scenes[0].Title != "Scene 1: Meet Sunny the Sun" {
		t.Errorf("Unexpected first title: %q", cfg.Scenes[0].Title)
	}
	if got := cfg.Scenes[0].Intro[0].Auto; got != 4.5 {
		t.Errorf("Greeting should auto-advance after 4.5s, got %v", got)
	}
	if len(cfg.Scenes[5].Items) != 6 {
		t.Errorf("Memory scene needs 6 symbols, got %d", len(cfg.Scenes[5].Items))
	}
	if len(cfg.Scenes[7].Outro) != 2 {
		t.Errorf("Finale should close with 2 beats, got %d", len(cfg.Scenes[7].Outro))
	}
	if cfg.Timings.MemoryResolveDelay != 0.8 {
		t.Errorf("Expected memoryResolveDelay 0.8, got %v", cfg.Timings.MemoryResolveDelay)
	}
}

// TestParseStoryConfigDefaults 测试缺省字段的默认值
func TestParseStoryConfigDefaults(t *testing.T) {
	cfg, err := ParseStoryConfig([]byte(minimalStory(SceneCount)))
	if err != nil {
		t.Fatalf("ParseStoryConfig() failed: %v", err)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"tickRate", float64(cfg.TickRate), 60},
		{"window.width", float64(cfg.Window.Width), 1280},
		{"camera.fov", cfg.Camera.FOV, 75},
		{"camera.distance", cfg.Camera.Distance, 10},
		{"introDelay", cfg.Timings.IntroDelay, 3},
		{"titleDuration", cfg.Timings.TitleDuration, 3},
		{"closingDelay", cfg.Timings.ClosingDelay, 10},
		{"hintParticles", float64(cfg.Timings.HintParticles), 20},
		{"shieldRadius", cfg.Timings.ShieldRadius, 3},
		{"shieldCooldown", cfg.Timings.ShieldCooldown, 2},
		{"completeDelay", cfg.Timings.CompleteDelay, 0.5},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if len(cfg.Timings.DialogueDelays) != 2 {
		t.Errorf("Expected default dialogue delays [2 5], got %v", cfg.Timings.DialogueDelays)
	}
	if cfg.Window.Title != "Solar Story" {
		t.Errorf("Expected default title, got %q", cfg.Window.Title)
	}
}

// TestParseStoryConfigValidation 测试非法配置被拒绝
func TestParseStoryConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"场景数量不足", minimalStory(7), "exactly 8 scenes"},
		{"场景数量过多", minimalStory(9), "exactly 8 scenes"},
		{"负的逻辑帧率", "tickRate: -1\n" + minimalStory(8), "tickRate"},
		{"非法视场角", "camera:\n  fov: 200\n" + minimalStory(8), "fov"},
		{"负的延迟", "timings:\n  introDelay: -1\n" + minimalStory(8), "introDelay"},
		{"缺少标题", strings.Replace(minimalStory(8), "title: \"Scene 3\"", "title: \"\"", 1), "scene 3: title"},
		{"配对场景没有条目", storyWithItems(8, map[int][]string{3: nil}), "scene 3: at least one item"},
		{"清单场景没有条目", storyWithItems(8, map[int][]string{8: {}}), "scene 8: at least one item"},
		{"重复的条目", storyWithItems(8, map[int][]string{6: {"sun", "moon", "sun"}}), "scene 6: item 2: duplicate id"},
		{"空的条目ID", storyWithItems(8, map[int][]string{5: {""}}), "scene 5: item 0: id is required"},
		{"YAML语法错误", "scenes: [", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStoryConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error %q should mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestLoadStoryConfigMissingFile 测试文件不存在时返回包装后的错误
func TestLoadStoryConfigMissingFile(t *testing.T) {
	_, err := LoadStoryConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error in chain, got %v", err)
	}
}

// TestLoadEmbeddedStoryConfigFallsBackToDisk 未初始化嵌入数据时从磁盘读取
func TestLoadEmbeddedStoryConfigFallsBackToDisk(t *testing.T) {
	embedded.Init(nil)

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "data", "story.yaml"), []byte(minimalStory(8)), 0o644); err != nil {
		t.Fatal(err)
	}
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := LoadEmbeddedStoryConfig()
	if err != nil {
		t.Fatalf("LoadEmbeddedStoryConfig() failed: %v", err)
	}
	if cfg.Scenes[7].Title != "Scene 8" {
		t.Errorf("Unexpected scene title %q", cfg.Scenes[7].Title)
	}
}

func TestSceneLineFallsBackToKey(t *testing.T) {
	scene := SceneConfig{Lines: map[string]string{"title": "Match the Cables!"}}
	if scene.Line("title") != "Match the Cables!" {
		t.Errorf("Line(title) = %q", scene.Line("title"))
	}
	if scene.Line("missing") != "missing" {
		t.Errorf("Line(missing) = %q", scene.Line("missing"))
	}
}
