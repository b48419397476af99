package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/solarstory/pkg/app"
	"github.com/decker502/solarstory/pkg/embedded"
)

func main() {
	// 环境变量提供默认值，命令行参数覆盖
	defaults, err := app.ConfigFromEnv()
	if err != nil {
		log.Fatalf("环境变量配置错误: %v", err)
	}

	verbose := flag.Bool("verbose", defaults.Verbose, "Enable verbose logging")
	scene := flag.Int("scene", 1, "Scene to start from (1-8)")
	storyPath := flag.String("config", defaults.StoryPath, "Story config file (default: embedded data/story.yaml)")
	terminal := flag.Bool("term", false, "Run in the terminal instead of a window")
	logPath := flag.String("log", defaults.LogPath, "Log file for terminal mode")
	seed := flag.Int64("seed", defaults.Seed, "Random seed (0 = current time)")
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	cfg := app.Config{
		Verbose:    *verbose,
		StartScene: *scene - 1,
		StoryPath:  *storyPath,
		Seed:       *seed,
		LogPath:    *logPath,
	}

	if *terminal {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := app.RunTerminal(ctx, cfg); err != nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("终端运行失败: %v", err)
		}
		return
	}

	storyApp, err := app.NewApp(cfg)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}
	defer storyApp.Shutdown()

	story := storyApp.Story()
	ebiten.SetWindowSize(story.Window.Width, story.Window.Height)
	ebiten.SetWindowTitle(story.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(storyApp); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
