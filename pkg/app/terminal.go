package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/solarstory/pkg/sound"
	"github.com/decker502/solarstory/pkg/term"
)

// RunTerminal 在终端中运行故事，直到 Esc / Ctrl-C 或 ctx 取消
//
// 标准输出归 tcell 所有，日志只写入 cfg.LogPath（为空时丢弃）。
func RunTerminal(ctx context.Context, cfg Config) error {
	closeLog, err := redirectLog(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	story, err := LoadStory(cfg)
	if err != nil {
		return err
	}

	screen, err := term.Open()
	if err != nil {
		return err
	}
	t := term.New(screen, Camera(story, term.Aspect(screen)))
	defer t.Close()

	// 音频初始化失败不影响运行
	var sink sound.Sink
	speakerSink, err := sound.NewSpeakerSink()
	if err != nil {
		log.Printf("[Term] audio disabled: %v", err)
	} else {
		sink = speakerSink
		defer speakerSink.Close()
	}
	player := sound.NewPlayer(sink, sound.NewVoice(story.Timings.SpeechWordsPerSecond))

	orchestrator := NewOrchestrator(cfg, story, Collaborators{
		Builder: t.Graph,
		Visual:  t.Graph,
		UI:      t.UI,
		Audio:   player,
	}, t.Graph.Camera())
	t.Attach(orchestrator)
	defer orchestrator.Stop()

	orchestrator.LoadScene(startIndex(cfg, orchestrator.Count()))

	return t.Run(ctx, story.TickRate, func(dt float64) {
		player.Update(dt)
		orchestrator.Update(dt)
	})
}

// redirectLog 把日志写到文件；返回的函数关闭文件
func redirectLog(path string) (func(), error) {
	if path == "" {
		// 终端模式下标准错误会破坏画面
		log.SetOutput(io.Discard)
		log.SetFlags(0)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() { f.Close() }, nil
}
