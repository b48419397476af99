package scenes

import (
	"log"

	"github.com/decker502/solarstory/pkg/game"
)

// NewFactory 返回按序号创建场景的工厂（供 game.Orchestrator 使用）
func NewFactory(deps Deps) game.SceneFactory {
	return func(index int, director game.Director) game.Scene {
		switch index {
		case 0:
			return NewSunScene(deps, director)
		case 1:
			return NewJourneyScene(deps, director)
		case 2:
			return NewCableScene(deps, director)
		case 3:
			return NewAuroraScene(deps, director)
		case 4:
			return NewDictionaryScene(deps, director)
		case 5:
			return NewMemoryScene(deps, director)
		case 6:
			return NewChallengeScene(deps, director)
		case 7:
			return NewFinaleScene(deps, director)
		default:
			log.Printf("[Scenes] 未知场景序号 %d", index)
			return nil
		}
	}
}
