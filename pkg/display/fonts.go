package display

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Faces 界面使用的字体
type Faces struct {
	Title *text.GoTextFace
	Body  *text.GoTextFace
	Small *text.GoTextFace
}

// LoadFaces 从内置的 Go Regular 字体创建字体
func LoadFaces() (*Faces, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}
	face := func(size float64) *text.GoTextFace {
		return &text.GoTextFace{Source: source, Size: size, Direction: text.DirectionLeftToRight}
	}
	return &Faces{Title: face(32), Body: face(20), Small: face(16)}, nil
}
