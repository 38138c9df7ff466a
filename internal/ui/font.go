package ui

import (
	"bytes"
	"log"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	regularSource *text.GoTextFaceSource
	boldSource    *text.GoTextFaceSource
)

const (
	statusFontSize = 14.0
	coordFontSize  = 11.0
)

func init() {
	var err error
	regularSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("Failed to load regular font: %v", err)
	}
	boldSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		log.Printf("Failed to load bold font: %v", err)
	}
}

// regularFace returns the regular font at size, or nil if it failed to load.
func regularFace(size float64) *text.GoTextFace {
	if regularSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: regularSource, Size: size}
}

// boldFace returns the bold font at size, or nil if it failed to load.
func boldFace(size float64) *text.GoTextFace {
	if boldSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: boldSource, Size: size}
}
