package main

import (
	"bytes"
	"image/color"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Global font source shared by the renderer and error placeholders
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// fadeColor scales a premultiplied color by alpha in [0,1]
func fadeColor(c color.RGBA, alpha float64) color.RGBA {
	alpha = clamp(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawCenteredText draws text centered on (cx, cy)
func DrawCenteredText(screen *ebiten.Image, textString string, font *text.GoTextFace, cx, cy float64, textColor color.RGBA) {
	w, h := text.Measure(textString, font, 0)
	DrawText(screen, textString, font, cx-w/2, cy-h/2, textColor)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

// DrawFrame draws a rectangle outline of the given thickness
func DrawFrame(screen *ebiten.Image, x, y, w, h, thickness float64, c color.RGBA) {
	DrawFilledRect(screen, x, y, w, thickness, c)
	DrawFilledRect(screen, x, y+h-thickness, w, thickness, c)
	DrawFilledRect(screen, x, y, thickness, h, c)
	DrawFilledRect(screen, x+w-thickness, y, thickness, h, c)
}

// DrawChevron draws a "<" (pointLeft) or ">" centered on (cx, cy)
func DrawChevron(screen *ebiten.Image, cx, cy, size float64, pointLeft bool, c color.RGBA) {
	half := size / 2
	tipX, backX := cx+half/2, cx-half/2
	if pointLeft {
		tipX, backX = backX, tipX
	}
	vector.StrokeLine(screen, float32(backX), float32(cy-half), float32(tipX), float32(cy), 4, c, true)
	vector.StrokeLine(screen, float32(tipX), float32(cy), float32(backX), float32(cy+half), 4, c, true)
}

// DrawDisc draws a filled circle
func DrawDisc(screen *ebiten.Image, cx, cy, r float64, c color.RGBA) {
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), c, true)
}

// CreateErrorImage creates a placeholder showing which photo failed and why
func CreateErrorImage(width, height int, url, errorMsg string) *ebiten.Image {
	if width <= 0 || height <= 0 {
		width, height = errorImageWidth, errorImageHeight
	}

	white := color.RGBA{255, 255, 255, 255}
	errorImg := ebiten.NewImage(width, height)
	errorImg.Fill(color.RGBA{120, 30, 30, 255})
	DrawFrame(errorImg, 0, 0, float64(width), float64(height), 3, white)

	if globalFontSource == nil {
		return errorImg
	}

	errorFont := &text.GoTextFace{
		Source: globalFontSource,
		Size:   20.0,
	}

	fileText := "Photo: " + filepath.Base(url)
	reasonText := "Reason: " + errorMsg

	// Roughly 10px per character
	maxChars := (width - 20) / 10
	if len(fileText) > maxChars {
		fileText = fileText[:maxChars-3] + "..."
	}
	if len(reasonText) > maxChars {
		reasonText = reasonText[:maxChars-3] + "..."
	}

	DrawText(errorImg, "ERROR", errorFont, 10, 30, white)
	DrawText(errorImg, fileText, errorFont, 10, 60, white)
	DrawText(errorImg, reasonText, errorFont, 10, 90, white)

	return errorImg
}
