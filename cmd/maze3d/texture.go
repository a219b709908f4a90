package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

const fallbackSize = 64

// loadTexture decodes a PNG from path, falling back to a generated
// pattern when the file is missing or unreadable
func loadTexture(path string, fallback func() image.Image) *ebiten.Image {
	img, err := decodeImage(path)
	if err != nil {
		log.Printf("texture %s: %v (using generated fallback)", path, err)
		img = fallback()
	}
	return ebiten.NewImageFromImage(img)
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// brickPattern draws staggered bricks with mortar lines
func brickPattern(size int, brick, mortar color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	rowH := size / 4
	brickW := size / 2
	for y := 0; y < size; y++ {
		row := y / rowH
		offset := 0
		if row%2 == 1 {
			offset = brickW / 2
		}
		for x := 0; x < size; x++ {
			c := brick
			if y%rowH == 0 || (x+offset)%brickW == 0 {
				c = mortar
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// checkerPattern draws an n×n checkerboard
func checkerPattern(size, n int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := size / n
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func wallFallback() image.Image {
	return brickPattern(fallbackSize,
		color.RGBA{R: 0x9a, G: 0x4a, B: 0x32, A: 0xff},
		color.RGBA{R: 0xc8, G: 0xc0, B: 0xb0, A: 0xff})
}

func floorFallback() image.Image {
	return checkerPattern(fallbackSize, 4,
		color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff},
		color.RGBA{R: 0x77, G: 0x77, B: 0x77, A: 0xff})
}
