// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"image"
	"image/draw"
	"math"

	"github.com/MaxHalford/halfgone"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Scenes are drawn with white ink on black: white converts to a set pixel,
// which is a dark dot on the glass.

// smallText draws s with the fixed 7x13 face, one line per call, into dst.
func smallText(dst draw.Image, s string) {
	f := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{C: image1bit.On},
		Face: f,
		Dot:  fixed.P(dst.Bounds().Min.X, dst.Bounds().Min.Y+f.Ascent),
	}
	drawer.DrawString(s)
}

// textScene renders s centered with a TrueType face of size points.
func textScene(b image.Rectangle, s string, size float64) (image.Image, error) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{Size: size}))
	dc.DrawStringWrapped(s, float64(b.Dx())/2, float64(b.Dy())/2, 0.5, 0.5, float64(b.Dx()), 1.2, gg.AlignCenter)
	return dc.Image(), nil
}

// demoScene draws a frame, circles and a sine wave sized to b.
func demoScene(b image.Rectangle) image.Image {
	w, h := float64(b.Dx()), float64(b.Dy())
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(0.5, 0.5, w-1, h-1, 4)
	dc.Stroke()
	r := math.Min(w, h) / 6
	for i := 0; i < 3; i++ {
		dc.DrawCircle(w/4*float64(i+1), h/4, r*float64(3-i)/3)
		if i == 1 {
			dc.Fill()
		} else {
			dc.Stroke()
		}
	}
	for x := 2.0; x < w-2; x++ {
		y := h*3/4 + math.Sin(x/w*4*math.Pi)*h/6
		dc.LineTo(x, y)
	}
	dc.Stroke()
	return dc.Image()
}

// photoScene loads the image at path, fits it to b and dithers it to 1 bit.
// Dark areas become set pixels.
func photoScene(b image.Rectangle, path string) (image.Image, error) {
	src, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	return dither(b, src), nil
}

func dither(b image.Rectangle, src image.Image) image.Image {
	if src.Bounds().Size() != b.Size() {
		src = imaging.Fit(src, b.Dx(), b.Dy(), imaging.Lanczos)
	}
	src = imaging.Invert(imaging.Grayscale(src))
	gray := image.NewGray(b)
	// Center what Fit shrank.
	off := image.Pt((b.Dx()-src.Bounds().Dx())/2, (b.Dy()-src.Bounds().Dy())/2)
	draw.Draw(gray, src.Bounds().Sub(src.Bounds().Min).Add(off), src, src.Bounds().Min, draw.Src)
	return halfgone.FloydSteinbergDitherer{}.Apply(gray)
}
