package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
)

// Nine is a nine-patch frame: corners keep their size, edges stretch along
// one axis and the centre along both.
type Nine struct {
	images              *ebiten.Image
	alpha               float64
	R, G, B, Scale      float64
	positions           [4]int
	x, y, width, height float64
	targets             [4][2]float64
}

// frameImage draws a square frame of border pixels into a fresh RGBA image;
// its nine-patch cuts are at border and size-border.
func frameImage(size, border int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x < border || y < border || x >= size-border || y >= size-border {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func NewNine(size, border int) (*Nine, error) {
	img, err := ebiten.NewImageFromImage(frameImage(size, border), ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	return &Nine{
		images: img,
		alpha:  1,
		R:      1, G: 1, B: 1, Scale: 1,
		positions: [4]int{0, border, size - border, size},
	}, nil
}

func (n *Nine) SetPosition(x, y float64) {
	n.x = x
	n.y = y
	n.SetSize(n.width, n.height)
}

func (n *Nine) SetSize(width, height float64) {
	n.width = width
	n.height = height
	p := n.positions
	n.targets[0] = [2]float64{n.x, n.y}
	n.targets[1] = [2]float64{n.x + n.Scale*float64(p[1]), n.y + n.Scale*float64(p[1])}
	n.targets[2] = [2]float64{n.x + width - n.Scale*float64(p[3]-p[2]), n.y + height - n.Scale*float64(p[3]-p[2])}
	n.targets[3] = [2]float64{n.x + width, n.y + height}
}

func (n *Nine) Draw(screen *ebiten.Image) {
	p := n.positions
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			srcW := float64(p[col+1] - p[col])
			srcH := float64(p[row+1] - p[row])
			if srcW <= 0 || srcH <= 0 {
				continue
			}
			dstW := n.targets[col+1][0] - n.targets[col][0]
			dstH := n.targets[row+1][1] - n.targets[row][1]
			if dstW <= 0 || dstH <= 0 {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(dstW/srcW, dstH/srcH)
			op.GeoM.Translate(n.targets[col][0], n.targets[row][1])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			sub := n.images.SubImage(image.Rect(p[col], p[row], p[col+1], p[row+1])).(*ebiten.Image)
			screen.DrawImage(sub, op)
		}
	}
}
