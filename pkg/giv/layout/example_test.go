package layout_test

import (
	"fmt"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/layout"
)

type gene struct {
	span   layout.Span
	height float64
	y      float64
}

func (g *gene) Span() layout.Span   { return g.span }
func (g *gene) Height() float64     { return g.height }
func (g *gene) SetOffset(y float64) { g.y = y }

func ExampleTile() {
	genes := []*gene{
		{span: layout.Span{Start: 10, Stop: 30}, height: 12},
		{span: layout.Span{Start: 20, Stop: 40}, height: 12},
		{span: layout.Span{Start: 35, Stop: 50}, height: 12},
	}
	units := make([]layout.Unit, len(genes))
	for i, g := range genes {
		units[i] = g
	}

	res := layout.Tile(units, layout.Config{Extent: 100, Scale: 1, HGap: 2, VGap: 2})

	fmt.Println("rows:", len(res.Rows))
	fmt.Println("height:", res.Height)
	for i, g := range genes {
		fmt.Printf("gene %d at y=%.0f\n", i, g.y)
	}
	// Output:
	// rows: 2
	// height: 26
	// gene 0 at y=0
	// gene 1 at y=14
	// gene 2 at y=0
}
