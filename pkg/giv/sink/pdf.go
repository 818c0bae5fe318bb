package sink

import (
	"context"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/scene"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/render"
)

// RenderPDF renders the scene as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, s *scene.Scene, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(s, opts...))
}
