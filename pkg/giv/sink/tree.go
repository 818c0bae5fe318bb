package sink

import (
	"context"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/frame"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/render/nodelink"
)

// RenderTreeSVG draws the frame hierarchy with Graphviz. Detailed adds
// spans, heights and row counts to each box.
func RenderTreeSVG(ctx context.Context, f *frame.Frame, detailed bool) ([]byte, error) {
	return nodelink.RenderSVG(ctx, nodelink.ToDOT(f, nodelink.Options{Detailed: detailed}))
}
