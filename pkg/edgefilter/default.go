package edgefilter

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
)

// DefaultEdgeFilter cuma cek arah akses edge buat flag encoder nya
type DefaultEdgeFilter struct {
	encoder datastructure.FlagEncoder
	in      bool
	out     bool
}

func NewDefaultEdgeFilter(encoder datastructure.FlagEncoder, in, out bool) *DefaultEdgeFilter {
	return &DefaultEdgeFilter{encoder: encoder, in: in, out: out}
}

func (f *DefaultEdgeFilter) Accept(edge datastructure.EdgeCH, forward bool) bool {
	return directionAllowed(edge, forward, f.encoder, f.in, f.out)
}

func (f *DefaultEdgeFilter) String() string {
	return fmt.Sprintf("%s, in:%t, out:%t", f.encoder, f.in, f.out)
}

func directionAllowed(edge datastructure.EdgeCH, forward bool, enc datastructure.FlagEncoder, in, out bool) bool {
	isForward, isBackward := edge.IsForward(enc), edge.IsBackward(enc)
	if !forward {
		isForward, isBackward = isBackward, isForward
	}
	return out && isForward || in && isBackward
}
