package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/wordchain/pkg/chain"
	"github.com/matzehuels/wordchain/pkg/io"
	"github.com/matzehuels/wordchain/pkg/render/nodelink"
)

// RenderGraph exports g with the chain best highlighted in the given format.
func RenderGraph(ctx context.Context, g *chain.Graph, best chain.Path, format string, opts nodelink.Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	switch format {
	case FormatDOT:
		return []byte(nodelink.ToDOT(g, best, opts)), nil
	case FormatSVG:
		data, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(g, best, opts))
		if err != nil {
			return nil, fmt.Errorf("render svg: %w", err)
		}
		return data, nil
	default:
		var buf bytes.Buffer
		if err := io.WriteJSON(g, best, &buf); err != nil {
			return nil, fmt.Errorf("render json: %w", err)
		}
		return buf.Bytes(), nil
	}
}
