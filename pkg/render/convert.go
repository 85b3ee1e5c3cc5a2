package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/matzehuels/bluefish/pkg/errors"
)

// Format is an output format produced by the render pipeline.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
)

// Formats lists every supported format in a stable order.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want svg, png, pdf, json or dot)", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return rsvgConvert(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, "rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
