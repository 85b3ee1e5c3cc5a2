package io

// Document is a declarative diagram: a fixed-size canvas and a tree of
// elements. The same structure is read from JSON, YAML and TOML.
type Document struct {
	ID         string        `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Width      float64       `json:"width" yaml:"width" toml:"width"`
	Height     float64       `json:"height" yaml:"height" toml:"height"`
	Background string        `json:"background,omitempty" yaml:"background,omitempty" toml:"background,omitempty"`
	Elements   []ElementSpec `json:"elements" yaml:"elements" toml:"elements"`
}

// ElementSpec describes one element. Type selects the operator; which of the
// remaining fields apply depends on it.
type ElementSpec struct {
	Type string `json:"type" yaml:"type" toml:"type"`
	ID   string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`

	// Position (any type) and size (rect).
	X      *float64 `json:"x,omitempty" yaml:"x,omitempty" toml:"x,omitempty"`
	Y      *float64 `json:"y,omitempty" yaml:"y,omitempty" toml:"y,omitempty"`
	Width  *float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height *float64 `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`

	// Containers.
	Spacing   *float64 `json:"spacing,omitempty" yaml:"spacing,omitempty" toml:"spacing,omitempty"`
	Total     *float64 `json:"total,omitempty" yaml:"total,omitempty" toml:"total,omitempty"`
	Alignment string   `json:"alignment,omitempty" yaml:"alignment,omitempty" toml:"alignment,omitempty"`
	Direction string   `json:"direction,omitempty" yaml:"direction,omitempty" toml:"direction,omitempty"`

	// Paint.
	Fill        string  `json:"fill,omitempty" yaml:"fill,omitempty" toml:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty" yaml:"stroke,omitempty" toml:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty" yaml:"stroke_width,omitempty" toml:"stroke_width,omitempty"`
	Rx          float64 `json:"rx,omitempty" yaml:"rx,omitempty" toml:"rx,omitempty"`

	// Text.
	Text       string  `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
	FontSize   float64 `json:"font_size,omitempty" yaml:"font_size,omitempty" toml:"font_size,omitempty"`
	FontFamily string  `json:"font_family,omitempty" yaml:"font_family,omitempty" toml:"font_family,omitempty"`

	// References.
	Ref string   `json:"ref,omitempty" yaml:"ref,omitempty" toml:"ref,omitempty"`
	DX  *float64 `json:"dx,omitempty" yaml:"dx,omitempty" toml:"dx,omitempty"`
	DY  *float64 `json:"dy,omitempty" yaml:"dy,omitempty" toml:"dy,omitempty"`

	Children []ElementSpec `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// Element types.
const (
	TypeRect       = "rect"
	TypeText       = "text"
	TypeGroup      = "group"
	TypeRow        = "row"
	TypeCol        = "col"
	TypeAlign      = "align"
	TypeDistribute = "distribute"
	TypeRef        = "ref"
)
