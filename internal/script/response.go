package script

import (
	"encoding/json"

	"github.com/badred/badred/internal/buffer"
	"github.com/badred/badred/internal/editor"
	"github.com/badred/badred/internal/pane"
)

// Response is the value a suspended task resumes with. Variants mirror the
// Call set; calls without a meaningful result resume with Ack.
type Response interface {
	response()
}

type Ack struct{}

type BufferRef struct{ ID int }
type PaneRef struct{ ID int }
type FileRef struct{ ID int }

// PaneMaybe carries an optional pane id, for navigation off the edge of the
// tree (parent of root, child of leaf).
type PaneMaybe struct {
	ID int
	OK bool
}

// BoolMaybe carries an optional boolean, e.g. child parity at the root.
type BoolMaybe struct {
	Value bool
	OK    bool
}

// TopLineMaybe carries a leaf scroll position; OK is false for splits.
type TopLineMaybe struct {
	Value uint16
	OK    bool
}

type ByteIndex struct{ Value int }
type LineIndex struct{ Value int }
type IntValue struct{ Value int }
type Str struct{ Value string }
type Flag struct{ Value bool }

type FrameValue struct{ Frame pane.Frame }

// PaneNodeType is the tagged pane shape crossing the bridge.
type PaneNodeType struct {
	Leaf        *pane.Leaf
	Split       *pane.Split
	Orientation pane.Orientation
}

// BufferTypeValue is the tagged storage variant crossing the bridge.
type BufferTypeValue struct{ Type buffer.Type }

type OptionsValue struct{ Options editor.Options }

func (Ack) response()             {}
func (BufferRef) response()       {}
func (PaneRef) response()         {}
func (FileRef) response()         {}
func (PaneMaybe) response()       {}
func (BoolMaybe) response()       {}
func (TopLineMaybe) response()    {}
func (ByteIndex) response()       {}
func (LineIndex) response()       {}
func (IntValue) response()        {}
func (Str) response()             {}
func (Flag) response()            {}
func (FrameValue) response()      {}
func (PaneNodeType) response()    {}
func (BufferTypeValue) response() {}
func (OptionsValue) response()    {}

// Wire encodings. In-process the bridge is plain enum dispatch; the JSON
// forms below are the language-independent tagged encodings scripts
// pattern-match on.

func (b BufferTypeValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Variant string `json:"variant"`
	}{Type: "EditorBufferType", Variant: b.Type.String()})
}

type splitTypeWire struct {
	Variant string         `json:"variant"`
	Values  map[string]any `json:"values"`
}

func (p PaneNodeType) MarshalJSON() ([]byte, error) {
	wire := struct {
		Type    string `json:"type"`
		Variant string `json:"variant"`
		Values  []any  `json:"values,omitempty"`
	}{Type: "pane_node_type"}

	if p.Leaf != nil {
		wire.Variant = "leaf"
		return json.Marshal(wire)
	}

	if p.Orientation == pane.Vertical {
		wire.Variant = "vsplit"
	} else {
		wire.Variant = "hsplit"
	}
	var split splitTypeWire
	switch p.Split.Kind {
	case pane.Percent:
		split = splitTypeWire{
			Variant: "percent",
			Values:  map[string]any{"first_percent": p.Split.FirstPercent},
		}
	case pane.FirstFixed:
		split = splitTypeWire{
			Variant: "first_fixed",
			Values:  map[string]any{"size": p.Split.FixedSize},
		}
	case pane.SecondFixed:
		split = splitTypeWire{
			Variant: "second_fixed",
			Values:  map[string]any{"size": p.Split.FixedSize},
		}
	}
	wire.Values = []any{
		map[string]any{"values": map[string]any{"split_type": split}},
	}
	return json.Marshal(wire)
}

func (o OptionsValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Values editor.Options `json:"values"`
	}{Values: o.Options})
}
