package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <table>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
	KindRaw                   // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node produced by the markdown pipelines.
// Trees are fully materialized: converters and overrides return concrete
// nodes, never deferred computations.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes
	Children []*VNode // Child nodes, in document order
	Text     string   // For KindText and KindRaw
}

// Props holds element attributes. Values are strings for regular
// attributes and bool for boolean attributes such as "checked".
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// TextContent returns the concatenated text of the node and its
// descendants, in document order. Raw nodes contribute their markup
// verbatim; attributes contribute nothing.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	var sb strings.Builder
	v.appendText(&sb)
	return sb.String()
}

func (v *VNode) appendText(sb *strings.Builder) {
	switch v.Kind {
	case KindText, KindRaw:
		sb.WriteString(v.Text)
	default:
		for _, child := range v.Children {
			if child != nil {
				child.appendText(sb)
			}
		}
	}
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}
