package convert

import "github.com/vango-dev/vmark/pkg/vdom"

// Components maps HTML tag names to overrides applied during conversion.
//
// Supported value types:
//
//   - string: substitute the tag name, keeping the translated props and
//     converted children. Components{"h1": "h2"} demotes headings.
//   - Renderer: called with the translated props and the converted
//     children; its return value replaces the element entirely. Returning
//     nil drops the element.
//
// Any other value type is ignored and the original tag is kept. The map is
// consulted once per element, so substituted tags are not re-resolved.
type Components map[string]any

// Renderer builds a replacement node for an overridden tag. Children are
// already converted, in document order, with any nested overrides applied.
type Renderer func(props vdom.Props, children []*vdom.VNode) *vdom.VNode

// applyOverride resolves a single override value for tag.
func applyOverride(override any, tag string, props vdom.Props, children []*vdom.VNode) *vdom.VNode {
	switch o := override.(type) {
	case string:
		return &vdom.VNode{
			Kind:     vdom.KindElement,
			Tag:      o,
			Props:    props,
			Children: children,
		}
	case Renderer:
		return o(props, children)
	case func(vdom.Props, []*vdom.VNode) *vdom.VNode:
		// Bare function literals stored in the map carry the func type
		// rather than Renderer.
		return o(props, children)
	default:
		return &vdom.VNode{
			Kind:     vdom.KindElement,
			Tag:      tag,
			Props:    props,
			Children: children,
		}
	}
}
