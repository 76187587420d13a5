package vmark

import (
	"reflect"
	"sync"

	"github.com/vango-dev/vmark/pkg/vdom"
)

// Markdown is a markdown component with a memoized render. The tree is
// lazy: it is computed on first read and recomputed only after SetProps
// observes a change. No other state persists across renders.
type Markdown struct {
	mu    sync.Mutex
	props Props
	tree  *vdom.VNode
	err   error
	valid bool
}

// New creates a Markdown component. Nothing is rendered until the first
// Tree or Render call.
func New(props Props) *Markdown {
	return &Markdown{props: props}
}

// Tree returns the rendered tree, recomputing only if the props changed
// since the last call. The error is the pipeline's own, unwrapped.
func (m *Markdown) Tree() (*vdom.VNode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.valid {
		m.tree, m.err = Render(m.props)
		m.valid = true
	}
	return m.tree, m.err
}

// Props returns the component's current props.
func (m *Markdown) Props() Props {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.props
}

// SetProps replaces the component's props. The cached tree survives when
// the new props equal the old ones: value equality for scalars, reference
// equality for slices, maps, and the policy.
func (m *Markdown) SetProps(props Props) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.valid && propsEqual(m.props, props) {
		m.props = props
		return
	}
	m.props = props
	m.valid = false
}

// Render implements vdom.Component. A failed pipeline yields the bare
// wrapper element; callers that need the error use Tree.
func (m *Markdown) Render() *vdom.VNode {
	tree, err := m.Tree()
	if err != nil {
		return wrap(m.Props(), vdom.Fragment())
	}
	return tree
}

func propsEqual(a, b Props) bool {
	return a.Content == b.Content &&
		a.Wrapper == b.Wrapper &&
		a.Class == b.Class &&
		a.Unsafe == b.Unsafe &&
		a.Policy == b.Policy &&
		sameSlice(a.Extensions, b.Extensions) &&
		sameSlice(a.ParserOptions, b.ParserOptions) &&
		sameSlice(a.Transforms, b.Transforms) &&
		sameMap(a.Components, b.Components)
}

// sameSlice reports whether two slices are the same slice, not whether
// they hold equal values. Plugin lists carry functions, which have no
// useful value equality.
func sameSlice[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

func sameMap(a, b Components) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

var _ vdom.Component = (*Markdown)(nil)
