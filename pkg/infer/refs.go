package infer

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/usestring/json2types/pkg/document"
)

// resolver dereferences $ref values against the document that declares
// them. References are never followed into other documents.
type resolver struct {
	root     any
	maxDepth int
	anchors  map[string]*document.Object
}

func newResolver(root any, maxDepth int) *resolver {
	return &resolver{root: root, maxDepth: maxDepth}
}

// resolve returns the schema node ref points at.
func (r *resolver) resolve(ref string) (any, error) {
	frag, ok := strings.CutPrefix(ref, "#")
	if !ok {
		return nil, &DanglingReferenceError{Ref: ref}
	}
	if frag == "" {
		return r.root, nil
	}
	if !strings.HasPrefix(frag, "/") {
		return r.anchor(ref, frag)
	}

	tokens, err := pointerTokens(frag)
	if err != nil {
		return nil, &DanglingReferenceError{Ref: ref}
	}
	cur := r.root
	for _, tok := range tokens {
		switch node := cur.(type) {
		case *document.Object:
			next, ok := node.Get(tok)
			if !ok {
				return nil, &DanglingReferenceError{Ref: ref}
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(node) {
				return nil, &DanglingReferenceError{Ref: ref}
			}
			cur = node[i]
		default:
			return nil, &DanglingReferenceError{Ref: ref}
		}
	}
	return cur, nil
}

func (r *resolver) anchor(ref, name string) (any, error) {
	if r.anchors == nil {
		r.anchors = make(map[string]*document.Object)
		r.collectAnchors(r.root, 0)
	}
	if node, ok := r.anchors[name]; ok {
		return node, nil
	}
	return nil, &DanglingReferenceError{Ref: ref}
}

func (r *resolver) collectAnchors(v any, depth int) {
	if depth >= r.maxDepth {
		return
	}
	switch node := v.(type) {
	case *document.Object:
		if a, ok := stringKeyword(node, "$anchor"); ok {
			if _, dup := r.anchors[a]; !dup {
				r.anchors[a] = node
			}
		}
		for p := node.Oldest(); p != nil; p = p.Next() {
			r.collectAnchors(p.Value, depth+1)
		}
	case []any:
		for _, e := range node {
			r.collectAnchors(e, depth+1)
		}
	}
}

// pointerTokens splits a JSON pointer fragment ("/a/b~1c") into unescaped
// reference tokens.
func pointerTokens(frag string) ([]string, error) {
	decoded, err := url.PathUnescape(frag)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(decoded[1:], "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return parts, nil
}

// refName returns the display name a reference suggests: the last pointer
// token or the anchor name.
func refName(ref string) string {
	frag, ok := strings.CutPrefix(ref, "#")
	if !ok || frag == "" {
		return ""
	}
	if !strings.HasPrefix(frag, "/") {
		return frag
	}
	tokens, err := pointerTokens(frag)
	if err != nil || len(tokens) == 0 {
		return ""
	}
	last := tokens[len(tokens)-1]
	if _, err := strconv.Atoi(last); err == nil {
		return ""
	}
	return last
}

func stringKeyword(node *document.Object, key string) (string, bool) {
	v, ok := node.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
