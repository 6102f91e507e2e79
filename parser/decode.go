package parser

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/risor-io/evmasm/errors"
	"github.com/risor-io/evmasm/internal/token"
)

type elementKind int

const (
	kindScalar      elementKind = iota // text to be classified
	kindNumber                         // known to be numeric, never a label
	kindSequence                       // nested block
	kindUnsupported                    // mapping, boolean, null...
)

// element is the decoder-neutral form of a document node. YAML nodes and
// native Go values are both converted to elements before classification.
type element struct {
	kind  elementKind
	pos   token.Position
	text  string
	items []element
	what  string // description of an unsupported value
}

func (e element) describe() string {
	switch e.kind {
	case kindSequence:
		return "sequence"
	case kindUnsupported:
		return e.what
	default:
		return fmt.Sprintf("scalar %q", e.text)
	}
}

func (p *Parser) enter(pos token.Position) error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return errors.New(errors.E1005, pos.Location(),
			"invalid document: exceeded maximum nesting depth of %d", p.maxDepth)
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

func (p *Parser) fromNode(n *yaml.Node) (element, error) {
	pos := p.pos(n.Line, n.Column)
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return element{}, errors.New(errors.E1001, pos.Location(), "unsupported node: dangling alias")
		}
		if err := p.enter(pos); err != nil {
			return element{}, err
		}
		defer p.leave()
		return p.fromNode(n.Alias)
	case yaml.SequenceNode:
		if err := p.enter(pos); err != nil {
			return element{}, err
		}
		defer p.leave()
		items := make([]element, 0, len(n.Content))
		for _, child := range n.Content {
			item, err := p.fromNode(child)
			if err != nil {
				return element{}, err
			}
			items = append(items, item)
		}
		return element{kind: kindSequence, pos: pos, items: items}, nil
	case yaml.MappingNode:
		return element{kind: kindUnsupported, pos: pos, what: "mapping"}, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!bool":
			return element{kind: kindUnsupported, pos: pos, what: "boolean " + n.Value}, nil
		case "!!null":
			return element{kind: kindUnsupported, pos: pos, what: "null"}, nil
		case "!!float":
			return element{kind: kindNumber, pos: pos, text: n.Value}, nil
		case "!!binary":
			return element{kind: kindUnsupported, pos: pos, what: "binary"}, nil
		}
		return element{kind: kindScalar, pos: pos, text: n.Value}, nil
	}
	return element{kind: kindUnsupported, pos: pos, what: "document"}, nil
}

func (p *Parser) fromValue(v any) (element, error) {
	pos := p.pos(0, 0)
	number := func(text string) (element, error) {
		return element{kind: kindNumber, pos: pos, text: text}, nil
	}
	switch v := v.(type) {
	case []any:
		if err := p.enter(pos); err != nil {
			return element{}, err
		}
		defer p.leave()
		items := make([]element, 0, len(v))
		for _, child := range v {
			item, err := p.fromValue(child)
			if err != nil {
				return element{}, err
			}
			items = append(items, item)
		}
		return element{kind: kindSequence, pos: pos, items: items}, nil
	case []string:
		items := make([]element, 0, len(v))
		for _, s := range v {
			items = append(items, element{kind: kindScalar, pos: pos, text: s})
		}
		return element{kind: kindSequence, pos: pos, items: items}, nil
	case string:
		return element{kind: kindScalar, pos: pos, text: v}, nil
	case int:
		return number(strconv.FormatInt(int64(v), 10))
	case int8:
		return number(strconv.FormatInt(int64(v), 10))
	case int16:
		return number(strconv.FormatInt(int64(v), 10))
	case int32:
		return number(strconv.FormatInt(int64(v), 10))
	case int64:
		return number(strconv.FormatInt(v, 10))
	case uint:
		return number(strconv.FormatUint(uint64(v), 10))
	case uint8:
		return number(strconv.FormatUint(uint64(v), 10))
	case uint16:
		return number(strconv.FormatUint(uint64(v), 10))
	case uint32:
		return number(strconv.FormatUint(uint64(v), 10))
	case uint64:
		return number(strconv.FormatUint(v, 10))
	case *big.Int:
		if v == nil {
			return element{kind: kindUnsupported, pos: pos, what: "nil *big.Int"}, nil
		}
		return number(v.String())
	case json.Number:
		return number(string(v))
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) || v != math.Trunc(v) {
			return number(strconv.FormatFloat(v, 'g', -1, 64))
		}
		i, _ := big.NewFloat(v).Int(nil)
		return number(i.String())
	case bool:
		return element{kind: kindUnsupported, pos: pos, what: fmt.Sprintf("boolean %t", v)}, nil
	case nil:
		return element{kind: kindUnsupported, pos: pos, what: "null"}, nil
	}
	return element{kind: kindUnsupported, pos: pos, what: fmt.Sprintf("%T", v)}, nil
}
