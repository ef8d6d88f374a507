package types

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"github.com/spf13/cast"
)

// TypeAttr is the attribute that carries an entity's kind discriminator.
const TypeAttr = "type"

// Entity is a keyed object that exports itself as a document node.
type Entity interface {
	// Key returns the identity of the entity. Two entities with the same
	// key are the same entity for indexing purposes.
	Key() string

	// Tag returns the name of the node the entity serializes under.
	Tag() string

	// ToNode exports the entity as a new document node.
	ToNode() *etree.Element
}

// Kinded is an Entity that stamps a kind discriminator on its exported node
// so a reader can pick the matching reconstructor.
type Kinded interface {
	Entity

	// Type returns the kind discriminator written to the type attribute.
	Type() string
}

// Document import errors.
var (
	ErrInvalidNode      = errors.New("invalid document node")
	ErrTagMismatch      = errors.New("node tag mismatch")
	ErrTypeMismatch     = errors.New("node type mismatch")
	ErrInvalidAttribute = errors.New("invalid attribute value")
)

// Attr is one named field of an entity's exported field set.
type Attr struct {
	Name  string
	Value string
}

// BaseNode builds a node named tag carrying attrs in order.
func BaseNode(tag string, attrs ...Attr) *etree.Element {
	node := etree.NewElement(tag)
	for _, a := range attrs {
		node.CreateAttr(a.Name, a.Value)
	}
	return node
}

// StampType sets the type attribute of node to kind and returns node.
// An existing type attribute is overwritten; other attributes are untouched.
func StampType(node *etree.Element, kind string) *etree.Element {
	node.CreateAttr(TypeAttr, kind)
	return node
}

// CheckTag returns ErrInvalidNode for a nil node and ErrTagMismatch when the
// node is not named tag.
func CheckTag(node *etree.Element, tag string) error {
	if node == nil {
		return ErrInvalidNode
	}
	if node.Tag != tag {
		return fmt.Errorf("%w: want %q, got %q", ErrTagMismatch, tag, node.Tag)
	}
	return nil
}

// NodeType returns the kind discriminator of node and whether it is present.
func NodeType(node *etree.Element) (string, bool) {
	if node == nil {
		return "", false
	}
	a := node.SelectAttr(TypeAttr)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// StringAttr returns the value of the named attribute, or "" when absent.
func StringAttr(node *etree.Element, name string) string {
	return node.SelectAttrValue(name, "")
}

// FloatAttr parses the named attribute as a float. A missing attribute reads
// as zero.
func FloatAttr(node *etree.Element, name string) (float64, error) {
	a := node.SelectAttr(name)
	if a == nil {
		return 0, nil
	}
	f, err := ParseFloat(a.Value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidAttribute, name, a.Value)
	}
	return f, nil
}

// FormatFloat renders f in the shortest decimal form that parses back to f.
func FormatFloat(f float64) string {
	return cast.ToString(f)
}

// ParseFloat parses a decimal attribute value written by FormatFloat.
func ParseFloat(s string) (float64, error) {
	if s == "" {
		return 0, ErrInvalidAttribute
	}
	return cast.ToFloat64E(s)
}
