package types

import (
	"fmt"

	"github.com/beevik/etree"
)

// Product kind and node naming.
const (
	ProductType = "product"
	InstanceTag = "instance"
)

// Product attribute names in the exported node.
const (
	AttrName   = "name"
	AttrWidth  = "width"
	AttrHeight = "height"
	AttrLength = "length"
)

// Product is a rectangular item to be packed. The zero value is a product
// with an empty name and no extent.
//
// A Product is immutable once constructed and safe for concurrent reads.
// Dimensions are not validated; zero or negative values yield a degenerate
// volume and are the caller's concern.
type Product struct {
	name   string
	width  float64
	height float64
	length float64
}

var (
	_ Instance = Product{}
	_ Kinded   = Product{}
)

// NewProduct returns a Product with the given name and dimensions.
func NewProduct(name string, width, height, length float64) Product {
	return Product{
		name:   name,
		width:  width,
		height: height,
		length: length,
	}
}

// Key returns the product name, which identifies the product.
func (p Product) Key() string { return p.name }

// Name returns the product name.
func (p Product) Name() string { return p.name }

// Width returns the extent along the X axis.
func (p Product) Width() float64 { return p.width }

// Height returns the extent along the Y axis.
func (p Product) Height() float64 { return p.height }

// Length returns the extent along the Z axis.
func (p Product) Length() float64 { return p.length }

// Volume returns width * height * length.
func (p Product) Volume() float64 {
	return p.width * p.height * p.length
}

// Type returns ProductType.
func (p Product) Type() string { return ProductType }

// Tag returns InstanceTag.
func (p Product) Tag() string { return InstanceTag }

// attrs returns the product's field set in export order.
func (p Product) attrs() []Attr {
	return []Attr{
		{Name: AttrName, Value: p.name},
		{Name: AttrWidth, Value: FormatFloat(p.width)},
		{Name: AttrHeight, Value: FormatFloat(p.height)},
		{Name: AttrLength, Value: FormatFloat(p.length)},
	}
}

// ToNode exports the product as an instance node stamped with type="product".
func (p Product) ToNode() *etree.Element {
	return StampType(BaseNode(p.Tag(), p.attrs()...), p.Type())
}

// String implements fmt.Stringer.
func (p Product) String() string {
	return fmt.Sprintf("%s (%sx%sx%s)", p.name,
		FormatFloat(p.width), FormatFloat(p.height), FormatFloat(p.length))
}

// ProductFromNode reads a Product back from a node written by ToNode.
// Missing attributes read as their zero values. A type attribute other than
// ProductType is rejected with ErrTypeMismatch.
func ProductFromNode(node *etree.Element) (Product, error) {
	if err := CheckTag(node, InstanceTag); err != nil {
		return Product{}, err
	}
	if kind, ok := NodeType(node); ok && kind != ProductType {
		return Product{}, fmt.Errorf("%w: want %q, got %q", ErrTypeMismatch, ProductType, kind)
	}

	var (
		p   = Product{name: StringAttr(node, AttrName)}
		err error
	)
	if p.width, err = FloatAttr(node, AttrWidth); err != nil {
		return Product{}, err
	}
	if p.height, err = FloatAttr(node, AttrHeight); err != nil {
		return Product{}, err
	}
	if p.length, err = FloatAttr(node, AttrLength); err != nil {
		return Product{}, err
	}
	return p, nil
}

// decodeProduct adapts ProductFromNode to a Reconstructor.
func decodeProduct(node *etree.Element) (Kinded, error) {
	p, err := ProductFromNode(node)
	if err != nil {
		return nil, err
	}
	return p, nil
}
