// Package document reads and writes single entity nodes as XML documents.
// Files are written atomically with the temp-file, fsync, rename pattern.
package document

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/beevik/etree"

	"github.com/mesh-intelligence/packer/pkg/types"
)

// Compact disables indentation when passed as indent.
const Compact = -1

// ErrEmptyDocument is returned when a document has no root element.
var ErrEmptyDocument = errors.New("document has no root element")

// newDocument wraps a copy of node in a document with an XML declaration.
// Tab, newline and carriage return in attribute values are written as
// character references so a reader's whitespace normalization keeps them.
func newDocument(node *etree.Element, indent int) *etree.Document {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalAttrVal = true
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(node.Copy())
	if indent < 0 {
		doc.Indent(etree.NoIndent)
	} else {
		doc.Indent(indent)
	}
	return doc
}

// checkAttrs walks node and its descendants and rejects attribute values that
// XML cannot carry: invalid UTF-8 or characters outside the XML Char range.
func checkAttrs(node *etree.Element) error {
	for _, a := range node.Attr {
		if !validChars(a.Value) {
			return fmt.Errorf("%w: %s=%q", types.ErrInvalidAttribute, a.FullKey(), a.Value)
		}
	}
	for _, child := range node.ChildElements() {
		if err := checkAttrs(child); err != nil {
			return err
		}
	}
	return nil
}

func validChars(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == 0x09, r == 0x0A, r == 0x0D:
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}

// Encode writes node to w as a standalone XML document. The caller's node is
// not modified. An attribute value that XML cannot represent returns an
// error wrapping types.ErrInvalidAttribute and nothing is written.
func Encode(w io.Writer, node *etree.Element, indent int) error {
	if node == nil {
		return ErrEmptyDocument
	}
	if err := checkAttrs(node); err != nil {
		return err
	}
	if _, err := newDocument(node, indent).WriteTo(w); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

// Marshal returns node encoded as a standalone XML document.
func Marshal(node *etree.Element, indent int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, node, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads an XML document from r and returns its root element.
func Decode(r io.Reader) (*etree.Element, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// Unmarshal parses data as an XML document and returns its root element.
func Unmarshal(data []byte) (*etree.Element, error) {
	return Decode(bytes.NewReader(data))
}

// ReadFile reads the document at path and returns its root element.
func ReadFile(path string) (*etree.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	root, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return root, nil
}

// WriteFile atomically writes node to path as a standalone XML document.
func WriteFile(path string, node *etree.Element, indent int) error {
	if node == nil {
		return ErrEmptyDocument
	}
	if err := checkAttrs(node); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".xml-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if err := Encode(w, node, indent); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
