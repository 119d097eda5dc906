package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/km-arc/configy/framework/tree"
)

// ParseXML parses an XML document into a tree rooted at its document element.
//
// Whitespace-only text between elements is dropped, comments are kept, and
// elements written as <a/> keep rendering that way. Namespace prefixes are
// not preserved: names are reduced to their local part.
func ParseXML(data []byte) (*tree.Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		root  *tree.Node
		stack []*tree.Node
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &SyntaxError{Format: FormatXML, Cause: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &tree.Node{Kind: tree.ElementNode, Name: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}
				n.SetAttr(a.Name.Local, a.Value)
			}
			n.ExplicitEnd = !selfClosed(data, dec.InputOffset())

			if len(stack) == 0 {
				if root != nil {
					return nil, &SyntaxError{Format: FormatXML, Cause: fmt.Errorf("multiple root elements (%s after %s)", n.Name, root.Name)}
				}
				root = n
			} else {
				stack[len(stack)-1].AppendChild(n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 || strings.TrimSpace(string(t)) == "" {
				continue
			}
			stack[len(stack)-1].AppendChild(tree.NewText(string(t)))

		case xml.Comment:
			if len(stack) == 0 {
				continue
			}
			stack[len(stack)-1].AppendChild(tree.NewComment(string(t)))
		}
	}

	if root == nil {
		return nil, &SyntaxError{Format: FormatXML, Cause: errors.New("no root element")}
	}
	return root, nil
}

// selfClosed reports whether the start tag ending at offset was written <a/>.
func selfClosed(data []byte, offset int64) bool {
	if offset < 2 || offset > int64(len(data)) {
		return false
	}
	return data[offset-2] == '/' && data[offset-1] == '>'
}
