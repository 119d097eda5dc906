// Package tree is the document model every other package works on.
//
// A document is a tree of element, text and comment nodes. Element attributes
// keep their document order and names are unique within one element. The
// model is format agnostic: the document package turns XML, YAML, HCL and TOML into
// trees, and String renders any tree back as XML.
//
//	root := tree.NewElement("configuration", tree.Attr{Name: "name", Value: "Default"})
//	root.AppendChild(tree.NewElement("logger", tree.Attr{Name: "type", Value: "console"}))
//	fmt.Println(root) // <configuration name="Default"><logger type="console"/></configuration>
package tree
