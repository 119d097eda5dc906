// Package definition discovers container definitions in a configuration
// document and resolves their inheritance.
//
// Each <configuration> element under the root is one definition. A definition
// either extends another by name or, without extends, inherits from the base
// defaults tree. Parents are always merged before their children, so every
// definition returned by Parser.Parse holds its fully inherited tree.
package definition
