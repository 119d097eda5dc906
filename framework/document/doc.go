// Package document turns configuration files into trees.
//
// XML is the reference syntax; YAML, HCL and TOML are accepted with the
// mappings described on ParseYAML, ParseHCL and ParseTOML so that one set of
// definitions can be written in whichever syntax the host prefers. All of
// them produce the same tree shape:
//
//	<configurations>
//	  <configuration name="Default">
//	    <logger type="logger" singleInstance="true"/>
//	  </configuration>
//	</configurations>
package document
