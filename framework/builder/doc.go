// Package builder turns merged configuration definitions into containers.
//
// Every direct child element of a definition declares one dependency:
//
//	<logger type="logger.file" singleInstance="true" path="/var/log/app.log" verbose="true"/>
//
// type names a descriptor in the container.TypeRegistry, singleInstance
// selects the lifetime and every other attribute becomes a constructor
// parameter of the same name. The declaration element itself is always
// passed as the configNode parameter.
package builder
