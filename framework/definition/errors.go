package definition

import (
	"fmt"
	"strings"
)

// DefinitionError reports a blank or duplicated definition name.
type DefinitionError struct {
	// Name is empty for a blank name.
	Name   string
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Name == "" {
		return "invalid container definition: " + e.Reason
	}
	return fmt.Sprintf("invalid container definition %q: %s", e.Name, e.Reason)
}

// InheritanceLoopError is returned when extends references cannot be ordered,
// either because they form a cycle or because a parent does not exist.
type InheritanceLoopError struct {
	Unresolved []string
}

func (e *InheritanceLoopError) Error() string {
	return "there is an extends inheritance loop, or a container extending a nonexistent container; " +
		"unresolved containers probably at fault: " + strings.Join(e.Unresolved, ", ")
}
