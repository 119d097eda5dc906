package container

import (
	"errors"
	"fmt"
)

// ErrNotRegistered is returned by Resolve when no registration exists for a key.
var ErrNotRegistered = errors.New("not registered")

// ActivationError reports a type that could not be constructed.
//
// Param is set when a constructor parameter could be neither resolved nor
// activated; Cause then holds the inner failure.
type ActivationError struct {
	Type   Key
	Param  *Param
	Reason string
	Cause  error
}

func (e *ActivationError) Error() string {
	if e.Param != nil {
		return fmt.Sprintf("cannot activate %s, constructor param '%s' (%s): the type '%s' is probably not registered, "+
			"or may need to be an explicit unmapped parameter (as an attribute on the type registration): %v",
			e.Type, e.Param.Name, e.Param.Type, e.Param.Type, e.Cause)
	}
	msg := fmt.Sprintf("cannot construct %s because %s", e.Type, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ActivationError) Unwrap() error { return e.Cause }

// CoercionError reports a configured parameter value whose type does not fit
// the constructor parameter it is bound to.
type CoercionError struct {
	Type  Key
	Param Param
	Value any
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot activate %s: constructor param '%s' expects %s but the configured value %q is %T",
		e.Type, e.Param.Name, e.Param.Type, fmt.Sprint(e.Value), e.Value)
}

// ConfigurationError reports a registration that does not match what the
// configuration or the host expects.
type ConfigurationError struct {
	// Container is the container name, empty when not known yet.
	Container string
	Subject   string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	if e.Container == "" {
		return fmt.Sprintf("%s: %s", e.Subject, e.Reason)
	}
	return fmt.Sprintf("container %q: %s: %s", e.Container, e.Subject, e.Reason)
}
