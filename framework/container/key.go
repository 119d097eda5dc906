package container

import "reflect"

// Key identifies a capability or a concrete type inside a container.
//
// Keys compare by the Go type they wrap, so the same interface declared once
// always maps to the same registration.
//
//	logger := container.KeyOf[Logger]()     // capability
//	impl   := container.KeyOf[*FileLogger]() // concrete type
type Key struct {
	t reflect.Type
}

// KeyOf returns the key of T. Interface types are the usual capabilities.
func KeyOf[T any]() Key {
	return Key{t: reflect.TypeFor[T]()}
}

// Type returns the wrapped type, nil for the zero Key.
func (k Key) Type() reflect.Type { return k.t }

// IsZero reports whether k identifies nothing.
func (k Key) IsZero() bool { return k.t == nil }

func (k Key) String() string {
	if k.t == nil {
		return "<nil>"
	}
	return k.t.String()
}

// Implements reports whether values of k's type satisfy capability.
func (k Key) Implements(capability Key) bool {
	if k.t == nil || capability.t == nil {
		return false
	}
	return k.t.AssignableTo(capability.t)
}

// accepts reports whether v can be passed where k is expected.
func (k Key) accepts(v any) bool {
	if v == nil {
		switch k.t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return true
		}
		return false
	}
	return reflect.TypeOf(v).AssignableTo(k.t)
}
