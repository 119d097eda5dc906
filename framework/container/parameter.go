package container

// Parameter is a constructor argument supplied by configuration rather than
// resolved from the container.
type Parameter struct {
	Name  string
	Value any
}

// lookupParameter returns the first parameter whose name equals name exactly.
func lookupParameter(params []Parameter, name string) (any, bool) {
	for _, p := range params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}
