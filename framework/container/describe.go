package container

// ── Constructor descriptors ───────────────────────────────────────────────────

// Param is one constructor parameter, in declaration order.
type Param struct {
	Name string
	Type Key
}

// P declares a parameter of type T.
//
//	container.P[string]("path")
func P[T any](name string) Param {
	return Param{Name: name, Type: KeyOf[T]()}
}

// Args holds constructor arguments in parameter order. Every value has
// already been checked against its Param type.
type Args []any

// Arg returns argument i as T, or T's zero value when it is nil.
func Arg[T any](a Args, i int) T {
	v, _ := a[i].(T)
	return v
}

// Constructor builds a concrete value from ordered arguments. New is created
// once at registration and reused for every activation.
type Constructor struct {
	Params []Param
	New    func(Args) (any, error)
}

// TypeDescriptor is what the registry knows about one concrete type.
type TypeDescriptor struct {
	// ID is the identifier documents use in their type attribute.
	ID           string
	Type         Key
	Capabilities []Key
	Constructors []Constructor
}

// ── Fluent descriptor builder ─────────────────────────────────────────────────

// DescriptorBuilder implements the fluent descriptor API.
//
//	desc := container.Describe[*FileStore]("store.file").
//	    As(container.KeyOf[Store]()).
//	    Constructor(func(a container.Args) (any, error) {
//	        return NewFileStore(container.Arg[string](a, 0), container.Arg[Logger](a, 1))
//	    }, container.P[string]("path"), container.P[Logger]("logger")).
//	    Descriptor()
type DescriptorBuilder struct {
	desc TypeDescriptor
}

// Describe starts a descriptor for the concrete type T under id.
func Describe[T any](id string) *DescriptorBuilder {
	return &DescriptorBuilder{desc: TypeDescriptor{ID: id, Type: KeyOf[T]()}}
}

// As adds capabilities the type is registered under when built.
func (b *DescriptorBuilder) As(capabilities ...Key) *DescriptorBuilder {
	b.desc.Capabilities = append(b.desc.Capabilities, capabilities...)
	return b
}

// Constructor adds a constructor. Activation requires exactly one.
func (b *DescriptorBuilder) Constructor(fn func(Args) (any, error), params ...Param) *DescriptorBuilder {
	b.desc.Constructors = append(b.desc.Constructors, Constructor{Params: params, New: fn})
	return b
}

// Descriptor returns the finished descriptor.
func (b *DescriptorBuilder) Descriptor() TypeDescriptor {
	return b.desc
}
