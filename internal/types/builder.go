package types

// Builder provides a fluent API for constructing type signatures,
// keeping the builtin environment readable instead of a wall of nested
// struct literals.
//
// Example:
//
//	T := NewBuilder()
//	a, b := T.Fresh(), T.Fresh()
//	mapType := T.Func(T.Func(a).Returns(b), T.List(a)).Returns(T.List(b))
type Builder struct{}

// NewBuilder creates a new type builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Primitive type constructors

func (b *Builder) Int() Type    { return &TCon{Name: IntName} }
func (b *Builder) Float() Type  { return &TCon{Name: FloatName} }
func (b *Builder) String() Type { return &TCon{Name: StringName} }
func (b *Builder) Bool() Type   { return &TCon{Name: BoolName} }
func (b *Builder) Unit() Type   { return &TCon{Name: UnitName} }
func (b *Builder) Never() Type  { return &TCon{Name: NeverName} }

// Con creates a type constant by name
func (b *Builder) Con(name string) Type {
	return &TCon{Name: name}
}

// Fresh creates a fresh unification variable at the top level, for use
// as a quantified scheme variable
func (b *Builder) Fresh() *TVar {
	return FreshVar(0)
}

// App creates a type application: App("Result", a, e) = Result<a, e>
func (b *Builder) App(con string, args ...Type) Type {
	if len(args) == 0 {
		return &TCon{Name: con}
	}
	return &TApp{Con: &TCon{Name: con}, Args: args}
}

// List creates List<elem>
func (b *Builder) List(elem Type) Type {
	return b.App("List", elem)
}

// Option creates Option<elem>
func (b *Builder) Option(elem Type) Type {
	return b.App("Option", elem)
}

// Result creates Result<ok, err>
func (b *Builder) Result(ok, err Type) Type {
	return b.App("Result", ok, err)
}

// Ref creates Ref<elem>
func (b *Builder) Ref(elem Type) Type {
	return b.App(RefName, elem)
}

// FieldSpec represents a record field specification
type FieldSpec struct {
	Name string
	Type Type
}

// Field creates a record field specification for use with Record
func Field(name string, t Type) FieldSpec {
	return FieldSpec{Name: name, Type: t}
}

// Record creates a structural record type
func (b *Builder) Record(fields ...FieldSpec) Type {
	m := make(map[string]Type, len(fields))
	for _, f := range fields {
		m[f.Name] = f.Type
	}
	return &TRecord{Fields: m}
}

// FuncBuilder completes a function type once Returns is called
type FuncBuilder struct {
	params []Type
}

// Func starts a function type from its parameters
func (b *Builder) Func(params ...Type) *FuncBuilder {
	return &FuncBuilder{params: params}
}

// Returns finishes the function type with its return type
func (fb *FuncBuilder) Returns(ret Type) Type {
	return &TFunc{Params: fb.params, Return: ret}
}

// Scheme quantifies the given variables over a body type
func (b *Builder) Scheme(body Type, vars ...*TVar) *Scheme {
	if len(vars) == 0 {
		return SchemeOf(body)
	}
	ids := make([]int, len(vars))
	for i, v := range vars {
		ids[i] = v.ID
	}
	return &Scheme{Vars: ids, Type: body}
}
