package absint

// Var is an analysis variable: a named cell holding the abstract state
// computed for one program point. Variables are compared by identity.
type Var[S any] struct {
	name        string
	value       S
	initialized bool
}

// NewVar creates an uninitialized variable.
func NewVar[S any](name string) *Var[S] {
	return &Var[S]{name: name}
}

func (v *Var[S]) Name() string   { return v.name }
func (v *Var[S]) String() string { return v.name }

// Value returns the current value of the variable, or the zero value of S
// if it is uninitialized.
func (v *Var[S]) Value() S { return v.value }

func (v *Var[S]) Initialized() bool { return v.initialized }

func (v *Var[S]) assign(s S) {
	v.value = s
	v.initialized = true
}
