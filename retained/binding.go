package retained

// Binding threads a piece of application state in and out of a control
// without the control owning it.
type Binding[S, T any] struct {
	Get func(state *S) T
	Set func(state *S, v T)
}

// Bind builds a binding from a pointer accessor, the common case where the
// value is a field of the state.
func Bind[S, T any](field func(state *S) *T) Binding[S, T] {
	return Binding[S, T]{
		Get: func(s *S) T { return *field(s) },
		Set: func(s *S, v T) { *field(s) = v },
	}
}

// Constant binds a fixed value. Writes are discarded.
func Constant[S, T any](v T) Binding[S, T] {
	return Binding[S, T]{
		Get: func(*S) T { return v },
		Set: func(*S, T) {},
	}
}

// Map derives a binding of another type through a pair of conversions.
func Map[S, T, U any](b Binding[S, T], to func(T) U, from func(U) T) Binding[S, U] {
	return Binding[S, U]{
		Get: func(s *S) U { return to(b.Get(s)) },
		Set: func(s *S, v U) { b.Set(s, from(v)) },
	}
}
