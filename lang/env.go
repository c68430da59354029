package lang

import "log/slog"

// Frame is one lexical layer of name bindings.
type Frame map[string]Value

// Env is a stack of binding frames. Resolution walks from the innermost
// frame outward, so a name bound in an inner frame shadows any outer
// binding.
type Env struct {
	frames []Frame
}

// NewEnv constructs an environment over the given frames, outermost
// first.
func NewEnv(frames ...Frame) *Env {
	return &Env{frames: frames}
}

// Push adds a frame as the new innermost scope.
func (e *Env) Push(f Frame) {
	if f == nil {
		f = Frame{}
	}

	e.frames = append(e.frames, f)
}

// Pop removes the innermost frame. Popping an empty environment is a
// no-op.
func (e *Env) Pop() {
	if len(e.frames) > 0 {
		e.frames = e.frames[:len(e.frames)-1]
	}
}

// Bind sets a name in the innermost frame, pushing one if the
// environment is empty.
func (e *Env) Bind(name string, v Value) {
	if len(e.frames) == 0 {
		e.Push(Frame{})
	}

	e.frames[len(e.frames)-1][name] = v
}

// Resolve looks up a name from the innermost frame outward.
func (e *Env) Resolve(name string) (Value, error) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if v, ok := e.frames[i][name]; ok {
			return v, nil
		}
	}

	return Nil(), ErrUndefinedVar.With(slog.String("name", name))
}
