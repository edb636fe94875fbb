package runtime

import "time"

// DefineGlobals populates env with glox's sole native builtin: clock(),
// seconds since the Unix epoch as a float (spec.md §6).
func DefineGlobals(env *Environment) {
	env.Define("clock", &NativeFunction{
		Name:   "clock",
		Params: 0,
		Fn: func(args []Value) (Value, error) {
			return Number(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})
}
