package runtime

// Class is a runtime class object: a name, an optional superclass, and its
// own method table (spec.md §3). Method lookup walks the superclass chain.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (*Class) value() {}

// FindMethod looks up name on c, then its ancestors.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is init's arity, or 0 if the class declares no initializer.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

func (c *Class) CallableName() string { return c.Name }

// Call constructs a new Instance and, if the class (or an ancestor) defines
// init, binds and calls it before returning the instance (spec.md §4.5
// "Instance construction").
func (c *Class) Call(interp Interpreter, args []Value) (Value, error) {
	instance := &Instance{Class: c, Fields: make(map[string]Value)}
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a class instance: a reference to its class plus its own
// field map. Field access falls through to a bound method when the field
// itself is absent (spec.md §3).
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func (*Instance) value() {}

// Get implements `e.x`: fields shadow methods, and a resolved method is
// bound to this instance before it's returned.
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

// Set implements `e.x = v`: instance fields are freely created on
// assignment, there is no field declaration list to validate against.
func (i *Instance) Set(name string, value Value) {
	i.Fields[name] = value
}
