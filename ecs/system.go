package ecs

// System is one unit of per-frame behavior. Implementations are usually pointers to structs
// whose exported Query, Singleton and Events fields are bound by the Scheduler; any other
// fields are private state that persists between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) { f(frame) }
