package audit

import "fmt"

// Call describes one invocation of a public method.
type Call struct {
	Method string
	Args   []any
	Kwargs map[string]any
}

// Method builds a Call with positional arguments only.
func Method(name string, args ...any) Call {
	return Call{Method: name, Args: args}
}

// CallAuditor records public method invocations in the class log. It keeps
// no per-call state. Wrapping an already audited value logs every call twice.
type CallAuditor struct {
	sink Sink
}

func NewCallAuditor(sink Sink) *CallAuditor {
	return &CallAuditor{sink: sink}
}

// Record appends one "called method" line for call on obj.
func (a *CallAuditor) Record(obj Object, call Call) error {
	className := obj.ClassName()
	line := fmt.Sprintf("Object '%s' of class '%s' called method '%s' with parameters %s %s",
		ObjectName(obj), className, call.Method, formatArgs(call.Args), formatKwargs(call.Kwargs))
	if err := a.sink.AppendLine(className, line); err != nil {
		return fmt.Errorf("append %s call: %w", call.Method, err)
	}
	return nil
}

// Invoke records call and then runs fn, returning its result unchanged.
// fn is not run when the line cannot be appended.
func Invoke[R any](a *CallAuditor, obj Object, call Call, fn func() R) (R, error) {
	if err := a.Record(obj, call); err != nil {
		var zero R
		return zero, err
	}
	return fn(), nil
}

// InvokeErr is Invoke for methods that can fail. The call is logged before
// fn runs, so a failing method still leaves its line behind.
func InvokeErr[R any](a *CallAuditor, obj Object, call Call, fn func() (R, error)) (R, error) {
	if err := a.Record(obj, call); err != nil {
		var zero R
		return zero, err
	}
	return fn()
}

// Do is InvokeErr for methods without a result.
func Do(a *CallAuditor, obj Object, call Call, fn func() error) error {
	if err := a.Record(obj, call); err != nil {
		return err
	}
	return fn()
}
