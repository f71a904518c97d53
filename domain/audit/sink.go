package audit

// Sink is the append-only destination of audit lines, one log per class.
//
// AppendLine acquires the log named after className, writes text followed by
// a line terminator and releases it before returning. Prior lines are kept.
type Sink interface {
	AppendLine(className, text string) error
}

// LogName returns the resource identifier used for the log of className.
func LogName(className string) string {
	return "log_" + className + ".log"
}
