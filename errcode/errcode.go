package errcode

// Code is a stable error identifier used in logs, bus payloads and the simulator.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	Unsupported   Code = "unsupported"
	InvalidParams Code = "invalid_params"

	// Frequency table defects (build-time data).
	InvalidTable  Code = "invalid_table"
	ZeroParameter Code = "zero_parameter"
	IncrementOver Code = "increment_overflow"

	// Platform resources.
	UnknownBus Code = "unknown_bus"
	UnknownPin Code = "unknown_pin"
	PinInUse   Code = "pin_in_use"
	Timeout    Code = "timeout"
	IOError    Code = "io_error"

	// Simulator.
	InvalidScenario Code = "invalid_scenario"

	Error Code = "error" // generic fallback
)

// E keeps a Code together with the failing operation, a detail and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// New is shorthand for &E{C: c, Op: op, Msg: msg}.
func New(c Code, op, msg string) error { return &E{C: c, Op: op, Msg: msg} }

// Wrap attaches a code and operation to a lower-level error. Nil stays nil.
func Wrap(c Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: c, Op: op, Err: err}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// MapDriverErr maps low-level driver errors to a Code.
func MapDriverErr(err error) Code {
	if err == nil {
		return OK
	}
	if c := Of(err); c != Error {
		return c
	}
	return IOError
}
