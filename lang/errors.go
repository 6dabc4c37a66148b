package lang

import (
	"errors"
	"fmt"
)

// ErrRecursionDepth is returned when nested non-tail evaluation exceeds
// Evaluator.MaxDepth.
var ErrRecursionDepth = errors.New("maximum recursion depth exceeded")

// UndefinedVariableError reports a symbol with no binding in the chain.
type UndefinedVariableError struct {
	Symbol string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("unbound variable: %s", e.Symbol)
}

// NotAProcedureError reports an application whose operator is not a procedure.
type NotAProcedureError struct {
	Operator Value
}

func (e *NotAProcedureError) Error() string {
	return fmt.Sprintf("attempt to call non-procedure: %s", e.Operator)
}

// ArityError reports a procedure applied to the wrong number of arguments.
type ArityError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	name := e.Name
	if name == "" {
		name = "procedure"
	}
	noun := "arguments"
	if e.Want == 1 {
		noun = "argument"
	}
	return fmt.Sprintf("%s: expected %d %s, got %d", name, e.Want, noun, e.Got)
}

// SyntaxError reports a malformed special form.
type SyntaxError struct {
	Form string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Form, e.Msg)
}

// TypeError reports an argument of the wrong kind passed to a primitive.
type TypeError struct {
	Name     string
	Expected string
	Got      Value
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s %s", e.Name, e.Expected, e.Got.Type, e.Got)
}

func syntaxError(form, format string, args ...interface{}) error {
	return &SyntaxError{Form: form, Msg: fmt.Sprintf(format, args...)}
}
