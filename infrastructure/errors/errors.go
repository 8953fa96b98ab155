// Package errors provides the engine's error taxonomy: Configuration,
// Transport, Evaluation, and Action errors, matching the error kinds the
// runtime distinguishes between at startup, mid-run, and during condition
// evaluation.
package errors

import (
	"errors"
	"fmt"
)

// Code identifies which of the runtime's error kinds an EngineError belongs
// to.
type Code string

const (
	// Configuration errors: raised at model build; the engine refuses to
	// start.
	CodeConfigDuplicateName Code = "CONFIG_DUPLICATE_NAME"
	CodeConfigTimeRange     Code = "CONFIG_TIME_RANGE"
	CodeConfigUnknownRef    Code = "CONFIG_UNKNOWN_REF"
	CodeConfigInvalid       Code = "CONFIG_INVALID"

	// Transport errors: permanent failures abort engine start; transient
	// failures are retried internally by the transport and never reach
	// here; decode/publish failures mid-run are logged and dropped.
	CodeTransportPermanent Code = "TRANSPORT_PERMANENT"
	CodeTransportDecode    Code = "TRANSPORT_DECODE"

	// Evaluation errors: caught inside the condition evaluator; the
	// condition resolves false for that tick and the error never escapes
	// to a runner.
	CodeEvaluationUnknownEntity    Code = "EVAL_UNKNOWN_ENTITY"
	CodeEvaluationUnknownAttribute Code = "EVAL_UNKNOWN_ATTRIBUTE"
	CodeEvaluationTypeMismatch     Code = "EVAL_TYPE_MISMATCH"
	CodeEvaluationDegenerate       Code = "EVAL_DEGENERATE_BUFFER"

	// Action errors: a publish failure during action dispatch; logged,
	// the automation still transitions to EXITED_SUCCESS.
	CodeActionPublishFailed Code = "ACTION_PUBLISH_FAILED"
)

// EngineError is the engine's structured error type.
type EngineError struct {
	Code    Code
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *EngineError) Unwrap() error { return e.Err }

// New creates an EngineError with no wrapped cause.
func New(code Code, message string) *EngineError {
	return &EngineError{Code: code, Message: message}
}

// Wrap creates an EngineError wrapping an existing error.
func Wrap(code Code, message string, err error) *EngineError {
	return &EngineError{Code: code, Message: message, Err: err}
}

// Configuration errors.

func DuplicateName(kind, name string) *EngineError {
	return New(CodeConfigDuplicateName, fmt.Sprintf("duplicate %s name %q", kind, name))
}

func TimeRangeError(field string, value int) *EngineError {
	return New(CodeConfigTimeRange, fmt.Sprintf("time field %q out of range: %d", field, value))
}

func UnknownReference(from, kind, name string) *EngineError {
	return New(CodeConfigUnknownRef, fmt.Sprintf("%s references unknown %s %q", from, kind, name))
}

func ConfigErrorf(format string, args ...any) *EngineError {
	return New(CodeConfigInvalid, fmt.Sprintf(format, args...))
}

// Transport errors.

func TransportPermanent(broker string, err error) *EngineError {
	return Wrap(CodeTransportPermanent, fmt.Sprintf("broker %q unavailable at start", broker), err)
}

func TransportErrorf(format string, args ...any) *EngineError {
	return New(CodeTransportDecode, fmt.Sprintf(format, args...))
}

// Evaluation errors. These are always caught at the point condeval invokes
// the evaluator and never propagate to a runner; the constructors exist so
// the store and compiler can report precisely what went wrong in debug
// logs before the evaluator swallows the error to false.

func UnknownEntity(name string) *EngineError {
	return New(CodeEvaluationUnknownEntity, fmt.Sprintf("unknown entity %q", name))
}

func UnknownAttribute(entity, attribute string) *EngineError {
	return New(CodeEvaluationUnknownAttribute, fmt.Sprintf("unknown attribute %q on entity %q", attribute, entity))
}

func TypeMismatch(entity, attribute, want, got string) *EngineError {
	return New(CodeEvaluationTypeMismatch,
		fmt.Sprintf("%s.%s: expected %s, got %s", entity, attribute, want, got))
}

func EvaluationErrorf(format string, args ...any) *EngineError {
	return New(CodeEvaluationDegenerate, fmt.Sprintf(format, args...))
}

// Action errors.

func ActionPublishFailed(entity string, err error) *EngineError {
	return Wrap(CodeActionPublishFailed, fmt.Sprintf("publish to entity %q failed", entity), err)
}

// Helpers.

// Is reports whether err is an EngineError (directly or in its chain) with
// the given code.
func Is(err error, code Code) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code == code
	}
	return false
}

// As extracts an *EngineError from err's chain, if any.
func As(err error) (*EngineError, bool) {
	var ee *EngineError
	ok := errors.As(err, &ee)
	return ee, ok
}
