// Package errors is netcrab's drop-in replacement for Golang's 'errors'
// package, adding severity and a wrapped-error chain.
package errors // import "github.com/mindstorm38/netcrab/common/errors"

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/mindstorm38/netcrab/common/log"
)

const trim = len("github.com/mindstorm38/netcrab/")

type hasInnerError interface {
	// Unwrap returns the underlying error of this one.
	Unwrap() error
}

type hasSeverity interface {
	Severity() log.Severity
}

// Error is an error object with an underlying error, a caller tag, and a
// severity.
type Error struct {
	message  []interface{}
	caller   string
	inner    error
	severity log.Severity
}

// Error implements error.Error().
func (err *Error) Error() string {
	builder := strings.Builder{}

	if len(err.caller) > 0 {
		builder.WriteString(err.caller)
		builder.WriteString(": ")
	}

	builder.WriteString(concat(err.message...))

	if err.inner != nil {
		builder.WriteString(" > ")
		builder.WriteString(err.inner.Error())
	}

	return builder.String()
}

// Unwrap implements hasInnerError.Unwrap().
func (err *Error) Unwrap() error {
	return err.inner
}

// Base attaches an underlying error, returned from Cause() and rendered
// after " > " in Error().
func (err *Error) Base(e error) *Error {
	err.inner = e
	return err
}

func (err *Error) atSeverity(s log.Severity) *Error {
	err.severity = s
	return err
}

// Severity returns the most severe of this error's own severity and any
// inner error's severity.
func (err *Error) Severity() log.Severity {
	if err.inner == nil {
		return err.severity
	}

	if s, ok := err.inner.(hasSeverity); ok {
		if inner := s.Severity(); inner < err.severity {
			return inner
		}
	}

	return err.severity
}

// AtDebug sets the severity to debug.
func (err *Error) AtDebug() *Error {
	return err.atSeverity(log.SeverityDebug)
}

// AtInfo sets the severity to info.
func (err *Error) AtInfo() *Error {
	return err.atSeverity(log.SeverityInfo)
}

// AtWarning sets the severity to warning.
func (err *Error) AtWarning() *Error {
	return err.atSeverity(log.SeverityWarning)
}

// AtError sets the severity to error.
func (err *Error) AtError() *Error {
	return err.atSeverity(log.SeverityError)
}

// String returns the string representation of this error.
func (err *Error) String() string {
	return err.Error()
}

// New returns a new error object with message formed from the given
// arguments, at default (info) severity.
func New(msg ...interface{}) *Error {
	return &Error{
		message:  msg,
		severity: log.SeverityInfo,
		caller:   callerName(1),
	}
}

func callerName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	name := runtime.FuncForPC(pc).Name()
	if len(name) >= trim {
		name = name[trim:]
	}
	if i := strings.Index(name, "."); i > 0 {
		name = name[:i]
	}
	return name
}

func concat(msg ...interface{}) string {
	parts := make([]string, len(msg))
	for i, m := range msg {
		parts[i] = fmt.Sprint(m)
	}
	return strings.Join(parts, "")
}

// LogDebug records msg at debug severity through the common/log registry.
func LogDebug(msg ...interface{}) { doLog(nil, log.SeverityDebug, msg...) }

// LogInfo records msg at info severity through the common/log registry.
func LogInfo(msg ...interface{}) { doLog(nil, log.SeverityInfo, msg...) }

// LogWarning records msg at warning severity through the common/log registry.
func LogWarning(msg ...interface{}) { doLog(nil, log.SeverityWarning, msg...) }

// LogWarningInner is LogWarning with an underlying error attached.
func LogWarningInner(inner error, msg ...interface{}) {
	doLog(inner, log.SeverityWarning, msg...)
}

// LogError records msg at error severity through the common/log registry.
func LogError(msg ...interface{}) { doLog(nil, log.SeverityError, msg...) }

// LogErrorInner is LogError with an underlying error attached.
func LogErrorInner(inner error, msg ...interface{}) {
	doLog(inner, log.SeverityError, msg...)
}

func doLog(inner error, severity log.Severity, msg ...interface{}) {
	err := &Error{
		message:  msg,
		severity: severity,
		caller:   callerName(2),
		inner:    inner,
	}
	log.Record(&log.GeneralMessage{
		Severity: GetSeverity(err),
		Content:  err,
	})
}

// Cause returns the root cause of this error, unwrapping every wrapped
// layer.
func Cause(err error) error {
	if err == nil {
		return nil
	}
L:
	for {
		switch inner := err.(type) {
		case hasInnerError:
			next := inner.Unwrap()
			if next == nil {
				break L
			}
			err = next
		default:
			break L
		}
	}
	return err
}

// GetSeverity returns the effective severity of err, SeverityInfo if err
// does not carry one.
func GetSeverity(err error) log.Severity {
	if s, ok := err.(hasSeverity); ok {
		return s.Severity()
	}
	return log.SeverityInfo
}
