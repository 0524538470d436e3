// Package errors provides the structured error taxonomy shared by the
// netlink and D-Bus control channels.
//
// Every failure surfaced by the control plane carries a Kind so that callers
// can branch on "interface not found" vs. "transport failure" vs.
// "not implemented" without string matching.
package errors

import (
	"errors"
	"fmt"
)

// Kind defines the category of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindInterfaceNotFound
	KindInvalidCIDR
	KindInvalidMAC
	KindNetlink
	KindDBus
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindInterfaceNotFound:
		return "interface_not_found"
	case KindInvalidCIDR:
		return "invalid_cidr"
	case KindInvalidMAC:
		return "invalid_mac"
	case KindNetlink:
		return "netlink"
	case KindDBus:
		return "dbus"
	case KindGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// ErrNotImplemented marks operations that are known gaps.
var ErrNotImplemented = errors.New("not implemented")

// Error represents a structured error in netctl.
type Error struct {
	Kind       Kind
	Message    string
	Underlying error
	Attributes map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// New creates a new Error of the specified kind.
func New(kind Kind, msg string) error {
	return &Error{
		Kind:    kind,
		Message: msg,
	}
}

// Wrap wraps an existing error as a new Error of the specified kind.
func Wrap(err error, kind Kind, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:       kind,
		Message:    msg,
		Underlying: err,
	}
}

// InterfaceNotFound reports that name resolution found no link called name.
func InterfaceNotFound(name string) error {
	return &Error{
		Kind:       KindInterfaceNotFound,
		Message:    fmt.Sprintf("interface '%s' not found", name),
		Attributes: map[string]any{"name": name},
	}
}

// InvalidCIDR reports a malformed address/prefix string.
func InvalidCIDR(input string) error {
	return &Error{
		Kind:       KindInvalidCIDR,
		Message:    fmt.Sprintf("invalid CIDR: %s", input),
		Attributes: map[string]any{"input": input},
	}
}

// InvalidMAC reports a malformed hardware address string.
func InvalidMAC(input string) error {
	return &Error{
		Kind:       KindInvalidMAC,
		Message:    fmt.Sprintf("invalid MAC: %s", input),
		Attributes: map[string]any{"input": input},
	}
}

// Netlink wraps a kernel rejection or netlink transport failure verbatim.
func Netlink(err error) error {
	return Wrap(err, KindNetlink, "netlink error")
}

// DBus wraps an RPC failure. msg describes the call that failed.
func DBus(err error, msg string) error {
	return Wrap(err, KindDBus, "D-Bus error: "+msg)
}

// Generic creates a catch-all error for non-protocol failures.
func Generic(msg string) error {
	return New(KindGeneric, msg)
}

// NotImplemented returns a KindGeneric error wrapping ErrNotImplemented.
func NotImplemented(op string) error {
	return Wrap(ErrNotImplemented, KindGeneric, op)
}

// Attr attaches an attribute to an error. If the error is not an *Error, it wraps it as KindGeneric.
func Attr(err error, key string, val any) error {
	if err == nil {
		return nil
	}

	var e *Error
	if !errors.As(err, &e) {
		e = &Error{
			Kind:       KindGeneric,
			Message:    err.Error(),
			Underlying: err,
		}
	}

	if e.Attributes == nil {
		e.Attributes = make(map[string]any)
	}
	e.Attributes[key] = val
	return e
}

// GetKind returns the Kind of the error, or KindUnknown if it's not a netctl error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// GetAttributes returns all attributes associated with the error and its chain.
func GetAttributes(err error) map[string]any {
	attrs := make(map[string]any)
	var e *Error

	tempErr := err
	for tempErr != nil {
		if errors.As(tempErr, &e) {
			for k, v := range e.Attributes {
				if _, ok := attrs[k]; !ok {
					attrs[k] = v
				}
			}
			tempErr = e.Underlying
		} else {
			break
		}
	}

	return attrs
}

// IsNotFound reports whether err is an InterfaceNotFound error.
func IsNotFound(err error) bool {
	return GetKind(err) == KindInterfaceNotFound
}

// IsNotImplemented reports whether err marks a known unimplemented operation.
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}
