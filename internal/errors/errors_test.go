package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError(t *testing.T) {
	err := New(KindGeneric, "invalid input")
	if err.Error() != "invalid input" {
		t.Errorf("expected 'invalid input', got '%s'", err.Error())
	}

	wrapped := Wrap(err, KindNetlink, "failed to set link")
	if wrapped.Error() != "failed to set link: invalid input" {
		t.Errorf("expected 'failed to set link: invalid input', got '%s'", wrapped.Error())
	}
}

func TestGetKind(t *testing.T) {
	err := New(KindInvalidCIDR, "invalid input")
	if GetKind(err) != KindInvalidCIDR {
		t.Errorf("expected KindInvalidCIDR, got %v", GetKind(err))
	}

	wrapped := fmt.Errorf("apply eth0: %w", err)
	if GetKind(wrapped) != KindInvalidCIDR {
		t.Errorf("kind lost through fmt wrapping, got %v", GetKind(wrapped))
	}

	if GetKind(errors.New("std error")) != KindUnknown {
		t.Errorf("expected KindUnknown, got %v", GetKind(errors.New("std error")))
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		contains string
	}{
		{"not found", InterfaceNotFound("eth0"), KindInterfaceNotFound, "eth0"},
		{"cidr", InvalidCIDR("192.168.1.1"), KindInvalidCIDR, "192.168.1.1"},
		{"mac", InvalidMAC("zz:bb:cc"), KindInvalidMAC, "zz:bb:cc"},
		{"netlink", Netlink(errors.New("connection failed")), KindNetlink, "connection failed"},
		{"dbus", DBus(errors.New("method call failed"), "reload"), KindDBus, "method call failed"},
		{"generic", Generic("something odd"), KindGeneric, "something odd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if GetKind(tt.err) != tt.kind {
				t.Errorf("expected %v, got %v", tt.kind, GetKind(tt.err))
			}
			if got := tt.err.Error(); !strings.Contains(got, tt.contains) {
				t.Errorf("expected %q in %q", tt.contains, got)
			}
		})
	}
}

func TestNotFoundAttributes(t *testing.T) {
	err := InterfaceNotFound("wlan0")
	if !IsNotFound(err) {
		t.Fatal("expected IsNotFound")
	}
	if GetAttributes(err)["name"] != "wlan0" {
		t.Errorf("expected name attribute, got %v", GetAttributes(err))
	}
}

func TestNotImplemented(t *testing.T) {
	err := NotImplemented("delete address")
	if !IsNotImplemented(err) {
		t.Error("expected ErrNotImplemented in chain")
	}
	if GetKind(err) != KindGeneric {
		t.Errorf("expected KindGeneric, got %v", GetKind(err))
	}
	if IsNotImplemented(Generic("other")) {
		t.Error("plain generic error must not report not-implemented")
	}
}

func TestAttributes(t *testing.T) {
	err := New(KindGeneric, "invalid input")
	err = Attr(err, "field", "mtu")
	err = Attr(err, "value", 80)

	attrs := GetAttributes(err)
	if attrs["field"] != "mtu" {
		t.Errorf("expected mtu, got %v", attrs["field"])
	}
	if attrs["value"] != 80 {
		t.Errorf("expected 80, got %v", attrs["value"])
	}

	wrapped := Wrap(err, KindNetlink, "failed")
	wrapped = Attr(wrapped, "operation", "set")

	allAttrs := GetAttributes(wrapped)
	if allAttrs["field"] != "mtu" || allAttrs["operation"] != "set" {
		t.Errorf("missing attributes: %v", allAttrs)
	}
}
