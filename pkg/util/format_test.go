package util

import (
	"errors"
	"reflect"
	"testing"
)

func TestFormatNamed(t *testing.T) {
	values := map[string]string{
		"target":        "192.0.2.0/24",
		"src_addr_ipv4": "198.51.100.1",
	}

	tests := []struct {
		name    string
		tmpl    string
		want    string
		wantErr error
	}{
		{"single", "show bgp ipv4 unicast {target}", "show bgp ipv4 unicast 192.0.2.0/24", nil},
		{"two placeholders", "ping {target} source {src_addr_ipv4}", "ping 192.0.2.0/24 source 198.51.100.1", nil},
		{"repeated", "{target} {target}", "192.0.2.0/24 192.0.2.0/24", nil},
		{"no placeholders", "show version", "show version", nil},
		{"escaped braces", "echo {{literal}} {target}", "echo {literal} 192.0.2.0/24", nil},
		{"unknown placeholder", "ping {target} source {src_addr_ipv6}", "", ErrUnknownPlaceholder},
		{"unclosed", "ping {target", "", ErrMalformedTemplate},
		{"stray close", "ping target}", "", ErrMalformedTemplate},
		{"empty name", "ping {}", "", ErrMalformedTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatNamed(tt.tmpl, values)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FormatNamed(%q) error = %v, want %v", tt.tmpl, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FormatNamed(%q) unexpected error: %v", tt.tmpl, err)
			}
			if got != tt.want {
				t.Errorf("FormatNamed(%q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestFormatNamed_ValueNotReinterpreted(t *testing.T) {
	got, err := FormatNamed("show {target}", map[string]string{"target": "{src_addr_ipv4}"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "show {src_addr_ipv4}" {
		t.Errorf("substituted value must be literal, got %q", got)
	}
}

func TestPlaceholders(t *testing.T) {
	got, err := Placeholders("traceroute {target} source {src_addr_ipv6} ttl {target}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"target", "src_addr_ipv6"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Placeholders() = %v, want %v", got, want)
	}

	if _, err := Placeholders("bad {"); !errors.Is(err, ErrMalformedTemplate) {
		t.Errorf("expected ErrMalformedTemplate, got %v", err)
	}
}
