package cli

import (
	"bytes"
	"strings"
	"testing"
)

func withColor(t *testing.T, enabled bool) {
	t.Helper()
	prev := colorEnabled
	colorEnabled = enabled
	t.Cleanup(func() { colorEnabled = prev })
}

func TestDotPad(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"normal", "address", 16, "address " + strings.Repeat(".", 8)},
		{"name equals width minus one", "abcde", 6, "abcde"},
		{"name longer than width", "src_addr_ipv6", 5, "src_addr_ipv6"},
		{"empty string", "", 4, " ..."},
		{"zero width", "port", 0, "port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DotPad(tt.input, tt.width); got != tt.want {
				t.Errorf("DotPad(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestColorFunctions(t *testing.T) {
	withColor(t, true)

	tests := []struct {
		name   string
		fn     func(string) string
		prefix string
	}{
		{"Green", Green, "\033[32m"},
		{"Yellow", Yellow, "\033[33m"},
		{"Red", Red, "\033[31m"},
		{"Bold", Bold, "\033[1m"},
		{"Dim", Dim, "\033[2m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn("hello")
			if got != tt.prefix+"hello\033[0m" {
				t.Errorf("%s(\"hello\") = %q", tt.name, got)
			}
		})
	}
}

func TestColorDisabled(t *testing.T) {
	withColor(t, false)

	for _, fn := range []func(string) string{Green, Yellow, Red, Bold, Dim} {
		if got := fn("plain"); got != "plain" {
			t.Errorf("colored output %q with color disabled", got)
		}
	}
}

func TestStatusColor(t *testing.T) {
	withColor(t, true)

	tests := []struct {
		status string
		want   string
	}{
		{"success", Green("ok")},
		{"warning", Yellow("ok")},
		{"danger", Red("ok")},
		{"bogus", Red("ok")},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := StatusColor(tt.status, "ok"); got != tt.want {
				t.Errorf("StatusColor(%q) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestKeyValue(t *testing.T) {
	withColor(t, false)

	var buf bytes.Buffer
	KeyValue(&buf, "port", "22", 8)
	KeyValue(&buf, "location", "", 8)

	want := "port ... 22\nlocation -\n"
	if buf.String() != want {
		t.Errorf("KeyValue output = %q, want %q", buf.String(), want)
	}
}
