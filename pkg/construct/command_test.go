package construct

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/newtron-network/lglass/pkg/query"
	"github.com/newtron-network/lglass/pkg/spec"
	"github.com/newtron-network/lglass/pkg/util"
)

func TestCommandBuilder_Build(t *testing.T) {
	tests := []struct {
		name      string
		queryType string
		target    string
		status    query.Status
		message   string
		command   string
	}{
		{"community new-format", "bgp_community", "65000:100", query.StatusSuccess,
			"65000:100 matched new-format community.", "show bgp all community 65000:100"},
		{"community 32 bit", "bgp_community", "4200000000", query.StatusSuccess,
			"4200000000 matched 32 bit community.", "show bgp all community 4200000000"},
		{"community large", "bgp_community", "1:2:3", query.StatusSuccess,
			"1:2:3 matched large community.", "show bgp all community 1:2:3"},
		{"community invalid", "bgp_community", "abc", query.StatusDanger,
			"abc is an invalid BGP Community Format.", ""},
		{"aspath", "bgp_aspath", "_65000$", query.StatusSuccess,
			"_65000$ matched AS_PATH regex.", `show bgp all quote-regexp "_65000$"`},
		{"aspath empty", "bgp_aspath", "", query.StatusWarning,
			"AS_PATH regex must be specified.", ""},
		{"route v4", "bgp_route", "192.0.2.0/24", query.StatusSuccess,
			"192.0.2.0/24 is a valid IPv4 Address.", "show bgp ipv4 unicast 192.0.2.0/24"},
		{"route v6", "bgp_route", "2001:db8::/32", query.StatusSuccess,
			"2001:db8::/32 is a valid IPv6 Address.", "show bgp ipv6 unicast 2001:db8::/32"},
		{"ping v4", "ping", "203.0.113.9", query.StatusSuccess,
			"203.0.113.9 is a valid IPv4 Address.", "ping 203.0.113.9 repeat 5 source 198.51.100.1"},
		{"ping v6", "ping", "2001:db8::1", query.StatusSuccess,
			"2001:db8::1 is a valid IPv6 Address.", "ping ipv6 2001:db8::1 repeat 5 source 2001:db8::ff"},
		{"traceroute v6", "traceroute", "2001:db8::1", query.StatusSuccess,
			"2001:db8::1 is a valid IPv6 Address.", "traceroute ipv6 2001:db8::1 source 2001:db8::ff"},
		{"traceroute invalid", "traceroute", "1.2.3", query.StatusDanger,
			"1.2.3 is an invalid IP Address.", ""},
		{"unknown type", "mtr", "192.0.2.1", query.StatusDanger,
			"Command mtr not found.", ""},
		{"unknown type empty target", "mtr", "", query.StatusDanger,
			"Command mtr not found.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLogger(t)
			b := NewCommandBuilder(testTemplates(), l)

			res, err := b.Build(tt.queryType, tt.target, testDevice())
			if err != nil {
				t.Fatalf("Build() unexpected error: %v", err)
			}
			if res.Status != tt.status {
				t.Errorf("Status = %s, want %s", res.Status, tt.status)
			}
			if res.Message != tt.message {
				t.Errorf("Message = %q, want %q", res.Message, tt.message)
			}
			if res.Command != tt.command {
				t.Errorf("Command = %q, want %q", res.Command, tt.command)
			}
			if res.Address != "192.0.2.1" || res.Vendor != "cisco_ios" {
				t.Errorf("Address/Vendor = %q/%q", res.Address, res.Vendor)
			}
		})
	}
}

// templateSpy records whether any template was resolved.
type templateSpy struct {
	TemplateResolver
	resolved bool
}

func (s *templateSpy) Resolve(vendor string, afi query.AFI, qt query.Type) (string, error) {
	s.resolved = true
	return s.TemplateResolver.Resolve(vendor, afi, qt)
}

func TestCommandBuilder_UnsupportedVendor(t *testing.T) {
	dev := testDevice()
	dev.Type = "arista_eos"

	for _, qt := range append([]string{"mtr", ""}, typeNames()...) {
		t.Run(qt, func(t *testing.T) {
			l, hook := newTestLogger(t)
			spy := &templateSpy{TemplateResolver: testTemplates()}
			b := NewCommandBuilder(spy, l)

			res, err := b.Build(qt, "192.0.2.1", dev)
			if err != nil {
				t.Fatalf("unsupported vendor must not be an error: %v", err)
			}
			if res.Status != query.StatusDanger {
				t.Errorf("Status = %s, want danger", res.Status)
			}
			if res.Message != "arista_eos is an unsupported network operating system." {
				t.Errorf("Message = %q", res.Message)
			}
			if res.Command != "" || spy.resolved {
				t.Error("no template should be resolved or rendered")
			}
			if e := hook.LastEntry(); e == nil || e.Level != logrus.ErrorLevel {
				t.Errorf("expected error log line, got %+v", e)
			}
		})
	}
}

func typeNames() []string {
	var names []string
	for _, qt := range query.Types() {
		names = append(names, string(qt))
	}
	return names
}

func TestCommandBuilder_MissingTemplate(t *testing.T) {
	l, hook := newTestLogger(t)
	dev := testDevice()
	dev.Type = "partial"
	b := NewCommandBuilder(testTemplates(), l)

	res, err := b.Build("traceroute", "192.0.2.9", dev)
	if err == nil {
		t.Fatalf("missing template must be an error, got %+v", res)
	}
	if res != nil {
		t.Errorf("result should be nil on configuration error, got %+v", res)
	}
	if !errors.Is(err, spec.ErrTemplateNotFound) {
		t.Errorf("error should wrap ErrTemplateNotFound: %v", err)
	}
	if e := hook.LastEntry(); e == nil || e.Level != logrus.ErrorLevel || e.Data["vendor"] != "partial" {
		t.Errorf("expected configuration error log line, got %+v", e)
	}

	// Same vendor, present template: still works.
	res, err = b.Build("bgp_community", "65000:1", dev)
	if err != nil || res.Command != "show community 65000:1" {
		t.Errorf("Build() = %+v, %v", res, err)
	}
}

func TestCommandBuilder_UnrenderableTemplate(t *testing.T) {
	l, _ := newTestLogger(t)
	dev := testDevice()
	dev.Type = "partial"

	_, err := NewCommandBuilder(testTemplates(), l).Build("bgp_route", "192.0.2.0/24", dev)
	if !errors.Is(err, util.ErrUnknownPlaceholder) {
		t.Errorf("error should wrap ErrUnknownPlaceholder: %v", err)
	}
	if errors.Is(err, spec.ErrTemplateNotFound) {
		t.Error("render failure is distinct from a missing template")
	}
}

func TestCommandBuilder_MissingSource(t *testing.T) {
	l, _ := newTestLogger(t)
	dev := testDevice()
	dev.SrcAddrIPv4 = ""

	res, err := NewCommandBuilder(testTemplates(), l).Build("ping", "203.0.113.9", dev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != query.StatusDanger || res.Command != "" {
		t.Errorf("expected danger without command, got %+v", res)
	}
	if !strings.Contains(res.Message, "has no IPv4 source address") {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestCommandBuilder_TargetNotReinterpreted(t *testing.T) {
	l, _ := newTestLogger(t)
	res, err := NewCommandBuilder(testTemplates(), l).Build("bgp_aspath", "{src_addr_ipv4}", testDevice())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Command != `show bgp all quote-regexp "{src_addr_ipv4}"` {
		t.Errorf("Command = %q", res.Command)
	}
}

func TestCommandBuilder_Idempotent(t *testing.T) {
	l, _ := newTestLogger(t)
	b := NewCommandBuilder(testTemplates(), l)
	dev := testDevice()

	for _, qt := range append(typeNames(), "unknown") {
		a, errA := b.Build(qt, "2001:db8::1", dev)
		c, errC := b.Build(qt, "2001:db8::1", dev)
		if !reflect.DeepEqual(a, c) || (errA == nil) != (errC == nil) {
			t.Errorf("Build(%s) not idempotent: %+v/%v vs %+v/%v", qt, a, errA, c, errC)
		}
	}
}

func TestCommandBuilder_Concurrent(t *testing.T) {
	l, _ := newTestLogger(t)
	b := NewCommandBuilder(testTemplates(), l)
	dev := testDevice()

	want, _ := b.Build("ping", "203.0.113.9", dev)

	var wg sync.WaitGroup
	errs := make(chan string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := b.Build("ping", "203.0.113.9", dev)
			if err != nil || !reflect.DeepEqual(got, want) {
				errs <- "concurrent Build() diverged"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestModeFor(t *testing.T) {
	api := []string{"frr"}
	if ModeFor("frr", api) != ModeAPI {
		t.Error("frr should use API mode")
	}
	if ModeFor("cisco_ios", api) != ModeCommand {
		t.Error("cisco_ios should use command mode")
	}
	if ModeFor("frr", nil) != ModeCommand {
		t.Error("empty API vendor list means command mode")
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"api", "command"} {
		if m, err := ParseMode(s); err != nil || string(m) != s {
			t.Errorf("ParseMode(%q) = %q, %v", s, m, err)
		}
	}
	if _, err := ParseMode("ssh"); err == nil {
		t.Error("ParseMode(ssh) should fail")
	}
}
