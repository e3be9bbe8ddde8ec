// Package construct turns a classified looking-glass query into the artifact
// sent downstream: a structured API query or a rendered device command.
//
// Both builders classify through query.Classify, read device fields through
// the Device interface, and log one audit line per call. Neither performs
// I/O; a Builder is safe for concurrent use as long as its TemplateResolver
// is.
package construct

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/newtron-network/lglass/pkg/query"
	"github.com/newtron-network/lglass/pkg/util"
)

// Device is the part of a device profile the builders read.
type Device interface {
	GetAddress() string
	GetSrcAddrIPv4() string
	GetSrcAddrIPv6() string
	GetName() string
	GetType() string
}

// TemplateResolver looks up command templates by vendor, family and query type.
type TemplateResolver interface {
	HasVendor(vendor string) bool
	Resolve(vendor string, afi query.AFI, qt query.Type) (string, error)
}

// Mode selects which builder serves a device.
type Mode string

const (
	ModeAPI     Mode = "api"
	ModeCommand Mode = "command"
)

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAPI, ModeCommand:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode '%s' (valid: api, command)", s)
}

// ModeFor returns ModeAPI for vendors listed in apiVendors and ModeCommand
// for everything else.
func ModeFor(vendor string, apiVendors []string) Mode {
	if util.Contains(apiVendors, vendor) {
		return ModeAPI
	}
	return ModeCommand
}

// sourceFor returns the device source address for the verdict's family.
func sourceFor(v query.Verdict, dev Device) string {
	switch v.AFI {
	case query.AFIIPv4:
		return dev.GetSrcAddrIPv4()
	case query.AFIIPv6:
		return dev.GetSrcAddrIPv6()
	}
	return ""
}

// checkSource rejects ping/traceroute when the device has no source address
// for the target's family. It returns a rejected verdict, or v unchanged.
func checkSource(v query.Verdict, dev Device) query.Verdict {
	if !v.OK() || !v.Type.NeedsSource() || sourceFor(v, dev) != "" {
		return v
	}
	fam := "IPv4"
	if v.AFI == query.AFIIPv6 {
		fam = "IPv6"
	}
	v.Status = query.StatusDanger
	v.Message = fmt.Sprintf("%s has no %s source address.", dev.GetName(), fam)
	return v
}

func logger(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return util.Logger
	}
	return l
}

// logVerdict writes the audit line for one construction: info on success,
// error on rejection.
func logVerdict(l logrus.FieldLogger, mode Mode, dev Device, v query.Verdict) {
	entry := logger(l).
		WithFields(util.QueryFields(dev.GetName(), string(v.Type), v.Target)).
		WithField("mode", string(mode)).
		WithField("status", string(v.Status))
	if v.OK() {
		entry.WithField("afi", string(v.AFI)).Info(v.Message)
		return
	}
	entry.Error(v.Message)
}
