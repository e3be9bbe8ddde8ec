package construct

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/newtron-network/lglass/pkg/query"
	"github.com/newtron-network/lglass/pkg/util"
)

// CommandResult is the outcome of CommandBuilder.Build. Command is empty
// unless Status is success.
type CommandResult struct {
	Message string       `json:"message"`
	Status  query.Status `json:"status"`
	Address string       `json:"address"`
	Vendor  string       `json:"vendor"`
	Command string       `json:"command,omitempty"`
}

// CommandBuilder renders device commands from vendor templates.
type CommandBuilder struct {
	Templates TemplateResolver
	Log       logrus.FieldLogger // defaults to util.Logger
}

// NewCommandBuilder creates a command builder over templates.
func NewCommandBuilder(templates TemplateResolver, log logrus.FieldLogger) *CommandBuilder {
	return &CommandBuilder{Templates: templates, Log: log}
}

// Build classifies target for queryType and renders the command for dev.
//
// User input problems and unsupported vendors come back as a non-success
// Status with a nil error. A known vendor that lacks a template for the
// request, or a template that cannot be rendered, is a configuration error
// and is returned as an error with a nil result.
func (b *CommandBuilder) Build(queryType, target string, dev Device) (*CommandResult, error) {
	vendor := dev.GetType()
	res := &CommandResult{Address: dev.GetAddress(), Vendor: vendor}

	if !b.Templates.HasVendor(vendor) {
		v := query.Verdict{
			Type:    query.Type(queryType),
			Target:  target,
			Status:  query.StatusDanger,
			Message: fmt.Sprintf("%s is an unsupported network operating system.", vendor),
		}
		logVerdict(b.Log, ModeCommand, dev, v)
		res.Status, res.Message = v.Status, v.Message
		return res, nil
	}

	v := checkSource(query.Classify(queryType, target), dev)
	if !v.OK() {
		logVerdict(b.Log, ModeCommand, dev, v)
		res.Status, res.Message = v.Status, v.Message
		return res, nil
	}

	tmpl, err := b.Templates.Resolve(vendor, v.AFI, v.Type)
	if err != nil {
		b.logConfigError(dev, v, err)
		return nil, fmt.Errorf("constructing %s command for %s: %w", v.Type, dev.GetName(), err)
	}

	cmd, err := util.FormatNamed(tmpl, templateValues(v, dev))
	if err != nil {
		b.logConfigError(dev, v, err)
		return nil, fmt.Errorf("rendering %s command for %s: %w", v.Type, dev.GetName(), err)
	}

	logVerdict(b.Log, ModeCommand, dev, v)
	res.Status, res.Message, res.Command = v.Status, v.Message, cmd
	return res, nil
}

func (b *CommandBuilder) logConfigError(dev Device, v query.Verdict, err error) {
	logger(b.Log).
		WithFields(util.QueryFields(dev.GetName(), string(v.Type), v.Target)).
		WithField("mode", string(ModeCommand)).
		WithField("vendor", dev.GetType()).
		WithError(err).
		Error("command template configuration error")
}

func templateValues(v query.Verdict, dev Device) map[string]string {
	values := make(map[string]string, 2)
	for _, name := range query.AllowedPlaceholders(v.AFI, v.Type) {
		switch name {
		case query.PlaceholderTarget:
			values[name] = v.Target
		case query.PlaceholderSrcAddrIPv4:
			values[name] = dev.GetSrcAddrIPv4()
		case query.PlaceholderSrcAddrIPv6:
			values[name] = dev.GetSrcAddrIPv6()
		}
	}
	return values
}
