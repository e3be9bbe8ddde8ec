package construct

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/newtron-network/lglass/pkg/query"
)

// APIQuery is the payload sent to a device's looking-glass API.
type APIQuery struct {
	Cmd    string `json:"cmd"`
	AFI    string `json:"afi"`
	Source string `json:"source,omitempty"` // ping and traceroute only
	Target string `json:"target"`
}

// APIResult is the outcome of APIBuilder.Build. Query is only complete when
// Status is success; on rejection it may be partial or nil.
type APIResult struct {
	Message string       `json:"message"`
	Status  query.Status `json:"status"`
	Address string       `json:"address"`
	Query   *APIQuery    `json:"query,omitempty"`
}

// JSON returns the serialized query payload.
func (r *APIResult) JSON() ([]byte, error) {
	return json.Marshal(r.Query)
}

// APIBuilder builds structured API queries.
type APIBuilder struct {
	Log logrus.FieldLogger // defaults to util.Logger
}

// NewAPIBuilder creates an API builder logging to log (nil for util.Logger).
func NewAPIBuilder(log logrus.FieldLogger) *APIBuilder {
	return &APIBuilder{Log: log}
}

// Build classifies target for queryType and builds the API query for dev.
func (b *APIBuilder) Build(queryType, target string, dev Device) *APIResult {
	v := checkSource(query.Classify(queryType, target), dev)
	logVerdict(b.Log, ModeAPI, dev, v)

	res := &APIResult{
		Message: v.Message,
		Status:  v.Status,
		Address: dev.GetAddress(),
	}
	if _, known := query.ParseType(queryType); !known {
		return res
	}

	res.Query = &APIQuery{
		Cmd:    queryType,
		AFI:    string(v.AFI),
		Target: target,
	}
	if v.OK() && v.Type.NeedsSource() {
		res.Query.Source = sourceFor(v, dev)
	}
	return res
}
