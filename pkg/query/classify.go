package query

import (
	"fmt"
	"regexp"

	"github.com/newtron-network/lglass/pkg/util"
)

// Community syntaxes in match priority order. The first match wins.
var communityPatterns = []struct {
	format  CommunityFormat
	re      *regexp.Regexp
	message string
}{
	{CommunityNewFormat, regexp.MustCompile(`^[0-9]{0,5}:[0-9]{1,5}$`), "%s matched new-format community."},
	{Community32Bit, regexp.MustCompile(`^[0-9]{1,10}$`), "%s matched 32 bit community."},
	{CommunityLarge, regexp.MustCompile(`^[0-9]{1,10}:[0-9]{1,10}:[0-9]{1,10}$`), "%s matched large community."},
}

// Verdict is the result of Classify.
type Verdict struct {
	Type    Type
	Target  string
	AFI     AFI
	Status  Status
	Message string

	// Community is set for accepted bgp_community targets.
	Community CommunityFormat

	// Address is set for accepted bgp_route, ping and traceroute targets.
	Address util.Address
}

// OK reports whether the target was accepted.
func (v Verdict) OK() bool {
	return v.Status == StatusSuccess
}

// Classify validates target for the query type named by queryType.
//
// An unknown query type is rejected before the target is looked at. Classify
// never panics and keeps no state between calls.
func Classify(queryType, target string) Verdict {
	qt, ok := ParseType(queryType)
	if !ok {
		return Verdict{
			Type:    Type(queryType),
			Target:  target,
			Status:  StatusDanger,
			Message: fmt.Sprintf("Command %s not found.", queryType),
		}
	}

	v := Verdict{Type: qt, Target: target}
	switch qt {
	case TypeBGPCommunity:
		classifyCommunity(&v)
	case TypeBGPASPath:
		classifyASPath(&v)
	default:
		classifyAddress(&v)
	}
	return v
}

func classifyCommunity(v *Verdict) {
	v.AFI = AFIDual
	for _, p := range communityPatterns {
		if p.re.MatchString(v.Target) {
			v.Status = StatusSuccess
			v.Community = p.format
			v.Message = fmt.Sprintf(p.message, v.Target)
			return
		}
	}
	v.Status = StatusDanger
	v.Message = fmt.Sprintf("%s is an invalid BGP Community Format.", v.Target)
}

// AS_PATH regexes are not pre-validated; the device rejects bad ones.
func classifyASPath(v *Verdict) {
	v.AFI = AFIDual
	if v.Target == "" {
		v.Status = StatusWarning
		v.Message = "AS_PATH regex must be specified."
		return
	}
	v.Status = StatusSuccess
	v.Message = fmt.Sprintf("%s matched AS_PATH regex.", v.Target)
}

func classifyAddress(v *Verdict) {
	addr, err := util.ParseAddress(v.Target)
	if err != nil {
		v.Status = StatusDanger
		v.Message = fmt.Sprintf("%s is an invalid IP Address.", v.Target)
		return
	}

	v.Address = addr
	v.Status = StatusSuccess
	if addr.Family == 4 {
		v.AFI = AFIIPv4
		v.Message = fmt.Sprintf("%s is a valid IPv4 Address.", v.Target)
	} else {
		v.AFI = AFIIPv6
		v.Message = fmt.Sprintf("%s is a valid IPv6 Address.", v.Target)
	}
}
