package queryast

import (
	"net"
	"path"
	"strings"
)

// applyNamedTransform implements the recognized mapping transforms
// (§3: lower, upper, basename, strip_quotes, cidr_to_subnet), run over a
// single string value at compile time so the emitted Match literal is
// already in the target schema's shape.
func applyNamedTransform(name, v string) string {
	switch name {
	case "lower":
		return strings.ToLower(v)
	case "upper":
		return strings.ToUpper(v)
	case "basename":
		return path.Base(strings.ReplaceAll(v, `\`, "/"))
	case "strip_quotes":
		return strings.Trim(v, `"'`)
	case "cidr_to_subnet":
		if _, ipNet, err := net.ParseCIDR(v); err == nil {
			return ipNet.String()
		}
		return v
	default:
		return v
	}
}
