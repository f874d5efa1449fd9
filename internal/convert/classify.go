package convert

import (
	"github.com/Johnny9802/sigma-spl-bridge/internal/profile"
	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
	"github.com/Johnny9802/sigma-spl-bridge/internal/splrecognizer"
	"github.com/Johnny9802/sigma-spl-bridge/internal/xlaterr"
)

// classifySigmaErr maps one of sigmarule's concrete error types onto the
// stable xlaterr.Kind taxonomy (§7), anchoring it at location. Anything
// this switch doesn't recognize is a programmer-error bug surfaced as
// Internal rather than silently swallowed.
func classifySigmaErr(err error, location string) *xlaterr.Located {
	switch err.(type) {
	case sigmarule.ErrInvalidYaml:
		return xlaterr.At(xlaterr.InvalidYaml, location, err)
	case sigmarule.ErrUnknownModifier:
		return xlaterr.At(xlaterr.UnknownModifier, location, err)
	case sigmarule.ErrUnresolvedSelection:
		return xlaterr.At(xlaterr.UnresolvedSelection, location, err)
	case sigmarule.ErrInvalidSigma, sigmarule.ErrEmptySelection,
		sigmarule.ErrUnsupportedToken, sigmarule.ErrInvalidCondition:
		return xlaterr.At(xlaterr.InvalidSigma, location, err)
	default:
		return xlaterr.At(xlaterr.Internal, location, err)
	}
}

// classifyProfileErr maps profile.Store errors onto NotFound/Conflict.
func classifyProfileErr(err error, location string) *xlaterr.Located {
	switch err.(type) {
	case profile.ErrNotFound:
		return xlaterr.At(xlaterr.NotFound, location, err)
	case profile.ErrConflict:
		return xlaterr.At(xlaterr.Conflict, location, err)
	default:
		return xlaterr.At(xlaterr.Internal, location, err)
	}
}

// classifySplErr maps splrecognizer errors onto UnsupportedSpl.
func classifySplErr(err error, location string) *xlaterr.Located {
	switch err.(type) {
	case splrecognizer.ErrUnsupportedSpl, splrecognizer.ErrEmptyQuery:
		return xlaterr.At(xlaterr.UnsupportedSpl, location, err)
	default:
		return xlaterr.At(xlaterr.Internal, location, err)
	}
}
