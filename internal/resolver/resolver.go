// Package resolver implements the field-resolution chain (§4.3): a Sigma
// field name, under a profile and logsource, resolves to a target field
// and a status describing how confident that resolution is. Each step of
// the chain is a plain function in a fixed sequence, not a strategy
// interface hierarchy with virtual dispatch — the design notes call this
// out explicitly as a case where polymorphism from the source is better
// modeled as a sequence.
package resolver

import (
	"github.com/Johnny9802/sigma-spl-bridge/internal/profile"
	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
)

// Status is the confidence level of a resolution.
type Status string

const (
	StatusOK        Status = "ok"
	StatusSuggested Status = "suggested"
	StatusMissing   Status = "missing"
)

// Result is the outcome of resolving one Sigma field.
type Result struct {
	SigmaField  string
	TargetField string
	Status      Status
	Transform   string
	Note        string
}

// Resolver resolves Sigma field names against a profile's mappings, the
// built-in CIM table, and the built-in Windows default table, in that
// order, falling back to an identity mapping flagged missing.
type Resolver struct {
	store *profile.Store
	// memo is a per-request memoization table; the resolver itself holds
	// no cache across requests, per §4.3.
	memo map[memoKey]Result
}

type memoKey struct {
	profileID string
	field     string
	category  string
}

// New builds a Resolver bound to a single request's profile store view.
// Callers construct one Resolver per translation.
func New(store *profile.Store) *Resolver {
	return &Resolver{store: store, memo: make(map[memoKey]Result)}
}

// Resolve implements the resolution chain for one Sigma field.
func (r *Resolver) Resolve(sigmaField string, ls sigmarule.LogSource, p profile.Profile) Result {
	key := memoKey{profileID: p.ID, field: sigmaField, category: ls.Category}
	if cached, ok := r.memo[key]; ok {
		return cached
	}
	result := r.resolve(sigmaField, ls, p)
	r.memo[key] = result
	return result
}

func (r *Resolver) resolve(sigmaField string, ls sigmarule.LogSource, p profile.Profile) Result {
	// 1. profile mapping exact match.
	if r.store != nil && p.ID != "" {
		mappings, err := r.store.Mappings(p.ID)
		if err == nil {
			for _, m := range mappings {
				if m.SigmaField == sigmaField {
					if m.Transform != "" && !profile.IsRecognizedTransform(m.Transform) {
						return Result{
							SigmaField:  sigmaField,
							TargetField: m.TargetField,
							Status:      StatusSuggested,
							Note:        "unrecognized transform " + m.Transform + "; target field used as-is",
						}
					}
					return Result{
						SigmaField:  sigmaField,
						TargetField: m.TargetField,
						Status:      StatusOK,
						Transform:   m.Transform,
					}
				}
			}
		}
	}

	// 2. CIM table, only when the profile opts in.
	if p.CIMEnabled {
		if target, ok := lookupCIM(ls.Category, sigmaField); ok {
			return Result{
				SigmaField:  sigmaField,
				TargetField: target,
				Status:      StatusSuggested,
				Note:        "CIM table match for category " + ls.Category,
			}
		}
	}

	// 3. built-in Windows process-creation defaults.
	if target, ok := lookupBuiltin(ls, sigmaField); ok {
		return Result{
			SigmaField:  sigmaField,
			TargetField: target,
			Status:      StatusSuggested,
			Note:        "built-in Windows default mapping",
		}
	}

	// 4. identity fallback.
	return Result{
		SigmaField:  sigmaField,
		TargetField: sigmaField,
		Status:      StatusMissing,
	}
}
