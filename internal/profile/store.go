package profile

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// cimSuggestions is the heuristic CIM field table used by Suggest: Sigma
// field name -> Splunk CIM field name, independent of any profile's own
// mappings. It only fires when the profile has CIMEnabled set.
var cimSuggestions = map[string]string{
	"Image":        "process",
	"CommandLine":  "process",
	"ParentImage":  "parent_process",
	"User":         "user",
	"ComputerName": "dest",
	"EventID":      "signature_id",
	"SourceIp":     "src_ip",
	"DestinationIp": "dest_ip",
	"SourcePort":   "src_port",
	"DestinationPort": "dest_port",
}

// Store is the process-wide Profile/Mapping repository. Every read takes
// RLock; every write takes the exclusive Lock for just long enough to
// mutate the maps. The lock is a sync.RWMutex: readers share it, and a
// writer that is waiting for it blocks new readers, so it is not
// reader-preferring.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	mappings map[string][]Mapping // profile id -> ordered mappings
}

func NewStore() *Store {
	return &Store{
		profiles: make(map[string]*Profile),
		mappings: make(map[string][]Mapping),
	}
}

// List returns every profile, ordered by name for a stable listing.
func (s *Store) List() []Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Store) Get(id string) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return Profile{}, ErrNotFound{Kind: "profile", ID: id}
	}
	return *p, nil
}

// Default returns the current default profile, if one has been created.
func (s *Store) Default() (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles {
		if p.IsDefault {
			return *p, true
		}
	}
	return Profile{}, false
}

// Create inserts a new profile, rejecting a duplicate name and, if the
// caller asked for IsDefault, atomically clearing the previous default so
// at no point do two profiles carry the flag.
func (s *Store) Create(p Profile) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.profiles {
		if existing.Name == p.Name {
			return Profile{}, ErrConflict{Reason: "profile name " + p.Name + " already exists"}
		}
	}
	p.ID = uuid.NewString()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Macros == nil {
		p.Macros = make(map[string]string)
	}
	if p.IsDefault {
		s.clearDefaultLocked()
	}
	cp := p
	s.profiles[p.ID] = &cp
	return cp, nil
}

// Update applies a partial edit via fn, which mutates the profile in
// place; fn runs under the write lock so the read-modify-write is atomic
// with respect to other writers.
func (s *Store) Update(id string, fn func(*Profile)) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return Profile{}, ErrNotFound{Kind: "profile", ID: id}
	}
	wasDefault := p.IsDefault
	fn(p)
	if p.IsDefault && !wasDefault {
		s.clearDefaultExceptLocked(id)
	}
	p.UpdatedAt = time.Now()
	return *p, nil
}

// SetDefault marks id as the default profile and clears the flag on
// every other profile in the same write.
func (s *Store) SetDefault(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return ErrNotFound{Kind: "profile", ID: id}
	}
	s.clearDefaultExceptLocked(id)
	p.IsDefault = true
	p.UpdatedAt = time.Now()
	return nil
}

func (s *Store) clearDefaultLocked() {
	for _, p := range s.profiles {
		p.IsDefault = false
	}
}

func (s *Store) clearDefaultExceptLocked(id string) {
	for pid, p := range s.profiles {
		if pid != id {
			p.IsDefault = false
		}
	}
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[id]; !ok {
		return ErrNotFound{Kind: "profile", ID: id}
	}
	delete(s.profiles, id)
	delete(s.mappings, id)
	return nil
}

// Mappings returns the ordered mapping list for a profile.
func (s *Store) Mappings(profileID string) ([]Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.profiles[profileID]; !ok {
		return nil, ErrNotFound{Kind: "profile", ID: profileID}
	}
	out := make([]Mapping, len(s.mappings[profileID]))
	copy(out, s.mappings[profileID])
	return out, nil
}

// AddMapping appends a mapping, rejecting a duplicate sigma_field within
// the same profile.
func (s *Store) AddMapping(profileID string, m Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profileID]; !ok {
		return ErrNotFound{Kind: "profile", ID: profileID}
	}
	for _, existing := range s.mappings[profileID] {
		if existing.SigmaField == m.SigmaField {
			return ErrConflict{Reason: "sigma_field " + m.SigmaField + " already mapped in this profile"}
		}
	}
	s.mappings[profileID] = append(s.mappings[profileID], m)
	return nil
}

// ReplaceMappings performs a bulk replace of a profile's entire mapping
// list in one write.
func (s *Store) ReplaceMappings(profileID string, ms []Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profileID]; !ok {
		return ErrNotFound{Kind: "profile", ID: profileID}
	}
	s.mappings[profileID] = append([]Mapping(nil), ms...)
	return nil
}

// ImportMappings merges ms into the profile's existing mapping list,
// overwriting any mapping that shares a sigma_field and appending the
// rest, preserving the existing mappings' relative order.
func (s *Store) ImportMappings(profileID string, ms []Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profileID]; !ok {
		return ErrNotFound{Kind: "profile", ID: profileID}
	}
	existing := s.mappings[profileID]
	byField := make(map[string]int, len(existing))
	for i, m := range existing {
		byField[m.SigmaField] = i
	}
	for _, m := range ms {
		if i, ok := byField[m.SigmaField]; ok {
			existing[i] = m
			continue
		}
		existing = append(existing, m)
		byField[m.SigmaField] = len(existing) - 1
	}
	s.mappings[profileID] = existing
	return nil
}

func (s *Store) DeleteMapping(profileID, sigmaField string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ms, ok := s.mappings[profileID]
	if !ok {
		return ErrNotFound{Kind: "mapping", ID: sigmaField}
	}
	for i, m := range ms {
		if m.SigmaField == sigmaField {
			s.mappings[profileID] = append(ms[:i], ms[i+1:]...)
			return nil
		}
	}
	return ErrNotFound{Kind: "mapping", ID: sigmaField}
}

// Suggest returns heuristic CIM target-field guesses for fields, but only
// when the profile has CIMEnabled — otherwise it returns an empty map, as
// §4.2 requires.
func (s *Store) Suggest(profileID string, fields []string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[profileID]
	if !ok {
		return nil, ErrNotFound{Kind: "profile", ID: profileID}
	}
	out := make(map[string]string)
	if !p.CIMEnabled {
		return out, nil
	}
	for _, f := range fields {
		if target, ok := cimSuggestions[f]; ok {
			out[f] = target
		}
	}
	return out, nil
}
