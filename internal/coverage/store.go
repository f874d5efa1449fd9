package coverage

import (
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store holds the process-wide Sysmon and Windows-audit configuration
// snapshots, with the same sync.RWMutex discipline as the profile
// store: any number of concurrent readers, short exclusive
// writes, and at-most-one-active enforced atomically.
type Store struct {
	mu      sync.RWMutex
	sysmon  map[string]*SysmonConfig
	audit   map[string]*WindowsAuditConfig
}

func NewStore() *Store {
	return &Store{
		sysmon: make(map[string]*SysmonConfig),
		audit:  make(map[string]*WindowsAuditConfig),
	}
}

func (s *Store) AddSysmonConfig(c SysmonConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.IsActive {
		s.clearActiveSysmonLocked()
	}
	cp := c
	s.sysmon[c.Name] = &cp
}

func (s *Store) ActiveSysmonConfig() (SysmonConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.sysmon {
		if c.IsActive {
			return *c, true
		}
	}
	return SysmonConfig{}, false
}

func (s *Store) ActivateSysmonConfig(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.sysmon[name]
	if !ok {
		return errNotFound("sysmon config", name)
	}
	s.clearActiveSysmonLocked()
	c.IsActive = true
	return nil
}

func (s *Store) clearActiveSysmonLocked() {
	for _, c := range s.sysmon {
		c.IsActive = false
	}
}

func (s *Store) AddAuditConfig(c WindowsAuditConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.IsActive {
		s.clearActiveAuditLocked()
	}
	cp := c
	s.audit[c.Name] = &cp
}

func (s *Store) ActiveAuditConfig() (WindowsAuditConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.audit {
		if c.IsActive {
			return *c, true
		}
	}
	return WindowsAuditConfig{}, false
}

func (s *Store) ActivateAuditConfig(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.audit[name]
	if !ok {
		return errNotFound("audit config", name)
	}
	s.clearActiveAuditLocked()
	c.IsActive = true
	return nil
}

func (s *Store) clearActiveAuditLocked() {
	for _, c := range s.audit {
		c.IsActive = false
	}
}

// LoadSysmonConfigFile decodes a YAML Sysmon config snapshot from disk and
// adds it to the store.
func (s *Store) LoadSysmonConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var c SysmonConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return err
	}
	s.AddSysmonConfig(c)
	return nil
}

// LoadAuditConfigFile decodes a YAML Windows-audit config snapshot from
// disk and adds it to the store.
func (s *Store) LoadAuditConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var c WindowsAuditConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return err
	}
	s.AddAuditConfig(c)
	return nil
}

type errNotFoundT struct {
	kind, name string
}

func (e errNotFoundT) Error() string {
	return e.kind + " " + e.name + " not found"
}

func errNotFound(kind, name string) error {
	return errNotFoundT{kind: kind, name: name}
}
