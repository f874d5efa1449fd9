package profile

import (
	"os"

	"gopkg.in/yaml.v3"
)

// fileDoc is the on-disk shape a profile bundle file decodes into: a list
// of profiles, each with its ordered mappings, the CLI's substitute for the
// persistence adapter that owns this state in the full system.
type fileDoc struct {
	Profiles []fileProfile `yaml:"profiles"`
}

type fileProfile struct {
	Name              string            `yaml:"name"`
	Description       string            `yaml:"description,omitempty"`
	DefaultIndex      string            `yaml:"default_index,omitempty"`
	DefaultSourcetype string            `yaml:"default_sourcetype,omitempty"`
	CIMEnabled        bool              `yaml:"cim_enabled,omitempty"`
	IsDefault         bool              `yaml:"is_default,omitempty"`
	Macros            map[string]string `yaml:"macros,omitempty"`
	Mappings          []fileMapping     `yaml:"mappings,omitempty"`
}

type fileMapping struct {
	SigmaField  string `yaml:"sigma_field"`
	TargetField string `yaml:"target_field"`
	Transform   string `yaml:"transform,omitempty"`
	Category    string `yaml:"category,omitempty"`
	Notes       string `yaml:"notes,omitempty"`
}

// LoadFile decodes a YAML profile bundle from disk and inserts every
// profile (and its mappings) into store, in file order, the way
// coverage.Store.LoadSysmonConfigFile seeds that store's process-wide
// state from disk.
func LoadFile(store *Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	for _, fp := range doc.Profiles {
		p, err := store.Create(Profile{
			Name:              fp.Name,
			Description:       fp.Description,
			DefaultIndex:      fp.DefaultIndex,
			DefaultSourcetype: fp.DefaultSourcetype,
			CIMEnabled:        fp.CIMEnabled,
			IsDefault:         fp.IsDefault,
			Macros:            fp.Macros,
		})
		if err != nil {
			return err
		}
		for _, fm := range fp.Mappings {
			if err := store.AddMapping(p.ID, Mapping{
				SigmaField:  fm.SigmaField,
				TargetField: fm.TargetField,
				Transform:   fm.Transform,
				Category:    fm.Category,
				Notes:       fm.Notes,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}
