package tween

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Profiles maps names to reusable tween settings, typically loaded from a
// YAML file such as:
//
//	fade_in:
//	  duration: 0.25
//	  ease: OutQuad
//	pulse:
//	  duration: 0.5
//	  ease: InOutSine
//	  cycles: -1
//	  cycle_mode: Yoyo
type Profiles map[string]Settings

// ParseProfiles decodes YAML profiles and checks each of them.
func ParseProfiles(data []byte) (Profiles, error) {
	var p Profiles
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	for _, name := range p.Names() {
		st := p[name]
		if _, err := st.normalize(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
	}
	return p, nil
}

// LoadProfiles reads and parses the YAML file at path.
func LoadProfiles(path string) (Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	return ParseProfiles(data)
}

// Get returns the named settings.
func (p Profiles) Get(name string) (Settings, bool) {
	st, ok := p[name]
	return st, ok
}

// Names returns the profile names in sorted order.
func (p Profiles) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
