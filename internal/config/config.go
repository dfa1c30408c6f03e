// ABOUTME: Settings loading with global + project config merge
// ABOUTME: YAML configuration via gopkg.in/yaml.v3; project values override global ones

package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings holds the merged configuration.
type Settings struct {
	LogLevel     string            `yaml:"log_level,omitempty"`
	ScratchName  string            `yaml:"scratch_name,omitempty"`
	PromptSuffix string            `yaml:"prompt_suffix,omitempty"`
	Shell        string            `yaml:"shell,omitempty"`
	Aliases      map[string]string `yaml:"aliases,omitempty"`
	Keys         RawKeybindings    `yaml:"keys,omitempty"`
}

// Load reads and merges global and project-local settings.
// Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	ResolveEnvVars(merged)
	return merged, merged.Validate()
}

// LoadFile reads a single settings file with no merging. A missing file is an error.
func LoadFile(path string) (*Settings, error) {
	s, err := loadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	ResolveEnvVars(s)
	return s, s.Validate()
}

// loadFile reads Settings from a YAML file. Returns zero Settings if the file
// does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// Validate reports settings that cannot be honoured.
func (s *Settings) Validate() error {
	switch s.Shell {
	case "", "interp", "exec":
	default:
		return fmt.Errorf("invalid shell %q: want interp or exec", s.Shell)
	}
	for name := range s.Aliases {
		if name == "" {
			return errors.New("alias with empty name")
		}
	}
	return checkAliasCycles(s.Aliases)
}

// checkAliasCycles rejects aliases whose command word leads back to an alias
// already on the chain, such as "loop: loop" or "a: b" with "b: a".
func checkAliasCycles(aliases map[string]string) error {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, start := range names {
		chain := []string{start}
		seen := map[string]bool{start: true}
		for name := start; ; {
			fields := strings.Fields(aliases[name])
			if len(fields) == 0 {
				break
			}
			next := fields[0]
			if _, isAlias := aliases[next]; !isAlias {
				break
			}
			chain = append(chain, next)
			if seen[next] {
				return fmt.Errorf("alias cycle: %s", strings.Join(chain, " -> "))
			}
			seen[next] = true
			name = next
		}
	}
	return nil
}

// merge overlays project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}
	if project.ScratchName != "" {
		result.ScratchName = project.ScratchName
	}
	if project.PromptSuffix != "" {
		result.PromptSuffix = project.PromptSuffix
	}
	if project.Shell != "" {
		result.Shell = project.Shell
	}

	result.Aliases = mergeMap(global.Aliases, project.Aliases)
	result.Keys = mergeMap(global.Keys, project.Keys)

	return &result
}

func mergeMap[V any](base, over map[string]V) map[string]V {
	if len(base) == 0 && len(over) == 0 {
		return nil
	}
	out := make(map[string]V, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}
