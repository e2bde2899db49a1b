package taxonomy

import (
	"context"
	"errors"
	"io"
	"maps"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// Group names a family of reference codes.
type Group string

const (
	GroupBorough            Group = "borough"
	GroupExecutor           Group = "executor"
	GroupProjectType        Group = "projectType"
	GroupProjectCategory    Group = "projectCategory"
	GroupRequestor          Group = "requestor"
	GroupInterventionType   Group = "interventionType"
	GroupAssetType          Group = "assetType"
	GroupProgramType        Group = "programType"
	GroupServicePriority    Group = "servicePriority"
	GroupMedalType          Group = "medalType"
	GroupProjectSubCategory Group = "projectSubCategory"
)

// Source returns the codes of a group. An unknown group has no codes.
type Source interface {
	Codes(ctx context.Context, group Group) ([]string, error)
}

// Item is one reference entry as stored in seed files.
type Item struct {
	Code  string            `yaml:"code"`
	Label map[string]string `yaml:"label,omitempty"`
}

// MemorySource serves codes from memory. It is safe for concurrent use.
type MemorySource struct {
	mu    sync.RWMutex
	codes map[Group][]string
}

func NewMemorySource(codes map[Group][]string) *MemorySource {
	s := &MemorySource{codes: make(map[Group][]string, len(codes))}
	for g, c := range codes {
		s.codes[g] = slices.Clone(c)
	}
	return s
}

func (s *MemorySource) Codes(ctx context.Context, group Group) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.codes[group]), nil
}

// Set replaces the codes of a group.
func (s *MemorySource) Set(group Group, codes ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[group] = slices.Clone(codes)
}

// Groups lists the groups holding codes, sorted.
func (s *MemorySource) Groups() []Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.codes))
}

// LoadYAML reads a seed document mapping each group to its items:
//
//	borough:
//	  - code: VM
//	    label: {fr: Ville-Marie}
//	projectType:
//	  - code: integrated
func LoadYAML(r io.Reader) (*MemorySource, error) {
	var doc map[Group][]Item
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrInvalidSeed, err)
	}

	codes := make(map[Group][]string, len(doc))
	for group, items := range doc {
		for i, item := range items {
			if item.Code == "" {
				return nil, seedError(group, i)
			}
			codes[group] = append(codes[group], item.Code)
		}
	}
	return NewMemorySource(codes), nil
}

// LoadYAMLFile is LoadYAML over a file.
func LoadYAMLFile(path string) (*MemorySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidSeed, err)
	}
	defer f.Close()
	return LoadYAML(f)
}
