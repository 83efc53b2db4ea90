package space

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk problem document. JSON documents parse too.
//
//	name: romania
//	kind: graph
//	start: Arad
//	goal: Bucharest
//	undirected: true
//	edges:
//	  - {from: Arad, to: Sibiu, cost: 140}
//	heuristic:
//	  Arad: 366
//
//	name: maze
//	kind: grid
//	grid: |
//	  S..#
//	  .#.G
type File struct {
	Name       string             `yaml:"name" json:"name"`
	Kind       string             `yaml:"kind" json:"kind"`
	Start      string             `yaml:"start,omitempty" json:"start,omitempty"`
	Goal       string             `yaml:"goal,omitempty" json:"goal,omitempty"`
	Undirected bool               `yaml:"undirected,omitempty" json:"undirected,omitempty"`
	Edges      []FileEdge         `yaml:"edges,omitempty" json:"edges,omitempty"`
	Heuristic  map[string]float64 `yaml:"heuristic,omitempty" json:"heuristic,omitempty"`
	Grid       string             `yaml:"grid,omitempty" json:"grid,omitempty"`
}

// FileEdge is one edge of a graph document.
type FileEdge struct {
	From   string  `yaml:"from" json:"from"`
	To     string  `yaml:"to" json:"to"`
	Cost   float64 `yaml:"cost" json:"cost"`
	Action string  `yaml:"action,omitempty" json:"action,omitempty"`
}

// Parse decodes a problem document and builds its Instance.
func Parse(data []byte) (Instance, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProblem, err)
	}
	return f.Instance()
}

// Load reads and parses a problem file. An unnamed problem takes the file
// name without extension.
func Load(path string) (Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidProblem, path, err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	inst, err := f.Instance()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

// Instance builds the state space the document describes.
func (f File) Instance() (Instance, error) {
	name := f.Name
	if name == "" {
		name = "unnamed"
	}

	switch strings.ToLower(f.Kind) {
	case KindGraph:
		return f.graphInstance(name)
	case KindGrid:
		if strings.TrimSpace(f.Grid) == "" {
			return nil, fmt.Errorf("%w: grid document has no grid", ErrInvalidProblem)
		}
		return ParseGrid(name, f.Grid)
	case "":
		return nil, fmt.Errorf("%w: missing kind (want %s or %s)", ErrInvalidProblem, KindGraph, KindGrid)
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidProblem, f.Kind)
}

func (f File) graphInstance(name string) (Instance, error) {
	if f.Start == "" || f.Goal == "" {
		return nil, fmt.Errorf("%w: graph document needs start and goal", ErrInvalidProblem)
	}

	g := NewGraph(name)
	for i, e := range f.Edges {
		if e.From == "" || e.To == "" {
			return nil, fmt.Errorf("%w: edge %d needs from and to", ErrInvalidProblem, i)
		}
		var err error
		switch {
		case e.Action != "":
			err = g.AddLabeledEdge(e.From, e.To, e.Action, e.Cost)
			if err == nil && f.Undirected {
				err = g.AddLabeledEdge(e.To, e.From, e.Action, e.Cost)
			}
		case f.Undirected:
			err = g.AddUndirectedEdge(e.From, e.To, e.Cost)
		default:
			err = g.AddEdge(e.From, e.To, e.Cost)
		}
		if err != nil {
			return nil, err
		}
	}
	for node, h := range f.Heuristic {
		if err := g.SetHeuristic(node, h); err != nil {
			return nil, err
		}
	}
	return NewGraphInstance(g, f.Start, f.Goal)
}
