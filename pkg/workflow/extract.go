package workflow

import (
	"fmt"
	"path/filepath"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/spf13/afero"
)

// Step is a `uses` entry of a job step.
type Step struct {
	File string
	Line int
	Uses string
}

// ReadSteps reads a workflow file and returns its steps that use actions.
// A relative file is read from dir, and Step.File keeps file as given.
func ReadSteps(fs afero.Fs, dir, file string) ([]*Step, error) {
	p := file
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, file)
	}
	content, err := afero.ReadFile(fs, p)
	if err != nil {
		return nil, fmt.Errorf("read a workflow file: %w", err)
	}
	return ExtractSteps(file, content)
}

// ExtractSteps returns `jobs.<id>.steps[*].uses` entries in document order.
// A workflow without jobs or steps returns no steps and no error.
func ExtractSteps(file string, content []byte) ([]*Step, error) {
	f, err := parser.ParseBytes(content, 0)
	if err != nil {
		return nil, fmt.Errorf("parse a workflow file as YAML: %w", err)
	}
	steps := []*Step{}
	for _, doc := range f.Docs {
		if doc == nil || doc.Body == nil {
			continue
		}
		jobs := findValue(mappingValues(doc.Body), "jobs")
		for _, job := range mappingValues(jobs) {
			stepsNode := findValue(mappingValues(job.Value), "steps")
			seq, ok := unwrap(stepsNode).(*ast.SequenceNode)
			if !ok {
				continue
			}
			for _, stepNode := range seq.Values {
				usesNode := findValue(mappingValues(stepNode), "uses")
				s, ok := unwrap(usesNode).(*ast.StringNode)
				if !ok || s.Value == "" {
					continue
				}
				steps = append(steps, &Step{
					File: file,
					Line: s.GetToken().Position.Line,
					Uses: s.Value,
				})
			}
		}
	}
	return steps, nil
}

// unwrap strips anchors and tags.
func unwrap(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.AnchorNode:
			node = n.Value
		case *ast.TagNode:
			node = n.Value
		default:
			return node
		}
	}
}

func mappingValues(node ast.Node) []*ast.MappingValueNode {
	switch n := unwrap(node).(type) {
	case *ast.MappingNode:
		return n.Values
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{n}
	default:
		return nil
	}
}

func findValue(values []*ast.MappingValueNode, key string) ast.Node {
	for _, value := range values {
		k, ok := value.Key.(*ast.StringNode)
		if !ok {
			continue
		}
		if k.Value == key {
			return value.Value
		}
	}
	return nil
}
