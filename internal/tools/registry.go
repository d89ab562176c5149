// Package tools provides the operation catalog for the command planner.
//
// Every operation clusterpilot can request of the executor is described by
// a Descriptor: its name, argument contract, result kind, and example
// phrasings. The Registry is built once at startup and is immutable
// afterwards, so concurrent reads need no synchronization.
package tools

import (
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/clusterpilot/internal/schema"
)

// ResultKind tags the shape of result an operation produces.
type ResultKind string

const (
	// ResultList is a homogeneous collection of resources.
	ResultList ResultKind = "list"
	// ResultDetail is a single resource description.
	ResultDetail ResultKind = "detail"
	// ResultLogs is raw log text.
	ResultLogs ResultKind = "logs"
	// ResultMetrics is usage/metric rows.
	ResultMetrics ResultKind = "metrics"
	// ResultAck is a bare acknowledgement of a mutation.
	ResultAck ResultKind = "ack"
)

// Presentation hints consumed by rendering surfaces. The planner echoes
// the descriptor's default unless the model overrides it.
const (
	HintTable  = "table"
	HintDetail = "detail"
	HintLogs   = "logs"
	HintText   = "text"
)

// PresentationHints is the closed set of legal hints.
var PresentationHints = []string{HintTable, HintDetail, HintLogs, HintText}

// Descriptor describes one operation the external executor can run.
// Descriptors are immutable after registry construction.
type Descriptor struct {
	// Name is the unique operation key, consumed verbatim by the executor.
	Name string

	// Description is a one-line summary rendered into planner prompts.
	Description string

	// Arguments is the argument contract validated against plan output.
	Arguments schema.Shape

	// Result tags the produced result shape.
	Result ResultKind

	// PresentationHint is the default rendering for the result.
	PresentationHint string

	// Examples are sample operator phrasings, in priority order.
	Examples []string
}

// UnknownToolError indicates a name that does not resolve in the registry.
// The message carries a truncated sample of valid names for operator
// debugging.
type UnknownToolError struct {
	Name  string
	Known []string
}

func (e *UnknownToolError) Error() string {
	sample := e.Known
	suffix := ""
	if len(sample) > 5 {
		sample = sample[:5]
		suffix = ", ..."
	}
	return fmt.Sprintf("unknown tool %q (valid tools include: %s%s)",
		e.Name, strings.Join(sample, ", "), suffix)
}

// Registry maps operation names to descriptors. Construct with
// NewRegistry and inject where needed; reads are lock-free because the
// registry never changes after construction.
type Registry struct {
	ordered []Descriptor
	byName  map[string]int
}

// NewRegistry builds a registry from descriptors in declaration order.
// Names must be unique.
func NewRegistry(descriptors []Descriptor) (*Registry, error) {
	r := &Registry{
		ordered: make([]Descriptor, 0, len(descriptors)),
		byName:  make(map[string]int, len(descriptors)),
	}
	for _, d := range descriptors {
		if d.Name == "" {
			return nil, fmt.Errorf("descriptor with empty name")
		}
		if _, dup := r.byName[d.Name]; dup {
			return nil, fmt.Errorf("duplicate tool name %q", d.Name)
		}
		r.byName[d.Name] = len(r.ordered)
		r.ordered = append(r.ordered, d)
	}
	return r, nil
}

// Lookup resolves a name exactly and case-sensitively.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	i, ok := r.byName[name]
	if !ok {
		return nil, &UnknownToolError{Name: name, Known: r.Names()}
	}
	return &r.ordered[i], nil
}

// List returns all descriptors in declaration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Names returns all tool names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.ordered))
	for i, d := range r.ordered {
		names[i] = d.Name
	}
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// DescribeArguments renders a tool's argument contract as prompt text.
// The rendering is for prompts only and is never used for validation.
func (r *Registry) DescribeArguments(name string) (string, error) {
	d, err := r.Lookup(name)
	if err != nil {
		return "", err
	}

	if len(d.Arguments.Fields) == 0 {
		return "(no arguments)", nil
	}

	var sb strings.Builder
	for i, f := range d.Arguments.Fields {
		if i > 0 {
			sb.WriteString("\n")
		}
		req := "optional"
		if f.Required {
			req = "required"
		}
		kind := string(f.Kind)
		if f.Kind == schema.KindEnum {
			kind = "one of " + strings.Join(f.Enum, "|")
		}
		fmt.Fprintf(&sb, "- %s (%s, %s)", f.Name, kind, req)
		if f.Description != "" {
			fmt.Fprintf(&sb, ": %s", f.Description)
		}
		if f.Default != nil {
			fmt.Fprintf(&sb, " [default: %v]", f.Default)
		}
	}
	return sb.String(), nil
}
