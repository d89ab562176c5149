// Package services aggregates constructed service instances for wiring
// into the HTTP server and CLI commands.
package services

import (
	"github.com/fyrsmithlabs/clusterpilot/internal/diagnosis"
	"github.com/fyrsmithlabs/clusterpilot/internal/planner"
	"github.com/fyrsmithlabs/clusterpilot/internal/tools"
)

// Registry provides access to all clusterpilot services.
// Use accessor methods to retrieve individual services.
type Registry interface {
	Planner() planner.Service
	Diagnosis() diagnosis.Service
	Tools() *tools.Registry
}

// Options configures the registry with service instances.
type Options struct {
	Planner   planner.Service
	Diagnosis diagnosis.Service
	Tools     *tools.Registry
}

// registry is the concrete implementation of Registry.
type registry struct {
	planner   planner.Service
	diagnosis diagnosis.Service
	tools     *tools.Registry
}

// NewRegistry creates a new service registry.
func NewRegistry(opts Options) Registry {
	return &registry{
		planner:   opts.Planner,
		diagnosis: opts.Diagnosis,
		tools:     opts.Tools,
	}
}

func (r *registry) Planner() planner.Service     { return r.planner }
func (r *registry) Diagnosis() diagnosis.Service { return r.diagnosis }
func (r *registry) Tools() *tools.Registry       { return r.tools }
