// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// GuidanceService runs the rule-based triage pipeline and layers the
// optional collaborators (cache, enhancer, resource store, log sinks)
// around it. A failing collaborator becomes a result warning.
package services
