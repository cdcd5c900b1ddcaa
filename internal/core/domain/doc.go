// Package domain defines the core entities for sahaaya.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Condition: a symptom cluster with multilingual keywords and advice
//   - KnowledgeBase: the immutable condition table and message templates
//   - Assessment: the severity/urgency verdict for one input
//   - GuidanceResult: the unit returned to callers of Evaluate
//   - LocalResource, EmergencyProtocol: emergency reference data
//   - Consultation: an append-only record of a processed query
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
