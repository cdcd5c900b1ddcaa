// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - KnowledgeSource: Loads the knowledge base. Failure is fatal.
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ResourceStore: Local healthcare resources. Without it, emergency contacts fall back to national hotlines.
//   - ProtocolStore: First-aid protocols. Without it, the generic protocol is returned.
//   - ConsultationLog: Append-only query log. Failures are reported as result warnings.
//   - GuidanceCache: Response cache keyed by request fingerprint.
//   - AdviceEnhancer: Rewrites rule-based advice. Without it, guidance is offline.
//   - TextProcessor: Input normalisation before keyword matching.
//   - SchedulerStore: Maintenance task state.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
