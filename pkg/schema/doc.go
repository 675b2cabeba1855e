// Package schema defines the message contracts exchanged between the
// component-design, assembly and simulation agents of the pipeline:
// InterfaceContract, the Intent/Package request-response pairs, and the
// simulation request/report with their geometric sub-entities.
//
// Every entity validates eagerly at construction (New* constructors) and at
// decode (Decode* helpers); a malformed message never enters the pipeline.
// Relationships between entities are expressed purely through identifier
// strings; no entity owns another by reference.
//
// Timestamps default to the current UTC time at construction. Receivers must
// treat them as advisory provenance only, never as a sequencing guarantee:
// the producing agents do not share a synchronized clock.
package schema
