// Package mechlink is the shared contract layer for a multi-agent mechanical
// design pipeline: the message schemas exchanged between the component-design,
// assembly and simulation agents (pkg/schema), a resolution engine for
// versioned prompt templates (pkg/prompt), and discovery of locally hosted
// inference endpoints (pkg/llm).
//
// The root package wires those pieces into a Toolkit that agents construct
// once at startup and share.
package mechlink
