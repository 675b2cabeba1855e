// Package llm discovers which model a locally hosted OpenAI-compatible
// inference server is serving and builds chat clients against it. The rest of
// the contract layer depends only on the ModelResolver interface; everything
// here is incidental HTTP plumbing with no state the data model relies on.
package llm
