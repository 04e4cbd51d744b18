// Package pipeline sequences the retrieval stages: taxonomy resolution,
// history-backed search, bounded batch fetch, length filtering, and artifact
// persistence.
//
// The only remote contract is Retriever. This keeps the pipeline swappable
// and testable without a network.
package pipeline
