// Package mocks provides hand-written in-memory test doubles for the store
// interfaces. They keep documents in insertion order and evaluate equality
// filters through the documents' JSON form, which is the same field naming
// the real storage layer queries against.
package mocks
