// Package query turns raw list-request parameters into a [models.Query]
// descriptor and renders descriptors into squirrel SELECT builders.
//
// Parsing is split into chainable steps (filter, sort, field limiting,
// pagination). Each step is a pure transformation of the descriptor; nothing
// touches the database until a repository executes the built statement.
package query
