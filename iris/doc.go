// Package iris re-exports the root SDK package so imports of the form
// github.com/iris-hq/iris-golang/iris resolve to the same API surface.
package iris
