// Package mahito provides the command-line interface for the mahito metadata
// cleaner. It wires flags and config files into engine options, runs the
// selected command and renders the report.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/victormicco/mahito/cmd/mahito"
//	func main() { mahito.Execute() }
package mahito
