// Package app wires the solver to its inputs and outputs. It defines the App
// struct, its configuration and the run lifecycle: load the dictionary once,
// solve every board, report, and optionally publish the results or keep
// serving solve requests over HTTP. It is decoupled from any specific
// entrypoint like a CLI.
package app
