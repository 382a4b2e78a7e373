// Package report turns a finished run into its outputs: the JSON report
// file, the human summary and the exit gate.
package report
