// Package signal generates deterministic waveforms for tests, examples and
// the command line tools.
package signal
