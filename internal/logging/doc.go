// Package logging provides the structured logger of max7219ctl, built on
// log/slog. The driver packages never log; only the command line tool does.
package logging
