// Package env keeps names of environment variables with special significance
// to Marsh.
package env

// Environment variables with special significance to Marsh.
const (
	HOME           = "HOME"
	PATH           = "PATH"
	SHLVL          = "SHLVL"
	XDG_STATE_HOME = "XDG_STATE_HOME"
)
