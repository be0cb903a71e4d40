//go:build !windows

package osSpecific

// SetupConsole is a no-op outside windows; terminals are UTF-8 already.
func SetupConsole() {}
