//go:build windows

package osSpecific

import "golang.org/x/sys/windows"

const utf8CodePage = 65001

var (
	kernel32           = windows.NewLazySystemDLL("kernel32.dll")
	setConsoleOutputCP = kernel32.NewProc("SetConsoleOutputCP")
	setConsoleCP       = kernel32.NewProc("SetConsoleCP")
)

// SetupConsole switches the console to the UTF-8 code page so model names
// and banners render correctly. Runs once at startup; the process exits
// shortly after, so there is no teardown.
func SetupConsole() {
	setConsoleOutputCP.Call(uintptr(utf8CodePage))
	setConsoleCP.Call(uintptr(utf8CodePage))
}
