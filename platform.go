package veneer

import (
	"runtime"

	"github.com/agiangrant/veneer/retained"
)

// Platform represents the current operating system/platform
type Platform string

const (
	PlatformMacOS   Platform = "darwin"
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformLinux   Platform = "linux"
	PlatformWindows Platform = "windows"
	PlatformWeb     Platform = "js"
	PlatformUnknown Platform = "unknown"
)

// CurrentPlatform returns the platform the app is running on
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "darwin", "ios":
		return detectDarwinPlatform()
	case "android":
		return PlatformAndroid
	case "linux":
		return PlatformLinux
	case "windows":
		return PlatformWindows
	case "js":
		return PlatformWeb
	default:
		return PlatformUnknown
	}
}

// IsMobile returns true if running on iOS or Android
func (p Platform) IsMobile() bool {
	return p == PlatformIOS || p == PlatformAndroid
}

// IsDesktop returns true if running on macOS, Linux, or Windows
func (p Platform) IsDesktop() bool {
	return p == PlatformMacOS || p == PlatformLinux || p == PlatformWindows
}

// IsApple returns true on macOS and iOS.
func (p Platform) IsApple() bool {
	return p == PlatformMacOS || p == PlatformIOS
}

// ShortcutModifier is the modifier that triggers editing shortcuts: Command
// on Apple platforms, Control elsewhere.
func (p Platform) ShortcutModifier() retained.Modifiers {
	if p.IsApple() {
		return retained.ModSuper
	}
	return retained.ModCtrl
}

// HasPhysicalKeyboard returns true if the platform typically has a physical keyboard
func (p Platform) HasPhysicalKeyboard() bool {
	return p.IsDesktop() || p == PlatformWeb
}
