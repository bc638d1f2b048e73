//go:build darwin && !ios

package veneer

func detectDarwinPlatform() Platform {
	return PlatformMacOS
}
