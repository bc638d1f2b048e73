//go:build ios

package veneer

func detectDarwinPlatform() Platform {
	return PlatformIOS
}
