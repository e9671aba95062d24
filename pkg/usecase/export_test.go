package usecase

// SwapOpenURL replaces the browser launcher and returns a restore function.
func SwapOpenURL(f func(string) error) func() {
	orig := openURL
	openURL = f
	return func() { openURL = orig }
}
