package fsmeta

func removableAttribute(name string) bool {
	// SIP keeps this one; removal always fails.
	return name != "com.apple.rootless"
}
