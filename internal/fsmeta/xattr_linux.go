package fsmeta

import "strings"

// Only the user namespace is owned by the file's user; security.*,
// trusted.* and system.* hold ACLs and labels that keep the file usable.
func removableAttribute(name string) bool {
	return strings.HasPrefix(name, "user.")
}
