package feeddistill

import "strings"

// User is an account seen on the page.
type User struct {
	// Handle is the account's unique screen name without the leading "@".
	Handle    string `json:"handle,omitempty" yaml:"handle,omitempty"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Bio       string `json:"bio,omitempty" yaml:"bio,omitempty"`
	Verified  bool   `json:"verified,omitempty" yaml:"verified,omitempty"`
	Protected bool   `json:"protected,omitempty" yaml:"protected,omitempty"`
}

// Key returns the identity used to deduplicate users. Handles are case-insensitive.
func (u User) Key() string {
	return strings.ToLower(NormalizeHandle(u.Handle))
}

// Empty reports whether the user has neither a handle nor a name.
func (u User) Empty() bool {
	return u.Handle == "" && u.Name == ""
}

// NormalizeHandle trims whitespace and a leading "@" from a handle.
func NormalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}
