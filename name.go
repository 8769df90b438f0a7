package xattr

import "strings"

// Attribute namespaces known to the kernel. The namespace governs
// access control (see xattr(7)); NsUser is the only one generally
// writable by unprivileged processes and the conventional default.
var (
	NsUser     = []byte("user")
	NsSystem   = []byte("system")
	NsTrusted  = []byte("trusted")
	NsSecurity = []byte("security")
)

// mergeName combines a namespace and a bare key into a fully qualified
// attribute name. An empty namespace leaves the key untouched.
func mergeName(ns []byte, key string) string {
	if len(ns) == 0 {
		return key
	}
	return string(ns) + "." + key
}

// matchName checks a fully qualified name against an optional
// namespace filter. With an empty filter every name matches and is
// returned unchanged. With a non-empty filter a name matches only when
// it consists of the namespace, the separator and a non-empty key; the
// bare key is returned.
func matchName(ns []byte, name string) (string, bool) {
	if len(ns) == 0 {
		return name, true
	}
	if len(name) <= len(ns)+1 {
		return "", false
	}
	if name[len(ns)] != '.' || !strings.HasPrefix(name, string(ns)) {
		return "", false
	}
	return name[len(ns)+1:], true
}

// splitName splits a fully qualified name at the first separator.
// Names without a separator have an empty namespace.
func splitName(name string) (ns, key string) {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
