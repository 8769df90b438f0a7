package xattr

// Backwards-compatible aliases for the pre-namespace API. They take
// nofollow positionally, expect fully qualified attribute names and
// offer no namespace convenience. All four are thin adapters over the
// primary operations and share their exact semantics otherwise.

// Listxattr returns the attribute names of item.
//
// Deprecated: use List.
func Listxattr(item interface{}, nofollow bool) ([]string, error) {
	return List(item, nofollowOpts(nofollow)...)
}

// Getxattr returns the value of the attribute name.
//
// Deprecated: use Get.
func Getxattr(item interface{}, name string, nofollow bool) ([]byte, error) {
	return Get(item, name, nofollowOpts(nofollow)...)
}

// Setxattr stores value under name. flags is 0, XATTR_CREATE or
// XATTR_REPLACE.
//
// Deprecated: use Set.
func Setxattr(item interface{}, name string, value []byte, flags int, nofollow bool) error {
	opts := append(nofollowOpts(nofollow), WithFlags(flags))
	return Set(item, name, value, opts...)
}

// Removexattr deletes the attribute name.
//
// Deprecated: use Remove.
func Removexattr(item interface{}, name string, nofollow bool) error {
	return Remove(item, name, nofollowOpts(nofollow)...)
}

func nofollowOpts(nofollow bool) []Option {
	if nofollow {
		return []Option{NoFollow}
	}
	return nil
}
