package sysx

import "golang.org/x/sys/unix"

// MacOS reports a missing attribute as ENOATTR (93), not ENODATA.
const ENOATTR = unix.ENOATTR
