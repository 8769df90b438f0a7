package sysx

import "golang.org/x/sys/unix"

// Linux has no separate ENOATTR errno; "no such attribute" is reported
// as ENODATA.
const ENOATTR = unix.ENODATA
