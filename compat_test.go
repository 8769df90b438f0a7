package xattr

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/iustin/goxattr/internal/sysx"
	"golang.org/x/sys/unix"
)

// The deprecated aliases must behave exactly like the primary
// operations, minus the namespace conveniences.
func TestCompatSetGetRemove(t *testing.T) {
	dir := testDir(t)
	fn := testFile(t, dir, "TestCompatSetGetRemove")
	f, err := os.Open(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	for _, item := range []interface{}{fn, f, int(f.Fd())} {
		names, err := Listxattr(item, false)
		if err != nil {
			t.Fatal(err)
		}
		if len(names) > 0 {
			t.Fatalf("expected empty listing, got %v", names)
		}
		val := []byte("abc\x00def")
		if err := Setxattr(item, "user.compat", val, 0, false); err != nil {
			t.Fatal(err)
		}
		names, err = Listxattr(item, false)
		if err != nil {
			t.Fatal(err)
		}
		if len(names) != 1 || names[0] != "user.compat" {
			t.Errorf("wrong listing: %v", names)
		}
		have, err := Getxattr(item, "user.compat", false)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(val, have) {
			t.Errorf("wrong readback value: %q", have)
		}
		if err := Removexattr(item, "user.compat", false); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCompatFlags(t *testing.T) {
	fn := testFile(t, testDir(t), "TestCompatFlags")
	err := Setxattr(fn, "user.test", []byte("abc"), XATTR_REPLACE, false)
	if !errors.Is(err, sysx.ENOATTR) {
		t.Errorf("replace on missing: want ENOATTR, have %v", err)
	}
	if err := Setxattr(fn, "user.test", []byte("abc"), XATTR_CREATE, false); err != nil {
		t.Fatal(err)
	}
	err = Setxattr(fn, "user.test", []byte("xyz"), XATTR_CREATE, false)
	if !errors.Is(err, unix.EEXIST) {
		t.Errorf("create on existing: want EEXIST, have %v", err)
	}
}

// Positional nofollow on the aliases addresses the symlink itself.
func TestCompatNoFollow(t *testing.T) {
	dir := testDir(t)
	target, link := testSymlink(t, dir, false)
	if err := Setxattr(target, "user.compat", []byte("abc"), 0, false); err != nil {
		t.Fatal(err)
	}
	// Following: sees the target's attribute.
	names, err := Listxattr(link, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 {
		t.Errorf("wrong listing through link: %v", names)
	}
	// Not following: the link itself has none.
	names, err = Listxattr(link, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Errorf("attributes on the link itself: %v", names)
	}
	if _, err := Getxattr(link, "user.compat", true); !errors.Is(err, sysx.ENOATTR) {
		t.Errorf("want ENOATTR on the link itself, have %v", err)
	}
}

// The aliases expect fully qualified names and apply no namespace
// handling whatsoever.
func TestCompatNoNamespaceMagic(t *testing.T) {
	fn := testFile(t, testDir(t), "TestCompatNoNamespaceMagic")
	// A bare key is passed through verbatim and rejected by the kernel,
	// which knows no namespace-less attributes on Linux.
	err := Setxattr(fn, "nonamespace", []byte("abc"), 0, false)
	if err == nil {
		t.Skip("filesystem accepts namespace-less attributes")
	}
	if !errors.Is(err, unix.EOPNOTSUPP) && !errors.Is(err, unix.ENOTSUP) {
		t.Errorf("want ENOTSUP, have %v", err)
	}
}
