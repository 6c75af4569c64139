// Package argv marshals argument, environment and redirect lists into a single
// NUL-terminated arena owned by one launch call.
package argv

import (
	"unsafe"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
)

const pointerSize = int(unsafe.Sizeof(uintptr(0)))

// Block is the marshaled form of one launch. Args and Env are views into the
// arena and stay valid until Release.
type Block struct {
	store []byte

	Args []string
	// Env is nil when the caller's environment should be inherited.
	Env []string

	argOffsets   []int
	envOffsets   []int
	redirects    [3]string
	redirectsSet [3]bool
}

// Marshal copies args, env and the redirect paths into one arena. Values are
// stored verbatim; escaping is left to whoever builds the list.
func Marshal(args []string, env []string, redirects lib.Redirects) *Block {
	size := 0
	for _, a := range args {
		size += len(a) + 1
	}
	for _, e := range env {
		size += len(e) + 1
	}
	for _, r := range redirects {
		if r != nil {
			size += len(*r) + 1
		}
	}

	// Exact capacity: appends below never reallocate, so offsets stay valid.
	b := &Block{store: make([]byte, 0, size)}

	b.argOffsets = b.appendAll(args)
	if env != nil {
		b.envOffsets = b.appendAll(env)
	}
	var redirectOffsets [3]int
	for i, r := range redirects {
		if r != nil {
			redirectOffsets[i] = b.append(*r)
			b.redirectsSet[i] = true
		}
	}

	b.Args = b.views(b.argOffsets, args)
	if env != nil {
		b.Env = b.views(b.envOffsets, env)
	}
	for i, r := range redirects {
		if r != nil {
			b.redirects[i] = b.view(redirectOffsets[i], len(*r))
		}
	}

	return b
}

func (b *Block) append(s string) int {
	off := len(b.store)
	b.store = append(b.store, s...)
	b.store = append(b.store, 0)
	return off
}

func (b *Block) appendAll(list []string) []int {
	offsets := make([]int, len(list))
	for i, s := range list {
		offsets[i] = b.append(s)
	}
	return offsets
}

func (b *Block) view(off, n int) string {
	if n == 0 {
		return ""
	}
	return unsafe.String(&b.store[off], n)
}

func (b *Block) views(offsets []int, src []string) []string {
	out := make([]string, len(src))
	for i, off := range offsets {
		out[i] = b.view(off, len(src[i]))
	}
	return out
}

func (b *Block) pointers(offsets []int) []*byte {
	ptrs := make([]*byte, len(offsets)+1)
	for i, off := range offsets {
		ptrs[i] = &b.store[off]
	}
	return ptrs
}

// ArgPointers returns a nil-terminated table of pointers to the NUL-terminated
// arguments, in argument order.
func (b *Block) ArgPointers() []*byte {
	return b.pointers(b.argOffsets)
}

// EnvPointers is ArgPointers for the environment. It returns nil when the
// environment is inherited.
func (b *Block) EnvPointers() []*byte {
	if b.Env == nil {
		return nil
	}
	return b.pointers(b.envOffsets)
}

// Redirect returns the path marshaled for slot i and whether the slot is set.
func (b *Block) Redirect(i int) (string, bool) {
	return b.redirects[i], b.redirectsSet[i]
}

// Size is the number of arena bytes, terminators included.
func (b *Block) Size() int {
	return len(b.store)
}

// Footprint is the size of what the kernel copies into the new image: the
// argument and environment strings with their terminators plus both pointer
// tables. Redirect paths and an inherited environment are not counted.
func (b *Block) Footprint() int {
	size := len(b.ArgPointers()) * pointerSize
	for _, a := range b.Args {
		size += len(a) + 1
	}
	if env := b.EnvPointers(); env != nil {
		size += len(env) * pointerSize
		for _, e := range b.Env {
			size += len(e) + 1
		}
	}
	return size
}

// Release drops the arena and every view into it.
func (b *Block) Release() {
	if b == nil {
		return
	}
	b.store = nil
	b.Args = nil
	b.Env = nil
	b.argOffsets = nil
	b.envOffsets = nil
	b.redirects = [3]string{}
	b.redirectsSet = [3]bool{}
}
