// Package nativefs is a narrow, side-effecting gateway between a
// higher-level filesystem abstraction and the operating system's native
// filesystem primitives. Its job is to normalize inconsistent,
// platform-dependent filesystem behavior (especially creation-time
// support, which not every filesystem or OS exposes) behind one
// deterministic, testable surface.
//
// The package is built around a single seam: the [NativeFS] port. The
// [Gateway] routes each logical intent (open a channel, read attributes,
// list a directory, move, delete, set timestamps) to exactly one native
// call on the port and translates the outcome into this package's error
// vocabulary. Production code plugs in [OSFS]; tests plug in a fake.
//
// # Basic Usage
//
//	gw := nativefs.New(nativefs.NewOSFS())
//
//	ch, err := gw.Open("data.bin", nativefs.OpenWrite, nativefs.OpenCreate)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gw.Close(ch)
//
//	// Enumerate a directory lazily
//	for name, err := range gw.List("/vault") {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(name)
//	}
//
// # Creation-Time Capability Probe
//
// Whether a filesystem actually persists creation-time metadata cannot be
// read off a capability flag: some native layers accept a set-creation-time
// call without error yet silently ignore it. [Gateway.SupportsCreationTime]
// therefore performs a live round trip (create a temporary file, write a
// truncated timestamp, read it back, compare with a full day of tolerance)
// and reports a plain boolean. It is the one operation with a guaranteed
// non-failing contract; every other operation surfaces native failures as
// [PathError] values.
//
// # Concurrency
//
// All operations are synchronous and blocking, and the gateway holds no
// state between calls. Concurrency guarantees are exactly those of the
// underlying native filesystem.
package nativefs
