package nativefs

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"go.uber.org/zap"
)

// creationTimeTolerance is the maximum divergence between a written and a
// re-read creation time that still counts as "supported". Some filesystems
// store creation time as a bare date, and some apply a local-timezone offset
// when rounding to a day boundary; a full day of slack reliably separates
// coarse rounding from a field that is ignored outright.
const creationTimeTolerance = 24 * time.Hour

// SupportsCreationTime reports whether the filesystem backing dir actually
// persists creation-time metadata. Some native layers accept a set-creation-
// time call without error yet silently ignore it, so a live round trip is
// the only trustworthy check: write a timestamp to a temporary file, read it
// back, and compare with tolerance.
//
// The result is computed fresh on every call because capability can differ
// per mounted filesystem. This function never returns an error: any native
// failure during probing means the capability cannot be relied on and is
// reported as false. The temporary file is removed best-effort regardless of
// outcome.
func (g *Gateway) SupportsCreationTime(dir string) bool {
	name, err := g.probeFileName()
	if err != nil {
		return false
	}
	sep := g.native.Separator()
	path := strings.TrimSuffix(dir, sep) + sep + name

	ch, err := g.native.NewFileChannel(path, OpenWrite, OpenCreateNew)
	if err != nil {
		return false
	}
	defer g.native.Delete(path)
	defer ch.Close()

	supported := g.probeCreationTime(path)
	g.logger.Debug("creation-time probe",
		zap.String("dir", dir),
		zap.Bool("supported", supported))
	return supported
}

func (g *Gateway) probeCreationTime(path string) bool {
	view, err := g.native.AttributeView(path)
	if err != nil {
		return false
	}

	// Whole-second boundary, so filesystems with coarser-than-millisecond
	// resolution round trip cleanly.
	target := g.now().Truncate(time.Second)
	if err := view.SetTimes(nil, nil, &target); err != nil {
		return false
	}

	attrs, err := g.native.ReadAttributes(path)
	if err != nil {
		return false
	}

	// Window check rather than Sub arithmetic: a zero-value or otherwise
	// wildly divergent creation time would overflow a Duration and slip
	// inside the tolerance.
	earliest := target.Add(-creationTimeTolerance)
	latest := target.Add(creationTimeTolerance)
	return !attrs.CreationTime.Before(earliest) && !attrs.CreationTime.After(latest)
}

// probeFileName generates a process-unique temporary file name that will not
// collide with real files in the probed directory.
func (g *Gateway) probeFileName() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return g.tempPrefix + hex.EncodeToString(b), nil
}
