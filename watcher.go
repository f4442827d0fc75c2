package nativefs

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

// Watch observes dir for changes to entries whose base name matches the
// glob pattern (e.g. "*.json", "backup-??"). It returns a one-shot
// ChangeToken signalled on the first matching create, write, rename or
// remove event. The underlying native watch is released when the token
// fires or ctx is cancelled, whichever comes first.
//
// Watching goes straight to the OS notification facility rather than
// through the injected port: change notification has no portable
// single-call shape, and the capability is inherently tied to the real
// filesystem.
func (g *Gateway) Watch(ctx context.Context, dir, pattern string) (ChangeToken, error) {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, &PathError{Op: "watch", Path: pattern, Err: err}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &PathError{Op: "watch", Path: dir, Err: err}
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, &PathError{Op: "watch", Path: dir, Err: err}
	}

	token := NewCallbackChangeToken()

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
					!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
					continue
				}
				if matcher.Match(filepath.Base(event.Name)) {
					token.SignalChange()
					return // token is spent after the first change
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Watch errors do not stop the watch.
				g.logger.Debug("watch error", zap.String("dir", dir), zap.Error(err))
			}
		}
	}()

	return token, nil
}
