// This file is part of kdump.
//
// kdump is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// kdump is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with kdump.  If not, see <https://www.gnu.org/licenses/>.

// Package watch reruns a function whenever a file changes. It is used to keep
// a listing up to date while a file is being recompiled.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jetsetilly/kdump/curated"
	"github.com/jetsetilly/kdump/logger"
)

// DefaultSettle is the default value of Watcher.Settle.
const DefaultSettle = 100 * time.Millisecond

// Watcher runs a function once and then again after every change to the
// file.
type Watcher struct {
	Filename string

	// events arriving within the settle period of each other are treated as
	// a single change. compilers often write a file in several chunks
	Settle time.Duration

	// Report is called with any error returned by the function. The watch
	// continues after an error. If Report is nil the error is logged
	Report func(error)
}

// NewWatcher is the preferred method of initialisation for the Watcher type.
func NewWatcher(filename string) *Watcher {
	return &Watcher{
		Filename: filename,
		Settle:   DefaultSettle,
	}
}

func (w *Watcher) report(err error) {
	if err == nil {
		return
	}
	if w.Report != nil {
		w.Report(err)
		return
	}
	logger.Log(logger.Allow, "watch", err)
}

// Run calls fn once and then every time the file is written or replaced.
// Run returns when the context is cancelled.
//
// The directory containing the file is watched rather than the file itself.
// Many tools replace a file by renaming a new file over it, which would end a
// watch on the file.
func (w *Watcher) Run(ctx context.Context, fn func() error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return curated.Errorf("watch: %v", err)
	}
	defer fsw.Close()

	target, err := filepath.Abs(w.Filename)
	if err != nil {
		return curated.Errorf("watch: %v", err)
	}

	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return curated.Errorf("watch: %v", err)
	}

	w.report(fn())

	// settle timer is stopped until the first event
	settle := time.NewTimer(time.Hour)
	settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if name, err := filepath.Abs(ev.Name); err != nil || name != target {
				continue
			}
			logger.Logf(logger.Allow, "watch", "%s: %s", filepath.Base(ev.Name), ev.Op)
			settle.Reset(w.Settle)

		case <-settle.C:
			w.report(fn())

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.report(curated.Errorf("watch: %v", err))
		}
	}
}
