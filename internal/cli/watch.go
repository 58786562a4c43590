package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	qcli "github.com/codalotl/magicstring/internal/q/cli"
	"github.com/codalotl/magicstring/internal/simplelogger"
	"github.com/codalotl/magicstring/internal/sourcemap"
)

// settle is how long watch waits after a change before rebuilding. Editors often write a file in several steps.
const settle = 50 * time.Millisecond

func newWatchCommand() *qcli.Command {
	cmd := &qcli.Command{
		Name:  "watch",
		Short: "Re-apply an edit script whenever the input or script changes",
		Long:  "Builds once, then rebuilds whenever the input or script file is written. Stops on interrupt.",
		Args:  qcli.ExactArgs(2),
	}
	out := cmd.Flags().String("out", 'o', "", "Write the result to this file (required)")
	mapPath := cmd.Flags().String("map", 0, "", "Also write a source map to this file")
	hires := cmd.Flags().Choice("hires", 0, "", hiresChoices, "Map resolution for --map")
	cmd.Run = func(c *qcli.Context) error {
		if *out == "" {
			return qcli.Usagef("watch needs --out")
		}
		if c.Args[0] == "-" {
			return qcli.Usagef("watch cannot read the input from stdin")
		}
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		h, err := resolveHires(*hires, cfg)
		if err != nil {
			return err
		}
		w := &watcher{c: c, cfg: cfg, input: c.Args[0], script: c.Args[1], out: *out, mapPath: *mapPath, hires: h}
		return w.run(c.Context)
	}
	return cmd
}

type watcher struct {
	c       *qcli.Context
	cfg     Config
	input   string
	script  string
	out     string
	mapPath string
	hires   sourcemap.Hires

	// built, if set, is called after every rebuild attempt.
	built func(err error)
}

// run watches until ctx is done. Build failures are reported and watching continues.
func (w *watcher) run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	// Watch directories, not files: editors that save by rename would otherwise drop the watch.
	targets := map[string]bool{}
	for _, p := range []string{w.input, w.script} {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
		if err := fsw.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}

	w.rebuild()

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if abs, err := filepath.Abs(ev.Name); err != nil || !targets[abs] {
				continue
			}
			timer = time.After(settle)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			simplelogger.Log("watch: %v", err)
			fmt.Fprintf(w.c.Err, "watch: %v\n", err)
		case <-timer:
			timer = nil
			w.rebuild()
		}
	}
}

func (w *watcher) rebuild() {
	r, err := build(w.c, w.cfg, w.input, w.script)
	if err == nil {
		err = writeOutputs(w.c.Out, r, w.out, w.mapPath, w.hires, w.cfg.IncludeContent)
	}
	if err != nil {
		fmt.Fprintf(w.c.Err, "error: %v\n", err)
	} else {
		fmt.Fprintf(w.c.Err, "wrote %s\n", w.out)
	}
	if w.built != nil {
		w.built(err)
	}
}
