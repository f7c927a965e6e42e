// Package watch implements the polling loop that reminds the user to start
// a timer: it fingerprints each project's directory tree on a fixed
// interval and raises a notification when files change in a project that
// has no running timer.
package watch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Tiliavir/clockhand/internal/model"
)

// Project is one watched directory tree mapped to a remote project.
type Project struct {
	Name string
	Root string
	ID   int64
}

// Oracle reports the remote service's current timer state.
type Oracle interface {
	Snapshot(ctx context.Context) (model.TimerSnapshot, error)
}

// Notifier delivers a desktop notification.
type Notifier interface {
	Notify(title, body string) error
}

// Loop polls a set of projects on a fixed interval. All watch state lives
// on the Loop instance, so independent loops never interfere.
type Loop struct {
	projects []Project
	oracle   Oracle
	notifier Notifier
	interval time.Duration
	out      io.Writer
	states   map[string]State // keyed by project root
}

// NewLoop builds a loop over the given projects. Progress and recoverable
// failures are written to out (usually os.Stdout).
func NewLoop(projects []Project, oracle Oracle, notifier Notifier, interval time.Duration, out io.Writer) *Loop {
	return &Loop{
		projects: projects,
		oracle:   oracle,
		notifier: notifier,
		interval: interval,
		out:      out,
		states:   make(map[string]State, len(projects)),
	}
}

// Run ticks until ctx is cancelled. The first tick runs immediately so
// baseline fingerprints are recorded without waiting a full interval.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Tick(ctx)
		}
	}
}

// Tick runs one polling pass: fingerprint every project, advance its
// state, and notify for projects that changed while no timer runs for
// them. The oracle is queried at most once per tick regardless of project
// count, and not at all on quiet ticks.
func (l *Loop) Tick(ctx context.Context) {
	var candidates []Project
	for _, p := range l.projects {
		next, consider := Advance(l.states[p.Root], Scan(p.Root))
		l.states[p.Root] = next
		if consider {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return
	}

	snap, err := l.oracle.Snapshot(ctx)
	if err != nil {
		// Timer state is unknown; skip the decision rather than assume no
		// timer is running. The candidates stay armed for the next tick.
		fmt.Fprintf(l.out, "timer lookup failed, retrying next tick: %v\n", err)
		return
	}

	for _, p := range candidates {
		title, body, ok := notification(p, snap)
		if !ok {
			continue
		}
		if err := l.notifier.Notify(title, body); err != nil {
			// Delivery failed, so the state stays armed and the
			// notification is retried on the next tick.
			fmt.Fprintf(l.out, "notification failed: %v\n", err)
			continue
		}
		fmt.Fprintf(l.out, "notified: %s (%s)\n", p.Name, title)
		st := l.states[p.Root]
		st.Notified = true
		l.states[p.Root] = st
	}
}

// notification decides whether a change in the given project warrants a
// notification under the observed timer state, and builds its text.
// Suppression is per-project when the service attributes the running timer
// to a project; a snapshot without project attribution suppresses globally.
func notification(p Project, snap model.TimerSnapshot) (title, body string, ok bool) {
	switch {
	case snap.Running && (snap.ProjectID == p.ID || snap.ProjectID == 0):
		return "", "", false
	case snap.Running:
		return "Timer running for other project",
			fmt.Sprintf("Start a timer for %s", p.Name), true
	default:
		return "Timer not running",
			fmt.Sprintf("Start a timer for %s", p.Name), true
	}
}
