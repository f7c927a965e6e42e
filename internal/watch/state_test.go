package watch_test

import (
	"testing"

	"github.com/Tiliavir/clockhand/internal/watch"
)

func TestAdvance(t *testing.T) {
	tests := []struct {
		name         string
		state        watch.State
		fp           watch.Fingerprint
		wantState    watch.State
		wantConsider bool
	}{
		{
			name:         "first observation records baseline",
			state:        watch.State{},
			fp:           "aaa",
			wantState:    watch.State{LastFingerprint: "aaa"},
			wantConsider: false,
		},
		{
			name:         "unchanged and not notified keeps asking",
			state:        watch.State{LastFingerprint: "aaa"},
			fp:           "aaa",
			wantState:    watch.State{LastFingerprint: "aaa"},
			wantConsider: true,
		},
		{
			name:         "unchanged and already notified stays quiet",
			state:        watch.State{LastFingerprint: "aaa", Notified: true},
			fp:           "aaa",
			wantState:    watch.State{LastFingerprint: "aaa", Notified: true},
			wantConsider: false,
		},
		{
			name:         "change re-arms a notified state",
			state:        watch.State{LastFingerprint: "aaa", Notified: true},
			fp:           "bbb",
			wantState:    watch.State{LastFingerprint: "bbb"},
			wantConsider: true,
		},
		{
			name:         "change before notification still considers",
			state:        watch.State{LastFingerprint: "aaa"},
			fp:           "bbb",
			wantState:    watch.State{LastFingerprint: "bbb"},
			wantConsider: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, consider := watch.Advance(tt.state, tt.fp)
			if got != tt.wantState {
				t.Errorf("state = %+v, want %+v", got, tt.wantState)
			}
			if consider != tt.wantConsider {
				t.Errorf("consider = %v, want %v", consider, tt.wantConsider)
			}
		})
	}
}
