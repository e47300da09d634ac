package history

import (
	"testing"

	"github.com/san-kum/pendsim/internal/dynamo"
)

func TestRecorderAppendLockStep(t *testing.T) {
	r := NewRecorder()
	r.Append(dynamo.Sample{Angle: 1, Velocity: 2, Acceleration: 3})
	r.Append(dynamo.Sample{Angle: 4, Velocity: 5, Acceleration: 6})

	s := r.Series()
	if s.Len() != 2 || len(s.Velocity) != 2 || len(s.Acceleration) != 2 {
		t.Fatalf("series out of lock-step: %+v", s)
	}
	if s.Angle[1] != 4 || s.Velocity[1] != 5 || s.Acceleration[1] != 6 {
		t.Errorf("unexpected second sample: %+v", s)
	}

	last, ok := r.Last()
	if !ok || last.Angle != 4 {
		t.Errorf("Last() = (%+v, %v)", last, ok)
	}
}

func TestRecorderClear(t *testing.T) {
	r := NewRecorder()
	r.Append(dynamo.Sample{Angle: 1})
	r.Clear()

	if r.Len() != 0 {
		t.Errorf("expected empty recorder, got %d", r.Len())
	}
	if _, ok := r.Last(); ok {
		t.Error("Last() on empty recorder should report false")
	}
}

func TestSeriesIsSnapshot(t *testing.T) {
	r := NewRecorder()
	r.Append(dynamo.Sample{Angle: 1})
	s := r.Series()

	r.Append(dynamo.Sample{Angle: 2})
	s.Angle[0] = 99

	if s.Len() != 1 {
		t.Errorf("snapshot grew to %d", s.Len())
	}
	if got := r.Series().Angle[0]; got != 1 {
		t.Errorf("snapshot mutation leaked into recorder: %v", got)
	}
}

func TestTimesRestartable(t *testing.T) {
	s := Series{Angle: make([]float64, 4), Velocity: make([]float64, 4), Acceleration: make([]float64, 4)}
	dt := 0.25

	for pass := 0; pass < 2; pass++ {
		var got []float64
		for tm := range s.Times(dt) {
			got = append(got, tm)
		}
		want := []float64{0, 0.25, 0.5, 0.75}
		if len(got) != len(want) {
			t.Fatalf("pass %d: expected %d times, got %d", pass, len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("pass %d: time[%d] = %v, want %v", pass, i, got[i], want[i])
			}
		}
	}
}

func TestTimesEarlyStop(t *testing.T) {
	s := Series{Angle: make([]float64, 10)}
	count := 0
	for range s.Times(1) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("expected to stop after 3, got %d", count)
	}
}

func TestEmptyTimeAxis(t *testing.T) {
	var s Series
	times := s.TimeSlice(1.0 / 60)
	if times == nil || len(times) != 0 {
		t.Errorf("expected empty non-nil time axis, got %#v", times)
	}
}
