package scheduler

import "testing"

func TestStartRegistersReconcileJob(t *testing.T) {
	s := New(nil)
	s.Start()
	defer s.Stop()

	if got := s.scheduler.Len(); got != 1 {
		t.Errorf("registered jobs = %d, want 1", got)
	}
}
