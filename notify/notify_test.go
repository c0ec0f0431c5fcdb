package notify

import (
	"fmt"
	"strings"
	"testing"
)

func TestBellWritesBellByte(t *testing.T) {
	var sb strings.Builder
	b := NewBell(&sb)
	if err := b.Alert(); err != nil {
		t.Fatalf("Alert: %v", err)
	}
	if sb.String() != "\a" {
		t.Errorf("wrote %q, want the bell character", sb.String())
	}
}

type stubAlerter struct {
	fired int
	err   error
}

func (s *stubAlerter) Alert() error {
	s.fired++
	return s.err
}

func TestMultiFansOutAndReportsFirstError(t *testing.T) {
	ok := &stubAlerter{}
	bad := &stubAlerter{err: fmt.Errorf("boom")}
	after := &stubAlerter{}

	err := Multi{ok, bad, after}.Alert()
	if err == nil || err.Error() != "boom" {
		t.Errorf("err = %v, want boom", err)
	}
	if ok.fired != 1 || bad.fired != 1 || after.fired != 1 {
		t.Error("every alerter should fire even after a failure")
	}
}
