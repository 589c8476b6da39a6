package logger

import "testing"

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	got := sanitizeKVs([]interface{}{"access_token", "abc", "title", "Epic Quest", "dangling"})
	want := []interface{}{"access_token", "[REDACTED]", "title", "Epic Quest", "dangling"}
	if len(got) != len(want) {
		t.Fatalf("len: want=%d got=%d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: want=%v got=%v", i, want[i], got[i])
		}
	}
}

func TestNopDoesNotPanic(t *testing.T) {
	l := Nop().With("component", "test")
	l.Info("hello", "password", "hunter2")
	l.Sync()
}
