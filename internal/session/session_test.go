// internal/session/session_test.go

package session

import (
	"testing"
	"time"
)

func TestStartCreatesAndResumes(t *testing.T) {
	mgr := NewManager("storefront_session", "/api", time.Minute)

	s1, cookie := mgr.Start("")
	if cookie == nil {
		t.Fatal("new session must come with a cookie")
	}
	if cookie.Value != s1.ID() || cookie.Name != "storefront_session" {
		t.Fatalf("cookie does not carry the session id: %#v", cookie)
	}
	if !cookie.HttpOnly || cookie.Path != "/api" {
		t.Fatalf("cookie flags wrong: %#v", cookie)
	}

	s1.Set("user_id", int64(42))

	s2, cookie2 := mgr.Start(s1.ID())
	if cookie2 != nil {
		t.Fatal("resume must not reissue the cookie")
	}
	if s2.GetInt64("user_id") != 42 {
		t.Fatal("resumed session lost its values")
	}
}

func TestSharedMutableState(t *testing.T) {
	mgr := NewManager("sid", "/api", time.Minute)

	s1, _ := mgr.Start("")
	s2, _ := mgr.Start(s1.ID())

	// Two tabs, one identifier: both observe one mutable map.
	s1.Set("role", "admin")
	if s2.GetString("role") != "admin" {
		t.Fatal("concurrent views of one session diverged")
	}
}

func TestDestroy(t *testing.T) {
	mgr := NewManager("sid", "/api", time.Minute)

	s, _ := mgr.Start("")
	id := s.ID()

	cookie := mgr.Destroy(s)
	if cookie.MaxAge >= 0 || cookie.Value != "" {
		t.Fatalf("destroy must expire the cookie: %#v", cookie)
	}
	if mgr.Len() != 0 {
		t.Fatalf("session not removed, %d live", mgr.Len())
	}

	// Presenting the dead identifier mints a fresh session.
	s2, cookie2 := mgr.Start(id)
	if s2.ID() == id || cookie2 == nil {
		t.Fatal("destroyed identifier must not resume")
	}
}

func TestIdleExpiryOnResume(t *testing.T) {
	mgr := NewManager("sid", "/api", time.Millisecond)

	s, _ := mgr.Start("")
	s.Set("user_id", int64(1))
	time.Sleep(5 * time.Millisecond)

	s2, cookie := mgr.Start(s.ID())
	if cookie == nil || s2.ID() == s.ID() {
		t.Fatal("idle session must expire on resume")
	}
	if _, ok := s2.Get("user_id"); ok {
		t.Fatal("expired session leaked values into its successor")
	}
}
