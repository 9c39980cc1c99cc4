package data

import (
	"errors"
	"testing"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"menu://applications/", nil},
		{"menu://applications", nil},
		{"menu://applications.menu/", nil},
		{"menu:///applications//", nil},
		{"", nil},
		{"menu://applications/Utilities", []string{"Utilities"}},
		{"menu://applications/Utilities/", []string{"Utilities"}},
		{"menu://applications.menu/Utilities/foo.desktop", []string{"Utilities", "foo.desktop"}},
		{"menu://applications/Sound%20%26%20Video/vlc.desktop", []string{"Sound & Video", "vlc.desktop"}},
		{"Utilities/Accessories//", []string{"Utilities", "Accessories"}},
		{"/Utilities", []string{"Utilities"}},
	}

	for _, tt := range tests {
		vp, err := ParsePath(tt.raw)
		if err != nil {
			t.Errorf("ParsePath(%q) failed: %v", tt.raw, err)
			continue
		}
		if !vp.Equal(NewPath(tt.want...)) {
			t.Errorf("ParsePath(%q) = %q, want %q", tt.raw, vp.Segments(), tt.want)
		}
	}
}

func TestParsePath_Invalid(t *testing.T) {
	for _, raw := range []string{
		"menu://applications/a%2Fb",
		"menu://applications/%zz",
		"menu://applications/../etc",
	} {
		if _, err := ParsePath(raw); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("ParsePath(%q) error = %v, want ErrInvalidPath", raw, err)
		}
	}
}

func TestVirtualPath_SplitForWrite(t *testing.T) {
	parent, id, err := MustParsePath("menu://applications/Utilities/foo.desktop").SplitForWrite()
	if err != nil {
		t.Fatalf("SplitForWrite failed: %v", err)
	}
	if parent.String() != "Utilities" || id != "foo.desktop" {
		t.Errorf("Expected (Utilities, foo.desktop), got (%s, %s)", parent, id)
	}

	for _, raw := range []string{"menu://applications/", "menu://applications/foo.desktop"} {
		if _, _, err := MustParsePath(raw).SplitForWrite(); !errors.Is(err, ErrInvalidOperation) {
			t.Errorf("SplitForWrite(%q) error = %v, want ErrInvalidOperation", raw, err)
		}
	}
}

func TestVirtualPath_URI(t *testing.T) {
	vp := NewPath("Sound & Video", "vlc.desktop")
	if got := vp.URI(); got != "menu://applications/Sound%20&%20Video/vlc.desktop" {
		t.Errorf("Unexpected URI %q", got)
	}

	back, err := ParsePath(vp.URI())
	if err != nil {
		t.Fatalf("ParsePath failed: %v", err)
	}
	if !back.Equal(vp) {
		t.Errorf("Expected %q, got %q", vp, back)
	}
}

func TestDesktopID(t *testing.T) {
	if got := DesktopID("foo"); got != "foo.desktop" {
		t.Errorf("Expected foo.desktop, got %s", got)
	}
	if got := DesktopID("foo.desktop"); got != "foo.desktop" {
		t.Errorf("Expected foo.desktop, got %s", got)
	}
}
