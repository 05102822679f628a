// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"errors"
	"testing"
)

func stubFactory() Factory {
	return func(Options) (*Device, error) {
		return &Device{}, nil
	}
}

func failingFactory(err error) Factory {
	return func(Options) (*Device, error) {
		return nil, err
	}
}

// TestRegistryRegister tests backend registration.
func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register("test", 50, stubFactory(), nil)

	entry, ok := r.Get("test")
	if !ok {
		t.Fatal("registered backend not found")
	}
	if entry.Name != "test" {
		t.Errorf("Name = %s, want test", entry.Name)
	}
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50", entry.Priority)
	}
	if !entry.Available() {
		t.Error("backend should be available (nil Available func)")
	}
}

// TestRegistryUnregister tests backend removal.
func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("temp", 10, stubFactory(), nil)

	if _, ok := r.Get("temp"); !ok {
		t.Fatal("backend should exist before unregister")
	}
	r.Unregister("temp")
	if _, ok := r.Get("temp"); ok {
		t.Error("backend should not exist after unregister")
	}
}

// TestRegistryOrdering tests that List and Available sort by priority.
func TestRegistryOrdering(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, stubFactory(), nil)
	r.Register("high", 100, stubFactory(), func() bool { return false })
	r.Register("mid", 50, stubFactory(), nil)
	r.Register("also-mid", 50, stubFactory(), nil)

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"List", r.List(), []string{"high", "also-mid", "mid", "low"}},
		{"Available", r.Available(), []string{"also-mid", "mid", "low"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.got) != len(tt.want) {
				t.Fatalf("%s() = %v, want %v", tt.name, tt.got, tt.want)
			}
			for i := range tt.want {
				if tt.got[i] != tt.want[i] {
					t.Errorf("%s()[%d] = %s, want %s", tt.name, i, tt.got[i], tt.want[i])
				}
			}
		})
	}
}

// TestRegistryOpen tests device creation through the registry.
func TestRegistryOpen(t *testing.T) {
	errBroken := errors.New("broken")

	t.Run("empty", func(t *testing.T) {
		_, _, err := NewRegistry().Open(Options{})
		if !errors.Is(err, ErrNoBackendAvailable) {
			t.Errorf("Open() error = %v, want ErrNoBackendAvailable", err)
		}
	})

	t.Run("falls back", func(t *testing.T) {
		r := NewRegistry()
		r.Register("broken", 100, failingFactory(errBroken), nil)
		r.Register("working", 10, stubFactory(), nil)

		dev, name, err := r.Open(Options{})
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if dev == nil {
			t.Fatal("Open() returned nil device")
		}
		if name != "working" {
			t.Errorf("Open() backend = %s, want working", name)
		}
	})

	t.Run("all fail", func(t *testing.T) {
		r := NewRegistry()
		r.Register("broken", 100, failingFactory(errBroken), nil)

		_, _, err := r.Open(Options{})
		if !errors.Is(err, errBroken) {
			t.Errorf("Open() error = %v, want %v", err, errBroken)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := NewRegistry().OpenByName("missing", Options{})
		var nf *BackendNotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("OpenByName() error = %v, want BackendNotFoundError", err)
		}
		if nf.Name != "missing" {
			t.Errorf("Name = %s, want missing", nf.Name)
		}
	})

	t.Run("unavailable", func(t *testing.T) {
		r := NewRegistry()
		r.Register("off", 10, stubFactory(), func() bool { return false })

		_, err := r.OpenByName("off", Options{})
		var ua *BackendUnavailableError
		if !errors.As(err, &ua) {
			t.Errorf("OpenByName() error = %v, want BackendUnavailableError", err)
		}
	})
}

// TestFormatTables tests the enum helper tables.
func TestFormatTables(t *testing.T) {
	tests := []struct {
		internal     Enum
		wantChannels int
		wantType     Enum
	}{
		{R8, 1, UnsignedByte},
		{RG32F, 2, Float},
		{RGB16F, 3, HalfFloat},
		{RGBA32UI, 4, UnsignedInt},
		{DepthComponent16, 1, UnsignedShort},
	}
	for _, tt := range tests {
		ch, typ, ok := InternalFormatInfo(tt.internal)
		if !ok {
			t.Errorf("InternalFormatInfo(%#x) not found", tt.internal)
			continue
		}
		if ch != tt.wantChannels || typ != tt.wantType {
			t.Errorf("InternalFormatInfo(%#x) = (%d, %#x), want (%d, %#x)",
				tt.internal, ch, typ, tt.wantChannels, tt.wantType)
		}
	}

	if _, _, ok := InternalFormatInfo(RGBA); ok {
		t.Error("InternalFormatInfo(RGBA) should not resolve an unsized format")
	}
	if !IsDepthFormat(DepthComponent) || IsDepthFormat(RGBA8) {
		t.Error("IsDepthFormat misclassifies formats")
	}
	if got := ComponentSize(HalfFloat); got != 2 {
		t.Errorf("ComponentSize(HalfFloat) = %d, want 2", got)
	}
	if got := FormatChannels(RGBInteger); got != 3 {
		t.Errorf("FormatChannels(RGBInteger) = %d, want 3", got)
	}
}
