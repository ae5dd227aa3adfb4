// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package slots

import (
	"sync"
	"testing"
)

func TestPutTakeRoundTrip(t *testing.T) {
	tab := New()
	id := tab.Put("payload")
	if id == 0 {
		t.Fatal("Put() returned zero id")
	}

	v, ok := tab.Take(id)
	if !ok {
		t.Fatal("Take() did not find the stored value")
	}
	if v != "payload" {
		t.Errorf("Take() = %v, want payload", v)
	}
	if tab.Len() != 0 {
		t.Errorf("Len() = %d after Take, want 0", tab.Len())
	}
}

func TestTakeIsOneShot(t *testing.T) {
	tab := New()
	id := tab.Put(1)
	if _, ok := tab.Take(id); !ok {
		t.Fatal("first Take() failed")
	}
	if _, ok := tab.Take(id); ok {
		t.Error("second Take() of the same id succeeded")
	}
}

func TestIdsNotReused(t *testing.T) {
	tab := New()
	a := tab.Put(1)
	tab.Take(a)
	b := tab.Put(2)
	if a == b {
		t.Errorf("id %d reused after Take", a)
	}
}

func TestConcurrentPutTake(t *testing.T) {
	tab := New()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := tab.Put(n)
				if _, ok := tab.Take(id); !ok {
					t.Errorf("Take(%d) failed", id)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	if tab.Len() != 0 {
		t.Errorf("Len() = %d after balanced Put/Take, want 0", tab.Len())
	}
}
