package com

import (
	"sync"
	"testing"
)

type testClient struct {
	id     Uid
	closed bool
}

func (c *testClient) Id() Uid     { return c.id }
func (c *testClient) Disconnect() { c.closed = true }

func TestNetMap(t *testing.T) {
	m := NewNetMap[*testClient]()
	c := &testClient{id: NewUid()}

	m.Add(c)
	if !m.Has(c.id) {
		t.Fatalf("client %v not found after add", c.id)
	}
	found, err := m.Find(c.id)
	if err != nil || found != c {
		t.Fatalf("unexpected find result: %v, %v", found, err)
	}

	m.RemoveDisconnect(c)
	if m.Has(c.id) {
		t.Errorf("client %v still in the map after remove", c.id)
	}
	if !c.closed {
		t.Errorf("client %v was not disconnected", c.id)
	}
}

func TestMapFindEmptyKey(t *testing.T) {
	m := NewMap[Uid, int]()
	m.Put(NewUid(), 1)
	if _, err := m.Find(NilUid); err != ErrNotFound {
		t.Errorf("empty key should not match anything, got %v", err)
	}
}

func TestMapPop(t *testing.T) {
	m := NewMap[string, int]()
	m.Put("a", 42)

	v, ok := m.Pop("a")
	if !ok || v != 42 {
		t.Fatalf("unexpected pop result: %v, %v", v, ok)
	}
	if _, ok = m.Pop("a"); ok {
		t.Error("second pop should miss")
	}
	if m.Len() != 0 {
		t.Errorf("unexpected map size: %v", m.Len())
	}
}

func TestMapConcurrentChurn(t *testing.T) {
	m := NewMap[int, int]()
	const n = 100
	var wg sync.WaitGroup
	wg.Add(n * 2)

	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			m.Put(i, i)
		}()
		go func() {
			defer wg.Done()
			m.ForEach(func(int) {})
			_, _ = m.Find(i)
		}()
	}
	wg.Wait()

	if m.Len() != n {
		t.Errorf("unexpected final map size: %v (want %v)", m.Len(), n)
	}
}
