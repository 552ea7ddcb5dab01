package infra

import "testing"

func TestChanPool_AcquiresUpToMax(t *testing.T) {
	pool := NewChanPool(10)

	releases := make([]func(), 0, 10)
	for i := 0; i < 10; i++ {
		release, ok := pool.TryAcquire()
		if !ok {
			t.Fatalf("expected acquire %d to succeed", i+1)
		}
		releases = append(releases, release)
	}

	if _, ok := pool.TryAcquire(); ok {
		t.Fatalf("expected 11th acquire to fail while 10 are held")
	}

	releases[0]()
	if _, ok := pool.TryAcquire(); !ok {
		t.Fatalf("expected acquire to succeed after one release")
	}
}

func TestChanPool_ReleaseFreesExactlyOneSlot(t *testing.T) {
	pool := NewChanPool(1)

	release, ok := pool.TryAcquire()
	if !ok {
		t.Fatalf("expected first acquire to succeed")
	}
	release()

	r2, ok := pool.TryAcquire()
	if !ok {
		t.Fatalf("expected acquire after release to succeed")
	}
	if _, ok := pool.TryAcquire(); ok {
		t.Fatalf("expected pool to be full again")
	}
	r2()
}
