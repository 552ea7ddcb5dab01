package infra

import (
	"sync"
	"testing"
	"time"

	"http-fileserver/server/fileserver/domain"
)

func TestWindowStore_AllowsUpToQuotaWithinWindow(t *testing.T) {
	s := NewWindowStore(5, 1*time.Second)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if !s.Allow(domain.Key("ip"), base) {
			t.Fatalf("expected request %d to be allowed", i+1)
		}
	}
	if s.Allow(domain.Key("ip"), base.Add(50*time.Millisecond)) {
		t.Fatalf("expected 6th request within window to be denied")
	}
}

func TestWindowStore_PrunesOldEntries(t *testing.T) {
	s := NewWindowStore(5, 1*time.Second)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if !s.Allow(domain.Key("ip"), base) {
			t.Fatalf("expected request %d to be allowed", i+1)
		}
	}
	if s.Allow(domain.Key("ip"), base.Add(50*time.Millisecond)) {
		t.Fatalf("expected request within full window to be denied")
	}
	if !s.Allow(domain.Key("ip"), base.Add(1100*time.Millisecond)) {
		t.Fatalf("expected request after window to be allowed (old entries pruned)")
	}
}

func TestWindowStore_DeniedRequestIsNotRecorded(t *testing.T) {
	s := NewWindowStore(1, 1*time.Second)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if !s.Allow(domain.Key("ip"), base) {
		t.Fatalf("expected first request to be allowed")
	}
	// recusas não entram na janela: depois que a entrada original expira,
	// a próxima requisição passa, não importa quantas foram recusadas antes
	for i := 0; i < 10; i++ {
		if s.Allow(domain.Key("ip"), base.Add(500*time.Millisecond)) {
			t.Fatalf("expected denial while window is full")
		}
	}
	if !s.Allow(domain.Key("ip"), base.Add(1500*time.Millisecond)) {
		t.Fatalf("expected allow after original entry expired")
	}
}

func TestWindowStore_KeysAreIndependent(t *testing.T) {
	s := NewWindowStore(1, 1*time.Second)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if !s.Allow(domain.Key("a"), base) {
		t.Fatalf("expected key a to be allowed")
	}
	if !s.Allow(domain.Key("b"), base) {
		t.Fatalf("expected key b to be allowed despite key a being full")
	}
}

func TestWindowStore_CleanupRemovesIdleKeys(t *testing.T) {
	s := NewWindowStore(5, 1*time.Millisecond, WithIdleTTL(2*time.Millisecond), WithCleanupEvery(0))

	s.Allow(domain.Key("k"), time.Now())
	time.Sleep(4 * time.Millisecond)

	s.Cleanup()

	s.mu.Lock()
	_, ok := s.windows["k"]
	s.mu.Unlock()
	if ok {
		t.Fatalf("expected idle key to be removed by cleanup")
	}
}

func TestWindowStore_ConcurrentCallsNeverExceedQuota(t *testing.T) {
	const quota = 5
	s := NewWindowStore(quota, 1*time.Second)
	now := time.Now()

	var wg sync.WaitGroup
	allowed := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- s.Allow(domain.Key("ip"), now)
		}()
	}
	wg.Wait()
	close(allowed)

	n := 0
	for ok := range allowed {
		if ok {
			n++
		}
	}
	if n != quota {
		t.Fatalf("expected exactly %d allowed, got %d", quota, n)
	}
}
