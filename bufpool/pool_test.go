package bufpool

import "testing"

func TestGetReturnsRequestedCapacity(t *testing.T) {
	p := New()
	buf := p.Get(100)
	if cap(buf) < 100 {
		t.Fatalf("cap = %d, want >= 100", cap(buf))
	}
	if len(buf) != 0 {
		t.Fatalf("len = %d, want 0", len(buf))
	}
}

func TestBucketSelection(t *testing.T) {
	cases := []struct {
		capacity int
		tier     int
	}{
		{1, 0},
		{tinyCeiling, 0},
		{tinyCeiling + 1, 1},
		{smallCeiling, 1},
		{mediumCeiling, 2},
		{largeCeiling, 3},
		{largeCeiling + 1, 4},
	}
	for _, c := range cases {
		if got := bucketFor(c.capacity); got != c.tier {
			t.Fatalf("bucketFor(%d) = %d, want %d", c.capacity, got, c.tier)
		}
	}
}

func TestPutGetIdentity(t *testing.T) {
	p := New()
	buf := p.Get(2048)
	buf = append(buf, make([]byte, 2048)...)
	ptr := &buf[0]
	p.Put(buf)

	buf2 := p.Get(2048)
	if len(buf2) != 0 {
		t.Fatalf("recycled buffer should have len 0, got %d", len(buf2))
	}
	buf2 = buf2[:2048]
	if &buf2[0] != ptr {
		t.Fatalf("Get after Put did not return the pooled backing array")
	}
}

func TestPutDropsSmallBuffers(t *testing.T) {
	p := New()
	small := make([]byte, 10)
	p.Put(small)
	if s := p.Stats(); s.Tiny != 0 {
		t.Fatalf("buffer below no-pool floor should not be retained, tiny=%d", s.Tiny)
	}
}

func TestPutRespectsMaxPoolSize(t *testing.T) {
	p := New()
	for i := 0; i < MaxPoolSize+5; i++ {
		p.Put(make([]byte, 0, tinyCeiling))
	}
	if s := p.Stats(); s.Tiny != MaxPoolSize {
		t.Fatalf("tiny tier = %d, want %d", s.Tiny, MaxPoolSize)
	}
}

func TestPutObservedReportsExhaustion(t *testing.T) {
	p := New()
	for i := 0; i < MaxPoolSize; i++ {
		p.Put(make([]byte, 0, tinyCeiling))
	}
	var got int
	hooks := hookFunc(func(ceiling int) { got = ceiling })
	p.PutObserved(make([]byte, 0, tinyCeiling), hooks)
	if got != tinyCeiling {
		t.Fatalf("PoolTierExhausted called with %d, want %d", got, tinyCeiling)
	}
}

type hookFunc func(tierCeiling int)

func (f hookFunc) PoolTierExhausted(tierCeiling int) { f(tierCeiling) }

func TestPrewarm(t *testing.T) {
	p := New()
	p.Prewarm(3)
	s := p.Stats()
	if s.Tiny != 3 || s.Small != 3 || s.Medium != 3 || s.Large != 3 {
		t.Fatalf("unexpected stats after prewarm: %+v", s)
	}
}

func TestPooledBufferReleaseIsIdempotent(t *testing.T) {
	p := New()
	pb := p.GetScoped(4096)
	pb.Release()
	pb.Release()
}

func TestNewWithOptionsOverridesTierCeilings(t *testing.T) {
	p := NewWithOptions(Options{TinyCeiling: 16, MaxPoolSize: 2, NoPoolFloor: 1})
	buf := p.Get(8)
	if cap(buf) != 16 {
		t.Fatalf("cap = %d, want 16 (overridden tiny ceiling)", cap(buf))
	}
	for i := 0; i < 5; i++ {
		p.Put(make([]byte, 0, 16))
	}
	if s := p.Stats(); s.Tiny != 2 {
		t.Fatalf("tiny tier = %d, want overridden MaxPoolSize 2", s.Tiny)
	}
}

func TestNewWithOptionsZeroValueMatchesDefaults(t *testing.T) {
	p := NewWithOptions(Options{})
	if got := p.Get(100); cap(got) != tinyCeiling {
		t.Fatalf("cap = %d, want default tinyCeiling %d", cap(got), tinyCeiling)
	}
}
