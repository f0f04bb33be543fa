package sources

import (
	"context"
	"sync"
	"testing"

	"guardias/core/feed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher serves canned bodies per URL; unknown URLs fail with feed.ErrStatus.
type stubFetcher struct {
	mu     sync.Mutex
	bodies map[string]string
	errs   map[string]error
	calls  []string
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{bodies: map[string]string{}, errs: map[string]error{}}
}

func (f *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if body, ok := f.bodies[url]; ok {
		return []byte(body), nil
	}
	return nil, feed.ErrStatus
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(SampleSource{}, NewMySQLSource(nil))

	assert.Equal(t, []string{"mysql", "sample"}, r.Names())

	s, err := r.Get("sample")
	require.NoError(t, err)
	assert.Equal(t, "sample", s.Name())

	_, err = r.Get("oracle")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestNewDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry(Deps{Feed: feed.Config{DocstoreURL: "http://docstore"}})
	assert.Equal(t, []string{"csv", "json", "mongo", "mysql", "sample"}, r.Names())
}

func TestSampleSource(t *testing.T) {
	b, err := SampleSource{}.Load(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, b.Rows, 6)
	assert.Equal(t, "sample", b.Meta["origin"])
}
