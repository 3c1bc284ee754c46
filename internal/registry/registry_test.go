package registry

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/isobox/internal/types"
)

// mockDissector implements Dissector for testing.
type mockDissector struct {
	name string
}

func (m *mockDissector) Sniff(io.ReaderAt, int64) bool { return true }

func (m *mockDissector) Dissect(_ io.ReaderAt, size int64, rep types.Reporter, _ types.DissectOptions) *types.Result {
	rep.SetProtocol(m.name, "")
	return &types.Result{Accepted: true, Consumed: size}
}

func TestRegisterAndGet(t *testing.T) {
	d := &mockDissector{name: "test"}
	Register("application/x-test-one", d)

	got := Get("application/x-test-one")
	require.NotNil(t, got)

	md, ok := got.(*mockDissector)
	require.True(t, ok, "Get() returned wrong dissector type")
	assert.Equal(t, "test", md.name)
}

func TestGet_Unregistered(t *testing.T) {
	assert.Nil(t, Get("application/x-never-registered"))
}

func TestRegister_Overwrites(t *testing.T) {
	Register("application/x-test-two", &mockDissector{name: "first"})
	Register("application/x-test-two", &mockDissector{name: "second"})

	md, ok := Get("application/x-test-two").(*mockDissector)
	require.True(t, ok)
	assert.Equal(t, "second", md.name)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"video/mp4", "video/mp4"},
		{"Video/MP4", "video/mp4"},
		{"video/mp4; codecs=\"avc1.42E01E\"", "video/mp4"},
		{"  video/mp4  ", "video/mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}

	Register("application/x-test-three", &mockDissector{name: "params"})
	assert.NotNil(t, Get("Application/X-Test-Three; charset=binary"))
}

func TestMediaTypes(t *testing.T) {
	Register("application/x-test-four", &mockDissector{name: "listed"})

	mts := MediaTypes()
	assert.Contains(t, mts, "application/x-test-four")
	assert.IsNonDecreasing(t, mts)
}
