//go:build unit

package ptr_test

import (
	"testing"

	"icms/internal/pkg/ptr"

	"github.com/stretchr/testify/assert"
)

func TestOf(t *testing.T) {
	v := "REF-001"
	p := ptr.Of(v)
	v = "changed"
	assert.Equal(t, "REF-001", *p)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, "fallback", ptr.Deref[string](nil, "fallback"))
	assert.Equal(t, int64(7), ptr.Deref(ptr.Of(int64(7)), 0))
}
