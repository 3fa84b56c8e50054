package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff(t *testing.T) {
	b := NewBackoff(5*time.Second, 30*time.Second)

	assert.Equal(t, 5*time.Second, b.Current())
	assert.Equal(t, 10*time.Second, b.Failure())
	assert.Equal(t, 20*time.Second, b.Failure())
	assert.Equal(t, 30*time.Second, b.Failure())
	assert.Equal(t, 30*time.Second, b.Failure())
	assert.Equal(t, 5*time.Second, b.Success())
}

func TestBackoff_CeilingBelowBase(t *testing.T) {
	b := NewBackoff(5*time.Second, time.Second)
	assert.Equal(t, 5*time.Second, b.Failure())
}

func TestJitter(t *testing.T) {
	for i := 0; i < 100; i++ {
		j := Jitter()
		assert.GreaterOrEqual(t, j, time.Duration(0))
		assert.Less(t, j, time.Second)
	}
}
