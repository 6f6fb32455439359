package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	start := time.Date(2025, time.March, 31, 8, 0, 0, 0, time.Local)
	c := NewFixed(start)

	assert.Equal(t, start, c.Now())

	c.AddDays(1)
	assert.Equal(t, time.April, c.Now().Month())
	assert.Equal(t, 1, c.Now().Day())

	c.Advance(2 * time.Hour)
	assert.Equal(t, 10, c.Now().Hour())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}
