package util

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsContentID(t *testing.T) {
	assert.True(t, IsContentID(strings.Repeat("0", 64)))
	assert.True(t, IsContentID(strings.Repeat("a1", 32)))

	assert.False(t, IsContentID("xyz"))
	assert.False(t, IsContentID(""))
	assert.False(t, IsContentID(strings.Repeat("0", 63)))
	assert.False(t, IsContentID(strings.Repeat("0", 65)))
	assert.False(t, IsContentID(strings.Repeat("A", 64)))
	assert.False(t, IsContentID(strings.Repeat("g", 64)))
}

func TestNormalizeTags(t *testing.T) {
	tags := NormalizeTags([]string{"#Bitcoin", "bitcoin", " NOSTR ", "", "#", "vine"})
	assert.Equal(t, []string{"bitcoin", "nostr", "vine"}, tags)
}

func TestHourStart(t *testing.T) {
	ts := time.Date(2026, 8, 30, 12, 45, 31, 999, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), HourStart(ts))

	// 非 UTC 时间按 UTC 截断
	loc := time.FixedZone("UTC+2", 2*3600)
	assert.Equal(t, time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC), HourStart(time.Date(2026, 8, 30, 12, 30, 0, 0, loc)))
}
