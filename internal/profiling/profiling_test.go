package profiling

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackAndReset(t *testing.T) {
	ResetFrame()
	for i := 0; i < 3; i++ {
		stop := Track("streaming.test")
		time.Sleep(time.Millisecond)
		stop()
	}
	Track("meshing.test")()

	assert.Equal(t, 3, Count("streaming.test"))
	assert.GreaterOrEqual(t, Snapshot()["streaming.test"], 3*time.Millisecond)
	assert.GreaterOrEqual(t, SumWithPrefix("streaming."), 3*time.Millisecond)

	top := TopN(1)
	assert.True(t, strings.HasPrefix(top, "streaming.test:"), top)
	assert.Contains(t, top, "(3)")

	ResetFrame()
	assert.Empty(t, Snapshot())
	assert.Equal(t, "", TopN(5))
}
