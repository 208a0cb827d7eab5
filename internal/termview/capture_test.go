package termview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingListener struct {
	moves, ends []float64
	cancels     int
}

func (l *recordingListener) Move(x float64) { l.moves = append(l.moves, x) }
func (l *recordingListener) End(x float64)  { l.ends = append(l.ends, x) }
func (l *recordingListener) Cancel()        { l.cancels++ }

func TestPointerCapture_RoutesUntilReleased(t *testing.T) {
	c := &pointerCapture{}
	l := &recordingListener{}

	release := c.Capture(l)
	assert.True(t, c.Active())

	c.Move(3)
	c.End(5)
	release()

	assert.False(t, c.Active())
	assert.Equal(t, []float64{3}, l.moves)
	assert.Equal(t, []float64{5}, l.ends)

	c.Move(7)
	assert.Len(t, l.moves, 1)
}

func TestPointerCapture_StaleReleaseKeepsNewerListener(t *testing.T) {
	c := &pointerCapture{}
	first, second := &recordingListener{}, &recordingListener{}

	releaseFirst := c.Capture(first)
	c.Capture(second)
	releaseFirst()

	assert.True(t, c.Active())
	c.Move(1)
	assert.Empty(t, first.moves)
	assert.Equal(t, []float64{1}, second.moves)
}

func TestPointerCapture_Cancel(t *testing.T) {
	c := &pointerCapture{}
	c.Cancel()

	l := &recordingListener{}
	c.Capture(l)
	c.Cancel()
	assert.Equal(t, 1, l.cancels)
}
