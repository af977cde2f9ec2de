package stream

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harshivkrishna/automated-billing-system/pkg/types"
)

func newTestFrame(num uint64) *types.VideoFrame {
	return &types.VideoFrame{
		Image:    image.NewRGBA(image.Rect(0, 0, 4, 4)),
		FrameNum: num,
	}
}

func TestBufferDropsNewestWhenFull(t *testing.T) {
	buf := NewFrameBuffer(3)

	for i := uint64(0); i < 3; i++ {
		require.True(t, buf.TryPush(newTestFrame(i)))
	}
	// Fourth push is dropped, not the oldest entry.
	require.False(t, buf.TryPush(newTestFrame(3)))
	require.Equal(t, 3, buf.Len())

	for i := uint64(0); i < 3; i++ {
		frame := buf.Pop()
		require.NotNil(t, frame)
		require.Equal(t, i, frame.FrameNum)
	}
	require.Nil(t, buf.Pop())
}

func TestBufferPopEmpty(t *testing.T) {
	buf := NewFrameBuffer(2)
	require.Nil(t, buf.Pop())
	require.Equal(t, 0, buf.Len())
}

func TestBufferFIFOOrder(t *testing.T) {
	buf := NewFrameBuffer(5)
	buf.TryPush(newTestFrame(1))
	buf.TryPush(newTestFrame(2))
	require.Equal(t, uint64(1), buf.Pop().FrameNum)
	buf.TryPush(newTestFrame(3))
	require.Equal(t, uint64(2), buf.Pop().FrameNum)
	require.Equal(t, uint64(3), buf.Pop().FrameNum)
}

func TestBufferDeepCopiesFrames(t *testing.T) {
	buf := NewFrameBuffer(2)
	frame := newTestFrame(1)
	frame.Image.Pix[0] = 10
	require.True(t, buf.TryPush(frame))

	// Producer keeps annotating its working buffer after the push.
	frame.Image.Pix[0] = 200

	queued := buf.Pop()
	require.Equal(t, uint8(10), queued.Image.Pix[0])
}

func TestBufferRejectsNil(t *testing.T) {
	buf := NewFrameBuffer(2)
	require.False(t, buf.TryPush(nil))
	require.Equal(t, 0, buf.Len())
}

func TestBufferDefaultCapacity(t *testing.T) {
	buf := NewFrameBuffer(0)
	for i := uint64(0); i < DefaultBufferCapacity; i++ {
		require.True(t, buf.TryPush(newTestFrame(i)))
	}
	require.False(t, buf.TryPush(newTestFrame(99)))
}
