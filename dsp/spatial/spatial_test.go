package spatial

import (
	"testing"

	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/internal/azmath"
	"github.com/azaudio-go/azaudio/world"
	"github.com/stretchr/testify/require"
)

func monoSource(frames int, val float32) buffer.Buffer {
	b := buffer.Alloc(frames, buffer.Mono(), 48000)
	for i := range b.Samples {
		b.Samples[i] = val
	}
	return b
}

func TestSourceDirectlyInFrontFavorsFrontChannels(t *testing.T) {
	dst := buffer.Alloc(8, buffer.Surround51(), 48000)
	src := monoSource(8, 1)
	pos := azmath.Vec3{X: 0, Y: 0, Z: 10}
	code := Mix(dst, dst.Layout, src, pos, pos, 1, 1, nil)
	require.True(t, code.Ok())

	front := dst.Layout.IndexOf(buffer.PosCenterFront)
	back := dst.Layout.IndexOf(buffer.PosLeftBack)
	require.Greater(t, dst.At(0, front), dst.At(0, back))
}

func TestSubwooferReceivesSourceUnchanged(t *testing.T) {
	dst := buffer.Alloc(4, buffer.Surround51(), 48000)
	src := monoSource(4, 0.3)
	pos := azmath.Vec3{X: 1, Y: 0, Z: 0}
	require.True(t, Mix(dst, dst.Layout, src, pos, pos, 1, 1, nil).Ok())
	sub := dst.Layout.IndexOf(buffer.PosSubwoofer)
	require.InDelta(t, 0.3, dst.At(0, sub), 1e-5)
}

func TestCenterOfHeadSteersUniformly(t *testing.T) {
	dst := buffer.Alloc(4, buffer.Surround51(), 48000)
	src := monoSource(4, 1)
	origin := azmath.Vec3{X: 0, Y: 0, Z: 0}
	w := world.Default()
	require.True(t, Mix(dst, dst.Layout, src, origin, origin, 1, 1, &w).Ok())
	front := dst.Layout.IndexOf(buffer.PosCenterFront)
	back := dst.Layout.IndexOf(buffer.PosLeftBack)
	require.InDelta(t, dst.At(0, front), dst.At(0, back), 1e-3)
}

func TestRejectsNonMonoSource(t *testing.T) {
	dst := buffer.Alloc(4, buffer.Stereo(), 48000)
	src := buffer.Alloc(4, buffer.Stereo(), 48000)
	pos := azmath.Vec3{X: 0, Y: 0, Z: 1}
	require.False(t, Mix(dst, dst.Layout, src, pos, pos, 1, 1, nil).Ok())
}
