package st2110

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// videoSDP builds a minimal single-video session around one fmtp payload.
func videoSDP(fmtp string, extra ...string) string {
	lines := []string{
		"v=0",
		"o=- 1 1 IN IP4 10.0.0.1",
		"s=-",
		"t=0 0",
		"m=video 5000 RTP/AVP 96",
		"c=IN IP4 239.0.0.1/64",
		"a=rtpmap:96 jxsv/90000",
		"a=fmtp:96 " + fmtp,
	}
	lines = append(lines, extra...)
	return strings.Join(lines, "\r\n") + "\r\n"
}

func parseVideo(t *testing.T, fmtp string, extra ...string) *VideoDescription {
	t.Helper()
	session, err := Parse(videoSDP(fmtp, extra...))
	require.NoError(t, err)
	video, ok := session.MediaDescriptions[0].(*VideoDescription)
	require.True(t, ok)
	return video
}

func TestVideoJPEGXS(t *testing.T) {
	t.Run("FractionalFramerateSlash", func(t *testing.T) {
		video := parseVideo(t, "SSN=ST2110-22:2022; TP=2110TPNL; exactframerate=30000/1001;")
		require.Equal(t, StandardJPEGXS, video.Standard)
		require.Equal(t, TPNarrowLinear, video.TP)
		require.Equal(t, 30000, video.FramerateNum)
		require.Equal(t, 1001, video.FramerateDen)
	})

	t.Run("FractionalFramerateDot", func(t *testing.T) {
		video := parseVideo(t, "TP=2110TPNL; exactframerate=30000.1001;")
		require.Equal(t, StandardJPEGXS, video.Standard)
		require.Equal(t, 30000, video.FramerateNum)
		require.Equal(t, 1001, video.FramerateDen)
	})

	t.Run("NoSSNMeansJPEGXS", func(t *testing.T) {
		video := parseVideo(t, "TP=2110TPW; exactframerate=50;")
		require.Equal(t, StandardJPEGXS, video.Standard)
		require.Equal(t, TPWide, video.TP)
	})

	t.Run("FramerateFromAttribute", func(t *testing.T) {
		video := parseVideo(t, "TP=2110TPN;", "a=framerate:60")
		require.Equal(t, 60, video.FramerateNum)
		require.Equal(t, 1, video.FramerateDen)
	})

	t.Run("FramerateBothFormsAgree", func(t *testing.T) {
		video := parseVideo(t, "TP=2110TPN; exactframerate=25;", "a=framerate:25")
		require.Equal(t, 25, video.FramerateNum)
	})

	t.Run("FramerateBothFormsDisagree", func(t *testing.T) {
		_, err := Parse(videoSDP("TP=2110TPN; exactframerate=25;", "a=framerate:30"))
		require.ErrorIs(t, err, ErrInvariantViolation)
	})

	t.Run("MissingTP", func(t *testing.T) {
		_, err := Parse(videoSDP("SSN=ST2110-22:2022; exactframerate=25;"))
		require.ErrorIs(t, err, ErrMissingRequired)
	})

	t.Run("MissingFramerate", func(t *testing.T) {
		_, err := Parse(videoSDP("SSN=ST2110-22:2022; TP=2110TPN;"))
		require.ErrorIs(t, err, ErrMissingRequired)
	})

	t.Run("OptionalUncompressedFields", func(t *testing.T) {
		video := parseVideo(t, "TP=2110TPN; exactframerate=50; CMAX=48; depth=12; sampling=YCbCr-4:2:0; width=3840; height=2160;")
		require.Equal(t, 48, video.CMax)
		require.Equal(t, Depth12, video.Depth)
		require.Equal(t, SamplingYCbCr420, video.Sampling)
		require.Equal(t, 3840, video.Width)
		require.Equal(t, 2160, video.Height)
	})
}

func TestVideoUncompressed(t *testing.T) {
	const full = "sampling=YCbCr-4:2:2; width=1920; height=1080; exactframerate=25; depth=10; TCS=SDR; colorimetry=BT709; PM=2110GPM; SSN=ST2110-20:2017; TP=2110TPN;"

	t.Run("MissingEachRequiredField", func(t *testing.T) {
		for _, missing := range []string{"exactframerate", "depth", "colorimetry", "PM", "sampling"} {
			var kept []string
			for _, token := range strings.Split(full, ";") {
				if token = strings.TrimSpace(token); token != "" && !strings.HasPrefix(token, missing+"=") {
					kept = append(kept, token)
				}
			}
			_, err := Parse(videoSDP(strings.Join(kept, "; ") + ";"))
			require.ErrorIs(t, err, ErrMissingRequired, "dropped %s", missing)
		}
	})

	t.Run("InterlaceAndSegmentedFlags", func(t *testing.T) {
		video := parseVideo(t, full+" interlace; segmented;")
		require.True(t, video.Interlaced)
		require.True(t, video.Segmented)
	})

	t.Run("PixelAspectRatio", func(t *testing.T) {
		video := parseVideo(t, full+" PAR=12:11;")
		require.Equal(t, 12, video.PARWidth)
		require.Equal(t, 11, video.PARHeight)
	})

	t.Run("MalformedPAR", func(t *testing.T) {
		_, err := Parse(videoSDP(full + " PAR=wide;"))
		require.ErrorIs(t, err, ErrMalformedCompoundValue)
	})

	t.Run("MalformedFramerate", func(t *testing.T) {
		_, err := Parse(videoSDP(strings.Replace(full, "exactframerate=25", "exactframerate=25/30/40", 1)))
		require.ErrorIs(t, err, ErrMalformedCompoundValue)
	})

	t.Run("FloatDepth", func(t *testing.T) {
		video := parseVideo(t, strings.Replace(full, "depth=10", "depth=16f", 1))
		require.Equal(t, DepthFloat16, video.Depth)
		require.True(t, video.Depth.Float())
		require.Equal(t, 16, video.Depth.Bits())
	})

	t.Run("InvalidDepth", func(t *testing.T) {
		_, err := Parse(videoSDP(strings.Replace(full, "depth=10", "depth=14", 1)))
		require.ErrorIs(t, err, ErrUnknownEnumValue)
	})
}

func TestVideoEnumErrors(t *testing.T) {
	const base = "sampling=YCbCr-4:2:2; exactframerate=25; depth=10; PM=2110GPM; SSN=ST2110-20:2017; "

	t.Run("UnknownColorimetry", func(t *testing.T) {
		_, err := Parse(videoSDP(base + "colorimetry=BT9999;"))
		require.ErrorIs(t, err, ErrUnknownEnumValue)
	})

	t.Run("UnknownSSN", func(t *testing.T) {
		_, err := Parse(videoSDP("SSN=ST2110-99:2022; TP=2110TPN; exactframerate=25;"))
		require.ErrorIs(t, err, ErrUnknownEnumValue)
	})

	t.Run("KeySamplingUnsupported", func(t *testing.T) {
		_, err := Parse(videoSDP(strings.Replace(base, "sampling=YCbCr-4:2:2", "sampling=KEY", 1) + "colorimetry=BT709;"))
		require.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("BT2100WithFullProtect", func(t *testing.T) {
		_, err := Parse(videoSDP(base + "colorimetry=BT2100; RANGE=FULLPROTECT;"))
		require.ErrorIs(t, err, ErrInvariantViolation)
	})

	t.Run("BT2100WithFull", func(t *testing.T) {
		video := parseVideo(t, base+"colorimetry=BT2100; RANGE=FULL; TCS=PQ;")
		require.Equal(t, ColorimetryBT2100, video.Colorimetry)
		require.Equal(t, RangeFull, video.Range)
		require.Equal(t, TCSPQ, video.TCS)
	})

	t.Run("MissingFmtp", func(t *testing.T) {
		sdp := "v=0\r\n" +
			"o=- 1 1 IN IP4 10.0.0.1\r\n" +
			"s=-\r\n" +
			"c=IN IP4 239.0.0.1/64\r\n" +
			"t=0 0\r\n" +
			"m=video 5000 RTP/AVP 96\r\n"
		_, err := Parse(sdp)
		require.ErrorIs(t, err, ErrMissingRequired)
	})
}
