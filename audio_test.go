package st2110

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func audioSDP(lines ...string) string {
	all := append([]string{
		"v=0",
		"o=- 1 1 IN IP4 10.0.0.1",
		"s=-",
		"c=IN IP4 239.0.1.2/64",
		"t=0 0",
		"m=audio 5004 RTP/AVP 97",
	}, lines...)
	return strings.Join(all, "\r\n") + "\r\n"
}

func TestAudioChannelOrder(t *testing.T) {
	t.Run("Stereo", func(t *testing.T) {
		session, err := Parse(audioSDP(
			"a=rtpmap:97 L24/48000/2",
			"a=fmtp:97 channel-order=SMPTE2110.(ST);",
		))
		require.NoError(t, err)

		audio, ok := session.MediaDescriptions[0].(*AudioDescription)
		require.True(t, ok)
		require.Equal(t, MediaAudio, audio.Kind())
		require.Equal(t, "ST", audio.ChannelOrder)
		require.Equal(t, []RTPMap{{PayloadType: 97, Codec: "L24", ClockRate: 48000, Encoding: "2"}}, audio.Attributes.RTPMap)
	})

	t.Run("MixedGroups", func(t *testing.T) {
		session, err := Parse(audioSDP(
			"a=rtpmap:97 L24/48000/8",
			"a=fmtp:97 channel-order=SMPTE2110.(M,M,M,M,ST,U02);",
		))
		require.NoError(t, err)
		audio := session.MediaDescriptions[0].(*AudioDescription)
		require.Equal(t, "M,M,M,M,ST,U02", audio.ChannelOrder)
	})

	t.Run("SurroundAndSDIGroups", func(t *testing.T) {
		session, err := Parse(audioSDP(
			"a=rtpmap:97 L24/48000/16",
			"a=fmtp:97 channel-order=SMPTE2110.(51,LtRt,SGRP,U64);",
		))
		require.NoError(t, err)
		audio := session.MediaDescriptions[0].(*AudioDescription)
		require.Equal(t, "51,LtRt,SGRP,U64", audio.ChannelOrder)
	})

	t.Run("AbsentIsPermitted", func(t *testing.T) {
		session, err := Parse(audioSDP("a=rtpmap:97 L24/48000/2"))
		require.NoError(t, err)
		audio := session.MediaDescriptions[0].(*AudioDescription)
		require.Empty(t, audio.ChannelOrder)
	})

	t.Run("WrongConvention", func(t *testing.T) {
		_, err := Parse(audioSDP("a=fmtp:97 channel-order=AES67.(ST);"))
		require.ErrorIs(t, err, ErrMalformedCompoundValue)
	})

	t.Run("InvalidGroupingSymbol", func(t *testing.T) {
		_, err := Parse(audioSDP("a=fmtp:97 channel-order=SMPTE2110.(ST,Q1);"))
		require.ErrorIs(t, err, ErrMalformedCompoundValue)
	})

	t.Run("UndefinedSymbolOutOfRange", func(t *testing.T) {
		_, err := Parse(audioSDP("a=fmtp:97 channel-order=SMPTE2110.(U65);"))
		require.ErrorIs(t, err, ErrMalformedCompoundValue)
	})
}
