package st2110

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	t.Run("KeyValueAndFlags", func(t *testing.T) {
		params := parseParams("sampling=YCbCr-4:2:2; width=1920; interlace; segmented; TP=2110TPN;")
		require.Equal(t, "YCbCr-4:2:2", params["sampling"])
		require.Equal(t, "1920", params["width"])
		require.Equal(t, true, params["interlace"])
		require.Equal(t, true, params["segmented"])
		require.Equal(t, "2110TPN", params["TP"])
	})

	t.Run("CompoundValuesKeptRaw", func(t *testing.T) {
		params := parseParams("exactframerate=30000/1001; PAR=12:11; SSN=ST2110-20:2017")
		require.Equal(t, "30000/1001", params["exactframerate"])
		require.Equal(t, "12:11", params["PAR"])
		require.Equal(t, "ST2110-20:2017", params["SSN"])
	})

	t.Run("KeysAreCaseSensitive", func(t *testing.T) {
		params := parseParams("PM=2110GPM; pm=other")
		require.Equal(t, "2110GPM", params["PM"])
		require.Equal(t, "other", params["pm"])
	})

	t.Run("EmptyTokensIgnored", func(t *testing.T) {
		params := parseParams(" ; depth=10; ;")
		require.Len(t, params, 1)
		require.Equal(t, "10", params["depth"])
	})
}

func TestDecodeParams(t *testing.T) {
	t.Run("NumericCoercion", func(t *testing.T) {
		var params videoParams
		err := decodeParams(parseParams("width=1920; height=1080; CMAX=48; depth=16f; interlace;"), &params)
		require.NoError(t, err)
		require.Equal(t, 1920, params.Width)
		require.Equal(t, 1080, params.Height)
		require.Equal(t, 48, params.CMax)
		require.Equal(t, "16f", params.Depth)
		require.True(t, params.Interlace)
	})

	t.Run("NonNumericWidth", func(t *testing.T) {
		var params videoParams
		err := decodeParams(parseParams("width=wide;"), &params)
		require.ErrorIs(t, err, ErrMalformedCompoundValue)
	})

	t.Run("AudioChannelOrder", func(t *testing.T) {
		var params audioParams
		err := decodeParams(parseParams("channel-order=SMPTE2110.(M,M);"), &params)
		require.NoError(t, err)
		require.Equal(t, "SMPTE2110.(M,M)", params.ChannelOrder)
	})
}

func TestValidChannelOrder(t *testing.T) {
	require.NoError(t, ValidChannelOrder("M,DM,ST,LtRt,51,71,222,SGRP,U01,U64"))
	require.ErrorIs(t, ValidChannelOrder("M,QUAD"), ErrMalformedCompoundValue)
	require.ErrorIs(t, ValidChannelOrder("U00"), ErrMalformedCompoundValue)
}
