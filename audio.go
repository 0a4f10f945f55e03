package st2110

import (
	"fmt"
	"regexp"
)

// channelOrderPattern matches the SMPTE 2110 channel-order convention, a list
// of channel grouping symbols in parentheses separated by commas, as in
// "channel-order=SMPTE2110.(M,M,M,M,ST,U02)" (ST 2110-30:2017 6.2.2).
var channelOrderPattern = regexp.MustCompile(`SMPTE2110\.\((.+)\)`)

// typeAudio applies the ST 2110-30 audio interpretation to a generic media
// block. The channel-order parameter is optional; when present, its captured
// symbol list is validated against ST 2110-30:2017 Table 1 and stored raw.
func typeAudio(common MediaCommon) (*AudioDescription, error) {
	audio := &AudioDescription{MediaCommon: common}

	if len(common.Attributes.FMTP) == 0 {
		return audio, nil
	}
	var params audioParams
	if err := decodeParams(parseParams(common.Attributes.FMTP[0].Config), &params); err != nil {
		return nil, err
	}
	if params.ChannelOrder == "" {
		return audio, nil
	}

	m := channelOrderPattern.FindStringSubmatch(params.ChannelOrder)
	if m == nil {
		return nil, fmt.Errorf("%w: channel-order %q", ErrMalformedCompoundValue, params.ChannelOrder)
	}
	if err := ValidChannelOrder(m[1]); err != nil {
		return nil, err
	}
	audio.ChannelOrder = m[1]

	return audio, nil
}

// typeData carries any other media kind opaquely, preserving its fmtp payload
// verbatim.
func typeData(common MediaCommon) *DataDescription {
	data := &DataDescription{MediaCommon: common}
	if len(common.Attributes.FMTP) > 0 {
		data.Config = common.Attributes.FMTP[0].Config
	}
	return data
}
