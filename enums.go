/*
Package st2110

This file defines the closed vocabularies used by SMPTE ST 2110 session
descriptions. Every value is the exact literal that appears on the wire in an
SDP fmtp payload.

Types and Constants:

  - MediaType: Kind of a media description (video, audio, data).
  - Standard: SMPTE suite member carrying the video essence (2110-20 or 2110-22).
  - Sampling: Color difference signal sub-sampling structures (2110-20:2022 7.4.1).
  - Depth: Bits per sample, including the 16-bit float form (2110-20:2022 7.4.2).
  - Colorimetry: System colorimetry of the image samples (2110-20:2022 7.5).
  - PackingMode: RTP payload packing modes (2110-20:2022 6.3).
  - TCS: Transfer characteristic systems (2110-20:2022 7.6).
  - Range: Signal encoding ranges (2110-20:2022 7.3).
  - TP: Traffic shaping and delivery timing profiles (2110-22:2022 5.3).

Each type is defined as a string whose value is the wire literal, so a constant
can be written into an fmtp payload without translation.
*/

package st2110

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MediaType identifies the kind of a media description.
type MediaType string

const (
	// MediaVideo is an m=video block.
	MediaVideo MediaType = "video"

	// MediaAudio is an m=audio block.
	MediaAudio MediaType = "audio"

	// MediaData is an m=application or other opaque block.
	MediaData MediaType = "data"
)

// Standard identifies which SMPTE 2110 suite member carries the video essence.
type Standard string

const (
	// StandardUncompressed is uncompressed active video per SMPTE ST 2110-20.
	StandardUncompressed Standard = "ST2110-20"

	// StandardJPEGXS is JPEG-XS compressed video per SMPTE ST 2110-22.
	StandardJPEGXS Standard = "ST2110-22"
)

// Sampling defines the color difference signal sub-sampling structure of a
// video stream.
type Sampling string

const (
	// SamplingYCbCr444 is non-constant luminance Y'Cb'Cr' 4:4:4.
	SamplingYCbCr444 Sampling = "YCbCr-4:4:4"

	// SamplingYCbCr422 is non-constant luminance Y'Cb'Cr' 4:2:2.
	SamplingYCbCr422 Sampling = "YCbCr-4:2:2"

	// SamplingYCbCr420 is non-constant luminance Y'Cb'Cr' 4:2:0.
	SamplingYCbCr420 Sampling = "YCbCr-4:2:0"

	// SamplingCLYCbCr444 is constant luminance Yc'Cbc'Crc' 4:4:4.
	SamplingCLYCbCr444 Sampling = "CLYCbCr-4:4:4"

	// SamplingCLYCbCr422 is constant luminance Yc'Cbc'Crc' 4:2:2.
	SamplingCLYCbCr422 Sampling = "CLYCbCr-4:2:2"

	// SamplingCLYCbCr420 is constant luminance Yc'Cbc'Crc' 4:2:0.
	SamplingCLYCbCr420 Sampling = "CLYCbCr-4:2:0"

	// SamplingICtCp444 is constant intensity ICtCp 4:4:4.
	SamplingICtCp444 Sampling = "ICtCp-4:4:4"

	// SamplingICtCp422 is constant intensity ICtCp 4:2:2.
	SamplingICtCp422 Sampling = "ICtCp-4:2:2"

	// SamplingICtCp420 is constant intensity ICtCp 4:2:0.
	SamplingICtCp420 Sampling = "ICtCp-4:2:0"

	// SamplingRGB is 4:4:4 R'G'B' or RGB.
	SamplingRGB Sampling = "RGB"

	// SamplingXYZ is 4:4:4 X'Y'Z' per SMPTE ST 428-1.
	SamplingXYZ Sampling = "XYZ"

	// SamplingKey is a key (alpha) signal per SMPTE RP 157. Recognized but
	// deliberately rejected at parse time.
	SamplingKey Sampling = "KEY"
)

// ParseSampling converts a wire literal into a Sampling value. The KEY literal
// is recognized syntactically and rejected with ErrUnsupported so callers can
// downgrade instead of treating it as a typo.
func ParseSampling(s string) (Sampling, error) {
	switch Sampling(s) {
	case SamplingYCbCr444, SamplingYCbCr422, SamplingYCbCr420,
		SamplingCLYCbCr444, SamplingCLYCbCr422, SamplingCLYCbCr420,
		SamplingICtCp444, SamplingICtCp422, SamplingICtCp420,
		SamplingRGB, SamplingXYZ:
		return Sampling(s), nil
	case SamplingKey:
		return SamplingKey, fmt.Errorf("%w: KEY sampling", ErrUnsupported)
	}
	return "", unknownEnumValue("sampling", s)
}

// Depth is the number of bits per image sample. The wire carries the token, so
// the 16-bit integer and 16-bit float forms stay distinguishable.
type Depth string

const (
	// Depth8 is 8-bit integer samples.
	Depth8 Depth = "8"

	// Depth10 is 10-bit integer samples.
	Depth10 Depth = "10"

	// Depth12 is 12-bit integer samples.
	Depth12 Depth = "12"

	// Depth16 is 16-bit integer samples.
	Depth16 Depth = "16"

	// DepthFloat16 is 16-bit floating point samples, written "16f" on the wire.
	DepthFloat16 Depth = "16f"
)

// Bits returns the sample width in bits.
func (d Depth) Bits() int {
	if d == DepthFloat16 {
		return 16
	}
	n, _ := strconv.Atoi(string(d))
	return n
}

// Float reports whether samples are floating point.
func (d Depth) Float() bool {
	return d == DepthFloat16
}

// ParseDepth converts a wire literal into a Depth value.
func ParseDepth(s string) (Depth, error) {
	switch Depth(s) {
	case Depth8, Depth10, Depth12, Depth16, DepthFloat16:
		return Depth(s), nil
	}
	return "", unknownEnumValue("depth", s)
}

// Colorimetry specifies the system colorimetry used by the image samples.
type Colorimetry string

const (
	// ColorimetryBT601 is ITU-R BT.601 colorimetry.
	ColorimetryBT601 Colorimetry = "BT601"

	// ColorimetryBT709 is ITU-R BT.709 colorimetry.
	ColorimetryBT709 Colorimetry = "BT709"

	// ColorimetryBT2020 is ITU-R BT.2020 colorimetry.
	ColorimetryBT2020 Colorimetry = "BT2020"

	// ColorimetryBT2100 is ITU-R BT.2100 colorimetry.
	ColorimetryBT2100 Colorimetry = "BT2100"

	// ColorimetryST2065_1 is Academy Color Encoding Specification per ST 2065-1.
	ColorimetryST2065_1 Colorimetry = "ST2065-1"

	// ColorimetryST2065_3 is Academy Density Exchange Encoding per ST 2065-3.
	ColorimetryST2065_3 Colorimetry = "ST2065-3"

	// ColorimetryUnspecified is a stream whose colorimetry is not specified.
	ColorimetryUnspecified Colorimetry = "UNSPECIFIED"

	// ColorimetryXYZ is X'Y'Z' colorimetry per ST 428-1.
	ColorimetryXYZ Colorimetry = "XYZ"

	// ColorimetryAlpha is an alpha channel carried as its own essence.
	ColorimetryAlpha Colorimetry = "ALPHA"
)

// ParseColorimetry converts a wire literal into a Colorimetry value.
func ParseColorimetry(s string) (Colorimetry, error) {
	switch Colorimetry(s) {
	case ColorimetryBT601, ColorimetryBT709, ColorimetryBT2020, ColorimetryBT2100,
		ColorimetryST2065_1, ColorimetryST2065_3, ColorimetryUnspecified,
		ColorimetryXYZ, ColorimetryAlpha:
		return Colorimetry(s), nil
	}
	return "", unknownEnumValue("colorimetry", s)
}

// PackingMode defines how samples are packed into RTP payloads, written as the
// "PM" fmtp parameter.
type PackingMode string

const (
	// PackingGPM is the general packing mode, wire literal "2110GPM".
	PackingGPM PackingMode = "2110GPM"

	// PackingBPM is the block packing mode, wire literal "2110BPM".
	PackingBPM PackingMode = "2110BPM"
)

// ParsePackingMode converts a wire literal into a PackingMode value.
func ParsePackingMode(s string) (PackingMode, error) {
	switch PackingMode(s) {
	case PackingGPM, PackingBPM:
		return PackingMode(s), nil
	}
	return "", unknownEnumValue("PM", s)
}

// TCS is the transfer characteristic system of a video stream, written as the
// "TCS" fmtp parameter. Defaults to SDR when absent.
type TCS string

const (
	// TCSSDR is standard dynamic range.
	TCSSDR TCS = "SDR"

	// TCSPQ is perceptual quantization.
	TCSPQ TCS = "PQ"

	// TCSHLG is hybrid log gamma.
	TCSHLG TCS = "HLG"

	// TCSLinear is linear encoded floating point samples.
	TCSLinear TCS = "LINEAR"

	// TCSBT2100LinPQ is linear floating point normalized from PQ.
	TCSBT2100LinPQ TCS = "BT2100LINPQ"

	// TCSBT2100LinHLG is linear floating point normalized from HLG.
	TCSBT2100LinHLG TCS = "BT2100LINHLG"

	// TCSST2065_1 is linear floating point per SMPTE ST 2065-1.
	TCSST2065_1 TCS = "ST2065-1"

	// TCSST428_1 is the transfer characteristic of SMPTE ST 428-1 4.3.
	TCSST428_1 TCS = "ST428-1"

	// TCSDensity is density encoded samples per SMPTE ST 2065-3.
	TCSDensity TCS = "DENSITY"

	// TCSST2115LogS3 is Camera Log S3 high dynamic range per SMPTE ST 2115.
	TCSST2115LogS3 TCS = "ST2115LOGS3"

	// TCSUnspecified is a stream whose transfer characteristics are not specified.
	TCSUnspecified TCS = "UNSPECIFIED"
)

// ParseTCS converts a wire literal into a TCS value.
func ParseTCS(s string) (TCS, error) {
	switch TCS(s) {
	case TCSSDR, TCSPQ, TCSHLG, TCSLinear, TCSBT2100LinPQ, TCSBT2100LinHLG,
		TCSST2065_1, TCSST428_1, TCSDensity, TCSST2115LogS3, TCSUnspecified:
		return TCS(s), nil
	}
	return "", unknownEnumValue("TCS", s)
}

// Range is the signal encoding range, written as the "RANGE" fmtp parameter.
// Defaults to NARROW when absent.
type Range string

const (
	// RangeNarrow is the narrow encoding range.
	RangeNarrow Range = "NARROW"

	// RangeFull is the full encoding range.
	RangeFull Range = "FULL"

	// RangeFullProtect is the full protected encoding range. Not permitted
	// together with BT2100 colorimetry.
	RangeFullProtect Range = "FULLPROTECT"
)

// ParseRange converts a wire literal into a Range value.
func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case RangeNarrow, RangeFull, RangeFullProtect:
		return Range(s), nil
	}
	return "", unknownEnumValue("RANGE", s)
}

// TP is the traffic shaping and delivery timing profile of a compressed
// stream, written as the "TP" fmtp parameter.
type TP string

const (
	// TPNarrow is the narrow sender profile, wire literal "2110TPN".
	TPNarrow TP = "2110TPN"

	// TPNarrowLinear is the narrow linear sender profile, wire literal "2110TPNL".
	TPNarrowLinear TP = "2110TPNL"

	// TPWide is the wide sender profile, wire literal "2110TPW".
	TPWide TP = "2110TPW"
)

// ParseTP converts a wire literal into a TP value.
func ParseTP(s string) (TP, error) {
	switch TP(s) {
	case TPNarrow, TPNarrowLinear, TPWide:
		return TP(s), nil
	}
	return "", unknownEnumValue("TP", s)
}

var ssnPattern = regexp.MustCompile(`^ST2110-(\d+):\d+$`)

// ParseStandard routes an SMPTE Standard Number such as "ST2110-20:2017" to
// the suite member it names. An empty SSN means JPEG-XS: 2110-22 does not
// require the parameter.
func ParseStandard(ssn string) (Standard, error) {
	if ssn == "" {
		return StandardJPEGXS, nil
	}
	m := ssnPattern.FindStringSubmatch(ssn)
	if m != nil {
		switch m[1] {
		case "20":
			return StandardUncompressed, nil
		case "22":
			return StandardJPEGXS, nil
		}
	}
	return "", unknownEnumValue("SSN", ssn)
}

// groupingSymbol matches one channel grouping symbol from SMPTE ST
// 2110-30:2017 Table 1: M, DM, ST, LtRt, 51, 71, 222, SGRP, or U01..U64.
var groupingSymbol = regexp.MustCompile(`^(M|DM|ST|LtRt|51|71|222|SGRP|U(0[1-9]|[1-5][0-9]|6[0-4]))$`)

// ValidChannelOrder checks a comma-separated list of channel grouping symbols,
// the captured group of a channel-order parameter such as
// "SMPTE2110.(M,M,ST,U02)".
func ValidChannelOrder(order string) error {
	for _, symbol := range strings.Split(order, ",") {
		if !groupingSymbol.MatchString(strings.TrimSpace(symbol)) {
			return fmt.Errorf("%w: channel-order grouping symbol %q", ErrMalformedCompoundValue, symbol)
		}
	}
	return nil
}
