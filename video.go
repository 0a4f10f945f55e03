package st2110

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Uncompressed and JPEG-XS video streams have different fmtp requirements.
// These are the 2110-20:2022 7.2 mandatory parameters; JPEG-XS instead
// requires TP and lets the rest appear optionally.
var uncompressedRequired = []string{"exactframerate", "depth", "colorimetry", "PM", "sampling"}

// typeVideo applies the ST 2110 video interpretation to a generic media block.
//
// The routing parameter is the SMPTE Standard Number: "ST2110-20:<year>" means
// uncompressed, "ST2110-22:<year>" or no SSN at all means JPEG-XS, and any
// other value is a hard error. The profile then decides which fmtp parameters
// are mandatory.
func typeVideo(common MediaCommon) (*VideoDescription, error) {
	video := &VideoDescription{
		MediaCommon:  common,
		FramerateDen: 1,
		TCS:          TCSSDR,
		Range:        RangeNarrow,
		MaxUDP:       1460,
		PARWidth:     1,
		PARHeight:    1,
	}

	if len(common.Attributes.FMTP) == 0 {
		return nil, missingRequired("fmtp", "video media")
	}
	raw := parseParams(common.Attributes.FMTP[0].Config)
	var params videoParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	present := func(key string) bool {
		_, ok := raw[key]
		return ok
	}

	standard, err := ParseStandard(params.SSN)
	if err != nil {
		return nil, err
	}
	video.Standard = standard

	switch standard {
	case StandardUncompressed:
		for _, field := range uncompressedRequired {
			if !present(field) {
				return nil, missingRequired(field, "uncompressed video")
			}
		}
		video.FramerateNum, video.FramerateDen, err = parseFramerate(params.ExactFramerate)
		if err != nil {
			return nil, err
		}

	case StandardJPEGXS:
		if !present("TP") {
			return nil, missingRequired("TP", "jpeg-xs video")
		}
		if err := resolveJPEGXSFramerate(video, params, common.Attributes.Framerate); err != nil {
			return nil, err
		}
	}

	if present("sampling") {
		if video.Sampling, err = ParseSampling(params.Sampling); err != nil {
			return nil, err
		}
	}
	if present("depth") {
		if video.Depth, err = ParseDepth(params.Depth); err != nil {
			return nil, err
		}
	}
	if present("colorimetry") {
		if video.Colorimetry, err = ParseColorimetry(params.Colorimetry); err != nil {
			return nil, err
		}
	}
	if present("PM") {
		if video.PackingMode, err = ParsePackingMode(params.PackingMode); err != nil {
			return nil, err
		}
	}
	if present("TP") {
		if video.TP, err = ParseTP(params.TP); err != nil {
			return nil, err
		}
	}
	if present("TCS") {
		if video.TCS, err = ParseTCS(params.TCS); err != nil {
			return nil, err
		}
	}
	if present("RANGE") {
		if video.Range, err = ParseRange(params.Range); err != nil {
			return nil, err
		}
	}
	if present("PAR") {
		if video.PARWidth, video.PARHeight, err = parsePAR(params.PAR); err != nil {
			return nil, err
		}
	}

	video.Interlaced = params.Interlace
	video.Segmented = params.Segmented
	video.Width = params.Width
	video.Height = params.Height
	video.CMax = params.CMax
	if params.MaxUDP > 0 {
		video.MaxUDP = params.MaxUDP
	}

	// 2110-20:2022 7.3: BT2100 colorimetry does not permit FULLPROTECT.
	if video.Colorimetry == ColorimetryBT2100 && video.Range == RangeFullProtect {
		return nil, fmt.Errorf("%w: colorimetry BT2100 requires RANGE NARROW or FULL", ErrInvariantViolation)
	}

	return video, nil
}

// resolveJPEGXSFramerate fills the frame rate of a compressed stream. It may
// arrive as the exactframerate fmtp parameter or as an a=framerate attribute;
// either is accepted, and when both are present they must agree.
func resolveJPEGXSFramerate(video *VideoDescription, params videoParams, attr float64) error {
	if params.ExactFramerate != "" {
		num, den, err := parseFramerate(params.ExactFramerate)
		if err != nil {
			return err
		}
		video.FramerateNum, video.FramerateDen = num, den
		if attr != 0 && math.Abs(float64(num)/float64(den)-attr) > 1e-3*attr {
			return fmt.Errorf("%w: exactframerate %s disagrees with framerate attribute %g",
				ErrInvariantViolation, params.ExactFramerate, attr)
		}
		return nil
	}

	if attr == 0 {
		return missingRequired("exactframerate", "jpeg-xs video")
	}
	if attr != math.Trunc(attr) || attr < 1 {
		return fmt.Errorf("%w: framerate %g", ErrMalformedCompoundValue, attr)
	}
	video.FramerateNum, video.FramerateDen = int(attr), 1
	return nil
}

// Frame rates are either a single integer ("25") or a ratio of two integers.
// The ratio appears with a slash separator in the standards and with a dot in
// some equipment in the wild; both are accepted.
var (
	framerateInteger  = regexp.MustCompile(`^\d+$`)
	framerateDotForm  = regexp.MustCompile(`^(\d+)\.(\d+)$`)
	framerateFraction = regexp.MustCompile(`^(\d+)/(\d+)$`)
)

func parseFramerate(s string) (num, den int, err error) {
	if framerateInteger.MatchString(s) {
		num, err = strconv.Atoi(s)
		if err != nil || num < 1 {
			return 0, 0, fmt.Errorf("%w: exactframerate %q", ErrMalformedCompoundValue, s)
		}
		return num, 1, nil
	}

	m := framerateDotForm.FindStringSubmatch(s)
	if m == nil {
		m = framerateFraction.FindStringSubmatch(s)
	}
	if m == nil {
		return 0, 0, fmt.Errorf("%w: exactframerate %q", ErrMalformedCompoundValue, s)
	}

	num, errNum := strconv.Atoi(m[1])
	den, errDen := strconv.Atoi(m[2])
	if errNum != nil || errDen != nil || num < 1 || den < 1 {
		return 0, 0, fmt.Errorf("%w: exactframerate %q", ErrMalformedCompoundValue, s)
	}
	return num, den, nil
}

var parPattern = regexp.MustCompile(`^(\d+):(\d+)$`)

// parsePAR reads a pixel aspect ratio of the form "W:H".
func parsePAR(s string) (width, height int, err error) {
	m := parPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: PAR %q", ErrMalformedCompoundValue, s)
	}
	width, errW := strconv.Atoi(m[1])
	height, errH := strconv.Atoi(m[2])
	if errW != nil || errH != nil || width < 1 || height < 1 {
		return 0, 0, fmt.Errorf("%w: PAR %q", ErrMalformedCompoundValue, s)
	}
	return width, height, nil
}
