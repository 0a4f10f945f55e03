package st2110

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// decodeAttribute folds one a= line into the attribute bundle for its scope.
// Recognized names drive typed parsing; unknown names are kept raw and logged
// at info level. rtpmap, fmtp, and imageattr are list valued; mediaclk,
// framerate, and source-filter are singletons where a second occurrence
// overwrites the first with a diagnostic.
func decodeAttribute(attrs *Attributes, l line) error {
	name, value := l.value, ""
	if n := strings.Index(l.value, ":"); n >= 0 {
		if n == 0 {
			return malformedLine(l.num, "a="+l.value)
		}
		name, value = l.value[:n], l.value[n+1:]
	}

	switch name {
	case "rtpmap":
		entry, err := parseRTPMap(value, l.num)
		if err != nil {
			return err
		}
		attrs.RTPMap = append(attrs.RTPMap, entry)

	case "fmtp":
		entry, err := parseFMTPAttr(value, l.num)
		if err != nil {
			return err
		}
		attrs.FMTP = append(attrs.FMTP, entry)

	case "source-filter":
		filter, err := parseSourceFilter(value, l.num)
		if err != nil {
			return err
		}
		if attrs.SourceFilter != nil {
			log.Warn().Int("line", l.num).Msg("Duplicate source-filter attribute, keeping the last one.")
		}
		attrs.SourceFilter = filter

	case "imageattr":
		entry, err := parseImageAttr(value, l.num)
		if err != nil {
			return err
		}
		attrs.ImageAttributes = append(attrs.ImageAttributes, entry)

	case "mediaclk":
		if attrs.MediaClock != "" {
			log.Warn().Int("line", l.num).Msg("Duplicate mediaclk attribute, keeping the last one.")
		}
		attrs.MediaClock = value

	case "framerate":
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: framerate %q", ErrMalformedCompoundValue, value)
		}
		if attrs.Framerate != 0 {
			log.Warn().Int("line", l.num).Msg("Duplicate framerate attribute, keeping the last one.")
		}
		attrs.Framerate = rate

	default:
		log.Info().Str("attribute", name).Msgf("Unknown attribute %q found in the SDP.", l.value)
		attrs.Unknown = append(attrs.Unknown, l.value)
	}

	return nil
}

// parseRTPMap reads "<pt> <codec>/<rate>[/<encoding>]".
func parseRTPMap(value string, num int) (RTPMap, error) {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		return RTPMap{}, malformedLine(num, "a=rtpmap:"+value)
	}

	pt, err := strconv.Atoi(fields[0])
	if err != nil {
		return RTPMap{}, malformedLine(num, "a=rtpmap:"+value)
	}

	parts := strings.Split(fields[1], "/")
	if len(parts) < 2 {
		return RTPMap{}, malformedLine(num, "a=rtpmap:"+value)
	}
	rate, err := strconv.Atoi(parts[1])
	if err != nil {
		return RTPMap{}, malformedLine(num, "a=rtpmap:"+value)
	}

	entry := RTPMap{PayloadType: pt, Codec: parts[0], ClockRate: rate}
	if len(parts) > 2 {
		entry.Encoding = parts[2]
	}
	return entry, nil
}

// parseFMTPAttr reads "<pt> <config>" keeping the config raw.
func parseFMTPAttr(value string, num int) (FMTP, error) {
	parts := strings.SplitN(strings.TrimSpace(value), " ", 2)
	if len(parts) != 2 {
		return FMTP{}, malformedLine(num, "a=fmtp:"+value)
	}
	pt, err := strconv.Atoi(parts[0])
	if err != nil {
		return FMTP{}, malformedLine(num, "a=fmtp:"+value)
	}
	return FMTP{PayloadType: pt, Config: strings.TrimSpace(parts[1])}, nil
}

// parseSourceFilter reads "<mode> <nettype> <addrtype> <dest> <src-list>".
// The value may carry a leading space after the colon, as RFC 4570 examples
// do.
func parseSourceFilter(value string, num int) (*SourceFilter, error) {
	fields := strings.Fields(value)
	if len(fields) < 5 {
		return nil, malformedLine(num, "a=source-filter:"+value)
	}
	return &SourceFilter{
		FilterMode:   fields[0],
		NetType:      fields[1],
		AddressTypes: fields[2],
		DestAddress:  fields[3],
		SrcList:      strings.Join(fields[4:], " "),
	}, nil
}

// parseImageAttr reads "<pt> <dir1> <attrs1> [<dir2> <attrs2>]". Attribute
// sets may span several bracketed groups, so everything between the first
// direction token and the second is attrs1.
func parseImageAttr(value string, num int) (ImageAttributes, error) {
	fields := strings.Fields(value)
	if len(fields) < 3 {
		return ImageAttributes{}, malformedLine(num, "a=imageattr:"+value)
	}

	entry := ImageAttributes{PT: fields[0], Dir1: fields[1]}

	rest := fields[2:]
	for i, f := range rest {
		if f == "send" || f == "recv" {
			entry.Attrs1 = strings.Join(rest[:i], " ")
			entry.Dir2 = f
			entry.Attrs2 = strings.Join(rest[i+1:], " ")
			break
		}
	}
	if entry.Dir2 == "" {
		entry.Attrs1 = strings.Join(rest, " ")
	}
	if entry.Attrs1 == "" {
		return ImageAttributes{}, malformedLine(num, "a=imageattr:"+value)
	}
	return entry, nil
}

// parseBandwidth reads a "b=" value of the form "<bwtype>:<bandwidth>".
func parseBandwidth(l line) (BandwidthInformation, error) {
	parts := strings.SplitN(l.value, ":", 2)
	if len(parts) != 2 {
		return BandwidthInformation{}, malformedLine(l.num, "b="+l.value)
	}
	limit, err := strconv.Atoi(parts[1])
	if err != nil {
		return BandwidthInformation{}, malformedLine(l.num, "b="+l.value)
	}
	return BandwidthInformation{Type: parts[0], Limit: limit}, nil
}
