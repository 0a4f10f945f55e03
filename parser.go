package st2110

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Parse deserializes SDP text into a Session.
//
// The parse runs in two stages: the generic SDP grammar first (line records
// split into session and media scopes, attributes decoded into the loose
// intermediate form), then the typed session build, where each media block is
// dispatched to its ST 2110 typer. Any failure is fatal to the whole parse;
// no partial Session is ever returned.
//
// Parameters:
//
//	text - UTF-8/ASCII SDP text, "\r\n" or "\n" line endings, starting with "v=0".
//
// Returns:
//
//	*Session - the fully typed session description.
//	error    - one of the package error kinds with line/field context.
func Parse(text string) (*Session, error) {
	scopes, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	if len(scopes.session) == 0 || scopes.session[0].typ != 'v' {
		return nil, fmt.Errorf("%w: sdp must start with v=0", ErrMalformedLine)
	}

	session := &Session{}
	if err := parseSessionScope(session, scopes.session); err != nil {
		return nil, err
	}

	for _, block := range scopes.media {
		md, err := parseMediaBlock(session, block)
		if err != nil {
			return nil, err
		}
		session.MediaDescriptions = append(session.MediaDescriptions, md)
	}

	return session, nil
}

// parseSessionScope fills everything above the first m= line.
func parseSessionScope(session *Session, lines []line) error {
	var okOrigin, okName, okTiming bool

	for _, l := range lines {
		switch l.typ {
		case 'v':
			version, err := strconv.Atoi(l.value)
			if err != nil {
				return malformedLine(l.num, "v="+l.value)
			}
			if version != 0 {
				return fmt.Errorf("%w: protocol version %d", ErrUnsupported, version)
			}
			session.ProtocolVersion = version

		case 'o':
			origin, err := parseOrigin(l)
			if err != nil {
				return err
			}
			session.Origin = origin
			okOrigin = true

		case 's':
			session.SessionName = l.value
			okName = true

		case 'i':
			session.SessionInformation = l.value

		case 'u':
			session.URI = l.value

		case 'e':
			session.EmailAddress = l.value

		case 'p':
			session.PhoneNumber = l.value

		case 'c':
			conn, err := parseConnection(l)
			if err != nil {
				return err
			}
			session.Connection = conn

		case 'b':
			bw, err := parseBandwidth(l)
			if err != nil {
				return err
			}
			session.Bandwidths = append(session.Bandwidths, bw)

		case 't':
			if okTiming {
				return fmt.Errorf("%w: multiple time descriptions", ErrUnsupported)
			}
			active, err := parseTimeActive(l)
			if err != nil {
				return err
			}
			session.Timing.TimeActive = active
			okTiming = true

		case 'r':
			return fmt.Errorf("%w: repeat times (r=)", ErrUnsupported)

		case 'z':
			return fmt.Errorf("%w: time zone adjustments (z=)", ErrUnsupported)

		case 'a':
			if err := decodeAttribute(&session.Attributes, l); err != nil {
				return err
			}

		default:
			log.Info().Int("line", l.num).Msgf("Unknown field %q found in the SDP.", string(l.typ))
		}
	}

	if !okOrigin {
		return missingRequired("origin (o=)", "session")
	}
	if !okName {
		return missingRequired("session name (s=)", "session")
	}
	if !okTiming {
		return missingRequired("time description (t=)", "session")
	}
	return nil
}

// parseMediaBlock builds one typed media description from an m= line and the
// lines below it. A block without its own c= line inherits the session-level
// connection; having neither is an error.
func parseMediaBlock(session *Session, block []line) (MediaDescription, error) {
	kind, common, err := parseMediaLine(block[0])
	if err != nil {
		return nil, err
	}

	for _, l := range block[1:] {
		switch l.typ {
		case 'c':
			conn, err := parseConnection(l)
			if err != nil {
				return nil, err
			}
			common.Connection = conn

		case 'b':
			bw, err := parseBandwidth(l)
			if err != nil {
				return nil, err
			}
			common.Bandwidths = append(common.Bandwidths, bw)

		case 'a':
			if err := decodeAttribute(&common.Attributes, l); err != nil {
				return nil, err
			}

		case 'i':
			// media titles carry no binding information

		case 'r':
			return nil, fmt.Errorf("%w: repeat times (r=)", ErrUnsupported)

		case 'z':
			return nil, fmt.Errorf("%w: time zone adjustments (z=)", ErrUnsupported)

		default:
			log.Info().Int("line", l.num).Msgf("Unknown field %q found in the SDP.", string(l.typ))
		}
	}

	if common.Connection == nil {
		if session.Connection == nil {
			return nil, missingRequired("connection information (c=)", fmt.Sprintf("%s media", kind))
		}
		conn := *session.Connection
		common.Connection = &conn
	}

	if err := checkPayloadReferences(common, kind); err != nil {
		return nil, err
	}

	switch kind {
	case MediaVideo:
		return typeVideo(common)
	case MediaAudio:
		return typeAudio(common)
	default:
		return typeData(common), nil
	}
}

// parseMediaLine reads "m=<kind> <port> <proto> <payloads>". Media kinds other
// than video and audio are carried opaquely as data.
func parseMediaLine(l line) (MediaType, MediaCommon, error) {
	fields := strings.Fields(l.value)
	if len(fields) < 3 {
		return "", MediaCommon{}, malformedLine(l.num, "m="+l.value)
	}

	var kind MediaType
	switch fields[0] {
	case "video":
		kind = MediaVideo
	case "audio":
		kind = MediaAudio
	default:
		log.Info().Str("media", fields[0]).Msg("Media kind carried as opaque data.")
		kind = MediaData
	}

	// "5020/2" asks for an extra port pair; only the first port binds.
	portField, _, _ := strings.Cut(fields[1], "/")
	port, err := strconv.Atoi(portField)
	if err != nil || port < 0 || port > 65535 {
		return "", MediaCommon{}, malformedLine(l.num, "m="+l.value)
	}

	common := MediaCommon{Port: port, Protocol: fields[2]}
	for _, pt := range fields[3:] {
		n, err := strconv.Atoi(pt)
		if err != nil {
			if kind == MediaData {
				continue
			}
			return "", MediaCommon{}, malformedLine(l.num, "m="+l.value)
		}
		common.Payloads = append(common.Payloads, n)
	}

	return kind, common, nil
}

// checkPayloadReferences enforces that every rtpmap and fmtp entry references
// a payload type announced on the m= line. Data media carries its formats
// opaquely, so no check applies there.
func checkPayloadReferences(common MediaCommon, kind MediaType) error {
	if kind == MediaData {
		return nil
	}
	announced := make(map[int]bool, len(common.Payloads))
	for _, pt := range common.Payloads {
		announced[pt] = true
	}
	for _, entry := range common.Attributes.RTPMap {
		if !announced[entry.PayloadType] {
			return fmt.Errorf("%w: rtpmap payload type %d not announced on %s media line",
				ErrInvariantViolation, entry.PayloadType, kind)
		}
	}
	for _, entry := range common.Attributes.FMTP {
		if !announced[entry.PayloadType] {
			return fmt.Errorf("%w: fmtp payload type %d not announced on %s media line",
				ErrInvariantViolation, entry.PayloadType, kind)
		}
	}
	return nil
}

func parseOrigin(l line) (Origin, error) {
	fields := strings.Fields(l.value)
	if len(fields) != 6 {
		return Origin{}, malformedLine(l.num, "o="+l.value)
	}

	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Origin{}, malformedLine(l.num, "o="+l.value)
	}
	version, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Origin{}, malformedLine(l.num, "o="+l.value)
	}
	addrType, err := parseAddrType(fields[4])
	if err != nil {
		return Origin{}, err
	}

	return Origin{
		Username:       fields[0],
		SessionID:      id,
		SessionVersion: version,
		NetType:        fields[3],
		AddrType:       addrType,
		UnicastAddress: fields[5],
	}, nil
}

func parseConnection(l line) (*ConnectionInformation, error) {
	fields := strings.Fields(l.value)
	if len(fields) != 3 {
		return nil, malformedLine(l.num, "c="+l.value)
	}
	addrType, err := parseAddrType(fields[1])
	if err != nil {
		return nil, err
	}

	conn := &ConnectionInformation{AddrType: addrType}
	// Multicast addresses carry a TTL suffix: "233.252.0.1/127".
	addr, ttl, found := strings.Cut(fields[2], "/")
	conn.ConnectionAddress = addr
	if found {
		conn.TTL, err = strconv.Atoi(ttl)
		if err != nil {
			return nil, malformedLine(l.num, "c="+l.value)
		}
	}
	return conn, nil
}

func parseAddrType(s string) (int, error) {
	switch s {
	case "IP4":
		return 4, nil
	case "IP6":
		return 6, nil
	}
	return 0, unknownEnumValue("addrtype", s)
}

func parseTimeActive(l line) (TimeActive, error) {
	fields := strings.Fields(l.value)
	if len(fields) != 2 {
		return TimeActive{}, malformedLine(l.num, "t="+l.value)
	}
	start, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return TimeActive{}, malformedLine(l.num, "t="+l.value)
	}
	stop, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return TimeActive{}, malformedLine(l.num, "t="+l.value)
	}
	return TimeActive{StartTime: start, StopTime: stop}, nil
}
