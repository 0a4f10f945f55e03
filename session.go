// Package st2110 parses and emits Session Description Protocol documents per
// RFC 8866, with the SMPTE ST 2110 extensions used by professional IP media
// transport: uncompressed video (2110-20), JPEG-XS compressed video (2110-22),
// and PCM audio (2110-30).
//
// A Session is produced by Parse and is immutable afterwards. The reverse
// path, Emit, renders sender and receiver advertisement SDPs with the NMOS
// extension attributes.
//
// Main types and functions:
//   - Session: Fully typed description of one SDP document.
//   - MediaDescription: Tagged variant over VideoDescription, AudioDescription,
//     and DataDescription.
//   - Parse: Two-stage parse from SDP text to a Session.
//   - Emit: RFC 8866 template emitter for sender/receiver advertisements.
package st2110

import (
	"fmt"
	"strconv"
)

// Origin is the "o=" field. The tuple of Username, SessionID, NetType,
// AddrType, and UnicastAddress forms a globally unique identifier for the
// session.
//
// Fields:
//
//	Username       string - The user's login on the originating host, "-" when the host has no user ids.
//	SessionID      int64  - Numeric session identifier.
//	SessionVersion int64  - Version number of this session description.
//	NetType        string - Network type, "IN" for Internet.
//	AddrType       int    - IP version of the unicast address, 4 or 6.
//	UnicastAddress string - Address of the machine the session was created from.
type Origin struct {
	Username       string
	SessionID      int64
	SessionVersion int64
	NetType        string
	AddrType       int
	UnicastAddress string
}

// ConnectionInformation is the "c=" field, the information necessary to
// establish a network connection. Required at session level or in every media
// block.
type ConnectionInformation struct {
	// AddrType is the IP version of the connection address, 4 or 6.
	AddrType int

	// ConnectionAddress is the connection address without its TTL suffix.
	ConnectionAddress string

	// TTL is the multicast time to live appended to the address with a slash,
	// as in "c=IN IP4 233.252.0.1/127". Zero when absent.
	TTL int
}

// BandwidthInformation is one "b=" field.
type BandwidthInformation struct {
	// Type is "CT" (conference total), "AS" (application specific), or an
	// X- prefixed experimental tag.
	Type string

	// Limit is the proposed bandwidth limit.
	Limit int
}

// TimeActive is the "t=" field. A start and stop of zero denotes a permanent
// session.
type TimeActive struct {
	StartTime int64
	StopTime  int64
}

// TimeDescription holds the one required time description of a session.
// Repeat times ("r=") and time zone adjustments ("z=") are part of the SDP
// grammar but deliberately rejected by the parser.
type TimeDescription struct {
	TimeActive TimeActive
}

// RTPMap is one "a=rtpmap" entry.
type RTPMap struct {
	PayloadType int
	Codec       string
	ClockRate   int
	Encoding    string
}

// FMTP is one "a=fmtp" entry. Config carries the raw semicolon-separated
// parameter payload; the media typers interpret it.
type FMTP struct {
	PayloadType int
	Config      string
}

// SourceFilter is the "a=source-filter" attribute per RFC 4570, as in
// "a=source-filter: incl IN IP4 239.5.2.31 10.1.15.5".
type SourceFilter struct {
	FilterMode   string
	NetType      string
	AddressTypes string
	DestAddress  string
	SrcList      string
}

// ImageAttributes is one "a=imageattr" entry, as in
// "a=imageattr:97 send [x=800,y=640] recv [x=330,y=250]".
type ImageAttributes struct {
	PT     string
	Dir1   string
	Attrs1 string
	Dir2   string
	Attrs2 string
}

// Attributes is the structured attribute vocabulary recognized at session and
// media level. Attribute names outside the vocabulary are preserved raw in
// Unknown.
//
// Fields:
//
//	RTPMap          []RTPMap          - rtpmap entries, list valued.
//	FMTP            []FMTP            - fmtp entries, list valued.
//	SourceFilter    *SourceFilter     - source-filter, singleton, nil when absent.
//	ImageAttributes []ImageAttributes - imageattr entries, list valued.
//	MediaClock      string            - mediaclk tail, stored raw, e.g. "direct=0".
//	Framerate       float64           - framerate attribute, zero when absent.
//	Unknown         []string          - unrecognized a= lines, stored raw.
type Attributes struct {
	RTPMap          []RTPMap
	FMTP            []FMTP
	SourceFilter    *SourceFilter
	ImageAttributes []ImageAttributes
	MediaClock      string
	Framerate       float64
	Unknown         []string
}

// MediaCommon carries the fields every media description has.
type MediaCommon struct {
	// Payloads is the ordered payload type list from the m= line.
	Payloads []int

	Port     int
	Protocol string

	// Connection is the media-level c= line, or the session-level one when
	// the block has none of its own.
	Connection *ConnectionInformation

	Bandwidths []BandwidthInformation
	Attributes Attributes
}

// MediaDescription is the tagged variant over the three media kinds. Callers
// switch on the concrete type or use Kind.
type MediaDescription interface {
	Kind() MediaType
	Common() *MediaCommon
}

// VideoDescription is a video media description carrying the ST 2110 video
// metadata a receiver needs to bind to the stream.
type VideoDescription struct {
	MediaCommon

	// Standard is derived from the SSN parameter; its absence means JPEG-XS.
	Standard Standard

	Width  int
	Height int

	// FramerateNum and FramerateDen are the exact frame rate as a ratio.
	// An integer rate has a denominator of 1.
	FramerateNum int
	FramerateDen int

	// TP is required for JPEG-XS streams.
	TP TP

	// CMax is the optional maximum codestream bandwidth parameter of 2110-22.
	CMax int

	Sampling    Sampling
	Depth       Depth
	Colorimetry Colorimetry
	PackingMode PackingMode

	// Interlaced is true for interlaced scan, false for progressive.
	Interlaced bool

	// Segmented is true for progressive segmented frame (PsF) transport.
	Segmented bool

	TCS   TCS
	Range Range

	// MaxUDP is the UDP size limit, 1460 octets unless overridden
	// (2110-10:2022 6.3).
	MaxUDP int

	// PARWidth and PARHeight are the pixel aspect ratio, 1:1 unless the PAR
	// parameter says otherwise.
	PARWidth  int
	PARHeight int
}

// Kind returns MediaVideo.
func (v *VideoDescription) Kind() MediaType { return MediaVideo }

// Common returns the fields shared by all media descriptions.
func (v *VideoDescription) Common() *MediaCommon { return &v.MediaCommon }

// AudioDescription is an audio media description.
type AudioDescription struct {
	MediaCommon

	// ChannelOrder is the captured list of channel grouping symbols from the
	// SMPTE 2110 channel-order convention, e.g. "M,M,M,M,ST,U02" for
	// "channel-order=SMPTE2110.(M,M,M,M,ST,U02)". Empty when the parameter
	// is absent.
	ChannelOrder string
}

// Kind returns MediaAudio.
func (a *AudioDescription) Kind() MediaType { return MediaAudio }

// Common returns the fields shared by all media descriptions.
func (a *AudioDescription) Common() *MediaCommon { return &a.MediaCommon }

// DataDescription is a media description of any other kind. Its fmtp payload
// is preserved verbatim.
type DataDescription struct {
	MediaCommon

	Config string
}

// Kind returns MediaData.
func (d *DataDescription) Kind() MediaType { return MediaData }

// Common returns the fields shared by all media descriptions.
func (d *DataDescription) Common() *MediaCommon { return &d.MediaCommon }

// Session is one parsed Session Description Protocol document. See RFC 8866
// section 5 for the full field descriptions. A Session is created by Parse
// and never mutated afterwards.
//
// Fields:
//
//	ProtocolVersion    int                    - v= line, always 0 for RFC 8866.
//	Origin             Origin                 - o= line. Required.
//	SessionName        string                 - s= line. Required, may be "-" or a single space.
//	SessionInformation string                 - i= line. Optional.
//	URI                string                 - u= line. Optional.
//	EmailAddress       string                 - e= line. Optional.
//	PhoneNumber        string                 - p= line. Optional.
//	Connection         *ConnectionInformation - session-level c= line, nil when every media block has its own.
//	Bandwidths         []BandwidthInformation - b= lines in order.
//	Timing             TimeDescription        - the one required time description.
//	Attributes         Attributes             - session-scoped attributes.
//	MediaDescriptions  []MediaDescription     - media blocks in order.
type Session struct {
	ProtocolVersion    int
	Origin             Origin
	SessionName        string
	SessionInformation string
	URI                string
	EmailAddress       string
	PhoneNumber        string
	Connection         *ConnectionInformation
	Bandwidths         []BandwidthInformation
	Timing             TimeDescription
	Attributes         Attributes
	MediaDescriptions  []MediaDescription
}

// VideoHost returns the connection address of the first video media
// description.
func (s *Session) VideoHost() (string, error) {
	if len(s.MediaDescriptions) == 0 {
		return "", fmt.Errorf("%w: no media descriptions in session", ErrMissingRequired)
	}
	for _, md := range s.MediaDescriptions {
		video, ok := md.(*VideoDescription)
		if !ok {
			continue
		}
		if video.Connection == nil || video.Connection.ConnectionAddress == "" {
			return "", fmt.Errorf("%w: video host not set in session", ErrMissingRequired)
		}
		return video.Connection.ConnectionAddress, nil
	}
	return "", fmt.Errorf("%w: no video media in session", ErrMissingRequired)
}

// VideoPort returns the port of the first video media description, as a
// string ready for a transport URL.
func (s *Session) VideoPort() (string, error) {
	if len(s.MediaDescriptions) == 0 {
		return "", fmt.Errorf("%w: no media descriptions in session", ErrMissingRequired)
	}
	for _, md := range s.MediaDescriptions {
		if md.Kind() != MediaVideo {
			continue
		}
		if md.Common().Port == 0 {
			return "", fmt.Errorf("%w: video port not set in session", ErrMissingRequired)
		}
		return strconv.Itoa(md.Common().Port), nil
	}
	return "", fmt.Errorf("%w: no video media in session", ErrMissingRequired)
}
