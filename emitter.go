package st2110

import (
	"bytes"
	"fmt"
	"time"

	"github.com/pion/randutil"
)

// Role selects which side of the stream an emitted SDP advertises.
type Role string

const (
	// RoleSender advertises a sender: source-filter, source port and
	// reference clock attributes are included, plus ptime for audio.
	RoleSender Role = "sender"

	// RoleReceiver advertises receiver capabilities and omits the
	// sender-only attributes.
	RoleReceiver Role = "receiver"
)

// Conventional defaults from the ST 2110 deployments this emitter targets.
const (
	defaultVideoPort = 5020
	defaultAudioPort = 5030
	defaultVideoPT   = 96
	defaultAudioPT   = 97
	defaultSrcPort   = 5004
	defaultMaxSize   = 2048

	defaultGrandmaster = "AC-DE-48-23-45-67-01-9F"
	defaultPTPDomain   = 42
	defaultLocalMAC    = "CA-FE-01-CA-FE-02"
)

// EmitConfig parameterizes one sender or receiver advertisement SDP.
//
// Fields:
//
//	Role           Role      - sender or receiver. Required.
//	MediaKind      MediaType - video or audio. Required.
//	StreamID       string    - NMOS stream identifier for the x-nvnmos-id attribute. Required.
//	InterfaceIP    string    - Host interface IP stamped into o= and x-nvnmos-iface-ip. Required.
//	Label          string    - Session name (s=). Required.
//	Description    string    - Session information (i=). Optional.
//	GroupHint      string    - x-nvnmos-group-hint value. Optional.
//	PTP            bool      - True emits the IEEE 1588 reference clock pair, false the localmac form.
//	PTPGrandmaster string    - PTP grandmaster identity. Defaulted.
//	PTPDomain      int       - PTP domain number. Defaulted.
//	LocalMAC       string    - MAC for the localmac reference clock form. Defaulted.
//	Encoding       string    - rtpmap encoding, e.g. "raw/90000" or "L24/48000/2". Required.
//	FMTP           string    - Raw fmtp payload for the stream. Required.
//	MulticastIP    string    - Multicast group address. Required.
//	DstPort        int       - Destination port. Defaults to 5020 video / 5030 audio.
//	SrcPort        int       - Source port, senders only. Defaults to 5004.
//	PayloadType    int       - RTP payload type. Defaults to 96 video / 97 audio.
//	SrcIP          string    - Source-filter source address. Defaults to InterfaceIP.
//	SessionID      int64     - o= session id. Defaults to the current epoch seconds.
//	SessionVersion int64     - o= session version. Defaults to SessionID.
//	MaxSize        int       - Output size limit in bytes. Defaults to 2048.
type EmitConfig struct {
	Role           Role
	MediaKind      MediaType
	StreamID       string
	InterfaceIP    string
	Label          string
	Description    string
	GroupHint      string
	PTP            bool
	PTPGrandmaster string
	PTPDomain      int
	LocalMAC       string
	Encoding       string
	FMTP           string
	MulticastIP    string
	DstPort        int
	SrcPort        int
	PayloadType    int
	SrcIP          string
	SessionID      int64
	SessionVersion int64
	MaxSize        int
}

// Emit renders one RFC 8866 advertisement SDP as ASCII bytes with "\r\n"
// terminators, in the fixed line order NMOS control planes expect. The output
// is never truncated: exceeding the configured size limit is an error.
func Emit(cfg EmitConfig) ([]byte, error) {
	if err := applyEmitDefaults(&cfg); err != nil {
		return nil, err
	}

	sender := cfg.Role == RoleSender
	b := &bytes.Buffer{}

	fmt.Fprintf(b, "v=0\r\n")
	fmt.Fprintf(b, "o=- %d %d IN IP4 %s\r\n", cfg.SessionID, cfg.SessionVersion, cfg.InterfaceIP)
	fmt.Fprintf(b, "s=%s\r\n", cfg.Label)
	if cfg.Description != "" {
		fmt.Fprintf(b, "i=%s\r\n", cfg.Description)
	}
	fmt.Fprintf(b, "t=0 0\r\n")
	fmt.Fprintf(b, "a=x-nvnmos-id:%s\r\n", cfg.StreamID)
	if cfg.GroupHint != "" {
		fmt.Fprintf(b, "a=x-nvnmos-group-hint:%s\r\n", cfg.GroupHint)
	}
	if !sender {
		fmt.Fprintf(b, "a=recvonly\r\n")
	}

	fmt.Fprintf(b, "m=%s %d RTP/AVP %d\r\n", cfg.MediaKind, cfg.DstPort, cfg.PayloadType)
	fmt.Fprintf(b, "c=IN IP4 %s/64\r\n", cfg.MulticastIP)
	if sender {
		src := cfg.SrcIP
		if src == "" {
			src = cfg.InterfaceIP
		}
		fmt.Fprintf(b, "a=source-filter: incl IN IP4 %s %s\r\n", cfg.MulticastIP, src)
	}
	fmt.Fprintf(b, "a=x-nvnmos-iface-ip:%s\r\n", cfg.InterfaceIP)
	if sender {
		fmt.Fprintf(b, "a=x-nvnmos-src-port:%d\r\n", cfg.SrcPort)
	}
	fmt.Fprintf(b, "a=rtpmap:%d %s\r\n", cfg.PayloadType, cfg.Encoding)
	fmt.Fprintf(b, "a=fmtp:%d %s\r\n", cfg.PayloadType, cfg.FMTP)
	if sender && cfg.MediaKind == MediaAudio {
		fmt.Fprintf(b, "a=ptime:1\r\n")
	}
	if sender {
		if cfg.PTP {
			// Both forms together carry all parameters NMOS requires.
			fmt.Fprintf(b, "a=ts-refclk:ptp=IEEE1588-2008:%s:%d\r\n", cfg.PTPGrandmaster, cfg.PTPDomain)
			fmt.Fprintf(b, "a=ts-refclk:ptp=IEEE1588-2008:traceable\r\n")
		} else {
			fmt.Fprintf(b, "a=ts-refclk:localmac=%s\r\n", cfg.LocalMAC)
		}
	}
	fmt.Fprintf(b, "a=mediaclk:direct=0\r\n")

	if b.Len() > cfg.MaxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit %d", ErrEmitOverflow, b.Len(), cfg.MaxSize)
	}
	return b.Bytes(), nil
}

// applyEmitDefaults validates the required configuration and fills the
// conventional defaults in place.
func applyEmitDefaults(cfg *EmitConfig) error {
	if cfg.Role != RoleSender && cfg.Role != RoleReceiver {
		return missingRequired("role", "emit config")
	}
	if cfg.MediaKind != MediaVideo && cfg.MediaKind != MediaAudio {
		return missingRequired("media kind", "emit config")
	}
	for field, value := range map[string]string{
		"stream id":    cfg.StreamID,
		"interface ip": cfg.InterfaceIP,
		"label":        cfg.Label,
		"multicast ip": cfg.MulticastIP,
		"encoding":     cfg.Encoding,
		"fmtp":         cfg.FMTP,
	} {
		if value == "" {
			return missingRequired(field, "emit config")
		}
	}

	if cfg.DstPort == 0 {
		if cfg.MediaKind == MediaVideo {
			cfg.DstPort = defaultVideoPort
		} else {
			cfg.DstPort = defaultAudioPort
		}
	}
	if cfg.PayloadType == 0 {
		if cfg.MediaKind == MediaVideo {
			cfg.PayloadType = defaultVideoPT
		} else {
			cfg.PayloadType = defaultAudioPT
		}
	}
	if cfg.SrcPort == 0 {
		cfg.SrcPort = defaultSrcPort
	}
	if cfg.MaxSize == 0 {
		cfg.MaxSize = defaultMaxSize
	}
	if cfg.PTPGrandmaster == "" {
		cfg.PTPGrandmaster = defaultGrandmaster
	}
	if cfg.PTPDomain == 0 {
		cfg.PTPDomain = defaultPTPDomain
	}
	if cfg.LocalMAC == "" {
		cfg.LocalMAC = defaultLocalMAC
	}
	if cfg.SessionID == 0 {
		cfg.SessionID = time.Now().Unix()
	}
	if cfg.SessionVersion == 0 {
		cfg.SessionVersion = cfg.SessionID
	}
	return nil
}

// NewSessionID returns a 63-bit cryptographically random session id for
// callers that manage o= session id and version externally instead of relying
// on the epoch-seconds default.
func NewSessionID() (int64, error) {
	id, err := randutil.CryptoUint64()
	return int64(id & (^(uint64(1) << 63))), err
}
