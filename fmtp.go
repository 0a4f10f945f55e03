package st2110

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// parseParams interprets the semicolon-separated key=value payload of an fmtp
// attribute. Keys are case sensitive per SMPTE convention. A key=value token
// maps to its value string; a bare token such as "interlace" maps to true so
// flag parameters keep their presence semantics.
func parseParams(config string) map[string]any {
	params := make(map[string]any)
	for _, token := range strings.Split(config, ";") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if k, v, found := strings.Cut(token, "="); found {
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		} else {
			params[token] = true
		}
	}
	return params
}

// videoParams is the typed view of a 2110-20/-22 video fmtp payload. Compound
// values (exactframerate, PAR) stay strings here; the video typer applies
// their grammars.
type videoParams struct {
	Sampling       string `mapstructure:"sampling"`
	Depth          string `mapstructure:"depth"`
	Colorimetry    string `mapstructure:"colorimetry"`
	PackingMode    string `mapstructure:"PM"`
	TP             string `mapstructure:"TP"`
	SSN            string `mapstructure:"SSN"`
	ExactFramerate string `mapstructure:"exactframerate"`
	CMax           int    `mapstructure:"CMAX"`
	TCS            string `mapstructure:"TCS"`
	Range          string `mapstructure:"RANGE"`
	PAR            string `mapstructure:"PAR"`
	Interlace      bool   `mapstructure:"interlace"`
	Segmented      bool   `mapstructure:"segmented"`
	Width          int    `mapstructure:"width"`
	Height         int    `mapstructure:"height"`
	MaxUDP         int    `mapstructure:"maxudp"`
}

// audioParams is the typed view of a 2110-30 audio fmtp payload.
type audioParams struct {
	ChannelOrder string `mapstructure:"channel-order"`
}

// decodeParams maps the loose parameter tokens onto a typed parameter struct.
// Weak typing coerces numeric tokens such as width=1920 into their int fields
// while the raw map keeps every token for presence checks.
func decodeParams(params map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(params); err != nil {
		return fmt.Errorf("%w: fmtp parameters: %v", ErrMalformedCompoundValue, err)
	}
	return nil
}
