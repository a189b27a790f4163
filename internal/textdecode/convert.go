// Package textdecode converts the obfuscated Mac Roman / Windows-1252 / SCSU
// bytes FMP stores cell and name values in into UTF-8.
package textdecode

// Backend names one of the text decoder back-ends.
type Backend int

const (
	BackendMacRoman Backend = iota
	BackendWindows1252
	BackendSCSU
)

// Decoder converts a variant's obfuscated bytes to UTF-8. SCSU decoders
// carry state (the dynamic window table) across calls within one file
// handle's lifetime, matching the single iconv_t / custom-decoder instance
// the original keeps per fmp_file_t.
type Decoder struct {
	backend Backend
	xorMask byte
	scsu    *SCSU
}

// NewDecoder builds a Decoder for the given backend. xorMask is XORed into
// every source byte before decoding (0 disables it, matching v3's lack of
// any mask and v7's constant 0x5A).
func NewDecoder(backend Backend, xorMask byte) *Decoder {
	d := &Decoder{backend: backend, xorMask: xorMask}
	if backend == BackendSCSU {
		d.scsu = NewSCSU()
	}
	return d
}

// WithoutXOR returns a Decoder sharing this one's backend and SCSU state
// but with de-obfuscation disabled, for the rare caller (the diagnostic
// dumper) that wants the raw de-obfuscated bytes reported separately from
// the XOR step.
func (d *Decoder) WithoutXOR() *Decoder {
	return &Decoder{backend: d.backend, xorMask: 0, scsu: d.scsu}
}

// Convert de-obfuscates src, strips leading spaces, and decodes the result
// to UTF-8 through the configured backend.
func (d *Decoder) Convert(src []byte) string {
	buf := src
	if d.xorMask != 0 {
		buf = make([]byte, len(src))
		for i, b := range src {
			buf[i] = b ^ d.xorMask
		}
	}
	for len(buf) > 0 && buf[0] == ' ' {
		buf = buf[1:]
	}
	switch d.backend {
	case BackendWindows1252:
		return DecodeWindows1252(buf)
	case BackendSCSU:
		return d.scsu.DecodeSCSU(buf)
	default:
		return DecodeMacRoman(buf)
	}
}
