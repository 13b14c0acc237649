package analyzer

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Decoding turns raw file bytes into UTF-8 text on a best-effort basis.
// Invalid byte sequences are dropped, never reported.
type Decoding struct {
	name string
	enc  encoding.Encoding // nil for UTF-8 input
}

// NewDecoding returns the Decoding for an IANA encoding name such as "utf-8",
// "iso-8859-1" or "windows-1252". An empty name means UTF-8.
func NewDecoding(name string) (Decoding, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "", "utf-8", "utf8":
		return Decoding{name: "utf-8"}, nil
	}

	enc, err := ianaindex.IANA.Encoding(normalized)
	if err != nil {
		return Decoding{}, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return Decoding{}, fmt.Errorf("unsupported encoding %q", name)
	}

	return Decoding{name: normalized, enc: enc}, nil
}

// Name returns the normalized encoding name.
func (d Decoding) Name() string {
	if d.name == "" {
		return "utf-8"
	}
	return d.name
}

// Reader wraps r so that it yields valid UTF-8. Transformers carry state,
// so every file gets its own reader.
//
// UTF-8 input loses only its ill-formed bytes; a correctly encoded U+FFFD is
// kept. Other encodings decode undecodable input to U+FFFD, and those
// substitutions are removed.
func (d Decoding) Reader(r io.Reader) io.Reader {
	if d.enc == nil {
		return transform.NewReader(r, dropIllFormed{})
	}

	dropSubstitutions := runes.Remove(runes.Predicate(func(r rune) bool {
		return r == utf8.RuneError
	}))
	return transform.NewReader(r, transform.Chain(d.enc.NewDecoder(), dropSubstitutions))
}

// dropIllFormed copies well-formed UTF-8 and skips every byte that does not
// start a valid sequence.
type dropIllFormed struct {
	transform.NopResetter
}

func (dropIllFormed) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if c := src[nSrc]; c < utf8.RuneSelf {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}

		_, size := utf8.DecodeRune(src[nSrc:])
		if size == 1 {
			// A sequence cut by the buffer boundary may still complete.
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			nSrc++
			continue
		}

		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
	}
	return nDst, nSrc, nil
}
