package analyzer

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAll(t *testing.T, d Decoding, input string) string {
	t.Helper()
	out, err := io.ReadAll(d.Reader(strings.NewReader(input)))
	require.NoError(t, err)
	return string(out)
}

func TestNewDecoding(t *testing.T) {
	for _, name := range []string{"", "utf-8", "UTF8", " Utf-8 "} {
		d, err := NewDecoding(name)
		require.NoError(t, err, name)
		assert.Equal(t, "utf-8", d.Name())
	}

	d, err := NewDecoding("ISO-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "iso-8859-1", d.Name())

	_, err = NewDecoding("klingon")
	assert.Error(t, err)
}

func TestDecodingDropsInvalidUTF8(t *testing.T) {
	d, err := NewDecoding("utf-8")
	require.NoError(t, err)

	assert.Equal(t, "abc", decodeAll(t, d, "a\xffb\xc3c"))
	assert.Equal(t, "héllo", decodeAll(t, d, "héllo"))
}

func TestDecodingKeepsEncodedReplacementCharacter(t *testing.T) {
	d, err := NewDecoding("utf-8")
	require.NoError(t, err)

	assert.Equal(t, "foo \uFFFD bar", decodeAll(t, d, "foo \uFFFD bar\xff"))
	assert.Equal(t, "\uFFFD\uFFFD", decodeAll(t, d, "\xef\xbf\xbd\xef\xbf"+"\xbd"))
}

func TestDecodingSplitSequenceAcrossReads(t *testing.T) {
	d, err := NewDecoding("utf-8")
	require.NoError(t, err)

	// One byte at a time forces every multi-byte rune across a buffer boundary.
	out, err := io.ReadAll(d.Reader(iotest.OneByteReader(strings.NewReader("h\u00e9llo \u4e16\xff!"))))
	require.NoError(t, err)
	assert.Equal(t, "h\u00e9llo \u4e16!", string(out))
}

func TestDecodingLatin1(t *testing.T) {
	d, err := NewDecoding("iso-8859-1")
	require.NoError(t, err)

	assert.Equal(t, "café", decodeAll(t, d, "caf\xe9"))
}

func TestZeroDecodingIsUTF8(t *testing.T) {
	var d Decoding
	assert.Equal(t, "utf-8", d.Name())
	assert.Equal(t, "xy", decodeAll(t, d, "x\x80y"))
}
