package textenc

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, name, text string) (encoded []byte, decoded string) {
	t.Helper()
	var buf bytes.Buffer
	w, err := NewWriter(&buf, name)
	require.NoError(t, err)
	_, err = io.WriteString(w, text)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := NewReader(bytes.NewReader(buf.Bytes()), name)
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return buf.Bytes(), string(out)
}

func TestWindows1256RoundTrip(t *testing.T) {
	encoded, decoded := roundTrip(t, Windows1256, "أحمد,1234567890\n")
	assert.Equal(t, "أحمد,1234567890\n", decoded)
	// 1 byte per Arabic letter
	assert.Len(t, encoded, len("أحمد")/2+len(",1234567890\n"))
}

func TestUTF8BOM(t *testing.T) {
	encoded, decoded := roundTrip(t, UTF8, "محمد")
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, encoded[:3])
	assert.Equal(t, "محمد", decoded)
}

func TestUnsupported(t *testing.T) {
	assert.False(t, Supported("ebcdic"))
	assert.True(t, Supported("CP1256"))
	assert.True(t, Supported(""))
	_, err := NewReader(bytes.NewReader(nil), "ebcdic")
	assert.Error(t, err)
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "أحمد علي", CleanName("  أحمد   علي "))
	// decomposed alef + hamza above normalises to the precomposed letter
	assert.Equal(t, "\u0623", CleanName("\u0627\u0654"))
}
