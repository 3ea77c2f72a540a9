package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText_TrimsLine(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("  ann@example.com  \n"))
	var out bytes.Buffer

	s, err := GetSimpleText(r, "Enter email", &out)
	require.NoError(t, err)
	require.Equal(t, "ann@example.com", s)
	require.Contains(t, out.String(), "Enter email")
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("no-newline"))
	var out bytes.Buffer

	s, err := GetSimpleText(r, "Enter email", &out)
	require.NoError(t, err)
	require.Equal(t, "no-newline", s)
}

func TestGetMultiline_JoinsUntilEmptyLine(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("line one\nline two\n\nignored\n"))
	var out bytes.Buffer

	s, err := GetMultiline(r, "New bio", &out)
	require.NoError(t, err)
	require.Equal(t, "line one\nline two", s)
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) { return []byte("hunter2!"), nil }

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	require.Equal(t, []byte("hunter2!"), pw)
	require.Contains(t, out.String(), "Enter password")
}
