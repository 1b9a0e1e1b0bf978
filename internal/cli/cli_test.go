package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zarlcorp/zpin/internal/config"
	"github.com/zarlcorp/zpin/internal/identity"
	"github.com/zarlcorp/zpin/internal/pin"
	"gopkg.in/yaml.v3"
)

func fixedNow() time.Time {
	return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
}

func testEnv() *Env {
	return &Env{
		Version: "test",
		Config: config.Config{
			Output:        config.OutputText,
			RangeLimit:    1998,
			RandomYears:   100,
			PageSize:      20,
			UnderAgeLimit: 18,
			PensionAge:    65,
		},
		Now: fixedNow,
	}
}

// fixedSerialEnv generates serial number 018 for every code.
func fixedSerialEnv() *Env {
	env := testEnv()
	env.Gen = identity.New(identity.WithClock(fixedNow), identity.WithRand(func(int) int { return 17 }))
	return env
}

func run(env *Env, stdin string, args ...string) (string, error) {
	root := New(env)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestVersion(t *testing.T) {
	out, err := run(testEnv(), "", "version")
	require.NoError(t, err)
	assert.Equal(t, "zpin test\n", out)
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := run(testEnv(), "", "-o", "xml", "version")
	assert.Error(t, err)
}

func TestValidateArgs(t *testing.T) {
	out, err := run(testEnv(), "", "validate", "38610150180", "51412120118")
	require.NoError(t, err)
	assert.Equal(t, "38610150180  ok\n51412120118  ok\n", out)
}

func TestValidateReportsKind(t *testing.T) {
	tests := []struct {
		code string
		kind string
	}{
		{"85501120123", "invalid format"},
		{"39902310167", "invalid date"},
		{"39310075456", "invalid checksum"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			out, err := run(testEnv(), "", "validate", tt.code)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, out, tt.kind)
		})
	}
}

func TestValidateStdin(t *testing.T) {
	out, err := run(testEnv(), "38610150180\n\n  39310075456  \n", "validate")
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "1 of 2")

	got := lines(out)
	require.Len(t, got, 2)
	assert.Equal(t, "38610150180  ok", got[0])
	assert.True(t, strings.HasPrefix(got[1], "39310075456  invalid checksum"))
}

func TestValidateQuiet(t *testing.T) {
	out, err := run(testEnv(), "", "validate", "-q", "39310075456")
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Empty(t, out)
}

func TestValidateJSON(t *testing.T) {
	out, err := run(testEnv(), "", "-o", "json", "validate", "38610150180", "39310075456")
	assert.ErrorIs(t, err, ErrInvalid)

	var got []validation
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.True(t, got[0].Valid)
	assert.False(t, got[1].Valid)
	assert.Equal(t, "checksum", got[1].Kind)
}

func TestParse(t *testing.T) {
	out, err := run(testEnv(), "", "parse", "38610150180")
	require.NoError(t, err)

	assert.Contains(t, out, "gender:    male")
	assert.Contains(t, out, "born:      1986-10-15")
	assert.Contains(t, out, "serial:    018")
	assert.Contains(t, out, "age:       39")
	assert.Contains(t, out, "pensioner: no")
}

func TestParseAgeLimits(t *testing.T) {
	env := testEnv()
	env.Config.UnderAgeLimit = 40
	env.Config.PensionAge = 39

	out, err := run(env, "", "parse", "38610150180")
	require.NoError(t, err)
	assert.Contains(t, out, "under age: yes")
	assert.Contains(t, out, "pensioner: yes")
}

func TestParseYAML(t *testing.T) {
	out, err := run(testEnv(), "", "-o", "yaml", "parse", "35506210055")
	require.NoError(t, err)

	var got decoded
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "male", got.Gender)
	assert.Equal(t, "1955-06-21", got.BirthDate)
	assert.Equal(t, 1900, got.Century)
	assert.Equal(t, "005", got.Serial)
	assert.True(t, got.Pensioner)
	assert.False(t, got.UnderAge)
}

func TestParseInvalid(t *testing.T) {
	_, err := run(testEnv(), "", "parse", "30113454321")
	assert.ErrorIs(t, err, pin.ErrFormat)

	_, err = run(testEnv(), "", "parse")
	assert.Error(t, err)
}

func TestChecksum(t *testing.T) {
	out, err := run(testEnv(), "", "checksum", "3861015000")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	out, err = run(testEnv(), "", "checksum", "48011220235")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	out, err = run(testEnv(), "", "-o", "json", "checksum", "3861015018")
	require.NoError(t, err)
	assert.Contains(t, out, `"pin": "38610150180"`)

	_, err = run(testEnv(), "", "checksum", "12345")
	assert.ErrorIs(t, err, pin.ErrFormat)

	_, err = run(testEnv(), "", "checksum", "386101501801")
	assert.ErrorIs(t, err, pin.ErrFormat)
}

func TestGenerate(t *testing.T) {
	out, err := run(fixedSerialEnv(), "", "generate", "--gender", "male", "--date", "1986-10-15")
	require.NoError(t, err)
	assert.Equal(t, "38610150180\n", out)
}

func TestGenerateDetails(t *testing.T) {
	out, err := run(fixedSerialEnv(), "", "generate", "--details", `{"gender":"male","year":1986,"month":10,"day":15,"name":"Jaan"}`)
	require.NoError(t, err)
	assert.Equal(t, "38610150180\n", out)
}

func TestGenerateJSON(t *testing.T) {
	out, err := run(fixedSerialEnv(), "", "-o", "json", "generate", "-g", "female", "-d", "2000-02-29")
	require.NoError(t, err)

	var got []decoded
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "female", got[0].Gender)
	assert.Equal(t, "2000-02-29", got[0].BirthDate)
	assert.True(t, pin.Validate(got[0].PIN))
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"missing flags", []string{"generate"}, pin.ErrArgument},
		{"bad gender", []string{"generate", "-g", "robot", "-d", "1986-10-15"}, pin.ErrArgument},
		{"bad date layout", []string{"generate", "-g", "male", "-d", "15.10.1986"}, pin.ErrArgument},
		{"trailing garbage in date", []string{"generate", "-g", "male", "-d", "1986-10-15xyz"}, pin.ErrArgument},
		{"impossible date", []string{"generate", "-g", "male", "-d", "1986-02-30"}, pin.ErrInvalidDate},
		{"year out of range", []string{"generate", "-g", "male", "-d", "1700-01-01"}, pin.ErrArgument},
		{"bad details json", []string{"generate", "--details", "{"}, pin.ErrArgument},
		{"missing details key", []string{"generate", "--details", `{"gender":"male","year":1986,"month":10}`}, pin.ErrArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(testEnv(), "", tt.args...)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, out)
		})
	}
}

func TestGenerateDetailsExclusiveWithFlags(t *testing.T) {
	_, err := run(testEnv(), "", "generate", "--details", "{}", "--gender", "male")
	assert.Error(t, err)
}

func TestRandom(t *testing.T) {
	out, err := run(testEnv(), "", "random", "-n", "5", "-g", "female")
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 5)
	for _, code := range got {
		require.True(t, pin.Validate(code), code)
		g, err := pin.GenderOf(code)
		require.NoError(t, err)
		assert.Equal(t, pin.Female, g)
	}
}

func TestRandomErrors(t *testing.T) {
	_, err := run(testEnv(), "", "random", "-n", "0")
	assert.ErrorIs(t, err, pin.ErrArgument)

	_, err = run(testEnv(), "", "random", "-g", "robot")
	assert.ErrorIs(t, err, pin.ErrArgument)
}

func TestRange(t *testing.T) {
	out, err := run(testEnv(), "", "range", "--from", "2002-01-01", "-n", "3")
	require.NoError(t, err)
	assert.Equal(t, "60201010013\n50201010012\n60201010024\n", out)
}

func TestRangeDefaultLimit(t *testing.T) {
	out, err := run(testEnv(), "", "range", "--from", "2002-01-01", "--to", "2002-01-02")
	require.NoError(t, err)
	assert.Len(t, lines(out), 1998)

	out, err = run(testEnv(), "", "range", "--from", "2002-01-01", "--to", "2002-01-02", "--limit", "0")
	require.NoError(t, err)
	assert.Len(t, lines(out), 2*1998)
}

func TestRangeJSON(t *testing.T) {
	out, err := run(testEnv(), "", "-o", "json", "range", "--from", "2002-01-01", "-n", "2")
	require.NoError(t, err)

	var got []string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"60201010013", "50201010012"}, got)
}

func TestRangeErrors(t *testing.T) {
	_, err := run(testEnv(), "", "range")
	assert.Error(t, err, "--from is required")

	_, err = run(testEnv(), "", "range", "--from", "01.01.2002")
	assert.Error(t, err)

	_, err = run(testEnv(), "", "range", "--from", "1799-12-31")
	assert.ErrorIs(t, err, pin.ErrArgument)

	out, err := run(testEnv(), "", "range", "--from", "2002-01-02", "--to", "2002-01-01")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestReadLines(t *testing.T) {
	got, err := readLines(strings.NewReader(" a \n\nb\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestScanStdin(t *testing.T) {
	out, err := run(testEnv(), "isikukood 38610150180\nref 39310075456\n", "scan")
	require.NoError(t, err)
	assert.Equal(t, []string{"-:10  38610150180  ok"}, lines(out))
}

func TestScanAll(t *testing.T) {
	out, err := run(testEnv(), "isikukood 38610150180\nref 39310075456\n", "scan", "--all")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"-:10  38610150180  ok",
		"-:26  39310075456  invalid checksum",
	}, lines(out))
}

func TestScanFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,code\njaan,38610150180\nmari,48011220235\n"), 0o600))

	out, err := run(testEnv(), "", "-o", "json", "scan", path)
	require.NoError(t, err)

	var got []found
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, path, got[0].Source)
	assert.Equal(t, "38610150180", got[0].PIN)
	assert.Equal(t, "48011220235", got[1].PIN)

	_, err = run(testEnv(), "", "scan", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestScanRedact(t *testing.T) {
	out, err := run(testEnv(), "jaan 38610150180\n", "scan", "--redact")
	require.NoError(t, err)
	assert.Equal(t, "jaan 3**********\n", out)

	_, err = run(testEnv(), "", "scan", "--redact", "--all")
	assert.Error(t, err)
}
