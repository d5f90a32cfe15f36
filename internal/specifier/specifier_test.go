package specifier

import (
	"strings"
	"testing"

	"github.com/pymtool/pym/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDependency(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"name with at version", "requests@2.28", "requests==2.28"},
		{"plain name untouched", "requests", "requests"},
		{"existing comparator untouched", "requests>=2.0", "requests>=2.0"},
		{"multiple ats all replaced", "pkg@1.0@2.0", "pkg==1.0==2.0"},
		{"whitespace preserved", " requests @2.28 ", " requests ==2.28 "},
		{"extras preserved", "uvicorn[standard]@0.20", "uvicorn[standard]==0.20"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDependency(tt.in)
			assert.Equal(t, tt.want, got)

			// Idempotent on its own output: no '@' survives the rewrite.
			assert.NotContains(t, got, "@")
			assert.Equal(t, got, NormalizeDependency(got))
		})
	}
}

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"major only", "3", "3"},
		{"major minor", "3.11", "3.11"},
		{"leading zeros dropped", "3.07", "3.7"},
		{"v prefix dropped", "v3.11", "3.11"},
		{"surrounding whitespace", " 3.11 ", "3.11"},
		{"alpha spelling normalized", "3.12alpha1", "3.12a1"},
		{"preview normalized to rc", "3.12-preview-2", "3.12rc2"},
		{"rev normalized to post", "3.11.rev1", "3.11.post1"},
		{"implicit post number", "3.11post", "3.11.post0"},
		{"dev segment kept", "3.12.dev4", "3.12.dev4"},
		{"epoch kept", "1!2.0", "1!2.0"},
		{"local folded to dots", "3.11+Ubuntu_1", "3.11+ubuntu.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeVersion(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeVersionParseFailure(t *testing.T) {
	for _, in := range []string{"", "not-a-version", "3.x", "latest", "==3.11"} {
		t.Run(in, func(t *testing.T) {
			_, err := NormalizeVersion(in)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrVersion))
		})
	}
}

func TestNormalizeVersionGranularity(t *testing.T) {
	tests := []string{"3.10.4", "3.10.4.1", "1!3.10.4", "3.10.4rc1"}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, err := NormalizeVersion(in)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrGranularity))
			// The message names the offending token.
			assert.Contains(t, err.Error(), in)
			assert.Contains(t, err.Error(), "use major.minor")
		})
	}
}

func TestParseVersionFields(t *testing.T) {
	v, err := ParseVersion("1!2.3rc1.post2.dev3+local.7")
	require.NoError(t, err)

	assert.Equal(t, 1, v.Epoch)
	assert.Equal(t, []int{2, 3}, v.Release)
	require.NotNil(t, v.Pre)
	assert.Equal(t, "rc", v.Pre.Letter)
	assert.Equal(t, 1, v.Pre.Number)
	require.NotNil(t, v.Post)
	assert.Equal(t, 2, *v.Post)
	require.NotNil(t, v.Dev)
	assert.Equal(t, 3, *v.Dev)
	assert.Equal(t, "local.7", v.Local)

	assert.Equal(t, "1!2.3rc1.post2.dev3+local.7", v.String())
}

func TestParseVersionRoundTripIsStable(t *testing.T) {
	inputs := []string{"3.07", "3.12ALPHA1", "3.11-post-1", "v3.9", "2!1.0.dev0"}

	for _, in := range inputs {
		v, err := ParseVersion(in)
		require.NoError(t, err)

		again, err := ParseVersion(v.String())
		require.NoError(t, err)
		assert.Equal(t, v.String(), again.String(), "canonical form should be a fixed point for %q", in)
	}
}

func TestVersionCompare(t *testing.T) {
	// Ascending order per the Python scheme.
	ordered := []string{
		"1.0.dev1",
		"1.0a1",
		"1.0a2",
		"1.0b1",
		"1.0rc1",
		"1.0",
		"1.0+local",
		"1.0.post1",
		"1.1",
		"1!0.1",
	}

	for i := 0; i < len(ordered)-1; i++ {
		lo, err := ParseVersion(ordered[i])
		require.NoError(t, err)
		hi, err := ParseVersion(ordered[i+1])
		require.NoError(t, err)

		assert.Equal(t, -1, lo.Compare(hi), "%s should sort before %s", ordered[i], ordered[i+1])
		assert.Equal(t, 1, hi.Compare(lo))
	}
}

func TestVersionCompareEquality(t *testing.T) {
	pairs := [][2]string{
		{"3.11", "3.11.0"}, // trailing zero segments compare equal
		{"3.07", "3.7"},
		{"1.0post1", "1.0.post1"},
	}

	for _, p := range pairs {
		a, err := ParseVersion(p[0])
		require.NoError(t, err)
		b, err := ParseVersion(p[1])
		require.NoError(t, err)
		assert.Zero(t, a.Compare(b), "%s should equal %s", p[0], p[1])
	}
}

func TestGranularityMessageMatchesToolOutput(t *testing.T) {
	_, err := NormalizeVersion("3.10.4")
	require.Error(t, err)

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.True(t, strings.HasPrefix(e.Message, "3.10.4 is invalid"))
}
