package smoke

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParsePattern_CaseInsensitiveLiteral(t *testing.T) {
	p, err := ParsePattern("/Liquid Glass/i")
	require.NoError(t, err)

	assert.True(t, p.Match("Liquid Glass Demo"))
	assert.True(t, p.Match("liquid glass"))
	assert.True(t, p.Match("My LIQUID GLASS app"))
	assert.False(t, p.Match("Something Else"))
	assert.False(t, p.Match(""))
	assert.Equal(t, "/Liquid Glass/i", p.String())
}

func TestParsePattern_CaseSensitiveLiteral(t *testing.T) {
	p, err := ParsePattern("/^Liquid/")
	require.NoError(t, err)

	assert.True(t, p.Match("Liquid Glass"))
	assert.False(t, p.Match("liquid glass"))
	assert.False(t, p.Match("The Liquid Glass"))
}

func TestParsePattern_ExactString(t *testing.T) {
	p, err := ParsePattern("Liquid Glass Demo")
	require.NoError(t, err)

	assert.True(t, p.Match("Liquid Glass Demo"))
	assert.True(t, p.Match("  Liquid   Glass\nDemo "))
	assert.False(t, p.Match("Liquid Glass"))
	assert.False(t, p.Match("liquid glass demo"))
}

func TestParsePattern_SlashWithoutClosingIsExact(t *testing.T) {
	p, err := ParsePattern("/home")
	require.NoError(t, err)
	assert.True(t, p.Match("/home"))
}

func TestParsePattern_Errors(t *testing.T) {
	_, err := ParsePattern("")
	assert.Error(t, err)

	_, err = ParsePattern("/glass/g")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported flag")

	_, err = ParsePattern("/(unclosed/")
	assert.Error(t, err)
}

func TestPattern_UnmarshalYAML(t *testing.T) {
	var v struct {
		Title Pattern `yaml:"title"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(`title: /liquid glass/i`), &v))
	assert.True(t, v.Title.Match("Liquid Glass Demo"))

	err := yaml.Unmarshal([]byte("\ntitle: /x/q"), &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestMustParsePattern_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParsePattern("") })
	assert.NotPanics(t, func() { MustParsePattern("/ok/") })
}
