package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mverrors "github.com/davidchisnall/microvium/domain/errors"
)

func TestParseFullFixture(t *testing.T) {
	data := []byte(`description: runs the exported entry point
runExportedFunction: 0
expectedPrintout: "a\nb"
`)

	fixture, err := NewYamlFixtureParser().Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "runs the exported entry point", fixture.Description)
	require.NotNil(t, fixture.RunExportedFunction)
	assert.Equal(t, uint16(0), *fixture.RunExportedFunction)
	require.NotNil(t, fixture.ExpectedPrintout)
	assert.Equal(t, "a\nb", *fixture.ExpectedPrintout)
	assert.False(t, fixture.Skip)
}

func TestParseDistinguishesAbsentFromZero(t *testing.T) {
	fixture, err := NewYamlFixtureParser().Parse([]byte("description: restore only\n"))
	require.NoError(t, err)

	// nil means "do not invoke", not "invoke export 0".
	assert.Nil(t, fixture.RunExportedFunction)
	assert.Nil(t, fixture.ExpectedPrintout)
}

func TestParseEmptyPrintoutExpectation(t *testing.T) {
	fixture, err := NewYamlFixtureParser().Parse([]byte(`expectedPrintout: ""` + "\n"))
	require.NoError(t, err)

	// An empty expectation still demands the comparison run.
	require.NotNil(t, fixture.ExpectedPrintout)
	assert.Equal(t, "", *fixture.ExpectedPrintout)
}

func TestParseSkipFlag(t *testing.T) {
	fixture, err := NewYamlFixtureParser().Parse([]byte("skip: true\n"))
	require.NoError(t, err)
	assert.True(t, fixture.Skip)
}

func TestParseMalformedYaml(t *testing.T) {
	_, err := NewYamlFixtureParser().Parse([]byte("description: [unclosed"))
	require.Error(t, err)

	var fixtureErr *mverrors.FixtureError
	assert.ErrorAs(t, err, &fixtureErr)
}

func TestFixtureSchema(t *testing.T) {
	data, err := FixtureSchema()
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, "runExportedFunction")
	assert.Contains(t, s, "expectedPrintout")
	assert.Contains(t, s, "description")
}
