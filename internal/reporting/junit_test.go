package reporting

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestConvertToJUnit(t *testing.T) {
	suites := ConvertToJUnit("landing-page", newTestPayload(), fixedTime)

	assert.Equal(t, 5, suites.Tests)
	assert.Equal(t, 2, suites.Failures)
	require.Len(t, suites.TestSuites, 1)

	suite := suites.TestSuites[0]
	assert.Equal(t, "landing-page", suite.Name)
	assert.Equal(t, "2026-03-14T09:30:00Z", suite.Timestamp)
	assert.Equal(t, 1, suite.Skipped)
	assert.Contains(t, suite.Properties, JUnitProperty{Name: "score", Value: "64"})
	assert.Contains(t, suite.Properties, JUnitProperty{Name: "status", Value: "yellow"})

	byName := map[string]JUnitTestCase{}
	for _, tc := range suite.TestCases {
		byName[tc.Name] = tc
		assert.Equal(t, "landing-page", tc.Classname)
	}

	require.NotNil(t, byName["title_length"].Failure)
	assert.Equal(t, "CheckFailure", byName["title_length"].Failure.Type)
	require.NotNil(t, byName["image_alt"].Failure)
	assert.Equal(t, "CheckWarning", byName["image_alt"].Failure.Type)
	assert.Nil(t, byName["meta_desc"].Failure)
	assert.Nil(t, byName["og_cards"].Failure)
	require.NotNil(t, byName["faq_schema"].Skipped)
	assert.Equal(t, "not applicable", byName["faq_schema"].Skipped.Message)
}

func TestWriteJUnitXML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJUnitXML(&buf, "landing-page", newTestPayload(), fixedTime))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, xml.Header))

	var parsed JUnitTestSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, 5, parsed.Tests)
	assert.Equal(t, 2, parsed.Failures)
	assert.Contains(t, out, `message="title_length: status=fail"`)
	assert.Contains(t, out, "weight=0.50 multiplier=0.5 contribution=0.25")
}
