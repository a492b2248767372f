package reporting

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/spboyer/pagescore/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one scored document.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one check.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure represents a check that did not pass.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a check as excluded from scoring.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a payload into JUnit XML, one test case per check.
// Warnings and failures are both reported as failures so CI surfaces them;
// not-applicable checks are skipped.
func ConvertToJUnit(name string, p *models.ScorePayload, ts time.Time) *JUnitTestSuites {
	suite := JUnitTestSuite{
		Name:      name,
		Timestamp: ts.UTC().Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "score", Value: fmt.Sprintf("%d", p.Score)},
			{Name: "status", Value: p.Status.String()},
			{Name: "weight_total", Value: fmt.Sprintf("%.4f", p.WeightTotal)},
			{Name: "weighted_achieved", Value: fmt.Sprintf("%.4f", p.WeightedAchieved)},
		},
	}

	for _, e := range sortedEntries(p) {
		tc := JUnitTestCase{
			Name:      e.ID,
			Classname: name,
		}
		switch {
		case e.NotApplicable:
			tc.Skipped = &JUnitSkipped{Message: "not applicable"}
			suite.Skipped++
		case e.Status != models.StatusPass:
			tc.Failure = buildFailure(e)
			suite.Failures++
		}
		suite.TestCases = append(suite.TestCases, tc)
	}
	suite.Tests = len(suite.TestCases)

	return &JUnitTestSuites{
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func buildFailure(e models.BreakdownEntry) *JUnitFailure {
	typ := "CheckFailure"
	if e.Status == models.StatusWarn {
		typ = "CheckWarning"
	}
	body := fmt.Sprintf("weight=%.2f multiplier=%.1f contribution=%.2f", e.Weight, e.Multiplier, e.Contribution)
	if note := entryNote(e); note != "" {
		body += " (" + note + ")"
	}
	return &JUnitFailure{
		Message: fmt.Sprintf("%s: status=%s", e.ID, e.Status),
		Type:    typ,
		Body:    body,
	}
}

// WriteJUnitXML writes the payload as JUnit XML to w.
func WriteJUnitXML(w io.Writer, name string, p *models.ScorePayload, ts time.Time) error {
	suites := ConvertToJUnit(name, p, ts)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
