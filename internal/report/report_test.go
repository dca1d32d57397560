package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/okian/parabellum/internal/domain/types"
	"github.com/okian/parabellum/internal/report"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleReport() types.Report {
	return types.Report{
		RunID: "run-1",
		Groups: []types.Group{
			{Score: 12, MaxScore: 12, Label: "12/12", Teams: []types.Team{
				{Members: []string{"a", "b", "c"}, Name: "a + b + c"},
			}},
			{Score: 7, MaxScore: 12, Label: "7/12", Teams: []types.Team{
				{Members: []string{"a", "b", "d"}, Name: "a + b + d"},
				{Members: []string{"b", "c", "d"}, Name: "b + c + d"},
			}},
		},
	}
}

func TestWriteText(t *testing.T) {
	Convey("Given a report with two groups", t, func() {
		var buf bytes.Buffer
		err := report.Write(&buf, report.FormatText, sampleReport())

		Convey("Then each group prints a score header and indented teams", func() {
			So(err, ShouldBeNil)
			So(buf.String(), ShouldEqual, "Teams with score: 12/12\n"+
				"  a + b + c\n"+
				"Teams with score: 7/12\n"+
				"  a + b + d\n"+
				"  b + c + d\n")
		})
	})

	Convey("Given an empty report", t, func() {
		var buf bytes.Buffer
		err := report.WriteText(&buf, types.Report{})

		Convey("Then nothing is printed", func() {
			So(err, ShouldBeNil)
			So(buf.Len(), ShouldEqual, 0)
		})
	})
}

func TestWriteJSON(t *testing.T) {
	Convey("Given a report", t, func() {
		var buf bytes.Buffer
		err := report.Write(&buf, report.FormatJSON, sampleReport())
		So(err, ShouldBeNil)

		Convey("Then it round-trips through JSON", func() {
			var got types.Report
			So(json.Unmarshal(buf.Bytes(), &got), ShouldBeNil)
			So(got, ShouldResemble, sampleReport())
		})
	})

	Convey("Given an unknown format", t, func() {
		err := report.Write(&bytes.Buffer{}, "yaml", sampleReport())

		Convey("Then it fails", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown report format")
		})
	})
}
