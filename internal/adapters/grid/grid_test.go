package grid_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/parabellum/internal/adapters/grid"
	"github.com/okian/parabellum/internal/domain/preference"
	. "github.com/smartystreets/goconvey/convey"
)

const sheet = "PLAYERS,ann,ben,cat\n" +
	"ann,X,A,0\n" +
	"ben,A,X,N\n" +
	"cat,0, A ,X\n"

func TestReadCSV(t *testing.T) {
	Convey("Given a CSV export of the sheet", t, func() {
		rows, err := grid.ReadCSV(strings.NewReader(sheet))

		Convey("Then every record is read and trimmed", func() {
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 4)
			So(rows[3], ShouldResemble, []string{"cat", "0", "A", "X"})
		})

		Convey("And the rows build a matrix", func() {
			m, err := preference.FromGrid(rows)
			So(err, ShouldBeNil)
			So(m.Roster(), ShouldResemble, []string{"ann", "ben", "cat"})
		})
	})

	Convey("Given ragged rows and a byte order mark", t, func() {
		rows, err := grid.ReadCSV(strings.NewReader("\uFEFFPLAYERS,a,b,,\na,X,A\nb,A,X,,\n"))

		Convey("Then the marker is clean and the grid still parses", func() {
			So(err, ShouldBeNil)
			So(rows[0][0], ShouldEqual, "PLAYERS")
			_, err := preference.FromGrid(rows)
			So(err, ShouldBeNil)
		})
	})

	Convey("Given names typed with different Unicode forms", t, func() {
		composed := "Jos\u00e9"
		decomposed := "Jose\u0301"
		csvText := "PLAYERS," + composed + ",b,c\n" +
			decomposed + ",X,A,A\n" +
			"b,A,X,A\n" +
			"c,A,A,X\n"
		rows, err := grid.ReadCSV(strings.NewReader(csvText))
		So(err, ShouldBeNil)

		Convey("Then they are normalized to the same identifier", func() {
			So(rows[1][0], ShouldEqual, rows[0][1])
			_, err := preference.FromGrid(rows)
			So(err, ShouldBeNil)
		})
	})

	Convey("Given broken CSV quoting", t, func() {
		_, err := grid.ReadCSV(strings.NewReader("PLAYERS,\"a\nb"))

		Convey("Then it fails with a read error", func() {
			So(errors.Is(err, grid.ErrRead), ShouldBeTrue)
		})
	})
}

func TestReadFile(t *testing.T) {
	Convey("Given a grid file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "sheet.csv")
		So(os.WriteFile(path, []byte(sheet), 0o600), ShouldBeNil)

		rows, err := grid.ReadFile(path, nil)

		Convey("Then it is read like any CSV source", func() {
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 4)
		})
	})

	Convey("Given the stdin marker", t, func() {
		rows, err := grid.ReadFile("-", strings.NewReader(sheet))

		Convey("Then stdin is read", func() {
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 4)
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := grid.ReadFile("/non/existent/sheet.csv", nil)

		Convey("Then it fails with a read error", func() {
			So(errors.Is(err, grid.ErrRead), ShouldBeTrue)
		})
	})
}

func TestWriteCSV(t *testing.T) {
	Convey("Given rows written as CSV", t, func() {
		var buf bytes.Buffer
		rows := [][]string{{"PLAYERS", "a"}, {"a", "X"}}
		So(grid.WriteCSV(&buf, rows), ShouldBeNil)

		Convey("Then reading them back yields the same rows", func() {
			back, err := grid.ReadCSV(&buf)
			So(err, ShouldBeNil)
			So(back, ShouldResemble, rows)
		})
	})
}
