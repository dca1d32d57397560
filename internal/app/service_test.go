package service_test

import (
	"context"
	"errors"
	"io"
	"testing"

	service "github.com/okian/parabellum/internal/app"
	"github.com/okian/parabellum/internal/domain/model"
	"github.com/okian/parabellum/internal/samplegrid"
	"github.com/okian/parabellum/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init(logger.WithWriter(io.Discard))
	if err != nil {
		panic(err)
	}
}

// fourWithVeto is three mutual friends and a fourth participant who wants
// nobody.
var fourWithVeto = [][]string{
	{"PLAYERS", "ana", "ben", "cy", "dee"},
	{"ana", "X", "A", "A", "0"},
	{"ben", "A", "X", "A", "0"},
	{"cy", "A", "A", "X", "0"},
	{"dee", "N", "N", "N", "X"},
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			So(svc.ReportLimit(), ShouldEqual, 9)
			So(svc.MaxScore(), ShouldEqual, 12)
			So(svc.Ready(), ShouldBeFalse)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithWorkerCount(4),
			service.WithReportLimit(0),
			service.WithMaxParticipants(10),
		)

		Convey("Then the options should be reflected in its stats", func() {
			stats := svc.GetStats()
			So(stats["workerCount"], ShouldEqual, 4)
			So(stats["reportLimit"], ShouldEqual, 0)
			So(stats["maxParticipants"], ShouldEqual, 10)
		})
	})

	Convey("Given out-of-range options", t, func() {
		svc := service.New(
			service.WithWorkerCount(0),
			service.WithReportLimit(-3),
			service.WithMaxParticipants(2),
		)

		Convey("Then the defaults are kept", func() {
			stats := svc.GetStats()
			So(stats["workerCount"], ShouldBeGreaterThan, 0)
			So(stats["reportLimit"], ShouldEqual, 9)
			So(stats["maxParticipants"], ShouldEqual, 256)
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then it should be ready", func() {
				So(err, ShouldBeNil)
				So(svc.Ready(), ShouldBeTrue)
				So(svc.GetStats()["started"], ShouldEqual, true)
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
				So(svc.Ready(), ShouldBeTrue)
			})

			Convey("And stopping marks it as not ready", func() {
				svc.Stop()
				So(svc.Ready(), ShouldBeFalse)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Rank(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := service.New(service.WithWorkerCount(2))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When ranking a roster with one vetoing participant", func() {
			rep, err := svc.Rank(ctx, fourWithVeto, service.UseDefaultLimit)

			Convey("Then only the three friends are reported", func() {
				So(err, ShouldBeNil)
				So(rep.RunID, ShouldNotBeEmpty)
				So(rep.Participants, ShouldEqual, 4)
				So(rep.Evaluated, ShouldEqual, 4)
				So(rep.Qualified, ShouldEqual, 1)
				So(rep.Limit, ShouldEqual, 9)
				So(len(rep.Groups), ShouldEqual, 1)
				So(rep.Groups[0].Label, ShouldEqual, "12/12")
				So(rep.Groups[0].Teams[0].Name, ShouldEqual, "ana + ben + cy")
			})

			Convey("And the run is counted", func() {
				stats := svc.GetStats()
				So(stats["runs"], ShouldEqual, int64(1))
				So(stats["failures"], ShouldEqual, int64(0))
				So(stats["lastParticipants"], ShouldEqual, int64(4))
				So(stats["lastQualified"], ShouldEqual, int64(1))
			})
		})

		Convey("When two runs rank the same grid", func() {
			first, err1 := svc.Rank(ctx, fourWithVeto, 0)
			second, err2 := svc.Rank(ctx, fourWithVeto, 0)

			Convey("Then they differ only in their run id", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first.RunID, ShouldNotEqual, second.RunID)
				second.RunID = first.RunID
				So(second, ShouldResemble, first)
			})
		})

		Convey("When a row arrives out of roster order", func() {
			rows := [][]string{
				{"PLAYERS", "ana", "ben", "cy"},
				{"ben", "A", "X", "A"},
				{"ana", "X", "A", "A"},
				{"cy", "A", "A", "X"},
			}
			_, err := svc.Rank(ctx, rows, service.UseDefaultLimit)

			Convey("Then the run fails with a sequence mismatch and is counted", func() {
				So(errors.Is(err, model.ErrSequenceMismatch), ShouldBeTrue)
				So(svc.GetStats()["failures"], ShouldEqual, int64(1))
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.Rank(cctx, fourWithVeto, service.UseDefaultLimit)

			Convey("Then the cancellation is returned", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service with a small participant cap", t, func() {
		svc := service.New(service.WithMaxParticipants(3))

		Convey("When the roster is larger than the cap", func() {
			_, err := svc.Rank(ctx, fourWithVeto, service.UseDefaultLimit)

			Convey("Then the input is rejected as malformed", func() {
				So(errors.Is(err, model.ErrMalformedInput), ShouldBeTrue)
			})
		})

		Convey("When the header only carries trailing blank cells past the cap", func() {
			rows := [][]string{
				{"PLAYERS", "ana", "ben", "cy", "", ""},
				{"ana", "X", "A", "A"},
				{"ben", "A", "X", "A"},
				{"cy", "A", "A", "X"},
			}
			rep, err := svc.Rank(ctx, rows, service.UseDefaultLimit)

			Convey("Then the blank cells do not count", func() {
				So(err, ShouldBeNil)
				So(rep.Reported, ShouldEqual, 1)
			})
		})
	})
}

func TestService_RankMatrix(t *testing.T) {
	ctx := context.Background()

	Convey("Given a generated grid", t, func() {
		rows, err := samplegrid.New(samplegrid.WithPlayers(9), samplegrid.WithSeed(7)).Generate()
		So(err, ShouldBeNil)

		svc := service.New()
		m, err := svc.Matrix(rows)
		So(err, ShouldBeNil)

		Convey("When ranking with the cutoff disabled", func() {
			rep, err := svc.RankMatrix(ctx, m, 0)

			Convey("Then every qualifying team is reported", func() {
				So(err, ShouldBeNil)
				So(rep.Evaluated, ShouldEqual, 84)
				So(rep.Reported, ShouldEqual, rep.Qualified)
			})
		})

		Convey("When ranking with a limit of one", func() {
			rep, err := svc.RankMatrix(ctx, m, 1)

			Convey("Then exactly the top group is reported", func() {
				So(err, ShouldBeNil)
				if rep.Qualified > 0 {
					So(len(rep.Groups), ShouldEqual, 1)
				}
			})
		})
	})
}
