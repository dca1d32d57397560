package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "parabellum")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should apply", func() {
				So(manager.namespace, ShouldEqual, "test_namespace")
				So(manager.subsystem, ShouldEqual, "test_subsystem")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording a successful run", func() {
			manager.RecordRun(15*time.Millisecond, 6, 20, 8, 12)

			Convey("Then the run and team counters move", func() {
				So(testutil.ToFloat64(manager.runs.WithLabelValues(ResultOK)), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.teamsEvaluated), ShouldEqual, 20)
				So(testutil.ToFloat64(manager.teamsVetoed), ShouldEqual, 8)
				So(testutil.ToFloat64(manager.teamsQualified), ShouldEqual, 12)
				So(testutil.ToFloat64(manager.lastParticipants), ShouldEqual, 6)
			})
		})

		Convey("When recording a failed run", func() {
			manager.RecordRunError("sequence_mismatch")

			Convey("Then the error is counted under its kind", func() {
				So(testutil.ToFloat64(manager.runs.WithLabelValues(ResultError)), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.runErrors.WithLabelValues("sequence_mismatch")), ShouldEqual, 1)
			})
		})

		Convey("When updating system gauges", func() {
			manager.UpdateSystemMemoryUsage(4096)
			manager.UpdateSystemGoroutineCount(12)

			Convey("Then the gauges hold the latest values", func() {
				So(testutil.ToFloat64(manager.memoryUsage), ShouldEqual, 4096)
				So(testutil.ToFloat64(manager.goroutineCount), ShouldEqual, 12)
			})
		})

		Convey("When recording an HTTP request", func() {
			manager.RecordHTTPRequest("teams", "POST", "200", time.Millisecond)

			Convey("Then it is exported on the registry", func() {
				n, err := testutil.GatherAndCount(registry, "parabellum_http_requests_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))
		manager.RecordRun(time.Millisecond, 3, 1, 0, 1)
		manager.RecordRunError("malformed_input")

		Convey("Then nothing is recorded", func() {
			So(testutil.ToFloat64(manager.teamsEvaluated), ShouldEqual, 0)
			So(testutil.ToFloat64(manager.runErrors.WithLabelValues("malformed_input")), ShouldEqual, 0)
		})
	})
}

func TestGlobalMetrics(t *testing.T) {
	Convey("Given the package-level helpers", t, func() {
		So(func() {
			RecordRun(time.Millisecond, 3, 1, 0, 1)
			RecordRunError("invalid_code")
			RecordHTTPRequest("stats", "GET", "200", time.Millisecond)
		}, ShouldNotPanic)

		Convey("Then the custom registry exposes them", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			joined := strings.Join(names, ",")
			So(joined, ShouldContainSubstring, "parabellum_teams_runs_total")
			So(joined, ShouldContainSubstring, "parabellum_teams_evaluated_total")
			So(joined, ShouldContainSubstring, "parabellum_http_requests_total")
		})
	})
}
