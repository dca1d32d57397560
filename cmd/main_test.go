package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/okian/parabellum/internal/config"
	"github.com/okian/parabellum/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When configuration comes from the environment", func() {
			_ = os.Setenv("PARABELLUM_ADDR", ":8080")
			_ = os.Setenv("PARABELLUM_REPORT_LIMIT", "5")
			_ = os.Setenv("PARABELLUM_WORKER_COUNT", "4")
			defer func() {
				_ = os.Unsetenv("PARABELLUM_ADDR")
				_ = os.Unsetenv("PARABELLUM_REPORT_LIMIT")
				_ = os.Unsetenv("PARABELLUM_WORKER_COUNT")
			}()

			convey.Convey("Then the service picks it up", func() {
				cfg, err := config.Load()
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")

				svc := newService(cfg, logger.Get())
				stats := svc.GetStats()
				convey.So(stats["reportLimit"], convey.ShouldEqual, 5)
				convey.So(stats["workerCount"], convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When building the HTTP server", func() {
			cfg := config.New()
			svc := newService(cfg, logger.Get())
			convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
			defer svc.Stop()
			srv, err := newHTTPServer(cfg, svc, logger.Get())
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then it carries the configured address and timeouts", func() {
				convey.So(srv.Addr, convey.ShouldEqual, ":9080")
				convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
			})

			convey.Convey("And its handler ranks a posted grid", func() {
				body := "PLAYERS,ana,ben,cy\nana,X,A,A\nben,A,X,A\ncy,A,A,X\n"
				req := httptest.NewRequest(http.MethodPost, "/teams?format=text", strings.NewReader(body))
				req.Header.Set("Content-Type", "text/csv")
				w := httptest.NewRecorder()
				srv.Handler.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "ana + ben + cy")
			})

			convey.Convey("And the API docs are served", func() {
				req := httptest.NewRequest(http.MethodGet, "/openapi.json", http.NoBody)
				w := httptest.NewRecorder()
				srv.Handler.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a configuration on an ephemeral port", t, func() {
		cfg := config.New()
		cfg.Addr = "127.0.0.1:0"

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- run(ctx, cfg) }()
			cancel()

			convey.Convey("Then the server shuts down cleanly", func() {
				select {
				case err := <-done:
					convey.So(err, convey.ShouldBeNil)
				case <-time.After(5 * time.Second):
					convey.So("run did not return", convey.ShouldBeEmpty)
				}
			})
		})

		convey.Convey("When the address cannot be bound", func() {
			cfg.Addr = "not-an-address"
			err := run(context.Background(), cfg)

			convey.Convey("Then the listen error is returned", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then a single update does not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("And the loop stops with its context", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		})
	})
}
