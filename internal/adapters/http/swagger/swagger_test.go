package swagger_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/smartystreets/goconvey/convey"
	"sigs.k8s.io/yaml"

	"github.com/okian/parabellum/internal/adapters/http/api"
	"github.com/okian/parabellum/internal/adapters/http/site"
	"github.com/okian/parabellum/internal/adapters/http/swagger"
	"github.com/okian/parabellum/internal/domain/types"
	"github.com/okian/parabellum/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

// openAPIDoc is the minimal structure needed to extract paths from the OpenAPI document.
type openAPIDoc struct {
	Paths map[string]map[string]interface{} `json:"paths"`
}

type noopDeps struct{}

func (noopDeps) Ready() bool                      { return true }
func (noopDeps) GetStats() map[string]interface{} { return nil }
func (noopDeps) Rank(context.Context, [][]string, int) (types.Report, error) {
	return types.Report{}, nil
}

func TestSwaggerHandler(t *testing.T) {
	convey.Convey("Given a router with the docs registered", t, func() {
		r := chi.NewRouter()
		convey.So(swagger.Register(r), convey.ShouldBeNil)

		convey.Convey("Then it should handle /openapi.yaml route", func() {
			req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")
			convey.So(w.Body.Len(), convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("And it should serve the document as JSON", func() {
			req := httptest.NewRequest(http.MethodGet, "/openapi.json", http.NoBody)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			var doc openAPIDoc
			convey.So(json.Unmarshal(w.Body.Bytes(), &doc), convey.ShouldBeNil)
			convey.So(doc.Paths, convey.ShouldContainKey, "/teams")
		})

		convey.Convey("And it should handle /api-docs route", func() {
			req := httptest.NewRequest(http.MethodGet, "/api-docs", http.NoBody)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "text/html; charset=utf-8")
			convey.So(w.Body.String(), convey.ShouldContainSubstring, "redoc-container")
		})
	})
}

func TestSwaggerHandlerWithNilRouter(t *testing.T) {
	convey.Convey("Given a nil router", t, func() {
		convey.Convey("Then registering should panic", func() {
			convey.So(func() { _ = swagger.Register(nil) }, convey.ShouldPanic)
		})
	})
}

func TestOpenAPICoverage(t *testing.T) {
	convey.Convey("Given the API router and the embedded OpenAPI document", t, func() {
		router := api.NewServer(noopDeps{}).Router()
		convey.So(swagger.Register(router), convey.ShouldBeNil)
		site.Register(router)

		var doc openAPIDoc
		convey.So(yaml.Unmarshal(swagger.OpenAPI, &doc), convey.ShouldBeNil)

		var missing []string
		err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			ops, ok := doc.Paths[route]
			if !ok {
				missing = append(missing, method+" "+route)
				return nil
			}
			if _, ok := ops[strings.ToLower(method)]; !ok {
				missing = append(missing, method+" "+route)
			}
			return nil
		})
		sort.Strings(missing)

		convey.Convey("Then every registered route is documented", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(missing, convey.ShouldBeEmpty)
		})
	})
}
