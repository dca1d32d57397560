package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/okian/parabellum/internal/adapters/grid"
	"github.com/okian/parabellum/internal/report"
	"github.com/okian/parabellum/pkg/logger"
)

// teamsRequest is the JSON body of POST /teams.
type teamsRequest struct {
	Rows [][]string `json:"rows"`
}

// TeamsHandler ranks submitted preference grids.
type TeamsHandler struct {
	deps         Dependencies
	maxBodyBytes int64
	logger       logger.Logger
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps Dependencies, maxBodyBytes int64, log logger.Logger) *TeamsHandler {
	return &TeamsHandler{deps: deps, maxBodyBytes: maxBodyBytes, logger: log}
}

// HandlePostTeams handles POST /teams. The grid is a JSON {"rows": [...]}
// document or a CSV export; ?limit= overrides the report limit and
// ?format=text returns the plain-text report.
func (h *TeamsHandler) HandlePostTeams(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_teams"

	limit, format, err := parseTeamsQuery(r)
	if err != nil {
		h.fail(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	rows, err := readRows(r)
	if err != nil {
		h.fail(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}

	rep, err := h.deps.Rank(r.Context(), rows, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if format == report.FormatText {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = report.WriteText(w, rep)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h *TeamsHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "ranking request failed",
			logger.String("requestID", GetRequestID(r.Context())),
			logger.Error(err),
		)
	}
	writeError(w, r, status, code, err)
}

func parseTeamsQuery(r *http.Request) (int, string, error) {
	q := r.URL.Query()

	limit := -1
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, "", fmt.Errorf("limit must be a non-negative integer, got %q", raw)
		}
		limit = n
	}

	format := q.Get("format")
	switch format {
	case "", report.FormatJSON:
		format = report.FormatJSON
	case report.FormatText:
	default:
		return 0, "", fmt.Errorf("unknown format %q", format)
	}

	return limit, format, nil
}

// readRows decodes the request body according to its Content-Type. A missing
// Content-Type is read as JSON.
func readRows(r *http.Request) ([][]string, error) {
	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, WrapKind("read rows", ErrUnsupportedMedia, err)
		}
		mediaType = mt
	}

	switch mediaType {
	case "application/json":
		var req teamsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, bodyError(err)
		}
		return grid.Normalize(req.Rows), nil
	case "text/csv", "text/plain":
		rows, err := grid.ReadCSV(r.Body)
		if err != nil {
			return nil, bodyError(err)
		}
		return rows, nil
	default:
		return nil, WrapKind("read rows", ErrUnsupportedMedia, fmt.Errorf("%q", mediaType))
	}
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return WrapKind("read rows", ErrPayloadTooLarge, err)
	}
	if errors.Is(err, io.EOF) {
		return WrapKind("read rows", ErrBadRequest, errors.New("empty body"))
	}
	return WrapKind("read rows", ErrBadRequest, err)
}
