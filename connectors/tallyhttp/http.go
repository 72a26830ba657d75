package tallyhttp

import (
	"io"
	"mime"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/goccy/go-json"

	tally "github.com/weegigs/tally-go"
)

type HandlerOption func(service *httpService)

func Logger(log *zerolog.Logger) HandlerOption {
	return func(service *httpService) {
		service.log = log
	}
}

// NewHandler exposes a counter over HTTP. GET /counter reads the value and
// POST /counter executes a command; the counter itself carries no transport,
// this handler is a host for it.
func NewHandler(counter *tally.Counter, options ...HandlerOption) http.Handler {
	service := &httpService{counter: counter}
	for _, option := range options {
		option(service)
	}
	if service.log == nil {
		service.log = &log.Logger
	}

	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Method("GET", "/counter", service.getValue())
	r.Method("POST", "/counter", service.executeCommand())

	return WithTelemetry(r, "tally-http")
}

type httpService struct {
	log     *zerolog.Logger
	counter *tally.Counter
}

type valueResponse struct {
	Value uint64 `json:"value"`
}

func (service *httpService) getValue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, valueResponse{Value: service.counter.Value()})
	}
}

func (service *httpService) executeCommand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contentType := r.Header.Get("Content-type")
		mediaType, _, err := mime.ParseMediaType(contentType)
		if mediaType != "application/json" || err != nil {
			http.Error(w, "unsupported content type", http.StatusUnsupportedMediaType)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		var request CommandRequest
		if err := json.UnmarshalContext(r.Context(), body, &request); err != nil {
			service.log.Info().Err(err).Msg("failed to unmarshal command")
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		command, err := request.Command()
		if err != nil {
			service.log.Info().Err(err).Msg("failed to decode command")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		record, err := tally.Execute(r.Context(), service.counter, command)
		if err != nil {
			service.renderFailure(w, r, err)
			return
		}

		render.JSON(w, r, record)
	}
}

type failureResponse struct {
	Error string `json:"error"`
}

func (service *httpService) renderFailure(w http.ResponseWriter, r *http.Request, err error) {
	if _, ok := tally.AsOverflow(err); ok {
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, failureResponse{Error: err.Error()})
		return
	}

	if _, ok := tally.AsUnderflow(err); ok {
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, failureResponse{Error: err.Error()})
		return
	}

	service.log.Info().Err(err).Msg("failed to execute command")
	http.Error(w, err.Error(), http.StatusBadRequest)
}
