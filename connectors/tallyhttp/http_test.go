package tallyhttp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"

	tally "github.com/weegigs/tally-go"
)

func post(t *testing.T, server *httptest.Server, body string) *http.Response {
	t.Helper()

	response, err := http.Post(server.URL+"/counter", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected failure %+v", err)
	}

	return response
}

func decode[T any](t *testing.T, response *http.Response) T {
	t.Helper()

	var out T
	if err := json.NewDecoder(response.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response %+v", err)
	}

	return out
}

func TestHandler(t *testing.T) {
	counter := tally.NewCounter()
	server := httptest.NewServer(NewHandler(counter))
	defer server.Close()

	t.Run("reads the value", func(t *testing.T) {
		response, err := http.Get(server.URL + "/counter")

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, response.StatusCode)
		assert.Equal(t, valueResponse{Value: 0}, decode[valueResponse](t, response))
	})

	t.Run("executes increment by", func(t *testing.T) {
		response := post(t, server, `{"command":"tally:increment-by","amount":10}`)

		assert.Equal(t, http.StatusOK, response.StatusCode)

		record := decode[tally.ChangeRecord](t, response)
		assert.Equal(t, uint64(10), record.Value)
		assert.Equal(t, tally.Increased, record.Direction)
		assert.Equal(t, uint64(10), counter.Value())
	})

	t.Run("set reports an increase", func(t *testing.T) {
		response := post(t, server, `{"command":"tally:set","value":2}`)

		assert.Equal(t, http.StatusOK, response.StatusCode)

		record := decode[tally.ChangeRecord](t, response)
		assert.Equal(t, uint64(2), record.Value)
		assert.Equal(t, tally.Increased, record.Direction)
	})

	t.Run("reset reports a decrease", func(t *testing.T) {
		response := post(t, server, `{"command":"tally:reset"}`)

		assert.Equal(t, http.StatusOK, response.StatusCode)

		record := decode[tally.ChangeRecord](t, response)
		assert.Equal(t, uint64(0), record.Value)
		assert.Equal(t, tally.Decreased, record.Direction)
	})

	t.Run("underflow maps to conflict", func(t *testing.T) {
		response := post(t, server, `{"command":"tally:decrement"}`)

		assert.Equal(t, http.StatusConflict, response.StatusCode)

		failure := decode[failureResponse](t, response)
		assert.Equal(t, "underflow: cannot decrease 0 by 1", failure.Error)
		assert.Equal(t, uint64(0), counter.Value())
	})

	t.Run("unknown command maps to bad request", func(t *testing.T) {
		response := post(t, server, `{"command":"tally:refund"}`)

		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	})

	t.Run("missing operand maps to bad request", func(t *testing.T) {
		response := post(t, server, `{"command":"tally:increment-by"}`)

		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	})

	t.Run("rejects unsupported content types", func(t *testing.T) {
		response, err := http.Post(server.URL+"/counter", "text/plain", strings.NewReader("increment"))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnsupportedMediaType, response.StatusCode)
	})
}
