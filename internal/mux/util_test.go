package mux

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"seotda-server/pkg/model"
	"seotda-server/pkg/room"
	"testing"

	"github.com/stretchr/testify/assert"
)

var cbg = context.Background()

func newTestMux(t *testing.T) (*Mux, *model.MemoryStore) {
	t.Helper()

	store := model.NewMemoryStore(true, 2)
	opts := room.DefaultOptions()
	opts.Game.Seeder = newLockedRand(7)
	return NewMux("v1.2.3", room.NewPitBoss(store, store, opts)), store
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	if len(signedJWT) > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT[0]))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := ioutil.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

func Test_writeJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSONError(w, http.StatusBadRequest, errors.New("bad input"))

	var body errorResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad input", body.Message)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	// server errors never leak the underlying error
	w = httptest.NewRecorder()
	writeJSONError(w, http.StatusInternalServerError, errors.New("password=hunter2"))
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.Equal(t, http.StatusInternalServerError, body.StatusCode)
}
