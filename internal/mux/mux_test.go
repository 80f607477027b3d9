package mux

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"seotda-server/internal/jwt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_authRouter(t *testing.T) {
	m, _ := newTestMux(t)
	m.authRouter.Path("/test").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, authPlayerID(r))
	})

	ts := httptest.NewServer(m)
	defer ts.Close()

	// anonymous while tokens are disabled
	jwt.SetSecret("")
	var str string
	assertGet(t, ts, "/test", &str, 200)
	assert.Equal(t, "", str)

	jwt.SetSecret("mux-secret")
	defer jwt.SetSecret("")

	var errObj errorResponse
	assertGet(t, ts, "/test", &errObj, 401)
	assert.Equal(t, "Unauthorized", errObj.Message)

	assertGet(t, ts, "/test", &errObj, 401, "not-a-token")

	token, err := jwt.Sign("player-7")
	assert.NoError(t, err)

	// test using auth header
	resp := assertGet(t, ts, "/test", &str, 200, token)
	assert.Equal(t, "player-7", str)
	if assert.NotNil(t, resp) {
		assert.Equal(t, "player-7", resp.Header.Get("Seotda-PlayerID"))
	}

	// test using query parameter
	resp = assertGet(t, ts, "/test?access_token="+url.QueryEscape(token), &str, 200)
	assert.Equal(t, "player-7", str)
	if assert.NotNil(t, resp) {
		assert.Equal(t, "player-7", resp.Header.Get("Seotda-PlayerID"))
	}
}
