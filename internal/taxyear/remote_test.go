package taxyear

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func tableServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestRemoteTableTakesPrecedence(t *testing.T) {
	base, err := embedded.ReadFile("tables/2024.yaml")
	require.NoError(t, err)
	patched := strings.Replace(string(base), "wage_base: 168600", "wage_base: 170000", 1)

	srv, hits := tableServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tables/2024.yaml" {
			_, _ = w.Write([]byte(patched))
			return
		}
		http.NotFound(w, r)
	})

	r := NewRegistry("", WithRemote(srv.URL+"/tables/", 0))
	t24, err := r.Get(2024)
	require.NoError(t, err)
	require.Equal(t, 170000.0, t24.SEParams().WageBase)

	// not published remotely: embedded copy of the same year
	t25, err := r.Get(2025)
	require.NoError(t, err)
	require.Equal(t, 176100.0, t25.SEParams().WageBase)

	_, err = r.Get(2024)
	require.NoError(t, err)
	require.Equal(t, int32(2), hits.Load(), "second lookup is cached")
}

func TestRemoteFailure(t *testing.T) {
	srv, _ := tableServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	core, logs := observer.New(zap.WarnLevel)
	r := NewRegistry("", WithRemote(srv.URL, 0), WithLogger(zap.New(core)))

	t25, err := r.Get(2025)
	require.NoError(t, err)
	require.Equal(t, 2025, t25.Year)

	warned := logs.FilterMessage("remote tax table unavailable, using embedded copy").All()
	require.Len(t, warned, 1)
	require.Equal(t, int64(2025), warned[0].ContextMap()["year"])
	require.Contains(t, warned[0].ContextMap()["error"], "status 500")

	_, err = r.Get(2030)
	require.ErrorIs(t, err, ErrUnsupportedYear)
	require.Contains(t, err.Error(), "status 500")
}

func TestRemoteInvalidTable(t *testing.T) {
	srv, _ := tableServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("year: [oops"))
	})
	_, err := NewRegistry("", WithRemote(srv.URL, 0)).Get(2025)
	require.ErrorIs(t, err, ErrInvalidTable)
}

func TestWithRemoteEmptyURL(t *testing.T) {
	r := NewRegistry("", WithRemote("", 0))
	require.Nil(t, r.remote)
}

func TestWarm(t *testing.T) {
	r := NewRegistry("")
	require.NoError(t, r.Warm(2024, 2025))
	_, ok := r.cache.Load(2024)
	require.True(t, ok)

	err := r.Warm(2025, 1999, 1998)
	require.ErrorIs(t, err, ErrUnsupportedYear)

	require.ErrorIs(t, r.Warm(1997), ErrUnsupportedYear)
}
