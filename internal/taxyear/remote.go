package taxyear

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultRemoteTimeout = 2 * time.Second

var errRemoteMissing = errors.New("table not published")

// remoteSource fetches <baseURL>/<year>.yaml.
type remoteSource struct {
	baseURL string
	client  *http.Client
}

func newRemoteSource(baseURL string, timeout time.Duration) *remoteSource {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &remoteSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (s *remoteSource) fetch(year int) ([]byte, error) {
	url := s.baseURL + "/" + strconv.Itoa(year) + ".yaml"
	resp, err := s.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return nil, errRemoteMissing
	default:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
}

// Option configures a Registry.
type Option func(*Registry)

// WithRemote makes the registry fetch tables from baseURL before falling
// back to the embedded copy of the same year. A zero timeout uses two
// seconds.
func WithRemote(baseURL string, timeout time.Duration) Option {
	return func(r *Registry) {
		if baseURL != "" {
			r.remote = newRemoteSource(baseURL, timeout)
		}
	}
}

// WithLogger sets the logger for lookups that fall back from a failing remote
// source. The default discards.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// Warm loads the given years concurrently so later lookups hit the cache. It
// returns the first error.
func (r *Registry) Warm(years ...int) error {
	if len(years) == 1 {
		_, err := r.Get(years[0])
		return err
	}

	var g errgroup.Group
	g.SetLimit(4)
	for _, year := range years {
		year := year
		g.Go(func() error {
			_, err := r.Get(year)
			return err
		})
	}
	return g.Wait()
}
