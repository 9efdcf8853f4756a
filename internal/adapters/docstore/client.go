package docstore

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotelnow/internal/adapters/observability"
	"hotelnow/internal/domain"
)

// Client talks to the managed document-database service. The wire contract
// is the service's own: collections of JSON documents, each carrying its
// assigned id. Reads pull whole collections; the one server-side filter is
// the city equality clause on hotels.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("document store base URL is required")
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

var (
	ErrUnauthorized = errors.New("docstore: unauthorized")
	ErrForbidden    = errors.New("docstore: forbidden")
)

// documents is the list envelope every collection read returns.
type documents[T any] struct {
	Documents []T `json:"documents"`
}

type created struct {
	ID string `json:"id"`
}

func (c *Client) collectionURL(name string) string {
	return fmt.Sprintf("%s/v1/collections/%s/documents", c.base, name)
}

func (c *Client) documentURL(name, id string) string {
	return fmt.Sprintf("%s/v1/collections/%s/documents/%s", c.base, name, url.PathEscape(id))
}

// ---- CatalogStore read paths ----

func (c *Client) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	var out documents[domain.Hotel]
	if err := c.do(ctx, http.MethodGet, c.collectionURL(domain.CollectionHotels), nil, &out); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

func (c *Client) ListHotelsByCity(ctx context.Context, city string) ([]domain.Hotel, error) {
	u := c.collectionURL(domain.CollectionHotels) + "?city=" + url.QueryEscape(city)
	var out documents[domain.Hotel]
	if err := c.do(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

func (c *Client) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	var out domain.Hotel
	if err := c.do(ctx, http.MethodGet, c.documentURL(domain.CollectionHotels, id), nil, &out); err != nil {
		return domain.Hotel{}, err
	}
	out.ID = id
	return out, nil
}

func (c *Client) ListCities(ctx context.Context) ([]domain.City, error) {
	var out documents[domain.City]
	if err := c.do(ctx, http.MethodGet, c.collectionURL(domain.CollectionCities), nil, &out); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

func (c *Client) ListLocalities(ctx context.Context) ([]domain.Locality, error) {
	var out documents[domain.Locality]
	if err := c.do(ctx, http.MethodGet, c.collectionURL(domain.CollectionLocalities), nil, &out); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

func (c *Client) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	var out documents[domain.Destination]
	if err := c.do(ctx, http.MethodGet, c.collectionURL(domain.CollectionDestinations), nil, &out); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

// ---- CatalogStore write paths ----

func (c *Client) create(ctx context.Context, collection string, doc any) (string, error) {
	var out created
	if err := c.do(ctx, http.MethodPost, c.collectionURL(collection), doc, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) CreateHotel(ctx context.Context, h domain.Hotel) (string, error) {
	h.ID = ""
	return c.create(ctx, domain.CollectionHotels, h)
}

func (c *Client) UpdateHotel(ctx context.Context, h domain.Hotel) error {
	id := h.ID
	h.ID = ""
	return c.do(ctx, http.MethodPatch, c.documentURL(domain.CollectionHotels, id), h, nil)
}

func (c *Client) DeleteHotel(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.documentURL(domain.CollectionHotels, id), nil, nil)
}

func (c *Client) CreateCity(ctx context.Context, city domain.City) (string, error) {
	city.ID = ""
	return c.create(ctx, domain.CollectionCities, city)
}

func (c *Client) DeleteCity(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.documentURL(domain.CollectionCities, id), nil, nil)
}

func (c *Client) CreateLocality(ctx context.Context, l domain.Locality) (string, error) {
	l.ID = ""
	return c.create(ctx, domain.CollectionLocalities, l)
}

func (c *Client) UpdateLocality(ctx context.Context, l domain.Locality) error {
	id := l.ID
	l.ID = ""
	return c.do(ctx, http.MethodPatch, c.documentURL(domain.CollectionLocalities, id), l, nil)
}

func (c *Client) DeleteLocality(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.documentURL(domain.CollectionLocalities, id), nil, nil)
}

func (c *Client) CreateDestination(ctx context.Context, d domain.Destination) (string, error) {
	d.ID = ""
	return c.create(ctx, domain.CollectionDestinations, d)
}

func (c *Client) UpdateDestination(ctx context.Context, d domain.Destination) error {
	id := d.ID
	d.ID = ""
	return c.do(ctx, http.MethodPatch, c.documentURL(domain.CollectionDestinations, id), d, nil)
}

func (c *Client) DeleteDestination(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.documentURL(domain.CollectionDestinations, id), nil, nil)
}

// ---- Internals ----

// do performs one request with client-side rate limiting, retries on 429
// and transient 5xx (honoring Retry-After), and JSON decode into out.
func (c *Client) do(ctx context.Context, method, u string, in, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = b
	}

	start := time.Now()
	var lastErr error
	for i := 0; i < 4; i++ {
		var rdr io.Reader
		if body != nil {
			rdr = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, rdr)
		if err != nil {
			return err
		}
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hotelnow/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			observability.ObserveExternal("docstore", method, resp.StatusCode, time.Since(start))
			if out == nil {
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				return nil
			}
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNoContent:
			observability.ObserveExternal("docstore", method, resp.StatusCode, time.Since(start))
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			observability.ObserveExternal("docstore", method, resp.StatusCode, time.Since(start))
			return domain.ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles each attempt (200ms, 400ms, 800ms...) with up to +50%
// jitter from crypto/rand so concurrent retries spread out.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
