package importer

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"kisan/pkg/apperr"
)

// Fetcher downloads remote price sheets from an allow-list of hosts.
type Fetcher struct {
	client   *resty.Client
	allow    map[string]bool
	maxBytes int64
}

// Download is one fetched sheet.
type Download struct {
	Name        string
	ContentType string
	Data        []byte
}

func NewFetcher(hosts []string, maxBytes int) *Fetcher {
	allow := map[string]bool{}
	for _, h := range hosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			allow[h] = true
		}
	}
	client := resty.New()
	client.SetTimeout(20 * time.Second)
	client.SetHeader("User-Agent", "kisan-price-import/1.0")
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(5), resty.DomainCheckRedirectPolicy(hosts...))
	return &Fetcher{client: client, allow: allow, maxBytes: int64(maxBytes)}
}

func (f *Fetcher) Allowed(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	return f.allow[strings.ToLower(u.Hostname())]
}

func (f *Fetcher) Fetch(ctx context.Context, raw string) (*Download, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, apperr.Validation("bad url")
	}
	if !f.Allowed(raw) {
		return nil, apperr.New(apperr.KindForbidden, "domain not allowed")
	}

	resp, err := f.client.R().SetContext(ctx).SetDoNotParseResponse(true).Get(raw)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "fetch failed", err)
	}
	body := resp.RawBody()
	defer body.Close()
	if resp.IsError() {
		return nil, apperr.New(apperr.KindUpstream, fmt.Sprintf("fetch failed: %s", resp.Status()))
	}
	data, err := io.ReadAll(io.LimitReader(body, f.maxBytes+1))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "fetch failed", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, apperr.New(apperr.KindTooLarge, "page too large")
	}
	return &Download{
		Name:        path.Base(u.Path),
		ContentType: resp.Header().Get("Content-Type"),
		Data:        data,
	}, nil
}
