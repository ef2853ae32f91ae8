package main

import (
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// HostRewriter redirects Discord API calls to a local ratelimit proxy.
type HostRewriter struct {
	host   string
	next   http.RoundTripper
	logger *zap.Logger
}

func NewHostRewriter(host string, next http.RoundTripper, logger *zap.Logger) HostRewriter {
	return HostRewriter{
		host:   host,
		next:   next,
		logger: logger,
	}
}

func (rt HostRewriter) RoundTrip(req *http.Request) (*http.Response, error) {
	urlStr := strings.Replace(req.URL.String(), req.Host, rt.host, 1)
	req.URL, _ = url.Parse(urlStr)

	rt.logger.Debug("[PROXY] Rewriting host", zap.String("host", rt.host), zap.String("url", req.URL.String()))

	req.Host = rt.host
	req.URL.Scheme = "http"

	return rt.next.RoundTrip(req)
}
