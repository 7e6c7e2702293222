package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Coarse Content-Type categories the proxy will re-serve. Anything else is
// refused as unsupported.
var allowedProxyContentTypes = []string{
	"image/",
	"audio/",
	"video/",
	"text/plain",
	"application/json",
	"application/pdf",
	"application/xml",
	"text/xml",
}

// proxyExtensions derives a download filename extension from the upstream
// Content-Type. Unlisted types fall back to the bare slug.
var proxyExtensions = map[string]string{
	"image/jpeg":       "jpeg",
	"image/png":        "png",
	"image/gif":        "gif",
	"image/webp":       "webp",
	"audio/mpeg":       "mp3",
	"audio/ogg":        "ogg",
	"video/mp4":        "mp4",
	"video/webm":       "webm",
	"text/plain":       "txt",
	"application/json": "json",
	"application/pdf":  "pdf",
	"application/xml":  "xml",
	"text/xml":         "xml",
}

// ProxyResult is the gate's verdict. Body is non-nil only on success; in
// every other case StatusCode is served with an empty body.
type ProxyResult struct {
	StatusCode    int
	Body          io.ReadCloser
	ContentLength int64
	ContentType   string
	FileName      string
}

// ProxyService fetches a proxy-status link's target server-side and gates
// what may be re-served. Upstream redirects are never followed: forwarding a
// redirect chain blindly is an exfiltration vector, so redirect-shaped
// responses are refused instead.
type ProxyService struct {
	client     *http.Client
	adminEmail string
	logger     *slog.Logger
}

func NewProxyService(adminEmail string, logger *slog.Logger) *ProxyService {
	return &ProxyService{
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// Fetch retrieves targetURL on behalf of slug. origin is the short service's
// own origin, used in the identifying request headers.
func (s *ProxyService) Fetch(ctx context.Context, targetURL, slug, origin string) *ProxyResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return &ProxyResult{StatusCode: http.StatusInternalServerError}
	}
	req.Header.Set("User-Agent", fmt.Sprintf("ShortProxyBot/1.0 (Short URL proxy service; +%s; %s)", origin, s.adminEmail))
	req.Header.Set("Referer", fmt.Sprintf("%s/proxy/%s", origin, slug))

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("Proxy upstream fetch failed", "slug", slug, "error", err)
		return &ProxyResult{StatusCode: http.StatusInternalServerError}
	}

	// Upstream client errors pass through with an empty body.
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		resp.Body.Close()
		return &ProxyResult{StatusCode: resp.StatusCode}
	}

	// Redirect-shaped responses are unsupported. 304/305/306 are not
	// redirects in this sense and fall through to the type check.
	if resp.StatusCode > 300 && resp.StatusCode < 400 &&
		resp.StatusCode != 304 && resp.StatusCode != 305 && resp.StatusCode != 306 {
		resp.Body.Close()
		return &ProxyResult{StatusCode: http.StatusUnsupportedMediaType}
	}

	contentType := resp.Header.Get("Content-Type")
	if !allowedContentType(contentType) {
		resp.Body.Close()
		return &ProxyResult{StatusCode: http.StatusUnsupportedMediaType}
	}

	fileName := slug
	if ext, ok := proxyExtensions[bareContentType(contentType)]; ok {
		fileName = slug + "." + ext
	}

	return &ProxyResult{
		StatusCode:    resp.StatusCode,
		Body:          resp.Body,
		ContentLength: resp.ContentLength,
		ContentType:   contentType,
		FileName:      fileName,
	}
}

func allowedContentType(contentType string) bool {
	for _, allowed := range allowedProxyContentTypes {
		if strings.HasPrefix(contentType, allowed) {
			return true
		}
	}
	return false
}

func bareContentType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(contentType)
}
