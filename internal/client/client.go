package client

import (
	"bytes"
	"context"
	"crypto"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"code.superseriousbusiness.org/httpsig"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/hermes/internal/domain"
	"github.com/sidereusnuntius/hermes/internal/federation"
	"github.com/sidereusnuntius/hermes/internal/utils"
	"golang.org/x/time/rate"
)

const ActivityContentType = "application/activity+json"

var prefs = []httpsig.Algorithm{httpsig.RSA_SHA256}
var postHeaders = []string{httpsig.RequestTarget, "date", "digest"}

// HttpClient delivers payloads to remote inboxes, signing every request with the key of the author on
// whose behalf it is sent. Requests to a single host are rate limited.
type HttpClient struct {
	client    *http.Client
	userAgent string

	limit      rate.Limit
	burst      int
	limitersMu sync.Mutex
	limiters   map[string]*rate.Limiter
}

func New(client *http.Client, userAgent string, ratePerSec float64, burst int) *HttpClient {
	limit := rate.Inf
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
	}
	if burst <= 0 {
		burst = 1
	}

	return &HttpClient{
		client:    client,
		userAgent: userAgent,
		limit:     limit,
		burst:     burst,
		limiters:  make(map[string]*rate.Limiter),
	}
}

// SendRemote implements federation.Transport.
func (c *HttpClient) SendRemote(ctx context.Context, author domain.Author, endpoint *url.URL, payload federation.Payload) error {
	key, err := utils.ParsePrivateKeyPem(author.PrivateKey)
	if err != nil {
		log.Error().Err(err).Int64("author", author.ID).Msg("author's private key is unusable")
		return fmt.Errorf("%w: %w", federation.ErrMissingKey, err)
	}

	keyId := author.KeyID()
	if keyId == nil {
		return fmt.Errorf("%w: author %d has no IRI", federation.ErrMissingKey, author.ID)
	}

	contentType := payload.ContentType
	if contentType == "" {
		contentType = ActivityContentType
	}
	return c.Deliver(ctx, key, keyId.String(), payload.Body, contentType, endpoint)
}

// Deliver posts body to the given inbox. Failures are classified: errors wrapping federation.ErrTransient
// may succeed later, while those wrapping federation.ErrPermanent will not.
func (c *HttpClient) Deliver(ctx context.Context, key crypto.PrivateKey, keyId string, body []byte, contentType string, to *url.URL) error {
	if err := c.limiter(to.Host).Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", federation.ErrTransient, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, to.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", federation.ErrPermanent, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", ActivityContentType)
	req.Header.Set("Date", time.Now().UTC().Format(http.TimeFormat))
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	// Signers are not safe for concurrent use.
	signer, _, err := httpsig.NewSigner(prefs, httpsig.DigestSha256, postHeaders, httpsig.Signature, 3600)
	if err != nil {
		log.Error().Err(err).Msg("failed to construct signer")
		return err
	}

	if err = signer.SignRequest(key, keyId, req, body); err != nil {
		log.Error().Err(err).Msg("error while signing request")
		return fmt.Errorf("%w: %w", federation.ErrPermanent, err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", federation.ErrTransient, err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	content, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	log.Debug().
		Int("code", res.StatusCode).
		Str("to", to.String()).
		Bytes("response body", content).
		Msg("delivery error")

	if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= http.StatusInternalServerError ||
		res.StatusCode == http.StatusRequestTimeout {
		return fmt.Errorf("%w: %s", federation.ErrTransient, res.Status)
	}
	return fmt.Errorf("%w: %s", federation.ErrRejected, res.Status)
}

func (c *HttpClient) limiter(host string) *rate.Limiter {
	c.limitersMu.Lock()
	defer c.limitersMu.Unlock()

	l, ok := c.limiters[host]
	if !ok {
		l = rate.NewLimiter(c.limit, c.burst)
		c.limiters[host] = l
	}
	return l
}
