package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/quickshcc/quicksh/internal/client/models"
	"github.com/quickshcc/quicksh/internal/logging"
)

// clientIDHeader carries the persistent client instance ID so the server can
// attribute uploads to this client for owned-codes and delete checks.
const clientIDHeader = "X-Client-Id"

// HTTPClient implements Client against the quicksh REST interface.
type HTTPClient struct {
	baseURL  string
	clientID string
	timeout  time.Duration
	http     *http.Client
	log      logging.Logger
}

// NewHTTPClient returns a client rooted at baseURL (e.g. "https://quicksh.cc/api/").
// Every operation runs under a context bounded by timeout.
func NewHTTPClient(baseURL string, clientID string, timeout time.Duration, log logging.Logger) *HTTPClient {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &HTTPClient{
		baseURL:  baseURL,
		clientID: clientID,
		timeout:  timeout,
		http:     &http.Client{},
		log:      log,
	}
}

// statusEnvelope is the common JSON shape of upload/delete responses.
type statusEnvelope struct {
	Status bool   `json:"status"`
	Error  string `json:"error"`
}

// transferEnvelope is the upload response payload.
type transferEnvelope struct {
	Status bool   `json:"status"`
	Error  string `json:"error"`
	Code   int    `json:"code"`
	Expire string `json:"expire"`
}

// setEnvelope is the owned-codes / validate-set response payload. Response
// is kept raw so record order can be preserved while decoding.
type setEnvelope struct {
	Status   bool            `json:"status"`
	Error    string          `json:"error"`
	Response json.RawMessage `json:"response"`
}

// recordPayload is the per-code object inside a setEnvelope.
type recordPayload struct {
	File   string `json:"file"`
	Expire string `json:"expire"`
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(clientIDHeader, c.clientID)
	return req, nil
}

func (c *HTTPClient) Upload(ctx context.Context, name string, content io.Reader, expire models.ExpireOption) (*models.Record, error) {
	if !expire.Valid() {
		return nil, models.ErrInvalidExpireOption
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", name)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := mw.WriteField("expire", strconv.Itoa(int(expire))); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := c.newRequest(ctx, http.MethodPost, "transfer/", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, "transfer", err)
	}
	defer resp.Body.Close()

	var env transferEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, c.transportError(ctx, "transfer", err)
	}
	if !env.Status {
		return nil, rejectionError(env.Error)
	}

	code := models.Code(env.Code)
	if !code.Valid() {
		return nil, c.transportError(ctx, "transfer", fmt.Errorf("server returned code %d", env.Code))
	}

	return &models.Record{Code: code, Filename: name, Expire: env.Expire}, nil
}

func (c *HTTPClient) Download(ctx context.Context, code models.Code) (*Download, error) {
	if !code.Valid() {
		return nil, models.ErrInvalidCode
	}

	// The timeout must cover the body read as well, so cancellation is tied
	// to Body.Close instead of this call returning.
	ctx, cancel := context.WithTimeout(ctx, c.timeout)

	req, err := c.newRequest(ctx, http.MethodGet, "receive/"+code.String(), nil)
	if err != nil {
		cancel()
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		return nil, c.transportError(ctx, "receive", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, ErrCodeNotFound
	}

	filename := FilenameFromDisposition(resp.Header.Get("Content-Disposition"))

	return &Download{
		Filename: filename,
		Body:     &cancelReadCloser{rc: resp.Body, cancel: cancel},
	}, nil
}

func (c *HTTPClient) Delete(ctx context.Context, code models.Code) error {
	if !code.Valid() {
		return models.ErrInvalidCode
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodDelete, "delete/"+code.String(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportError(ctx, "delete", err)
	}
	defer resp.Body.Close()

	var env statusEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return c.transportError(ctx, "delete", err)
	}
	if !env.Status {
		return rejectionError(env.Error)
	}
	return nil
}

func (c *HTTPClient) ListOwned(ctx context.Context) ([]models.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "owned-codes", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, "owned-codes", err)
	}
	defer resp.Body.Close()

	return c.decodeRecordSet(ctx, "owned-codes", resp.Body)
}

func (c *HTTPClient) ValidateSet(ctx context.Context, codes []models.Code) ([]models.Record, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	joined := make([]string, 0, len(codes))
	for _, code := range codes {
		joined = append(joined, code.String())
	}
	form := url.Values{"codes_set": {strings.Join(joined, ",")}}

	req, err := c.newRequest(ctx, http.MethodPost, "validate-set/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, "validate-set", err)
	}
	defer resp.Body.Close()

	return c.decodeRecordSet(ctx, "validate-set", resp.Body)
}

// decodeRecordSet parses a setEnvelope body into records, keeping the order
// in which the server listed the codes.
func (c *HTTPClient) decodeRecordSet(ctx context.Context, op string, body io.Reader) ([]models.Record, error) {
	var env setEnvelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		return nil, c.transportError(ctx, op, err)
	}
	if !env.Status {
		return nil, rejectionError(env.Error)
	}

	records, err := parseOrderedRecords(env.Response)
	if err != nil {
		return nil, c.transportError(ctx, op, err)
	}
	return records, nil
}

// parseOrderedRecords walks the {"code": {"file": ..., "expire": ...}} object
// token by token: encoding/json maps would lose the server's key order.
func parseOrderedRecords(raw json.RawMessage) ([]models.Record, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("unexpected response token %v", tok)
	}

	var records []models.Record
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected response key %v", tok)
		}

		var payload recordPayload
		if err := dec.Decode(&payload); err != nil {
			return nil, err
		}

		code, err := models.ParseCode(key)
		if err != nil {
			// Unknown keys from the server are skipped rather than failing
			// the whole batch.
			continue
		}

		records = append(records, models.Record{Code: code, Filename: payload.File, Expire: payload.Expire})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return records, nil
}

func rejectionError(reason string) error {
	if reason == "" {
		return ErrRejected
	}
	return fmt.Errorf("%w: %s", ErrRejected, reason)
}

func (c *HTTPClient) transportError(ctx context.Context, op string, err error) error {
	c.log.Error(ctx, "request failed", "op", op, "error", err)
	return fmt.Errorf("%w: %s", ErrUnavailable, op)
}

// cancelReadCloser ties a request-scoped cancel func to the response body so
// the deadline stays armed while the caller streams the content.
type cancelReadCloser struct {
	rc     io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Read(p []byte) (int, error) {
	return c.rc.Read(p)
}

func (c *cancelReadCloser) Close() error {
	err := c.rc.Close()
	c.cancel()
	return err
}
