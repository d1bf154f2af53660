package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chris/ad-rewards-wallet/pkg/metrics"
	"github.com/chris/ad-rewards-wallet/pkg/money"
)

const (
	transactionsPath = "/sapi/v1/pay/transactions"
	apiKeyHeader     = "X-MBX-APIKEY"
	maxErrorBody     = 4 << 10
)

// BinanceClient is a client for the Binance Pay transactions API.
type BinanceClient struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewBinanceClient creates a new Binance Pay client. Every call is bounded by timeout.
func NewBinanceClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *BinanceClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &BinanceClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		Timeout:    timeout,
		HTTPClient: &http.Client{},
		Logger:     logger,
	}
}

var _ Gateway = (*BinanceClient)(nil)

// payRequest is the body sent to the transactions endpoint.
type payRequest struct {
	Amount          json.Number `json:"amount"`
	Currency        string      `json:"currency"`
	Email           string      `json:"email"`
	PayID           string      `json:"payId,omitempty"`
	MerchantTradeNo string      `json:"merchantTradeNo"`
}

// payResponse covers both the flat and the data-wrapped shapes the API answers with.
type payResponse struct {
	Status          string       `json:"status"`
	Code            string       `json:"code"`
	ErrorMessage    string       `json:"errorMessage"`
	TransactionID   string       `json:"transactionId"`
	MerchantTradeNo string       `json:"merchantTradeNo"`
	Amount          money.Amount `json:"amount"`
	Data            *struct {
		TransactionID string       `json:"transactionId"`
		Status        string       `json:"status"`
		Amount        money.Amount `json:"amount"`
	} `json:"data"`
}

// ConfirmPayment submits a payment and maps the provider's answer.
func (c *BinanceClient) ConfirmPayment(ctx context.Context, req PaymentRequest) (*Confirmation, error) {
	body, err := json.Marshal(payRequest{
		Amount:          money.Number(req.Amount),
		Currency:        req.Currency,
		Email:           req.Email,
		PayID:           req.PayID,
		MerchantTradeNo: req.Reference,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment request: %w", err)
	}

	conf, err := c.do(ctx, "confirm", http.MethodPost, c.BaseURL+transactionsPath, body, req.Reference)
	if err != nil {
		return nil, err
	}
	if conf.Amount == 0 {
		conf.Amount = req.Amount
	}
	return conf, nil
}

// QueryPayment looks up a payment previously submitted under reference.
func (c *BinanceClient) QueryPayment(ctx context.Context, reference string) (*Confirmation, error) {
	endpoint := c.BaseURL + transactionsPath + "/" + url.PathEscape(reference)
	return c.do(ctx, "query", http.MethodGet, endpoint, nil, reference)
}

func (c *BinanceClient) do(ctx context.Context, operation, method, endpoint string, body []byte, reference string) (conf *Confirmation, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordGatewayCall(operation, outcome(conf, err), time.Since(start))
	}()

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway request: %w", err)
	}
	httpReq.Header.Set(apiKeyHeader, c.APIKey)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		c.Logger.Warn("gateway request failed", "operation", operation, "reference", reference, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, operation, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}

	var decoded payResponse
	decodeErr := json.Unmarshal(raw, &decoded)

	switch {
	case resp.StatusCode >= http.StatusInternalServerError,
		resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusRequestTimeout:
		c.Logger.Warn("gateway returned an error status", "operation", operation, "reference", reference, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		reason := decoded.ErrorMessage
		if decodeErr != nil || reason == "" {
			reason = strings.TrimSpace(string(truncate(raw, maxErrorBody)))
		}
		if reason == "" {
			reason = http.StatusText(resp.StatusCode)
		}
		return nil, &RejectedError{Code: decoded.Code, Reason: reason}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("%w: undecodable response: %v", ErrUnavailable, decodeErr)
	}
	return decoded.confirmation(reference)
}

func (r *payResponse) confirmation(reference string) (*Confirmation, error) {
	status := r.Status
	id := r.TransactionID
	amount := r.Amount.Minor
	if r.Data != nil {
		if r.Data.Status != "" {
			status = r.Data.Status
		}
		if id == "" {
			id = r.Data.TransactionID
		}
		if amount == 0 {
			amount = r.Data.Amount.Minor
		}
	}

	switch strings.ToUpper(status) {
	case "SUCCESS", "PAID", "COMPLETED":
		if id == "" {
			// Our reference is unique per deposit, so it is a stable confirmation id.
			id = reference
		}
		return &Confirmation{ID: id, Reference: reference, Status: StatusConfirmed, Amount: amount}, nil
	case "PENDING", "PROCESSING", "INITIAL":
		return &Confirmation{Reference: reference, Status: StatusPending, Amount: amount}, nil
	case "":
		return nil, fmt.Errorf("%w: response carried no status", ErrUnavailable)
	}

	reason := r.ErrorMessage
	if reason == "" {
		reason = "status " + status
	}
	return nil, &RejectedError{Code: r.Code, Reason: reason}
}

func outcome(conf *Confirmation, err error) string {
	switch {
	case errors.Is(err, ErrRejected):
		return "declined"
	case err != nil:
		return "unavailable"
	case conf.Status == StatusPending:
		return "pending"
	}
	return "confirmed"
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
