package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TokenPair holds the opaque OAuth tokens issued by the provider. Expiry is
// not tracked locally; refresh happens only when explicitly requested.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// EnphaseConfig carries the provider credentials. All fields are required
// for the integration to be constructed.
type EnphaseConfig struct {
	APIURL       string
	Email        string
	Password     string
	ClientID     string
	ClientSecret string
}

// EnphaseClient integrates with the Enphase solar-monitoring API: password
// and refresh token grants plus per-device telemetry summation. It is not
// part of the live dashboard data path.
type EnphaseClient struct {
	cfg    EnphaseConfig
	client HTTPDoer
	logger *zap.Logger
}

// NewEnphaseClient builds the provider client. Incomplete credentials yield
// a nil client, which callers treat as "integration disabled".
func NewEnphaseClient(cfg EnphaseConfig, client HTTPDoer, logger *zap.Logger) *EnphaseClient {
	if cfg.APIURL == "" || cfg.Email == "" || cfg.Password == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil
	}
	if client == nil {
		client = NewDefaultHTTPClient(30 * time.Second)
	}
	return &EnphaseClient{
		cfg:    EnphaseConfig{APIURL: strings.TrimRight(cfg.APIURL, "/"), Email: cfg.Email, Password: cfg.Password, ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret},
		client: client,
		logger: logger,
	}
}

// ObtainToken performs a password-grant token request.
func (c *EnphaseClient) ObtainToken(ctx context.Context) (*TokenPair, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("username", c.cfg.Email)
	form.Set("password", c.cfg.Password)

	pair, err := c.tokenRequest(ctx, form)
	if err != nil {
		c.logger.Error("enphase token request failed", zap.Error(err))
		return nil, err
	}
	return pair, nil
}

// RefreshToken exchanges a refresh token for a new pair.
func (c *EnphaseClient) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("refresh_token", refreshToken)

	pair, err := c.tokenRequest(ctx, form)
	if err != nil {
		c.logger.Error("enphase token refresh failed", zap.Error(err))
		return nil, err
	}
	return pair, nil
}

func (c *EnphaseClient) tokenRequest(ctx context.Context, form url.Values) (*TokenPair, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var pair TokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if pair.AccessToken == "" {
		return nil, errors.New("token response missing access_token")
	}
	return &pair, nil
}

// SumGeneration fetches the telemetry interval report of every device and
// accumulates the numeric enwh readings, returning the total in kWh. Any
// device failure degrades the whole call to 0.
func (c *EnphaseClient) SumGeneration(ctx context.Context, systemID string, deviceIDs []string, startDate, endDate, accessToken string) float64 {
	var totalWh float64
	for _, deviceID := range deviceIDs {
		wh, err := c.deviceGenerationWh(ctx, systemID, deviceID, startDate, endDate, accessToken)
		if err != nil {
			c.logger.Error("enphase telemetry fetch failed",
				zap.String("system_id", systemID),
				zap.String("device_id", deviceID),
				zap.Error(err))
			return 0
		}
		totalWh += wh
	}
	return totalWh / 1000
}

func (c *EnphaseClient) deviceGenerationWh(ctx context.Context, systemID, deviceID, startDate, endDate, accessToken string) (float64, error) {
	endpoint := fmt.Sprintf(
		"%s/api/v4/systems/%s/devices/micros/%s/telemetry?start_date=%s&end_date=%s&granularity=day&enwh=1&powr=1",
		c.cfg.APIURL,
		url.PathEscape(systemID),
		url.PathEscape(deviceID),
		url.QueryEscape(startDate),
		url.QueryEscape(endDate),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var report struct {
		Intervals []map[string]json.RawMessage `json:"intervals"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return 0, fmt.Errorf("decode telemetry response: %w", err)
	}

	var totalWh float64
	for _, interval := range report.Intervals {
		raw, ok := interval["enwh"]
		if !ok {
			continue
		}
		var value float64
		// Non-numeric readings are skipped, not fatal.
		if err := json.Unmarshal(raw, &value); err != nil {
			continue
		}
		totalWh += value
	}
	return totalWh, nil
}
