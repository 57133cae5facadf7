package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=DecoyGenerator --dir=. --output=./mocks --filename=decoy_generator_mock.go --case=underscore --with-expecter
type DecoyGenerator interface {
	// Generate proposes a plausible safe URL for the given real destination.
	// Called at policy-authoring time only, never in the redirect path.
	Generate(ctx context.Context, realURL string) (string, error)
}

type decoyRequest struct {
	RealURL string `json:"realUrl"`
}

type decoyResponse struct {
	FakeURL string `json:"fakeUrl"`
}

type httpDecoyGenerator struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *logrus.Logger
}

func NewHTTPDecoyGenerator(endpoint, apiKey string, logger *logrus.Logger) DecoyGenerator {
	return &httpDecoyGenerator{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

func (g *httpDecoyGenerator) Generate(ctx context.Context, realURL string) (string, error) {
	payload, err := json.Marshal(decoyRequest{RealURL: realURL})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("decoy generator returned status %d", resp.StatusCode)
	}

	var decoded decoyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode decoy response: %w", err)
	}
	if decoded.FakeURL == "" {
		return "", fmt.Errorf("decoy generator returned empty url")
	}
	return decoded.FakeURL, nil
}
