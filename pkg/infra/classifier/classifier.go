package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/linkveil/cloakgate/pkg/common"
	"github.com/linkveil/cloakgate/pkg/infra/fingerprint"
)

// Verdict is the classifier's advisory answer for one visitor.
type Verdict struct {
	Block  bool   `json:"block"`
	Reason string `json:"reason,omitempty"`
}

//go:generate mockery --name=Classifier --dir=. --output=./mocks --filename=classifier_mock.go --case=underscore --with-expecter
type Classifier interface {
	Classify(ctx context.Context, visitor *fingerprint.Visitor) (Verdict, error)
}

type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type request struct {
	IP        string `json:"ip"`
	UserAgent string `json:"userAgent"`
	Country   string `json:"country"`
	Referer   string `json:"referer,omitempty"`
	Device    string `json:"device,omitempty"`
	Browser   string `json:"browser,omitempty"`
}

type httpClassifier struct {
	config  Config
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

func NewHTTPClassifier(config Config, logger *logrus.Logger) Classifier {
	if config.Timeout == 0 {
		config.Timeout = common.ClassifierTimeout
	}
	settings := gobreaker.Settings{
		Name:        "classifier",
		MaxRequests: 5,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &httpClassifier{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

func (c *httpClassifier) Classify(ctx context.Context, visitor *fingerprint.Visitor) (Verdict, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doClassify(ctx, visitor)
	})
	if err != nil {
		return Verdict{}, err
	}
	verdict, ok := result.(Verdict)
	if !ok {
		return Verdict{}, fmt.Errorf("unexpected classifier result type %T", result)
	}
	return verdict, nil
}

func (c *httpClassifier) doClassify(ctx context.Context, visitor *fingerprint.Visitor) (Verdict, error) {
	uaInfo := visitor.UserAgentInfo()
	payload, err := json.Marshal(request{
		IP:        visitor.IP,
		UserAgent: visitor.UserAgent,
		Country:   visitor.Country,
		Referer:   visitor.Referer,
		Device:    uaInfo.Device,
		Browser:   uaInfo.Browser,
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to marshal classifier request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return Verdict{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Verdict{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Verdict{}, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var verdict Verdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return Verdict{}, fmt.Errorf("failed to decode classifier response: %w", err)
	}
	return verdict, nil
}
