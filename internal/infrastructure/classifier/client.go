package classifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"taskmatch/internal/parser"
)

// Client calls an external role-classification service over HTTP. It
// satisfies parser.RolePredictor; prediction failures degrade to "no
// prediction" so the keyword fallback can take over.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	Role       string  `json:"role"`
	Confidence float64 `json:"confidence"`
}

func NewClient(baseURL string, logger *log.Logger) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
		logger:  logger,
	}
}

func (c *Client) PredictRole(cleanedText string) (string, bool) {
	if c == nil || c.client == nil || strings.TrimSpace(cleanedText) == "" {
		return "", false
	}
	endpoint := c.baseURL + "/predict"

	b, err := json.Marshal(predictRequest{Text: cleanedText})
	if err != nil {
		return "", false
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.warn(fmt.Sprintf("endpoint=%s err=%v", endpoint, err))
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.warn(fmt.Sprintf("endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, strings.TrimSpace(string(rb))))
		return "", false
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.warn(fmt.Sprintf("endpoint=%s decode err=%v", endpoint, err))
		return "", false
	}

	role := strings.TrimSpace(out.Role)
	if role == "" {
		return "", false
	}
	return role, true
}

func (c *Client) warn(msg string) {
	if c.logger != nil {
		c.logger.Printf("[Classifier] PredictRole error %s", msg)
	}
}

var _ parser.RolePredictor = (*Client)(nil)
