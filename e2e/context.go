package e2e

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestContext carries one scenario's state: the actors it created, the last
// response, and a scenario-unique suffix that keeps topic names apart on a
// shared gateway.
type TestContext struct {
	BaseURL    string
	SigningKey string
	Issuer     string
	Audience   string
	Manager    string

	client     *http.Client
	actors     map[string]string
	suffix     string
	lastStatus int
	lastBody   map[string]any
}

func NewTestContext(baseURL, signingKey, issuer, audience, manager string) *TestContext {
	return &TestContext{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		SigningKey: signingKey,
		Issuer:     issuer,
		Audience:   audience,
		Manager:    strings.ToLower(manager),
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Reset prepares the context for a new scenario.
func (tc *TestContext) Reset() {
	tc.actors = map[string]string{"the manager": tc.Manager, "manager": tc.Manager}
	tc.suffix = randomHex(4)
	tc.lastStatus = 0
	tc.lastBody = nil
}

// Identity returns the address of a named actor, creating a fresh one on first use.
func (tc *TestContext) Identity(actor string) string {
	if addr, ok := tc.actors[actor]; ok {
		return addr
	}
	addr := "0x" + randomHex(20)
	tc.actors[actor] = addr
	return addr
}

// Topic scopes a feature-level topic name to this scenario.
func (tc *TestContext) Topic(name string) string {
	return name + " " + tc.suffix
}

func (tc *TestContext) TopicPath(name string) string {
	return "/topics/" + url.PathEscape(tc.Topic(name))
}

func (tc *TestContext) token(actor string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   tc.Identity(actor),
		Issuer:    tc.Issuer,
		Audience:  []string{tc.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(5 * time.Minute)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(tc.SigningKey))
}

// Do sends a request as actor; an empty actor sends it anonymously.
func (tc *TestContext) Do(ctx context.Context, actor, method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, tc.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		token, err := tc.token(actor)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.lastStatus = resp.StatusCode
	tc.lastBody = nil
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &tc.lastBody); err != nil {
			return fmt.Errorf("decode response %q: %w", string(raw), err)
		}
	}
	return nil
}

func (tc *TestContext) LastStatus() int { return tc.lastStatus }

func (tc *TestContext) Field(name string) (any, bool) {
	v, ok := tc.lastBody[name]
	return v, ok
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
