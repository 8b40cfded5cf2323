package googlecalendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	calendarScope = "https://www.googleapis.com/auth/calendar"
	jwtGrantType  = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// Токен запрашивается заново за минуту до истечения
	tokenExpiryLeeway = time.Minute
)

// tokenSource выдает access token сервисного аккаунта по JWT-grant (RS256).
// Токен кэшируется до истечения срока, обновление потокобезопасно
type tokenSource struct {
	key        serviceAccountKey
	httpClient *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// newTokenSource читает JSON-ключ сервисного аккаунта и создает источник токенов
func newTokenSource(credentialsFile string, httpClient *http.Client) (*tokenSource, error) {
	raw, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read credentials file: %v", ErrAuth, err)
	}

	var key serviceAccountKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return nil, fmt.Errorf("%w: failed to parse credentials file: %v", ErrAuth, err)
	}

	if key.ClientEmail == "" || key.PrivateKey == "" {
		return nil, fmt.Errorf("%w: credentials file missing client_email or private_key", ErrAuth)
	}
	if key.TokenURI == "" {
		key.TokenURI = "https://oauth2.googleapis.com/token"
	}

	return &tokenSource{key: key, httpClient: httpClient}, nil
}

// Token возвращает действующий access token, при необходимости запрашивая новый
func (s *tokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.expiresAt.Add(-tokenExpiryLeeway)) {
		return s.token, nil
	}

	assertion, err := s.signAssertion()
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", jwtGrantType)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.key.TokenURI,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create token request: %v", ErrAuth, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token request failed: %v", ErrAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint returned status %d", ErrAuth, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("%w: failed to decode token response: %v", ErrAuth, err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("%w: token response contains no access_token", ErrAuth)
	}

	s.token = tr.AccessToken
	s.expiresAt = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)

	return s.token, nil
}

func (s *tokenSource) signAssertion() (string, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(s.key.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse private key: %v", ErrAuth, err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   s.key.ClientEmail,
		"scope": calendarScope,
		"aud":   s.key.TokenURI,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("%w: failed to sign JWT assertion: %v", ErrAuth, err)
	}

	return signed, nil
}
