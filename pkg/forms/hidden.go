package forms

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// FormNameField carries the schema name on every rendered form.
	FormNameField = "_form"
	// CSRFField carries the anti-forgery token.
	CSRFField = "_csrf"
)

// HiddenField is a hidden input emitted alongside the visible fields.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// MergeHiddenFields returns a copy of base with fields applied. Empty names are
// ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if field.Name == "" {
			continue
		}
		out[field.Name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields orders hidden fields by name for deterministic output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([]HiddenField, 0, len(names))
	for _, name := range names {
		out = append(out, HiddenField{Name: name, Value: fields[name]})
	}
	return out
}

var (
	ErrCSRFMissing = errors.New("forms: csrf token missing")
	ErrCSRFInvalid = errors.New("forms: csrf token invalid")
	ErrCSRFExpired = errors.New("forms: csrf token expired")
)

// CSRF issues and verifies stateless tokens of the form
// base64(nonce|unix|form).base64(hmac). Tokens are bound to a form name and
// expire after TTL.
type CSRF struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewCSRF builds a token issuer. An empty secret generates a random per
// process key, which invalidates tokens across restarts.
func NewCSRF(secret string, ttl time.Duration) (*CSRF, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("forms: generate csrf key: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &CSRF{key: key, ttl: ttl, now: time.Now}, nil
}

// Token issues a token for form.
func (c *CSRF) Token(form string) (string, error) {
	nonce := make([]byte, 12)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("forms: csrf nonce: %w", err)
	}
	payload := fmt.Sprintf("%s|%d|%s", base64.RawURLEncoding.EncodeToString(nonce), c.now().Unix(), form)
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return encoded + "." + c.sign(encoded), nil
}

// Verify checks token against form.
func (c *CSRF) Verify(form, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrCSRFMissing
	}
	encoded, signature, ok := strings.Cut(token, ".")
	if !ok || !hmac.Equal([]byte(signature), []byte(c.sign(encoded))) {
		return ErrCSRFInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return ErrCSRFInvalid
	}
	parts := strings.SplitN(string(raw), "|", 3)
	if len(parts) != 3 || parts[2] != form {
		return ErrCSRFInvalid
	}
	issued, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ErrCSRFInvalid
	}
	if c.now().Sub(time.Unix(issued, 0)) > c.ttl {
		return ErrCSRFExpired
	}
	return nil
}

// Fields returns the hidden fields every form carries: its name and a fresh
// token.
func (c *CSRF) Fields(form string) ([]HiddenField, error) {
	token, err := c.Token(form)
	if err != nil {
		return nil, err
	}
	return []HiddenField{Hidden(FormNameField, form), Hidden(CSRFField, token)}, nil
}

func (c *CSRF) sign(encoded string) string {
	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(encoded))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
