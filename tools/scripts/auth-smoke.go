// Package main provides a CI-friendly HTTP smoke test for the authd auth flow.
//
// It validates:
//   - database connectivity probe
//   - register -> 201 with public user projection
//   - duplicate register -> 400
//   - login with wrong password -> 400
//   - login -> 200 with accessToken
//   - GET /api/me with bearer token -> 200, matching the registered user
//   - GET /api/me without a token -> 401
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const maxReadBytes = 1 << 20 // 1MiB

type userProjection struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func main() {
	var (
		baseURL  = flag.String("base", "http://127.0.0.1:8080", "Server base URL")
		email    = flag.String("email", "", "Account email (default: generated per run)")
		password = flag.String("password", "smoke-pass-1", "Account password (min 6 chars)")
		name     = flag.String("name", "Smoke Tester", "Account display name")
		timeout  = flag.Duration("timeout", 7*time.Second, "Per-step timeout")
		verbose  = flag.Bool("v", false, "Verbose output")
	)
	flag.Parse()

	if err := validateBaseURL(*baseURL); err != nil {
		fatalf("invalid -base: %v", err)
	}
	if len(*password) < 6 {
		fatalf("invalid -password: must be at least 6 chars")
	}

	acct := *email
	if strings.TrimSpace(acct) == "" {
		acct = fmt.Sprintf("smoke-%d@example.com", time.Now().UnixNano())
	}

	root := context.Background()
	client := &http.Client{}

	mustProbe(root, client, *baseURL, *timeout)

	u := mustRegister(root, client, *baseURL, acct, *password, *name, *timeout)
	if *verbose {
		fmt.Printf("registered: id=%s email=%s role=%s\n", u.ID, u.Email, u.Role)
	}

	mustStatus(root, client, *baseURL, "/register", registerBody(acct, *password, *name), "", http.StatusBadRequest, *timeout)

	mustStatus(root, client, *baseURL, "/login", loginBody(acct, "wrong-"+*password), "", http.StatusBadRequest, *timeout)

	token := mustLogin(root, client, *baseURL, acct, *password, *timeout)
	if *verbose {
		fmt.Printf("logged in: token_len=%d\n", len(token))
	}

	me := mustMe(root, client, *baseURL, token, *timeout)
	if me.ID != u.ID || me.Email != acct {
		fatalf("identity mismatch: got id=%s email=%s want id=%s email=%s", me.ID, me.Email, u.ID, acct)
	}

	mustStatusGet(root, client, *baseURL, "/api/me", "", http.StatusUnauthorized, *timeout)

	fmt.Printf("OK: id=%s email=%s role=%s\n", u.ID, acct, u.Role)
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	if strings.TrimSpace(u.Host) == "" {
		return errors.New("missing host")
	}
	return nil
}

func registerBody(email, password, name string) []byte {
	b, _ := json.Marshal(map[string]string{
		"email":           email,
		"password":        password,
		"confirmPassword": password,
		"name":            name,
	})
	return b
}

func loginBody(email, password string) []byte {
	b, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	return b
}

func doRequest(parent context.Context, client *http.Client, method, rawURL string, body []byte, bearer string, stepTimeout time.Duration) (int, []byte) {
	ctx, cancel := context.WithTimeout(parent, stepTimeout)
	defer cancel()

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, rd)
	if err != nil {
		fatalf("build request %s %s: %v", method, rawURL, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := client.Do(req)
	if err != nil {
		fatalf("%s %s: %v", method, rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReadBytes))
	if err != nil {
		fatalf("read body %s %s: %v", method, rawURL, err)
	}
	return resp.StatusCode, data
}

func mustProbe(parent context.Context, client *http.Client, base string, stepTimeout time.Duration) {
	status, body := doRequest(parent, client, http.MethodGet, base+"/", nil, "", stepTimeout)
	if status != http.StatusOK {
		fatalf("probe: status=%d body=%q", status, body)
	}
	if !strings.Contains(string(body), "Connected to the database") {
		fatalf("probe: unexpected body %q", body)
	}
}

func mustRegister(parent context.Context, client *http.Client, base, email, password, name string, stepTimeout time.Duration) userProjection {
	status, body := doRequest(parent, client, http.MethodPost, base+"/register", registerBody(email, password, name), "", stepTimeout)
	if status != http.StatusCreated {
		fatalf("register: status=%d body=%q", status, body)
	}

	var u userProjection
	if err := json.Unmarshal(body, &u); err != nil {
		fatalf("register: decode body: %v", err)
	}
	if u.ID == "" || u.Email != email || u.Role == "" {
		fatalf("register: incomplete projection: %+v", u)
	}

	var raw map[string]any
	_ = json.Unmarshal(body, &raw)
	for _, k := range []string{"password", "passwordHash", "password_hash"} {
		if _, ok := raw[k]; ok {
			fatalf("register: response leaks %q", k)
		}
	}
	return u
}

func mustLogin(parent context.Context, client *http.Client, base, email, password string, stepTimeout time.Duration) string {
	status, body := doRequest(parent, client, http.MethodPost, base+"/login", loginBody(email, password), "", stepTimeout)
	if status != http.StatusOK {
		fatalf("login: status=%d body=%q", status, body)
	}

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		fatalf("login: decode body: %v", err)
	}
	if strings.TrimSpace(resp.AccessToken) == "" {
		fatalf("login: missing accessToken")
	}
	return resp.AccessToken
}

func mustMe(parent context.Context, client *http.Client, base, bearer string, stepTimeout time.Duration) userProjection {
	status, body := doRequest(parent, client, http.MethodGet, base+"/api/me", nil, bearer, stepTimeout)
	if status != http.StatusOK {
		fatalf("me: status=%d body=%q", status, body)
	}

	var u userProjection
	if err := json.Unmarshal(body, &u); err != nil {
		fatalf("me: decode body: %v", err)
	}
	return u
}

func mustStatus(parent context.Context, client *http.Client, base, path string, body []byte, bearer string, want int, stepTimeout time.Duration) {
	status, respBody := doRequest(parent, client, http.MethodPost, base+path, body, bearer, stepTimeout)
	if status != want {
		fatalf("%s: status=%d want=%d body=%q", path, status, want, respBody)
	}
}

func mustStatusGet(parent context.Context, client *http.Client, base, path, bearer string, want int, stepTimeout time.Duration) {
	status, respBody := doRequest(parent, client, http.MethodGet, base+path, nil, bearer, stepTimeout)
	if status != want {
		fatalf("%s: status=%d want=%d body=%q", path, status, want, respBody)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "FAIL: "+format+"\n", args...)
	os.Exit(1)
}
