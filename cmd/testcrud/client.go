package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"

	"github.com/brianvoe/gofakeit/v6"
)

const separator = "------------------------------------------------------------"

type userPayload struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Age   *int   `json:"age,omitempty"`
}

func intPtr(v int) *int { return &v }

// fakeUser 產生符合驗證規則的隨機使用者；email 只保留英數字並加上序號避免重複
func fakeUser(f *gofakeit.Faker, i int) userPayload {
	first, last := f.FirstName(), f.LastName()
	return userPayload{
		Name:  first + " " + last,
		Email: fmt.Sprintf("%s.%s%d@example.com", alnum(first), alnum(last), i),
		Age:   intPtr(f.Number(18, 90)),
	}
}

func alnum(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}

// response 是服務回應的信封
type response struct {
	Status int
	Body   map[string]any
}

func (r *response) id() string {
	if r == nil {
		return ""
	}
	data, ok := r.Body["data"].(map[string]any)
	if !ok {
		return ""
	}
	id, _ := data["_id"].(string)
	return id
}

type client struct {
	base     string
	http     *http.Client
	out      io.Writer
	failures int
}

func newClient(base string, hc *http.Client, out io.Writer) *client {
	return &client{base: base, http: hc, out: out}
}

// do 送出請求並印出 method、URL、status 與排版後的 JSON。
// 傳輸或解碼失敗時印出錯誤、計入 failures 並回傳 nil。
func (c *client) do(ctx context.Context, method, url string, payload any) *response {
	res, err := c.send(ctx, method, url, payload)
	if err != nil {
		c.failures++
		fmt.Fprintf(c.out, "Request failed: %v\n", err)
		return nil
	}
	pretty, _ := json.MarshalIndent(res.Body, "", "  ")
	fmt.Fprintf(c.out, "%s %s\n", method, url)
	fmt.Fprintf(c.out, "Status: %d\n", res.Status)
	fmt.Fprintf(c.out, "Response: %s\n", pretty)
	fmt.Fprintln(c.out, separator)
	return res
}

func (c *client) send(ctx context.Context, method, url string, payload any) (*response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out := &response{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&out.Body); err != nil {
		return nil, fmt.Errorf("%s %s: decode response (status %d): %w", method, url, resp.StatusCode, err)
	}
	return out, nil
}
