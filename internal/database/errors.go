package database

import (
	"errors"
	"fmt"
	"net"
	"regexp"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver"
	"go.mongodb.org/mongo-driver/x/mongo/driver/auth"
)

// ErrorKind 是啟動連線失敗的分類
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindConfig
	KindAuth
	KindNetwork
	KindDNS
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindAuth:
		return "authentication"
	case KindNetwork:
		return "network"
	case KindDNS:
		return "dns"
	default:
		return "unknown"
	}
}

// Server error codes that mean the credentials were rejected.
const (
	codeAuthenticationFailed = 18
	codeAtlasBadAuth         = 8000
)

var (
	ErrMissingURI          = errors.New("connection URI is not set")
	ErrPasswordPlaceholder = errors.New("connection URI still contains a password placeholder")
)

var (
	placeholderPattern = regexp.MustCompile(`(?i)<[a-z_]*password>`)
	credentialPattern  = regexp.MustCompile(`:([^:@/]+)@`)
)

// ConnectError 是啟動時的致命連線錯誤
type ConnectError struct {
	Kind ErrorKind
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// Hints 回傳對應錯誤分類的排除建議
func Hints(kind ErrorKind) []string {
	switch kind {
	case KindConfig:
		return []string{
			"Set MONGODB_URI in the environment or in .env",
			"Replace <db_password> with your actual database password",
		}
	case KindAuth:
		return []string{
			"Check the username and password in the connection URI",
			"URL-encode special characters in the password",
			"Verify the database user exists and has the required permissions",
		}
	case KindNetwork:
		return []string{
			"Check your internet connection",
			"Verify the cluster is running and your IP is allowed to connect",
		}
	case KindDNS:
		return []string{
			"Check the cluster host in the connection URI",
			"The host should look like cluster0.xxxxx.mongodb.net",
		}
	default:
		return nil
	}
}

// ValidateURI 檢查連線字串存在且沒有未替換的密碼佔位符
func ValidateURI(uri string) error {
	if uri == "" {
		return &ConnectError{Kind: KindConfig, Err: ErrMissingURI}
	}
	if placeholderPattern.MatchString(uri) {
		return &ConnectError{Kind: KindConfig, Err: ErrPasswordPlaceholder}
	}
	return nil
}

// Classify maps a driver error to an ErrorKind using error types and server
// codes.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var ce *ConnectError
	if errors.As(err, &ce) {
		return ce.Kind
	}

	var authErr *auth.Error
	if errors.As(err, &authErr) {
		return KindAuth
	}
	var derr driver.Error
	if errors.As(err, &derr) && isAuthCode(int(derr.Code)) {
		return KindAuth
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && isAuthCode(int(cmdErr.Code)) {
		return KindAuth
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindDNS
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) || mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return KindNetwork
	}
	return KindUnknown
}

func isAuthCode(code int) bool {
	return code == codeAuthenticationFailed || code == codeAtlasBadAuth
}

// MaskURI hides the password part of a connection URI.
func MaskURI(uri string) string {
	return credentialPattern.ReplaceAllString(uri, ":****@")
}
