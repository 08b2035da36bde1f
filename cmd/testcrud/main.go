// testcrud 對執行中的服務依序呼叫 create / list / get / update / delete，並印出每個回應
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

const defaultBaseURL = "http://localhost:3000/api/users"

var (
	exitFunc           = os.Exit
	stdout   io.Writer = os.Stdout
)

type options struct {
	base    string
	extra   int
	seed    int64
	timeout time.Duration
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("testcrud", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.base, "base", defaultBaseURL, "users endpoint of the running service")
	fs.IntVar(&opts.extra, "extra", 0, "number of additional fake users to create first")
	fs.Int64Var(&opts.seed, "seed", 0, "seed for fake users (0 = random)")
	fs.DurationVar(&opts.timeout, "timeout", 10*time.Second, "per-request timeout")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.extra < 0 {
		return opts, fmt.Errorf("-extra must not be negative")
	}
	opts.base = strings.TrimRight(opts.base, "/")
	return opts, nil
}

// exercise 執行完整流程，回傳失敗的請求數
func exercise(ctx context.Context, c *client, opts options) int {
	w := c.out
	fmt.Fprintln(w, "Testing CRUD Operations")
	fmt.Fprintln(w)

	if opts.extra > 0 {
		fmt.Fprintf(w, "0. SEED: %d fake users\n", opts.extra)
		f := gofakeit.New(opts.seed)
		for i := 0; i < opts.extra; i++ {
			c.do(ctx, http.MethodPost, c.base, fakeUser(f, i))
		}
	}

	fmt.Fprintln(w, "1. CREATE Operations:")
	user1 := c.do(ctx, http.MethodPost, c.base, userPayload{Name: "John Doe", Email: "john@example.com", Age: intPtr(25)})
	user2 := c.do(ctx, http.MethodPost, c.base, userPayload{Name: "Jane Smith", Email: "jane@example.com", Age: intPtr(30)})

	fmt.Fprintln(w, "2. READ Operations:")
	fmt.Fprintln(w, "Getting all users:")
	c.do(ctx, http.MethodGet, c.base, nil)

	if id := user1.id(); id != "" {
		fmt.Fprintln(w, "Getting user by ID:")
		c.do(ctx, http.MethodGet, c.base+"/"+id, nil)

		fmt.Fprintln(w, "3. UPDATE Operations:")
		c.do(ctx, http.MethodPut, c.base+"/"+id, userPayload{Name: "John Updated", Age: intPtr(26)})
	}

	if id := user2.id(); id != "" {
		fmt.Fprintln(w, "4. DELETE Operations:")
		c.do(ctx, http.MethodDelete, c.base+"/"+id, nil)
	}

	fmt.Fprintln(w, "Final state - All users:")
	c.do(ctx, http.MethodGet, c.base, nil)

	return c.failures
}

func run(ctx context.Context, args []string, w io.Writer) int {
	opts, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(w, "invalid flags: %v\n", err)
		return 2
	}
	c := newClient(opts.base, &http.Client{Timeout: opts.timeout}, w)
	if failed := exercise(ctx, c, opts); failed > 0 {
		fmt.Fprintf(w, "%d request(s) failed\n", failed)
		return 1
	}
	return 0
}

func main() {
	if code := run(context.Background(), os.Args[1:], stdout); code != 0 {
		exitFunc(code)
	}
}
