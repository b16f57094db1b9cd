package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/getreqd/reqd/pkg/runner"
	"github.com/go-resty/resty/v2"
	"github.com/ohler55/ojg/oj"
	"github.com/ohler55/ojg/pretty"
	"github.com/spf13/cobra"
)

// sendFlagVals is the package-level instance bound to cobra flags.
var sendFlagVals sendFlags

type sendFlags struct {
	method    string
	url       string
	headers   []string
	data      string
	workspace string
	timeout   int
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Execute a one-shot request through a running reqd server",
	Long: `Submit a request draft to a running server's /execute endpoint and print
the classified response. Substitution of {{variable}} placeholders happens
on the server with the workspace named by --workspace, so encrypted values
never leave the server except inside the outbound call itself.`,
	Example: `  # Plain GET
  reqd send --url https://api.example.com/health

  # POST with headers and body, substituting workspace variables
  reqd send -X POST --url 'https://{{host}}/login' \
    -H 'Content-Type: application/json' \
    --data '{"user":"{{user}}"}' \
    --workspace ws_abc123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSend(&sendFlagVals)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	f := &sendFlagVals

	sendCmd.Flags().StringVarP(&f.method, "request", "X", "GET", "HTTP method")
	sendCmd.Flags().StringVar(&f.url, "url", "", "Request URL (may contain {{variable}} placeholders)")
	sendCmd.Flags().StringArrayVarP(&f.headers, "header", "H", nil, "Request header as 'Name: value' (repeatable)")
	sendCmd.Flags().StringVarP(&f.data, "data", "d", "", "Request body")
	sendCmd.Flags().StringVarP(&f.workspace, "workspace", "w", "", "Workspace ID for variable substitution")
	sendCmd.Flags().IntVar(&f.timeout, "timeout", 60, "Seconds to wait for the server's response")

	_ = sendCmd.MarkFlagRequired("url")
}

func runSend(f *sendFlags) error {
	headers, err := parseHeaderFlags(f.headers)
	if err != nil {
		return err
	}

	draft := runner.Request{
		Method:      f.method,
		URL:         f.url,
		Headers:     headers,
		Body:        f.data,
		WorkspaceID: f.workspace,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(f.timeout)*time.Second)
	defer cancel()

	client := resty.New().SetBaseURL(serverURL)
	var result runner.Response
	resp, err := client.R().
		SetContext(ctx).
		SetBody(draft).
		SetResult(&result).
		Post("/execute")
	if err != nil {
		return fmt.Errorf("failed to reach server at %s: %w", serverURL, err)
	}
	if resp.IsError() {
		return fmt.Errorf("server returned %s: %s", resp.Status(), strings.TrimSpace(string(resp.Body())))
	}

	if jsonOutput {
		fmt.Println(oj.JSON(&result))
		return nil
	}
	printResponse(&result)
	return nil
}

// parseHeaderFlags turns repeated 'Name: value' flags into a header map.
func parseHeaderFlags(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q: expected 'Name: value'", h)
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}

// printResponse renders the classified response for human consumption.
// JSON bodies get pretty-printed; binary bodies are summarized rather than
// dumped to the terminal.
func printResponse(r *runner.Response) {
	fmt.Printf("%d %s  (%d ms, %d bytes)\n", r.Status, r.StatusText, r.ElapsedMs, r.SizeBytes)
	if r.ContentType != "" {
		fmt.Printf("Content-Type: %s\n", r.ContentType)
	}
	fmt.Println()

	switch {
	case r.Encoding == runner.EncodingBase64:
		fmt.Printf("[%s body, %d bytes, base64-encoded; use --json to capture it]\n", r.BodyType, r.SizeBytes)
	case r.BodyType == runner.BodyJSON:
		fmt.Println(pretty.JSON(r.Body, 80.3))
	default:
		if s, ok := r.Body.(string); ok {
			fmt.Println(s)
		}
	}
}
