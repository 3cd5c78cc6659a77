package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	raw     bool
)

func main() {
	root := &cobra.Command{
		Use:           "content-test",
		Short:         "Smoke tests for a running content generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:7860", "Base URL of the server")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "HTTP client timeout")
	root.PersistentFlags().BoolVar(&raw, "raw", false, "Print reports as raw markdown")

	root.AddCommand(
		simpleCmd("health", "Check /health, /live and /ready", (*TestClient).testHealth),
		simpleCmd("status", "Run the API connection test", (*TestClient).testStatus),
		simpleCmd("options", "List languages, brand voices and examples", (*TestClient).testOptions),
		simpleCmd("validation", "Send an invalid request and expect 422", (*TestClient).testValidation),
		newGenerateCmd(),
		newAllCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClient() *TestClient {
	return NewTestClient(baseURL, timeout, os.Stdout, raw)
}

func simpleCmd(use, short string, fn func(*TestClient) bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if !fn(newClient()) {
				return fmt.Errorf("%s test failed", use)
			}
			return nil
		},
	}
}

func newGenerateCmd() *cobra.Command {
	var (
		example int
		stream  bool
		fields  = map[string]*string{}
	)
	c := &cobra.Command{
		Use:   "generate",
		Short: "Generate content from an example or from flags",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			tc := newClient()
			request, err := tc.example(example)
			if err != nil {
				return err
			}
			for name, value := range fields {
				if c.Flags().Changed(name) {
					request[flagField(name)] = *value
				}
			}

			run := tc.testGenerate
			if stream {
				run = tc.testGenerateStream
			}
			if !run(request) {
				return fmt.Errorf("generate test failed")
			}
			return nil
		},
	}
	c.Flags().IntVarP(&example, "example", "e", 0, "Quick-start example to start from")
	c.Flags().BoolVarP(&stream, "stream", "s", false, "Use the SSE endpoint and show progress")
	for _, name := range []string{"language", "topic", "primary-goal", "target-audience", "brand-voice", "key-message", "additional-info"} {
		fields[name] = c.Flags().String(name, "", "Override the "+name+" field")
	}
	return c
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run every smoke test",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			tc := newClient()
			tc.printHeader("Content Generator - Test Suite")
			fmt.Fprintf(tc.out, "%sBase URL: %s%s\n\n", colorCyan, tc.baseURL, colorReset)

			tests := []struct {
				name string
				fn   func() bool
			}{
				{"Health", tc.testHealth},
				{"Status", tc.testStatus},
				{"Options", tc.testOptions},
				{"Validation", tc.testValidation},
				{"Generation", func() bool {
					request, err := tc.example(0)
					if err != nil {
						tc.printError(err.Error())
						return false
					}
					return tc.testGenerate(request)
				}},
			}

			passed, failed := 0, 0
			for _, test := range tests {
				if test.fn() {
					passed++
				} else {
					failed++
				}
				fmt.Fprintln(tc.out)
			}

			tc.printHeader("Test Summary")
			fmt.Fprintf(tc.out, "%sPassed: %d%s\n", colorGreen, passed, colorReset)
			fmt.Fprintf(tc.out, "%sFailed: %d%s\n", colorRed, failed, colorReset)
			fmt.Fprintf(tc.out, "Total: %d\n", passed+failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d tests failed", failed, passed+failed)
			}
			return nil
		},
	}
}

// flagField maps a flag name such as primary-goal to its JSON field.
func flagField(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
