package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// FillInitOptionsInteractive prompts the user to confirm or override defaults.
// An empty answer keeps the current value.
func FillInitOptionsInteractive(in io.Reader, out io.Writer, opts *InitOptions) {
	reader := bufio.NewReader(in)

	ask := func(question string, value *string) {
		fmt.Fprintf(out, "%s [%s]: ", question, *value)
		if s, _ := reader.ReadString('\n'); strings.TrimSpace(s) != "" {
			*value = strings.TrimSpace(s)
		}
	}

	ask("Assets directory", &opts.AssetsDir)
	ask("Global directory", &opts.GlobalDir)
	ask("Default file", &opts.DefaultFile)
	ask("Naming convention (assert-act-arrange, simple, qualified, exact)", &opts.Naming)
}
