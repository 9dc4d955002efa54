// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"
)

// renderModules prints the discovered modules, one per line.
func renderModules(w io.Writer, modules []string) {
	fmt.Fprintln(w, TitleStyle.Render("## Modules found:"))
	if len(modules) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("(none)"))
		return
	}
	for _, m := range modules {
		fmt.Fprintln(w, "  "+CmdStyle.Render(m))
	}
}

// renderDescriptor prints the file name and the exact descriptor content
// between code fences.
func renderDescriptor(w io.Writer, file string, data []byte) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("## Generated pom xml file: %s ##", file)))
	fmt.Fprintln(w, "```")
	content := string(data)
	fmt.Fprint(w, content)
	if !strings.HasSuffix(content, "\n") {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "```")
}

// renderCommandLine prints the build tool invocation before it starts.
func renderCommandLine(w io.Writer, command []string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, CmdStyle.Render(strings.Join(command, " ")))
}
