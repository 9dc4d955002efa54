// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// mvnagg configuration file\n")
	sb.WriteString("// Unset fields keep their built-in defaults.\n\n")

	sb.WriteString(fmt.Sprintf("group_id: %q\n", cfg.GroupID))
	sb.WriteString(fmt.Sprintf("pom_version: %q\n", cfg.PomVersion))
	sb.WriteString(fmt.Sprintf("file: %q\n", cfg.File))
	sb.WriteString(fmt.Sprintf("build_tool: %q\n", cfg.BuildTool))
	sb.WriteString(fmt.Sprintf("propagate_exit_code: %v\n", cfg.PropagateExitCode))

	sb.WriteString("\nexcludes: [")
	for i, p := range cfg.Excludes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%q", string(p)))
	}
	sb.WriteString("]\n")

	sb.WriteString("default_goals: [")
	for i, g := range cfg.DefaultGoals {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%q", g))
	}
	sb.WriteString("]\n")

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString(fmt.Sprintf("\techo: %v\n", cfg.UI.Echo))
	sb.WriteString("}\n")

	return sb.String()
}

// GenerateTOML renders the configuration as TOML, for tools that do not read CUE.
func GenerateTOML(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config as TOML: %w", err)
	}
	return string(data), nil
}
