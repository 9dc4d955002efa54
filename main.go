// SPDX-License-Identifier: MPL-2.0

package main

import cmd "mvnagg/cmd/mvnagg"

func main() {
	cmd.Execute()
}
