// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
)

type Id int

const (
	BuildToolNotFoundId Id = iota + 1
	BuildToolFailedId
	InvalidExcludePatternId
	InvalidCoordinatesId
	DescriptorWriteFailedId
	DirectoryListFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the issue markdown with the given glamour style
// ("dark", "light", "notty", or a path to a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	buildToolNotFoundIssue = &Issue{
		id: BuildToolNotFoundId,
		mdMsg: `
# Build tool not found!

mvnagg generated the aggregator POM but could not start the build tool.

## Things you can try:
- Make sure Maven is installed and on your PATH:
~~~
$ mvn --version
~~~
- Point mvnagg at a wrapper or an explicit binary:
~~~
$ mvnagg --tool ./mvnw
$ mvnagg --tool '$MAVEN_HOME/bin/mvn -B'
~~~
- Or set it once in mvnagg.cue:
~~~cue
build_tool: "./mvnw -B"
~~~
- Only generate the POM and run Maven yourself:
~~~
$ mvnagg --generate-only
$ mvn -f .pom.xml clean install
~~~`,
		extLinks: []HttpLink{"https://maven.apache.org/install.html"},
	}

	buildToolFailedIssue = &Issue{
		id: BuildToolFailedId,
		mdMsg: `
# The build failed!

The build tool exited with a non-zero status. Its output is shown above.

## Things you can try:
- Re-run a single module to narrow the failure down:
~~~
$ mvnagg -- -pl core clean install
~~~
- Keep the old behavior of always exiting 0:
~~~
$ mvnagg --ignore-exit-code
~~~`,
	}

	invalidExcludePatternIssue = &Issue{
		id: InvalidExcludePatternId,
		mdMsg: `
# Invalid exclude pattern!

Exclude patterns are Go regular expressions (RE2 syntax) matched against the
whole directory name.

## Examples:
~~~
$ mvnagg -x 'tmp.*' 'legacy-.*'
$ mvnagg -x '(docs|site)'
~~~

## Things you can try:
- Quote patterns so your shell does not expand them
- Escape literal dots: ` + "`" + `my\.module` + "`" + `
- Check the 'excludes' list in your mvnagg.cue`,
		docLinks: []HttpLink{"https://github.com/google/re2/wiki/Syntax"},
	}

	invalidCoordinatesIssue = &Issue{
		id: InvalidCoordinatesId,
		mdMsg: `
# Invalid POM coordinates!

The groupId, artifactId and version written into the aggregator POM must be
non-empty and must not contain control characters.

## Things you can try:
- Pass them explicitly:
~~~
$ mvnagg -g com.example -a my-build -pv 1.0.0-SNAPSHOT
~~~
- The default artifactId is derived from the current directory path. When
  running from the filesystem root, pass ` + "`" + `--artifactId` + "`" + `.`,
	}

	descriptorWriteFailedIssue = &Issue{
		id: DescriptorWriteFailedId,
		mdMsg: `
# Failed to write the aggregator POM!

## Things you can try:
- Check that the current directory is writable
- Write to a different file name:
~~~
$ mvnagg -f build-all.xml
~~~`,
	}

	directoryListFailedIssue = &Issue{
		id: DirectoryListFailedId,
		mdMsg: `
# Failed to scan the current directory!

mvnagg lists the current directory to find module subdirectories.

## Things you can try:
- Check the permissions of the current directory
- Run mvnagg from the root of your multi-module checkout`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the mvnagg configuration file.

## Things you can try:
- Check the configuration file syntax:
~~~
$ mvnagg config path
$ cue vet ~/.config/mvnagg/config.cue
~~~
- Recreate a default configuration:
~~~
$ mvnagg config init
~~~

## Example configuration:
~~~cue
group_id:    "com.example"
pom_version: "1.0.0-SNAPSHOT"
excludes: ["tmp.*", "docs"]
build_tool:  "mvn -B"
~~~`,
	}

	issues = map[Id]*Issue{
		buildToolNotFoundIssue.Id():     buildToolNotFoundIssue,
		buildToolFailedIssue.Id():       buildToolFailedIssue,
		invalidExcludePatternIssue.Id(): invalidExcludePatternIssue,
		invalidCoordinatesIssue.Id():    invalidCoordinatesIssue,
		descriptorWriteFailedIssue.Id(): descriptorWriteFailedIssue,
		directoryListFailedIssue.Id():   directoryListFailedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
	}
)

func Get(id Id) *Issue {
	return issues[id]
}
