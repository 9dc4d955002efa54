// SPDX-License-Identifier: MPL-2.0

package pom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

const (
	// Namespace is the default namespace of a Maven 4.0.0 project.
	Namespace = "http://maven.apache.org/POM/4.0.0"
	// SchemaInstanceNamespace is the XML Schema instance namespace.
	SchemaInstanceNamespace = "http://www.w3.org/2001/XMLSchema-instance"
	// SchemaLocation maps Namespace to the published XSD.
	SchemaLocation = Namespace + " http://maven.apache.org/xsd/maven-4.0.0.xsd"

	// ModelVersion is the only POM model version Maven 3 understands.
	ModelVersion = "4.0.0"
	// MinimumMavenVersion is written to the prerequisites block.
	MinimumMavenVersion = "3.0.0"
	// Packaging marks the descriptor as an aggregator, not an artifact.
	Packaging = "pom"

	// FileMode is the permission used when writing the descriptor.
	FileMode = 0o644

	exclusionsPrefix = "exclusions: "
)

// ErrWriteDescriptor is wrapped by the error Write returns.
var ErrWriteDescriptor = errors.New("failed to write descriptor")

type (
	// Project is the root of the aggregator descriptor.
	Project struct {
		XMLName        xml.Name      `xml:"project"`
		Xmlns          string        `xml:"xmlns,attr"`
		XmlnsXSI       string        `xml:"xmlns:xsi,attr"`
		SchemaLocation string        `xml:"xsi:schemaLocation,attr"`
		ModelVersion   string        `xml:"modelVersion"`
		Prerequisites  Prerequisites `xml:"prerequisites"`
		Packaging      string        `xml:"packaging"`
		GroupID        string        `xml:"groupId"`
		ArtifactID     string        `xml:"artifactId"`
		Version        string        `xml:"version"`
		Modules        Modules       `xml:"modules"`
	}

	// Prerequisites holds the minimum build tool version.
	Prerequisites struct {
		Maven string `xml:"maven"`
	}

	// Modules lists the aggregated modules after a comment recording the
	// exclusion expression that produced the list.
	Modules struct {
		Comment string   `xml:",comment"`
		Module  []string `xml:"module"`
	}
)

// NewAggregator builds the descriptor for the given coordinates and modules.
// Modules keep the order they are given in. exclusionExpr is recorded in a
// comment inside the modules block.
func NewAggregator(coords Coordinates, modules []string, exclusionExpr string) (*Project, error) {
	if err := coords.Validate(); err != nil {
		return nil, err
	}
	for _, m := range modules {
		if err := validateText("module", m); err != nil {
			return nil, err
		}
	}
	if err := validateText("exclusion expression", exclusionExpr); err != nil {
		return nil, err
	}

	return &Project{
		Xmlns:          Namespace,
		XmlnsXSI:       SchemaInstanceNamespace,
		SchemaLocation: SchemaLocation,
		ModelVersion:   ModelVersion,
		Prerequisites:  Prerequisites{Maven: MinimumMavenVersion},
		Packaging:      Packaging,
		GroupID:        coords.GroupID,
		ArtifactID:     coords.ArtifactID,
		Version:        coords.Version,
		Modules: Modules{
			Comment: " " + commentSafe(exclusionsPrefix+exclusionExpr) + " ",
			Module:  append([]string(nil), modules...),
		},
	}, nil
}

// Render serializes the project as an indented XML document with a UTF-8
// declaration and a trailing newline.
func (p *Project) Render() ([]byte, error) {
	body, err := xml.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render descriptor: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(xml.Header) + len(body) + 1)
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Write replaces the content of path with data. The file is truncated, not
// appended to, and is not written atomically.
func Write(fsys afero.Fs, path string, data []byte) error {
	if err := afero.WriteFile(fsys, path, data, FileMode); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWriteDescriptor, path, err)
	}
	return nil
}

// commentSafe breaks up "--" runs, which XML forbids inside comments.
func commentSafe(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	return s
}
