package solution

import (
	"archive/zip"
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/branding"
)

// Package file names.
const (
	SolutionFile       = "solution.xml"
	CustomizationsFile = "customizations.xml"
	ContentTypesFile   = "[Content_Types].xml"
)

//go:embed templates
var templateFS embed.FS

// zipTime is stamped on every entry so identical metadata yields identical
// archive bytes.
var zipTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

var solutionTmpl = template.Must(
	template.New("solution.xml.tmpl").
		Funcs(template.FuncMap{"xml": XMLEscape}).
		ParseFS(templateFS, "templates/solution.xml.tmpl"),
)

// File is one named document inside a solution package.
type File struct {
	Name    string
	Content string
}

// Package is a generated solution: its documents and their zipped form.
type Package struct {
	Metadata Metadata
	Files    []File
	Zip      []byte
}

// File returns the content of the named document.
func (p *Package) File(name string) (string, bool) {
	for _, f := range p.Files {
		if f.Name == name {
			return f.Content, true
		}
	}
	return "", false
}

// XMLEscape replaces the five XML special characters with entities.
func XMLEscape(s string) string {
	return xmlReplacer.Replace(s)
}

// Build normalizes meta and generates the solution package.
func Build(meta Metadata) (*Package, error) {
	meta = meta.Normalize()

	solutionXML, err := SolutionXML(meta)
	if err != nil {
		return nil, err
	}
	customizationsXML, err := CustomizationsXML()
	if err != nil {
		return nil, err
	}
	contentTypesXML, err := ContentTypesXML()
	if err != nil {
		return nil, err
	}

	files := []File{
		{Name: SolutionFile, Content: solutionXML},
		{Name: CustomizationsFile, Content: customizationsXML},
		{Name: ContentTypesFile, Content: contentTypesXML},
	}

	data, err := zipFiles(files)
	if err != nil {
		return nil, err
	}

	return &Package{Metadata: meta, Files: files, Zip: data}, nil
}

// SolutionXML renders solution.xml for already-normalized metadata.
func SolutionXML(meta Metadata) (string, error) {
	data := struct {
		Metadata
		GeneratedBy string
	}{meta, branding.CLIName()}

	var buf bytes.Buffer
	if err := solutionTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", SolutionFile, err)
	}
	return buf.String(), nil
}

// CustomizationsXML returns the fixed, empty customizations.xml.
func CustomizationsXML() (string, error) {
	return readTemplate("templates/customizations.xml")
}

// ContentTypesXML returns the fixed [Content_Types].xml declaring only xml.
func ContentTypesXML() (string, error) {
	return readTemplate("templates/content_types.xml")
}

func readTemplate(name string) (string, error) {
	data, err := templateFS.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}

// zipFiles deflates files into a zip archive in the given order.
func zipFiles(files []File) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: zipTime,
		})
		if err != nil {
			return nil, fmt.Errorf("adding %s to solution zip: %w", f.Name, err)
		}
		if _, err := w.Write([]byte(f.Content)); err != nil {
			return nil, fmt.Errorf("writing %s to solution zip: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing solution zip: %w", err)
	}
	return buf.Bytes(), nil
}
