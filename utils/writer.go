package utils

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"contract-extractor/render"
)

type YAMLWriter struct {
	indent int
}

func NewYAMLWriter() *YAMLWriter {
	return &YAMLWriter{
		indent: 2,
	}
}

// WriteView writes a rendered view to filename, keeping section and row order.
func (w *YAMLWriter) WriteView(view render.View, source, filename string) error {
	if err := EnsureDirectory(filepath.Dir(filename)); err != nil {
		return err
	}

	content, err := w.FormatView(view, source)
	if err != nil {
		return err
	}

	return w.writeToFile(filename, content)
}

func (w *YAMLWriter) FormatView(view render.View, source string) ([]byte, error) {
	root := mappingNode()
	addScalar(root, "source", source)
	addScalar(root, "generated", time.Now().Format(time.RFC3339))

	if view.IsError() {
		addScalar(root, "error", view.Err)
	} else {
		contracts := &yaml.Node{Kind: yaml.SequenceNode}
		for _, section := range view.Sections {
			fields := mappingNode()
			for _, row := range section.Rows {
				addScalar(fields, row.Label, row.Value)
			}
			entry := mappingNode()
			addScalar(entry, "title", section.Title)
			entry.Content = append(entry.Content, scalarNode("fields"), fields)
			contracts.Content = append(contracts.Content, entry)
		}
		root.Content = append(root.Content, scalarNode("contracts"), contracts)
	}

	var buf bytes.Buffer
	buf.WriteString("# Contract Extraction Results\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(w.indent)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, fmt.Errorf("failed to encode results: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode results: %w", err)
	}

	return buf.Bytes(), nil
}

// SaveStream copies r into a timestamped file under outputDir and returns its path.
func (w *YAMLWriter) SaveStream(outputDir, baseName, extension string, r io.Reader) (string, error) {
	if err := EnsureDirectory(outputDir); err != nil {
		return "", err
	}

	filename := filepath.Join(outputDir, GenerateOutputFilename(baseName, extension))
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("cannot create %s: %w", filename, err)
	}

	if err := copyAndClose(file, filename, r); err != nil {
		return "", err
	}
	return filename, nil
}

func (w *YAMLWriter) writeToFile(filename string, content []byte) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", filename, err)
	}

	return copyAndClose(file, filename, bytes.NewReader(content))
}

// copyAndClose copies r into dst and closes it. A failed close means the
// data may not have reached disk and is reported like a failed write.
func copyAndClose(dst io.WriteCloser, filename string, r io.Reader) error {
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		return fmt.Errorf("cannot write %s: %w", filename, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("cannot close %s: %w", filename, err)
	}
	return nil
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func addScalar(m *yaml.Node, key, value string) {
	m.Content = append(m.Content, scalarNode(key), scalarNode(value))
}
