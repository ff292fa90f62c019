package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/cellvision/trainctl/internal/errors"
)

// Load reads a configuration document from path, parses it, validates it,
// and normalizes all path fields to absolute form. The format is chosen by
// extension: .json (the native format) or .toml. Load is all-or-nothing: on
// any error no document is returned.
//
// Loading performs the single read of the source file and nothing else; it
// never touches the network and never checks that the referenced dataset
// files exist, since those are resolved by the external framework.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	doc, err := Parse(data, filepath.Ext(path))
	if err != nil {
		attachFile(err, path)
		return nil, err
	}

	// Name defaults to the file name without extension
	if doc.Name == "" {
		base := filepath.Base(path)
		doc.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if err := doc.normalizePaths(path); err != nil {
		attachFile(err, path)
		return nil, err
	}

	if err := doc.validate(); err != nil {
		attachFile(err, path)
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	doc.path = abs

	return doc, nil
}

// Parse decodes a document from raw bytes without path normalization or
// validation. ext selects the format (".json" or ".toml"); an empty ext
// defaults to JSON.
func Parse(data []byte, ext string) (*Document, error) {
	doc := &Document{}
	switch strings.ToLower(ext) {
	case "", ".json":
		// Unknown keys are tolerated for forward compatibility.
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, errors.NewParseError("", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, doc); err != nil {
			return nil, errors.NewParseError("", err)
		}
	default:
		return nil, errors.Validationf("format", "unsupported config format %q (expected .json or .toml)", ext)
	}
	return doc, nil
}

// attachFile fills in the file name on taxonomy errors so the user message
// identifies both the offending field and the file.
func attachFile(err error, path string) {
	var pe *errors.ParseError
	if errors.As(err, &pe) && pe.File == "" {
		pe.File = path
	}
	var ve *errors.ValidationError
	if errors.As(err, &ve) && ve.File == "" {
		ve.File = path
	}
}

// normalizePaths resolves every path field to absolute form: the workspace
// against the config file's directory, all dataset paths against the
// workspace. Empty optional paths stay empty.
func (d *Document) normalizePaths(configPath string) error {
	configDir, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return fmt.Errorf("resolve config directory: %w", err)
	}

	if strings.TrimSpace(d.Workspace) == "" {
		return errors.NewValidationError("workspace", "workspace path is required")
	}
	if !filepath.IsAbs(d.Workspace) {
		d.Workspace = filepath.Join(configDir, d.Workspace)
	}
	d.Workspace = filepath.Clean(d.Workspace)

	resolve := func(field string, p *string) error {
		if *p == "" {
			return nil
		}
		if strings.TrimSpace(*p) == "" {
			return errors.Validationf(field, "path is blank")
		}
		if !filepath.IsAbs(*p) {
			*p = filepath.Join(d.Workspace, *p)
		}
		*p = filepath.Clean(*p)
		return nil
	}

	ds := &d.Dataset
	for _, f := range []struct {
		field string
		p     *string
	}{
		{"dataset.label_matrix_file", &ds.LabelMatrixFile},
		{"dataset.label_row_index_file", &ds.LabelRowIndexFile},
		{"dataset.label_col_index_file", &ds.LabelColIndexFile},
		{"dataset.data_directory_path", &ds.DataDirectoryPath},
		{"dataset.train.sample_index_file", &ds.Train.SampleIndexFile},
		{"dataset.val.sample_index_file", &ds.Val.SampleIndexFile},
		{"dataset.test.sample_index_file", &ds.Test.SampleIndexFile},
	} {
		if err := resolve(f.field, f.p); err != nil {
			return err
		}
	}

	return nil
}
