// Package smoke loads declarative smoke test files: each case navigates to
// a URL and asserts the page title.
//
// A test file is a YAML document named *.spec.yaml or *.spec.yml:
//
//	tests:
//	  - name: page opens
//	    url: http://localhost:3000
//	    title: /Liquid Glass/i
package smoke

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Suffixes a file name must end with to be collected.
var Suffixes = []string{".spec.yaml", ".spec.yml"}

// Case is one smoke test: navigate to URL, then expect Title.
type Case struct {
	Name  string  `yaml:"name"`
	URL   string  `yaml:"url"`
	Title Pattern `yaml:"title"`

	// File is the test file path relative to the test directory.
	File string `yaml:"-"`
}

// FullTitle identifies the case in reports, e.g. "home.spec.yaml › page opens".
func (c Case) FullTitle() string {
	if c.File == "" {
		return c.Name
	}
	return c.File + " › " + c.Name
}

type testFile struct {
	Tests []Case `yaml:"tests"`
}

// Discover returns the test files under dir in lexical order.
// Hidden directories are skipped. A missing dir yields no files and no error.
func Discover(dir string) ([]string, error) {
	dir = filepath.Clean(dir)
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat test dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isTestFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}

func isTestFile(name string) bool {
	for _, suffix := range Suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// LoadFile parses the cases in one test file. name is recorded as each
// case's File.
func LoadFile(path, name string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var tf testFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for i := range tf.Tests {
		c := &tf.Tests[i]
		c.File = name
		switch {
		case c.Name == "":
			return nil, fmt.Errorf("%s: test #%d has no name", path, i+1)
		case c.URL == "":
			return nil, fmt.Errorf("%s: test %q has no url", path, c.Name)
		case c.Title.IsZero():
			return nil, fmt.Errorf("%s: test %q has no title expectation", path, c.Name)
		}
	}
	return tf.Tests, nil
}

// LoadDir discovers and loads every case under dir. Files are reported
// relative to dir with forward slashes.
func LoadDir(dir string) ([]Case, error) {
	files, err := Discover(dir)
	if err != nil {
		return nil, err
	}

	var cases []Case
	for _, path := range files {
		name, err := filepath.Rel(dir, path)
		if err != nil {
			name = path
		}
		fileCases, err := LoadFile(path, filepath.ToSlash(name))
		if err != nil {
			return nil, err
		}
		cases = append(cases, fileCases...)
	}
	return cases, nil
}

// Filter keeps cases whose FullTitle matches the grep expression.
// An empty expression keeps everything.
func Filter(cases []Case, grep string) ([]Case, error) {
	if grep == "" {
		return cases, nil
	}
	re, err := regexp.Compile(grep)
	if err != nil {
		return nil, fmt.Errorf("invalid grep %q: %w", grep, err)
	}

	var kept []Case
	for _, c := range cases {
		if re.MatchString(c.FullTitle()) {
			kept = append(kept, c)
		}
	}
	return kept, nil
}

// Files returns the distinct files cases came from, in first-seen order.
func Files(cases []Case) []string {
	seen := make(map[string]bool)
	var files []string
	for _, c := range cases {
		if !seen[c.File] {
			seen[c.File] = true
			files = append(files, c.File)
		}
	}
	return files
}
