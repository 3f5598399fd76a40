// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logscan

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Signature is a named pattern for a known fatal condition.
type Signature struct {
	Name    string
	Pattern *regexp.Regexp
}

// Signatures are the fatal conditions searched for, in report order.
var Signatures = []Signature{
	{Name: "kernel-panic", Pattern: regexp.MustCompile(`Kernel panic`)},
	{Name: "null-pointer", Pattern: regexp.MustCompile(`BUG: unable to handle kernel NULL pointer dereference`)},
	{Name: "hung-task", Pattern: regexp.MustCompile(`blocked for more than \d+ seconds`)},
	{Name: "no-root-device", Pattern: regexp.MustCompile(`VFS: (Cannot open root device|Unable to mount root fs)`)},
}

// Hit is a single line matching a signature.
type Hit struct {
	Signature string `json:"signature" yaml:"signature"`
	// Line is the 0-based line number within the scanned file.
	Line int    `json:"line" yaml:"line"`
	Text string `json:"text" yaml:"text"`
}

// Scanner matches log files against signatures.
type Scanner struct {
	fs         afero.Fs
	signatures []Signature
}

// NewScanner creates a scanner over fs. With no signatures, Signatures are used.
func NewScanner(fs afero.Fs, signatures ...Signature) *Scanner {
	if len(signatures) == 0 {
		signatures = Signatures
	}
	return &Scanner{fs: fs, signatures: signatures}
}

// Scan returns every hit in path, ordered by signature then line.
func (s *Scanner) Scan(path string) ([]Hit, error) {
	hits := make([]Hit, 0)
	for _, sig := range s.signatures {
		found, err := s.scanSignature(path, sig)
		if err != nil {
			return nil, err
		}
		slog.Debug("scanned log for signature",
			slog.String("signature", sig.Name),
			slog.Int("hits", len(found)))
		hits = append(hits, found...)
	}
	return hits, nil
}

func (s *Scanner) scanSignature(path string, sig Signature) ([]Hit, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var hits []Hit
	r := bufio.NewReader(f)
	for n := 0; ; n++ {
		raw, err := r.ReadBytes('\n')
		if len(raw) > 0 {
			line := DecodeLossy(trimEOL(raw))
			if sig.Pattern.MatchString(line) {
				hits = append(hits, Hit{Signature: sig.Name, Line: n, Text: line})
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	return hits, nil
}

func trimEOL(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}

// DecodeLossy decodes b as UTF-8, dropping bytes that are not valid UTF-8.
func DecodeLossy(b []byte) string {
	t := transform.Chain(
		unicode.UTF8.NewDecoder(),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError })),
	)
	out, _, err := transform.Bytes(t, b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "")
	}
	return string(out)
}

// NoHitsMarker is written when a report has no hits.
const NoHitsMarker = "No hits found."

// WriteReport writes a human-readable report of hits found in path.
func WriteReport(w io.Writer, path string, hits []Hit) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Error hits for %s\n", path)
	b.WriteString(strings.Repeat("=", 40) + "\n")

	if len(hits) == 0 {
		b.WriteString(NoHitsMarker + "\n")
	}
	for _, h := range hits {
		fmt.Fprintf(&b, "Line %d [%s]:\n%s\n\n", h.Line, h.Signature, h.Text)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
