// This file is part of kdump.
//
// kdump is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// kdump is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with kdump.  If not, see <https://www.gnu.org/licenses/>.

package fileloader

import (
	"bytes"
	"compress/gzip"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/jetsetilly/kdump/curated"
	"github.com/jetsetilly/kdump/cursor"
	"github.com/jetsetilly/kdump/ko"
	"github.com/jetsetilly/kdump/ksm"
	"github.com/jetsetilly/kdump/logger"
)

// UnrecognizedFileType is the pattern for data that is neither a
// machine-code file nor an object file.
const UnrecognizedFileType = "unrecognised file type"

// FileType is the type of a loaded file.
type FileType int

// List of valid FileType values.
const (
	Unknown FileType = iota
	KSM
	KO
)

func (t FileType) String() string {
	switch t {
	case KSM:
		return "KSM"
	case KO:
		return "KO"
	}
	return "unknown"
}

// first bytes of a gzip stream using the deflate method and with no header
// flags set
var gzipMagic = []byte{0x1f, 0x8b, 0x08, 0x00}

// Loader specifies the file to dump.
type Loader struct {
	// filename of file to load
	Filename string

	// the file type suggested by the file extension. the actual file type is
	// decided by the file contents and a mismatch is logged but not an error
	Hint FileType

	// expected hash of the loaded file. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data
	//
	// the hash is of the file as it exists on disk and not of the
	// decompressed data
	Hash string

	// copy of the loaded data. for machine-code files this is the
	// decompressed data
	Data []byte

	// the type of the loaded data
	Type FileType
}

// NewLoader is the preferred method of initialisation for the Loader type.
//
// File extensions ".KSM" and ".KO" set the Hint field. Alphabetic characters
// in file extensions can be in upper or lower case or a mixture of both.
func NewLoader(filename string) Loader {
	ld := Loader{
		Filename: filename,
	}

	switch strings.ToUpper(path.Ext(filename)) {
	case ".KSM":
		ld.Hint = KSM
	case ".KO":
		ld.Hint = KO
	}

	return ld
}

// FileExtensions is the list of file extensions that are recognised by the
// fileloader package.
var FileExtensions = [...]string{".KSM", ".KO"}

// ShortName returns a shortened version of the Loader filename.
func (ld Loader) ShortName() string {
	n := path.Base(ld.Filename)
	return strings.TrimSuffix(n, path.Ext(ld.Filename))
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the file data. Loader filenames with a valid schema will use that
// method to load the data. Currently supported schemes are HTTP and local
// files.
//
// Calling Load() a second time will reload the data from the source.
func (ld *Loader) Load() error {
	scheme := "file"

	u, err := url.Parse(ld.Filename)
	if err == nil {
		scheme = u.Scheme
	}

	var raw []byte

	switch scheme {
	case "http":
		fallthrough
	case "https":
		resp, err := http.Get(ld.Filename)
		if err != nil {
			return curated.Errorf("fileloader: %v", err)
		}
		defer resp.Body.Close()

		raw, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf("fileloader: %v", err)
		}

	case "file":
		fallthrough

	case "":
		raw, err = os.ReadFile(ld.Filename)
		if err != nil {
			return curated.Errorf("fileloader: %v", err)
		}

	default:
		return curated.Errorf("fileloader: %v", fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}

	// generate hash
	hash := fmt.Sprintf("%x", sha1.Sum(raw))

	// check for hash consistency
	if ld.Hash != "" && ld.Hash != hash {
		return curated.Errorf("fileloader: %v", "unexpected hash value")
	}
	ld.Hash = hash

	ld.Type, ld.Data, err = Sniff(raw)
	if err != nil {
		return curated.Errorf("fileloader: %v", err)
	}

	if ld.Hint != Unknown && ld.Hint != ld.Type {
		logger.Logf(logger.Allow, "fileloader", "%s has the extension of a %s file but contains a %s file", ld.ShortName(), ld.Hint, ld.Type)
	}

	return nil
}

// Sniff decides the type of the data. Compressed data is decompressed and
// the returned data is the data that should be given to the parser.
func Sniff(raw []byte) (FileType, []byte, error) {
	switch {
	case bytes.HasPrefix(raw, gzipMagic):
		data, err := decompress(raw)
		if err != nil {
			return Unknown, nil, err
		}
		if !bytes.HasPrefix(data, ksm.Magic) {
			return Unknown, nil, curated.Errorf(UnrecognizedFileType)
		}
		return KSM, data, nil

	case bytes.HasPrefix(raw, ksm.Magic):
		logger.Log(logger.Allow, "fileloader", "machine-code file is not compressed")
		return KSM, raw, nil

	case bytes.HasPrefix(raw, ko.Magic):
		return KO, raw, nil
	}

	return Unknown, nil, curated.Errorf(UnrecognizedFileType)
}

func decompress(raw []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, gzipError(err, len(raw))
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, gzipError(err, len(raw))
	}

	logger.Logf(logger.Allow, "fileloader", "decompressed %d bytes to %d bytes", len(raw), len(data))

	return data, nil
}

// a gzip stream that ends early is reported in the same way as any other
// truncated input
func gzipError(err error, n int) error {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return curated.Errorf("gzip: %v", curated.Errorf(cursor.UnexpectedEndOfInput, 1, n))
	}
	return curated.Errorf("gzip: %v", err)
}
