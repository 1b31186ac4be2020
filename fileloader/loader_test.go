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

package fileloader_test

import (
	"bytes"
	"compress/gzip"
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/kdump/cursor"
	"github.com/jetsetilly/kdump/fileloader"
	"github.com/jetsetilly/kdump/test"
)

var machineCode = []byte{
	0x6b, 0x03, 0x58, 0x45,
	'%', 'A', 0x01,
	0x07, 0x05, 'h', 'e', 'l', 'l', 'o',
	'%', 'F', '%', 'I', '%', 'M',
	0x33,
	'%', 'D', 0x01,
}

var objectFile = []byte{0x6b, 0x01, 0x6f, 0x66, 0x04, 0x00, 0x00, 0x00, 0x00}

func compress(t *testing.T, data []byte) []byte {
	t.Helper()
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	_, err := w.Write(data)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, w.Close())
	return b.Bytes()
}

func TestSniff(t *testing.T) {
	typ, data, err := fileloader.Sniff(compress(t, machineCode))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, typ, fileloader.KSM)
	test.ExpectSuccess(t, bytes.Equal(data, machineCode))

	typ, data, err = fileloader.Sniff(machineCode)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, typ, fileloader.KSM)
	test.ExpectSuccess(t, bytes.Equal(data, machineCode))

	typ, data, err = fileloader.Sniff(objectFile)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, typ, fileloader.KO)
	test.ExpectSuccess(t, bytes.Equal(data, objectFile))
}

func TestUnrecognised(t *testing.T) {
	_, _, err := fileloader.Sniff([]byte("hello world"))
	test.ExpectPattern(t, err, fileloader.UnrecognizedFileType)

	_, _, err = fileloader.Sniff(nil)
	test.ExpectPattern(t, err, fileloader.UnrecognizedFileType)

	// compressed data must be a machine-code file
	_, _, err = fileloader.Sniff(compress(t, objectFile))
	test.ExpectPattern(t, err, fileloader.UnrecognizedFileType)
}

// gzip streams with header flags are not machine-code files
func TestCompressionWithFlags(t *testing.T) {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	w.Name = "prog.ksm"
	_, err := w.Write(machineCode)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, w.Close())

	_, _, err = fileloader.Sniff(b.Bytes())
	test.ExpectPattern(t, err, fileloader.UnrecognizedFileType)

	test.ExpectSuccess(t, bytes.HasPrefix(compress(t, machineCode), []byte{0x1f, 0x8b, 0x08, 0x00}))
}

func TestTruncatedCompression(t *testing.T) {
	c := compress(t, machineCode)
	_, _, err := fileloader.Sniff(c[:len(c)/2])
	test.ExpectPattern(t, err, cursor.UnexpectedEndOfInput)
}

func TestLoad(t *testing.T) {
	raw := compress(t, machineCode)
	fn := filepath.Join(t.TempDir(), "launch.ksm")
	test.DemandSuccess(t, os.WriteFile(fn, raw, 0o600))

	ld := fileloader.NewLoader(fn)
	test.ExpectEquality(t, ld.Hint, fileloader.KSM)
	test.ExpectEquality(t, ld.ShortName(), "launch")
	test.ExpectFailure(t, ld.HasLoaded())

	test.DemandSuccess(t, ld.Load())
	test.ExpectSuccess(t, ld.HasLoaded())
	test.ExpectEquality(t, ld.Type, fileloader.KSM)
	test.ExpectEquality(t, ld.Hash, fmt.Sprintf("%x", sha1.Sum(raw)))
	test.ExpectSuccess(t, bytes.Equal(ld.Data, machineCode))

	// the hash is checked on reload
	ld.Hash = "0000"
	test.ExpectFailure(t, ld.Load())

	ld = fileloader.NewLoader(filepath.Join(t.TempDir(), "missing.ko"))
	test.ExpectEquality(t, ld.Hint, fileloader.KO)
	test.ExpectFailure(t, ld.Load())
}
