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

package export

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/jetsetilly/kdump/curated"
)

// canonical encoding for deterministic output
var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("export: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// Marshal the Document to CBOR bytes.
func Marshal(doc *Document) ([]byte, error) {
	b, err := encMode.Marshal(doc)
	if err != nil {
		return nil, curated.Errorf("export: %v", err)
	}
	return b, nil
}

// Write the Document to io.Writer.
func Write(w io.Writer, doc *Document) error {
	b, err := Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return curated.Errorf("export: %v", err)
	}
	return nil
}

// Read a Document from io.Reader.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := cbor.NewDecoder(r).Decode(&doc); err != nil {
		return nil, curated.Errorf("export: %v", err)
	}
	return &doc, nil
}
