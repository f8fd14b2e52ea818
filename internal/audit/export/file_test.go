// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package export

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/crossfi-tickets/ticketgate/internal/audit"
)

type FileInternalTestSuite struct {
	suite.Suite
}

func (s *FileInternalTestSuite) TearDownTest() {
	marshalJSON = defaultMarshalJSON
}

func (s *FileInternalTestSuite) TestWriteMarshalError() {
	marshalJSON = func(_ any) ([]byte, error) {
		return nil, errors.New("marshal failure")
	}

	sut := NewFileExporter(afero.NewMemMapFs(), "/audit.jsonl")
	s.Require().NoError(sut.Open(context.Background()))

	err := sut.Write(context.Background(), audit.Entry{ID: "test-id"})

	s.Error(err)
	s.Contains(err.Error(), "marshaling entry")
}

func TestFileInternalTestSuite(t *testing.T) {
	suite.Run(t, new(FileInternalTestSuite))
}
