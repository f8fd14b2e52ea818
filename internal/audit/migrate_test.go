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

package audit

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type MigrateInternalTestSuite struct {
	suite.Suite
}

func (s *MigrateInternalTestSuite) TestParseVersion() {
	tests := []struct {
		name      string
		filename  string
		want      int
		expectErr bool
	}{
		{name: "padded", filename: "0001_access_log.sql", want: 1},
		{name: "unpadded", filename: "12_index.sql", want: 12},
		{name: "all zeros", filename: "0000_seed.sql", want: 0},
		{name: "not a number", filename: "init.sql", expectErr: true},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := parseVersion(tt.filename)

			if tt.expectErr {
				s.Error(err)
				return
			}

			s.NoError(err)
			s.Equal(tt.want, got)
		})
	}
}

func (s *MigrateInternalTestSuite) TestLoadMigrationsSorted() {
	ms, err := loadMigrations()

	s.Require().NoError(err)
	s.Require().NotEmpty(ms)
	s.Equal(1, ms[0].version)
	for i := 1; i < len(ms); i++ {
		s.Less(ms[i-1].version, ms[i].version)
	}
}

func TestMigrateInternalTestSuite(t *testing.T) {
	suite.Run(t, new(MigrateInternalTestSuite))
}
