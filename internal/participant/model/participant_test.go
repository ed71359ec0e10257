/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestAgeRangeForBands(t *testing.T) {
	ref := date(2026, 6, 15)

	tests := []struct {
		name string
		dob  time.Time
		band string
		ok   bool
	}{
		{"exactly 18", date(2008, 6, 15), "18-24", true},
		{"mid twenties", date(2000, 1, 1), "25-30", true},
		{"thirty one", date(1995, 3, 10), "31-40", true},
		{"forty five", date(1981, 2, 28), "41-50", true},
		{"sixty", date(1966, 5, 1), "51-60", true},
		{"seventy", date(1956, 1, 2), "61-70", true},
		{"seventeen", date(2009, 1, 1), "", false},
		{"seventy one", date(1955, 1, 1), "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			band, ok := AgeRangeFor(tc.dob, ref)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.band, band)
		})
	}
}

func TestAgeRangeForBirthdayNotReached(t *testing.T) {
	// Born 2001-12-01, evaluated 2026-06-15: still 24, not 25.
	band, ok := AgeRangeFor(date(2001, 12, 1), date(2026, 6, 15))
	assert.True(t, ok)
	assert.Equal(t, "18-24", band)

	// Same birth date evaluated after the birthday.
	band, ok = AgeRangeFor(date(2001, 12, 1), date(2026, 12, 1))
	assert.True(t, ok)
	assert.Equal(t, "25-30", band)
}

func TestLinkFromColumns(t *testing.T) {
	link, err := LinkFromColumns("user-1", "")
	assert.NoError(t, err)
	assert.Equal(t, LinkIdentified, link.State)
	assert.Equal(t, "user-1", link.UserID)

	link, err = LinkFromColumns("", "testing_stage_1_25-30")
	assert.NoError(t, err)
	assert.Equal(t, LinkAnonymized, link.State)
	assert.Equal(t, "testing_stage_1_25-30", link.AnonID)

	_, err = LinkFromColumns("user-1", "testing_stage_1_25-30")
	assert.Error(t, err)

	_, err = LinkFromColumns("", "")
	assert.Error(t, err)
}
