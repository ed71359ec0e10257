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

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRowString(t *testing.T) {
	row := map[string]interface{}{
		"plain": "alice",
		"bytes": []byte("bob"),
		"null":  nil,
	}

	assert.Equal(t, "alice", RowString(row, "plain"))
	assert.Equal(t, "bob", RowString(row, "bytes"))
	assert.Equal(t, "", RowString(row, "null"))
	assert.Equal(t, "", RowString(row, "missing"))
}

func TestRowBool(t *testing.T) {
	row := map[string]interface{}{
		"native": true,
		"bytes":  []byte("true"),
		"null":   nil,
	}

	assert.True(t, RowBool(row, "native"))
	assert.True(t, RowBool(row, "bytes"))
	assert.False(t, RowBool(row, "null"))
}

func TestRowNullableInt(t *testing.T) {
	row := map[string]interface{}{
		"days": int64(730),
		"null": nil,
	}

	got := RowNullableInt(row, "days")
	if assert.NotNil(t, got) {
		assert.Equal(t, 730, *got)
	}
	assert.Nil(t, RowNullableInt(row, "null"))
}

func TestRowTime(t *testing.T) {
	ts := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	row := map[string]interface{}{
		"native": ts,
		"bytes":  []byte("2026-06-15T12:00:00Z"),
		"null":   nil,
	}

	assert.Equal(t, ts, RowTime(row, "native"))
	assert.Equal(t, ts, RowTime(row, "bytes"))
	assert.True(t, RowTime(row, "null").IsZero())
	assert.Nil(t, RowNullableTime(row, "null"))
}
