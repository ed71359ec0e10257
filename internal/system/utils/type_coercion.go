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
	"fmt"
	"strconv"
	"time"
)

// Coercion helpers for rows returned by DBClient.ExecuteQuery, where every
// column arrives as interface{} with a driver-dependent concrete type.

// RowString returns the column as a string, empty when NULL.
func RowString(row map[string]interface{}, col string) string {
	switch v := row[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// RowBool returns the column as a bool, false when NULL.
func RowBool(row map[string]interface{}, col string) bool {
	switch v := row[col].(type) {
	case bool:
		return v
	case []byte:
		b, _ := strconv.ParseBool(string(v))
		return b
	default:
		return false
	}
}

// RowInt returns the column as an int, zero when NULL.
func RowInt(row map[string]interface{}, col string) int {
	switch v := row[col].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case []byte:
		n, _ := strconv.Atoi(string(v))
		return n
	default:
		return 0
	}
}

// RowNullableInt returns the column as an *int, nil when NULL.
func RowNullableInt(row map[string]interface{}, col string) *int {
	if row[col] == nil {
		return nil
	}
	n := RowInt(row, col)
	return &n
}

// RowTime returns the column as a time.Time, zero value when NULL.
func RowTime(row map[string]interface{}, col string) time.Time {
	switch v := row[col].(type) {
	case time.Time:
		return v
	case []byte:
		t, _ := time.Parse(time.RFC3339, string(v))
		return t
	default:
		return time.Time{}
	}
}

// RowNullableTime returns the column as a *time.Time, nil when NULL.
func RowNullableTime(row map[string]interface{}, col string) *time.Time {
	if row[col] == nil {
		return nil
	}
	t := RowTime(row, col)
	return &t
}
