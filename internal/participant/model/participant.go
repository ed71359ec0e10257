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

import "time"

// Participant is one enrolled study participant. Once IsAnonymized is set
// the identifying columns hold scrub sentinels and DateOfBirth is nil; the
// row is kept so session counts and audit references stay resolvable.
type Participant struct {
	UserID       string     `json:"user_id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	IsAnonymized bool       `json:"is_anonymized"`
	AnonymizedAt *time.Time `json:"anonymized_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AgeRanges are the only cohort age bands the anonymization step may assign.
// They match the bands used by the study's demographic reporting.
var AgeRanges = []string{"18-24", "25-30", "31-40", "41-50", "51-60", "61-70"}

// AgeRangeFor returns the cohort age band for a date of birth evaluated at
// the reference time. ok is false when the age falls outside every band, in
// which case the participant must not be anonymized.
func AgeRangeFor(dateOfBirth, ref time.Time) (band string, ok bool) {

	age := ref.Year() - dateOfBirth.Year()
	if ref.YearDay() < dateOfBirth.YearDay() {
		age--
	}

	switch {
	case age >= 18 && age <= 24:
		return "18-24", true
	case age >= 25 && age <= 30:
		return "25-30", true
	case age >= 31 && age <= 40:
		return "31-40", true
	case age >= 41 && age <= 50:
		return "41-50", true
	case age >= 51 && age <= 60:
		return "51-60", true
	case age >= 61 && age <= 70:
		return "61-70", true
	default:
		return "", false
	}
}
