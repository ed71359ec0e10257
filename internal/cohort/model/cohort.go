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

// Cohort is an anonymous demographic stub. Anonymized sessions link here
// instead of to a participant, so research value survives while the identity
// is gone. It carries the coarse age band and nothing else.
type Cohort struct {
	AnonID    string    `json:"anon_id"`
	AgeRange  string    `json:"age_range"`
	CreatedAt time.Time `json:"created_at"`
}

// CohortID derives the stable stub identifier for a cohort label and age
// band. One row per pair; every participant anonymized into the same band
// shares it.
func CohortID(label, ageRange string) string {
	return label + "_" + ageRange
}
