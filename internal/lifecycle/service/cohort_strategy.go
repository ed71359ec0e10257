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

package service

import cohortModel "github.com/hero-research/data-lifecycle-service/internal/cohort/model"

// CohortStrategy decides which cohort stub an anonymized participant's
// sessions are relinked to, given the derived age band.
type CohortStrategy interface {
	CohortFor(ageRange string) string
}

// StaticLabelStrategy groups every participant of a study stage under one
// configured label, split only by age band. This is the default; finer
// strategies can slot in without touching the job.
type StaticLabelStrategy struct {
	Label string
}

func (s *StaticLabelStrategy) CohortFor(ageRange string) string {
	return cohortModel.CohortID(s.Label, ageRange)
}
