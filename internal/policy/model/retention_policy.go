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

// RetentionPolicy configures how long one category of data is retained.
// Administrator-created and updated, never deleted, only deactivated.
// Invariant: when AnonymizationAfterDays is set, DeletionAfterDays must
// exceed it.
type RetentionPolicy struct {
	PolicyID string `json:"policy_id"`
	DataType string `json:"data_type"`
	// AnonymizationAfterDays is nil when this category is never anonymized.
	AnonymizationAfterDays *int      `json:"anonymization_after_days,omitempty"`
	DeletionAfterDays      int       `json:"deletion_after_days"`
	PolicyActive           bool      `json:"policy_active"`
	Notes                  string    `json:"notes,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// AnonymizeAfter returns the anonymization horizon. The second return is
// false when anonymization is disabled for this category.
func (p *RetentionPolicy) AnonymizeAfter() (time.Duration, bool) {
	if p.AnonymizationAfterDays == nil {
		return 0, false
	}
	return time.Duration(*p.AnonymizationAfterDays) * 24 * time.Hour, true
}

// DeleteAfter returns the deletion horizon.
func (p *RetentionPolicy) DeleteAfter() time.Duration {
	return time.Duration(p.DeletionAfterDays) * 24 * time.Hour
}
