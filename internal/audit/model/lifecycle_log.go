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

// LifecycleLogEntry is one row of the append-only data lifecycle audit
// trail. Entries are never updated or deleted by this service; they are the
// sole durable proof that a required lifecycle step occurred.
type LifecycleLogEntry struct {
	LogID      string                 `json:"log_id"`
	Timestamp  time.Time              `json:"timestamp"`
	ActionType string                 `json:"action_type"`
	TargetType string                 `json:"target_type"`
	TargetID   string                 `json:"target_id"`
	PerformedBy string                `json:"performed_by"`
	Details    map[string]interface{} `json:"details,omitempty"`
}
