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

package schedulers

import (
	"time"

	"github.com/hero-research/data-lifecycle-service/internal/lifecycle/provider"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
)

// StartRetentionScheduler runs both retention jobs on a fixed interval,
// anonymization first so sessions relinked in a sweep are already cohort
// data when the deletion gate inspects them. The advisory lock inside the
// jobs handles overlap with manual triggers and other instances.
func StartRetentionScheduler(interval time.Duration, runOnStart bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if runOnStart {
		runRetentionSweep()
	}

	for range ticker.C {
		runRetentionSweep()
	}
}

func runRetentionSweep() {
	logger := log.GetLogger()
	service := provider.NewLifecycleProvider().GetLifecycleService()

	if _, err := service.RunAnonymization(time.Now().UTC()); err != nil {
		logger.Error("Scheduled anonymization run failed", log.Error(err))
	}
	if _, err := service.RunDeletion(time.Now().UTC()); err != nil {
		logger.Error("Scheduled deletion run failed", log.Error(err))
	}
}
