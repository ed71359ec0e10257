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

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/hero-research/data-lifecycle-service/internal/system/config"
	"github.com/hero-research/data-lifecycle-service/internal/system/constants"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
	"github.com/hero-research/data-lifecycle-service/internal/system/managers"
	"github.com/hero-research/data-lifecycle-service/internal/system/schedulers"
)

const configFile = "config/deployment.yaml"

func main() {
	dlsHome := getDLSHome()

	envFiles, _ := filepath.Glob("config/*.env")
	_ = godotenv.Load(envFiles...)

	dlsConfig, err := config.LoadConfig(dlsHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.InitializeDLSRuntime(dlsHome, dlsConfig); err != nil {
		stdlog.Fatalf("Failed to initialize runtime: %v", err)
	}

	if err := log.Init(dlsConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	if interval := dlsConfig.Lifecycle.SchedulerIntervalMinutes; interval > 0 {
		go schedulers.StartRetentionScheduler(
			time.Duration(interval)*time.Minute, dlsConfig.Lifecycle.RunOnStart)
		logger.Info("Retention scheduler started", log.Int("interval_minutes", interval))
	} else {
		logger.Warn("Retention scheduler disabled; lifecycle jobs run only on manual triggers")
	}

	serverAddr := fmt.Sprintf("%s:%d", dlsConfig.Addr.Host, dlsConfig.Addr.Port)
	mux := initMultiplexer()

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.Error(err))
	}
	logger.Info("Data lifecycle service started", log.String("addr", serverAddr))

	server := &http.Server{Handler: mux}
	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Fatal("Failed to register the services", log.Error(err))
	}
	return mux
}

func getDLSHome() string {

	projectHomeFlag := flag.String("dlsHome", "", "Path to the data lifecycle service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		return *projectHomeFlag
	}
	dir, err := os.Getwd()
	if err != nil {
		stdlog.Fatalf("Failed to get current working directory: %v", err)
	}
	return dir
}
