// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "study_cards"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort           = ":8080"
	DefaultLogLevel             = "info"
	DefaultAppReviewLimit       = 20
	DefaultRecommendationLimit  = 20
	DefaultAnswerRetryLimit     = 3
	DefaultSessionIdleTimeout   = 30 * time.Minute
	DefaultSessionSweepInterval = 5 * time.Minute
	DefaultDBSlowThreshold      = 500 * time.Millisecond
	DefaultMasteryThreshold     = 5
)
